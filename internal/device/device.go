// Package device is the rover's hardware boundary. It provides line devices
// on serial ports and the peripherals the control loop consumes: the analog
// bridge, the ultrasonic ranger, the motor driver and the status displays,
// each with a simulated counterpart.
package device

import (
	"errors"
	"time"
)

var (
	// ErrNotOpen is returned by I/O on a closed device.
	ErrNotOpen = errors.New("device not open")
	// ErrTimeout is returned when no line arrives within the read timeout.
	ErrTimeout error = timeoutError{}
)

type timeoutError struct{}

func (timeoutError) Error() string { return "read timeout" }

// Timeout lets callers outside this package recognise a stalled peer.
func (timeoutError) Timeout() bool { return true }

// Device defines an abstract line-oriented device (serial MCU, LoRa module).
type Device interface {
	// ReadLine reads a single line terminated by '\n', without the terminator.
	// If timeout > 0, it returns ErrTimeout once timeout elapses.
	ReadLine(timeout time.Duration) (string, error)

	// WriteLine writes s followed by '\n' to the device.
	WriteLine(s string) error

	// Close closes the device and releases underlying resources.
	Close() error
}

// Drainer is implemented by devices that buffer received lines. Drain
// discards lines already received but not yet read and reports how many.
type Drainer interface {
	Drain() int
}
