package device

import (
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

type triggerPin interface {
	Out(l gpio.Level) error
}

type echoPin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	WaitForEdge(timeout time.Duration) bool
}

// Ranger drives an HC-SR04 ultrasonic module on two GPIO pins.
type Ranger struct {
	trig triggerPin
	echo echoPin
}

// NewRanger initialises the host drivers and claims the trigger and echo pins
// by name (BCM numbers on a Raspberry Pi).
func NewRanger(trig, echo string) (*Ranger, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	tp, ep := gpioreg.ByName(trig), gpioreg.ByName(echo)
	if tp == nil {
		return nil, fmt.Errorf("no GPIO trigger pin named %q", trig)
	}
	if ep == nil {
		return nil, fmt.Errorf("no GPIO echo pin named %q", echo)
	}
	r := &Ranger{trig: tp, echo: ep}
	if err := r.trig.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := r.echo.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return nil, err
	}
	return r, nil
}

// Pulse fires a 10 µs trigger and returns the echo pulse width. Both edges
// must arrive within timeout of the call; a missing edge yields a zero
// duration and no error, which callers treat as no echo.
func (r *Ranger) Pulse(timeout time.Duration) (time.Duration, error) {
	deadline := time.Now().Add(timeout)
	if err := r.echo.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return 0, err
	}
	if err := r.trig.Out(gpio.High); err != nil {
		return 0, err
	}
	time.Sleep(10 * time.Microsecond)
	if err := r.trig.Out(gpio.Low); err != nil {
		return 0, err
	}

	if !r.waitEdge(deadline) {
		return 0, nil
	}
	start := time.Now()
	if err := r.echo.In(gpio.PullDown, gpio.FallingEdge); err != nil {
		return 0, err
	}
	if !r.waitEdge(deadline) {
		return 0, nil
	}
	return time.Since(start), nil
}

// waitEdge waits for the armed edge until deadline. periph reads a negative
// timeout as "forever", so an expired deadline returns false without waiting.
func (r *Ranger) waitEdge(deadline time.Time) bool {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}
	return r.echo.WaitForEdge(remaining)
}
