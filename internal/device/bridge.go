package device

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// AnalogMax is the largest value the bridge ADC reports.
const AnalogMax = 4095

// AnalogBridge reads an analog channel from a microcontroller attached over a
// line device. The host writes "READ <ch>" and the MCU answers "<ch>,<value>".
// Lines for other channels and chatter are skipped until the timeout.
type AnalogBridge struct {
	dev     Device
	channel int
	timeout time.Duration

	mu sync.Mutex
}

// NewAnalogBridge creates a bridge reading channel ch from dev.
func NewAnalogBridge(dev Device, ch int, timeout time.Duration) *AnalogBridge {
	return &AnalogBridge{dev: dev, channel: ch, timeout: timeout}
}

// ReadAnalog requests one conversion and returns the value clamped to
// 0..AnalogMax. Replies left over from a request that timed out are
// discarded first so they are not taken as this request's answer.
func (b *AnalogBridge) ReadAnalog() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d, ok := b.dev.(Drainer); ok {
		d.Drain()
	}
	if err := b.dev.WriteLine(fmt.Sprintf("READ %d", b.channel)); err != nil {
		return 0, fmt.Errorf("bridge request: %w", err)
	}
	deadline := time.Now().Add(b.timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, ErrTimeout
		}
		line, err := b.dev.ReadLine(remaining)
		if err != nil {
			return 0, fmt.Errorf("bridge read: %w", err)
		}
		ch, v, ok := ParseAnalogLine(line)
		if !ok || ch != b.channel {
			continue
		}
		return clampAnalog(v), nil
	}
}

// ParseAnalogLine parses a "<ch>,<value>" reply.
func ParseAnalogLine(line string) (ch, value int, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	ch, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	value, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return ch, value, true
}

// ParseReadRequest parses a "READ <ch>" request as seen by the MCU side.
func ParseReadRequest(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "READ") {
		return 0, false
	}
	ch, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return ch, true
}

func clampAnalog(v int) int {
	switch {
	case v < 0:
		return 0
	case v > AnalogMax:
		return AnalogMax
	default:
		return v
	}
}
