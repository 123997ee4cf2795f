package device

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"

	"FogRover/internal/model"
)

type motorPin interface {
	Out(l gpio.Level) error
	PWM(duty gpio.Duty, f physic.Frequency) error
}

// PWMMotors drives a dual H-bridge through four PWM-capable pins in the order
// IN1 (left forward), IN2 (left reverse), IN3 (right forward), IN4 (right reverse).
type PWMMotors struct {
	pins [4]motorPin
	freq physic.Frequency
}

// NewPWMMotors claims the four pins by name and drives them low.
func NewPWMMotors(names []string, hz int) (*PWMMotors, error) {
	if len(names) != 4 {
		return nil, fmt.Errorf("need 4 motor pins, got %d", len(names))
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	m := &PWMMotors{freq: physic.Frequency(hz) * physic.Hertz}
	for i, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, fmt.Errorf("no GPIO motor pin named %q", n)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("motor pin %s: %w", n, err)
		}
		m.pins[i] = p
	}
	return m, nil
}

// DutyFor scales an 8-bit magnitude to a periph duty cycle.
func DutyFor(magnitude int) gpio.Duty {
	if magnitude <= 0 {
		return 0
	}
	if magnitude >= 255 {
		return gpio.DutyMax
	}
	return gpio.Duty(int64(magnitude) * int64(gpio.DutyMax) / 255)
}

// Apply writes all four terminals. Zero magnitudes drive the pin low.
func (m *PWMMotors) Apply(out model.MotorOutput) error {
	for i, v := range out.Terminals() {
		var err error
		if v <= 0 {
			err = m.pins[i].Out(gpio.Low)
		} else {
			err = m.pins[i].PWM(DutyFor(v), m.freq)
		}
		if err != nil {
			return fmt.Errorf("motor IN%d: %w", i+1, err)
		}
	}
	return nil
}

// Halt drives every terminal low.
func (m *PWMMotors) Halt() error {
	return m.Apply(model.MotorOutput{})
}

// Close halts the motors so the bridge is left de-energised when the
// process exits.
func (m *PWMMotors) Close() error {
	if err := m.Halt(); err != nil {
		return fmt.Errorf("halt motors: %w", err)
	}
	return nil
}
