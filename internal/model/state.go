// Package model defines the value types shared by the FogRover control loop:
// visibility classification, speed caps, drive intents and motor outputs.
package model

import (
	"fmt"
	"strings"
)

// VisibilityState is the discrete classification of a visibility reading.
type VisibilityState int

const (
	Clear VisibilityState = iota
	LightFog
	DenseFog
	SystemOff
)

func (v VisibilityState) String() string {
	switch v {
	case Clear:
		return "CLEAR"
	case LightFog:
		return "LIGHT_FOG"
	case DenseFog:
		return "DENSE_FOG"
	case SystemOff:
		return "SYSTEM_OFF"
	default:
		return fmt.Sprintf("VisibilityState(%d)", int(v))
	}
}

// MarshalText encodes the state by name.
func (v VisibilityState) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (v *VisibilityState) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "CLEAR":
		*v = Clear
	case "LIGHT_FOG":
		*v = LightFog
	case "DENSE_FOG":
		*v = DenseFog
	case "SYSTEM_OFF":
		*v = SystemOff
	default:
		return fmt.Errorf("unknown visibility state %q", string(b))
	}
	return nil
}

// SpeedCap is the duty-cycle ceiling (0-255) permitted by the current visibility.
type SpeedCap int

// DriveIntent is the direction of travel requested by the operator.
type DriveIntent int

const (
	Stop DriveIntent = iota
	Forward
	Backward
	Left
	Right
)

// Code returns the single-letter route code of the intent (F, B, L, R, S).
func (d DriveIntent) Code() string {
	switch d {
	case Forward:
		return "F"
	case Backward:
		return "B"
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "S"
	}
}

func (d DriveIntent) String() string {
	switch d {
	case Stop:
		return "STOP"
	case Forward:
		return "FORWARD"
	case Backward:
		return "BACKWARD"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("DriveIntent(%d)", int(d))
	}
}

// MarshalText encodes the intent by name.
func (d DriveIntent) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts either the long name or the single-letter code.
func (d *DriveIntent) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "STOP", "S":
		*d = Stop
	case "FORWARD", "F":
		*d = Forward
	case "BACKWARD", "B":
		*d = Backward
	case "LEFT", "L":
		*d = Left
	case "RIGHT", "R":
		*d = Right
	default:
		return fmt.Errorf("unknown drive intent %q", string(b))
	}
	return nil
}

// MotorOutput holds the duty cycle of each H-bridge input terminal.
// The left motor is wired to LeftForward/LeftReverse, the right motor
// to RightForward/RightReverse.
type MotorOutput struct {
	LeftForward  int `json:"left_forward"`
	LeftReverse  int `json:"left_reverse"`
	RightForward int `json:"right_forward"`
	RightReverse int `json:"right_reverse"`
}

// Mirror swaps the left and right motor terminals.
func (m MotorOutput) Mirror() MotorOutput {
	return MotorOutput{
		LeftForward:  m.RightForward,
		LeftReverse:  m.RightReverse,
		RightForward: m.LeftForward,
		RightReverse: m.LeftReverse,
	}
}

// IsZero reports whether every terminal is undriven.
func (m MotorOutput) IsZero() bool {
	return m == MotorOutput{}
}

// Terminals returns the duties in wiring order IN1..IN4.
func (m MotorOutput) Terminals() [4]int {
	return [4]int{m.LeftForward, m.LeftReverse, m.RightForward, m.RightReverse}
}
