// Package model defines shared message structures for FogRover.
package model

import "time"

// Status is the fused snapshot published by the scheduler at the reporting cadence.
// It is immutable once published; readers on other goroutines only ever see copies.
type Status struct {
	RobotID    string          `json:"robot_id"`
	RunID      string          `json:"run_id,omitempty"`
	Tick       uint64          `json:"tick"`
	Time       time.Time       `json:"time"`
	Visibility VisibilityState `json:"visibility"`
	Reading    int             `json:"reading"`
	Noise      float64         `json:"noise"`
	DistanceCM float64         `json:"distance_cm"`
	SpeedCap   SpeedCap        `json:"speed_cap"`
	Alert      bool            `json:"alert"`
	Intent     DriveIntent     `json:"intent"`
	Motors     MotorOutput     `json:"motors"`
}

// Command is a drive request carried over a remote link (LoRa).
// RobotID "*" addresses every robot on the link.
type Command struct {
	RobotID string      `json:"robot_id"`
	Intent  DriveIntent `json:"code"`
}

// AckMessage is a simple ack structure.
type AckMessage struct {
	Code string `json:"code"`
	Ack  bool   `json:"ack"`
}
