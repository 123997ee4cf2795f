// Package model defines shared configuration structures used to initialize FogRover.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Config represents the root structure loaded from configs/rover.yml.
type Config struct {
	Robot      RobotConfig      `yaml:"robot"`
	Timing     TimingConfig     `yaml:"timing"`
	Visibility VisibilityConfig `yaml:"visibility"`
	Speed      SpeedConfig      `yaml:"speed"`
	Distance   DistanceConfig   `yaml:"distance"`
	Hardware   HardwareConfig   `yaml:"hardware"`
	HTTP       HTTPConfig       `yaml:"http"`
	LoRa       LoRaConfig       `yaml:"lora"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
}

// RobotConfig identifies the robot on shared links.
type RobotConfig struct {
	ID         string `yaml:"id"`
	WireFormat string `yaml:"wire_format"` // csv or json
}

// TimingConfig holds the scheduler cadences.
type TimingConfig struct {
	SamplePeriodMs int `yaml:"sample_period_ms"`
	ReportPeriodMs int `yaml:"report_period_ms"`
	YieldMs        int `yaml:"yield_ms"`
}

// VisibilityConfig holds classifier thresholds and averaging window.
type VisibilityConfig struct {
	Clear         int `yaml:"clear"`
	Fog           int `yaml:"fog"`
	Off           int `yaml:"off"`
	Samples       int `yaml:"samples"`
	SampleDelayMs int `yaml:"sample_delay_ms"`
	Channel       int `yaml:"channel"`
}

// SpeedConfig holds the duty cycle assigned to each speed cap.
type SpeedConfig struct {
	Max  int `yaml:"max"`
	Safe int `yaml:"safe"`
	Stop int `yaml:"stop"`
}

// DistanceConfig bounds plausible ranging results.
type DistanceConfig struct {
	MinCM     float64 `yaml:"min_cm"`
	MaxCM     float64 `yaml:"max_cm"`
	TimeoutMs int     `yaml:"timeout_ms"`
}

// HardwareConfig selects and wires the peripherals.
type HardwareConfig struct {
	Mode         string   `yaml:"mode"` // sim or pi
	BridgeDevice string   `yaml:"bridge_device"`
	BridgeBaud   int      `yaml:"bridge_baud"`
	TrigPin      string   `yaml:"trig_pin"`
	EchoPin      string   `yaml:"echo_pin"`
	MotorPins    []string `yaml:"motor_pins"` // IN1..IN4
	PWMHz        int      `yaml:"pwm_hz"`
	LCDDevice    string   `yaml:"lcd_device"`
	LCDBaud      int      `yaml:"lcd_baud"`
	LCDWidth     int      `yaml:"lcd_width"`
}

// HTTPConfig configures the command interface server.
type HTTPConfig struct {
	Addr        string `yaml:"addr"`
	JournalPath string `yaml:"journal_path"` // empty disables the transition journal
}

// LoRaConfig configures the optional LoRa serial link.
type LoRaConfig struct {
	Device string `yaml:"device"` // empty disables the link
	Baud   int    `yaml:"baud"`
}

// MQTTConfig configures the optional status publisher.
type MQTTConfig struct {
	Broker      string `yaml:"broker"` // empty disables publishing
	TopicPrefix string `yaml:"topic_prefix"`
}

const (
	HardwareSim = "sim"
	HardwarePi  = "pi"
)

// DefaultConfig returns the configuration used for any key the YAML file omits.
func DefaultConfig() Config {
	return Config{
		Robot:      RobotConfig{ID: "rover-01", WireFormat: "csv"},
		Timing:     TimingConfig{SamplePeriodMs: 60, ReportPeriodMs: 500, YieldMs: 5},
		Visibility: VisibilityConfig{Clear: 2000, Fog: 800, Off: 200, Samples: 20, SampleDelayMs: 1},
		Speed:      SpeedConfig{Max: 255, Safe: 140, Stop: 0},
		Distance:   DistanceConfig{MinCM: 2, MaxCM: 400, TimeoutMs: 30},
		Hardware: HardwareConfig{
			Mode:       HardwareSim,
			BridgeBaud: 115200,
			PWMHz:      1000,
			LCDBaud:    9600,
			LCDWidth:   16,
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		LoRa: LoRaConfig{Baud: 9600},
		MQTT: MQTTConfig{TopicPrefix: "fogrover"},
	}
}

// Validate checks the invariants the control loop relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.Robot.ID == "" {
		errs = append(errs, errors.New("robot.id must be set"))
	}
	if c.Robot.WireFormat != "csv" && c.Robot.WireFormat != "json" {
		errs = append(errs, fmt.Errorf("robot.wire_format must be csv or json, got %q", c.Robot.WireFormat))
	}
	if c.Timing.SamplePeriodMs <= 0 || c.Timing.ReportPeriodMs <= 0 {
		errs = append(errs, errors.New("timing periods must be > 0"))
	}
	if c.Timing.YieldMs < 0 {
		errs = append(errs, errors.New("timing.yield_ms must be >= 0"))
	}
	v := c.Visibility
	if !(v.Clear > v.Fog && v.Fog > v.Off) {
		errs = append(errs, fmt.Errorf("visibility thresholds must satisfy clear > fog > off, got %d/%d/%d", v.Clear, v.Fog, v.Off))
	}
	if v.Samples < 1 {
		errs = append(errs, errors.New("visibility.samples must be >= 1"))
	}
	if v.SampleDelayMs < 0 {
		errs = append(errs, errors.New("visibility.sample_delay_ms must be >= 0"))
	}
	s := c.Speed
	if !(s.Max <= 255 && s.Max >= s.Safe && s.Safe >= s.Stop && s.Stop >= 0) {
		errs = append(errs, fmt.Errorf("speed caps must satisfy 255 >= max >= safe >= stop >= 0, got %d/%d/%d", s.Max, s.Safe, s.Stop))
	}
	if c.Distance.MinCM < 0 || c.Distance.MaxCM <= c.Distance.MinCM {
		errs = append(errs, fmt.Errorf("distance range [%.1f, %.1f] is empty", c.Distance.MinCM, c.Distance.MaxCM))
	}
	if c.Distance.TimeoutMs <= 0 {
		errs = append(errs, errors.New("distance.timeout_ms must be > 0"))
	}
	switch c.Hardware.Mode {
	case HardwareSim:
	case HardwarePi:
		if len(c.Hardware.MotorPins) != 4 {
			errs = append(errs, fmt.Errorf("hardware.motor_pins needs 4 pins, got %d", len(c.Hardware.MotorPins)))
		}
		if c.Hardware.TrigPin == "" || c.Hardware.EchoPin == "" {
			errs = append(errs, errors.New("hardware.trig_pin and hardware.echo_pin must be set"))
		}
		if c.Hardware.BridgeDevice == "" {
			errs = append(errs, errors.New("hardware.bridge_device must be set"))
		}
	default:
		errs = append(errs, fmt.Errorf("hardware.mode must be sim or pi, got %q", c.Hardware.Mode))
	}
	if c.Hardware.LCDWidth <= 0 {
		errs = append(errs, errors.New("hardware.lcd_width must be > 0"))
	}
	return errors.Join(errs...)
}

// SamplePeriod returns the sensor cadence.
func (c *Config) SamplePeriod() time.Duration {
	return time.Duration(c.Timing.SamplePeriodMs) * time.Millisecond
}

// ReportPeriod returns the status cadence.
func (c *Config) ReportPeriod() time.Duration {
	return time.Duration(c.Timing.ReportPeriodMs) * time.Millisecond
}

// Yield returns the end-of-tick pause.
func (c *Config) Yield() time.Duration {
	return time.Duration(c.Timing.YieldMs) * time.Millisecond
}
