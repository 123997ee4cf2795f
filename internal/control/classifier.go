// Package control implements the sensing and actuation steps of the rover:
// distance filtering, visibility sampling and classification, and the mapping
// of drive intents onto H-bridge duty cycles.
package control

import (
	"errors"
	"fmt"

	"FogRover/internal/model"
)

// ErrThresholdOrder is returned when the classifier thresholds are not strictly decreasing.
var ErrThresholdOrder = errors.New("thresholds must satisfy clear > fog > off")

// Thresholds are the three ordered visibility boundaries.
type Thresholds struct {
	Clear int
	Fog   int
	Off   int
}

// SpeedCaps assigns a duty-cycle ceiling to each cap level.
type SpeedCaps struct {
	Max  model.SpeedCap
	Safe model.SpeedCap
	Stop model.SpeedCap
}

// Classification is the result of classifying one visibility reading.
type Classification struct {
	State model.VisibilityState
	Cap   model.SpeedCap
	Alert bool
}

// Classifier maps visibility readings onto the four visibility bands.
// It has no memory: the same reading always yields the same result.
type Classifier struct {
	thresholds Thresholds
	caps       SpeedCaps
}

// DefaultThresholds are the factory calibration of the attenuation sensor.
var DefaultThresholds = Thresholds{Clear: 2000, Fog: 800, Off: 200}

// DefaultSpeedCaps are the 8-bit PWM duties for MAX, SAFE and STOP.
var DefaultSpeedCaps = SpeedCaps{Max: 255, Safe: 140, Stop: 0}

// NewClassifier validates the thresholds and returns a Classifier.
func NewClassifier(t Thresholds, caps SpeedCaps) (Classifier, error) {
	if !(t.Clear > t.Fog && t.Fog > t.Off) {
		return Classifier{}, fmt.Errorf("%w: got %d/%d/%d", ErrThresholdOrder, t.Clear, t.Fog, t.Off)
	}
	return Classifier{thresholds: t, caps: caps}, nil
}

// DefaultClassifier returns a Classifier with the factory thresholds and caps.
func DefaultClassifier() Classifier {
	return Classifier{thresholds: DefaultThresholds, caps: DefaultSpeedCaps}
}

// Thresholds returns the configured boundaries.
func (c Classifier) Thresholds() Thresholds { return c.thresholds }

// Classify maps a reading onto its band.
//
//	reading >= clear        -> Clear     (MAX,  no alert)
//	fog < reading < clear   -> LightFog  (SAFE, alert)
//	off < reading <= fog    -> DenseFog  (STOP, alert)
//	reading <= off          -> SystemOff (STOP, no alert)
//
// SystemOff stays silent: a reading that low means the emitter is off or the
// beam is blocked on purpose, not that the fog is dense.
func (c Classifier) Classify(reading int) Classification {
	t := c.thresholds
	switch {
	case reading >= t.Clear:
		return Classification{State: model.Clear, Cap: c.caps.Max, Alert: false}
	case reading > t.Fog:
		return Classification{State: model.LightFog, Cap: c.caps.Safe, Alert: true}
	case reading > t.Off:
		return Classification{State: model.DenseFog, Cap: c.caps.Stop, Alert: true}
	default:
		return Classification{State: model.SystemOff, Cap: c.caps.Stop, Alert: false}
	}
}
