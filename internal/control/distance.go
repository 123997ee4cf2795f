package control

import (
	"math"
	"time"
)

// PulseRanger triggers one time-of-flight measurement and returns the echo
// pulse width. A zero duration means no echo arrived before timeout.
type PulseRanger interface {
	Pulse(timeout time.Duration) (time.Duration, error)
}

// soundCMPerMicrosecond is the speed of sound at ~20 C.
const soundCMPerMicrosecond = 0.034

// PulseToCM converts a round-trip echo width into a one-way distance in centimeters.
func PulseToCM(echo time.Duration) float64 {
	us := float64(echo) / float64(time.Microsecond)
	return us * soundCMPerMicrosecond / 2
}

// DistanceFilter holds the last plausible distance and only replaces it when a
// new measurement converts into [min, max]. Timeouts, ranger errors and
// out-of-range echoes leave the held value untouched.
type DistanceFilter struct {
	ranger  PulseRanger
	minCM   float64
	maxCM   float64
	timeout time.Duration
	last    float64
}

// NewDistanceFilter creates a filter reading from r. The held value starts at 0.
func NewDistanceFilter(r PulseRanger, minCM, maxCM float64, timeout time.Duration) *DistanceFilter {
	return &DistanceFilter{ranger: r, minCM: minCM, maxCM: maxCM, timeout: timeout}
}

// Measure triggers the ranger and returns the filtered distance in centimeters.
func (f *DistanceFilter) Measure() float64 {
	echo, err := f.ranger.Pulse(f.timeout)
	if err != nil || echo <= 0 {
		return f.last
	}
	return f.Accept(PulseToCM(echo))
}

// Accept applies the last-valid hold to an already converted distance.
func (f *DistanceFilter) Accept(cm float64) float64 {
	if math.IsNaN(cm) || cm < f.minCM || cm > f.maxCM {
		return f.last
	}
	f.last = cm
	return f.last
}

// Last returns the held distance without measuring.
func (f *DistanceFilter) Last() float64 { return f.last }
