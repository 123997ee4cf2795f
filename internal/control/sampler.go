package control

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/stat"

	"FogRover/internal/timeutil"
)

// AnalogInput returns one raw reading of the visibility channel (0-4095).
type AnalogInput interface {
	ReadAnalog() (int, error)
}

// ErrNoSamples is returned when every raw read of a window failed.
var ErrNoSamples = errors.New("no analog samples in window")

// VisibilityReading is one denoised visibility value.
type VisibilityReading struct {
	Value   int     // truncated mean of the window
	Noise   float64 // standard deviation of the raw window
	Samples int     // raw reads that succeeded
}

// VisibilitySampler averages a fixed window of raw analog reads.
type VisibilitySampler struct {
	input AnalogInput
	clock timeutil.Clock
	n     int
	delay time.Duration
	buf   []float64
}

// NewVisibilitySampler returns a sampler taking n reads spaced by delay.
func NewVisibilitySampler(in AnalogInput, clock timeutil.Clock, n int, delay time.Duration) *VisibilitySampler {
	if n < 1 {
		n = 1
	}
	return &VisibilitySampler{input: in, clock: clock, n: n, delay: delay, buf: make([]float64, 0, n)}
}

// Sample reads the window and returns its truncated integer mean.
// Failed reads are left out of the mean; if none succeed, ErrNoSamples is returned.
// A read that timed out ends the window early, so a silent input costs one
// read timeout per window rather than one per read.
func (s *VisibilitySampler) Sample() (VisibilityReading, error) {
	s.buf = s.buf[:0]
	sum := 0
	for i := 0; i < s.n; i++ {
		v, err := s.input.ReadAnalog()
		if err != nil && isTimeout(err) {
			break
		}
		if err == nil {
			sum += v
			s.buf = append(s.buf, float64(v))
		}
		if s.delay > 0 {
			s.clock.Sleep(s.delay)
		}
	}
	if len(s.buf) == 0 {
		return VisibilityReading{}, ErrNoSamples
	}
	r := VisibilityReading{Value: sum / len(s.buf), Samples: len(s.buf)}
	if len(s.buf) > 1 {
		r.Noise = stat.StdDev(s.buf, nil)
	}
	return r, nil
}

// isTimeout reports whether err marks an input that stopped answering.
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
