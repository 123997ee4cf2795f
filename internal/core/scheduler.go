package core

import (
	"context"
	"log"
	"time"

	"FogRover/internal/control"
	"FogRover/internal/model"
	"FogRover/internal/report"
	"FogRover/internal/timeutil"
)

// MotorDriver applies a MotorOutput to the H-bridge.
type MotorDriver interface {
	Apply(out model.MotorOutput) error
}

// IntentSource is polled once per tick for the operator's latest drive intent.
type IntentSource interface {
	Poll(current model.DriveIntent) model.DriveIntent
}

// Timing holds the scheduler cadences.
type Timing struct {
	SamplePeriod time.Duration
	ReportPeriod time.Duration
	Yield        time.Duration
}

// State is everything the control loop carries from one tick to the next.
// Only the scheduler goroutine reads or writes it.
type State struct {
	Intent     model.DriveIntent
	Reading    control.VisibilityReading
	DistanceCM float64
	Class      control.Classification
	Motors     model.MotorOutput
	LastSample time.Time
	LastReport time.Time
	Ticks      uint64
}

// SchedulerOptions wires the scheduler to its collaborators.
type SchedulerOptions struct {
	RobotID    string
	RunID      string
	Clock      timeutil.Clock
	Timing     Timing
	Commands   IntentSource
	Distance   *control.DistanceFilter
	Sampler    *control.VisibilitySampler
	Classifier control.Classifier
	Motors     MotorDriver
	Reporter   *report.Reporter
}

// Scheduler is the cooperative control loop. Each tick it polls the command
// mailbox, re-samples the sensors when the sampling period has elapsed,
// recomputes the motor output and renders status when the reporting period
// has elapsed.
type Scheduler struct {
	opts  SchedulerOptions
	state State

	sampleFailing bool
	motorFailing  bool
}

// NewScheduler creates a scheduler in its initial state: intent Stop, speed
// cap MAX, distance 0, both cadence timers starting now.
func NewScheduler(opts SchedulerOptions) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	now := opts.Clock.Now()
	s := &Scheduler{opts: opts}
	s.state = State{
		Intent:     model.Stop,
		Class:      opts.Classifier.Classify(opts.Classifier.Thresholds().Clear),
		LastSample: now,
		LastReport: now,
	}
	return s
}

// Tick runs one pass of the control loop.
func (s *Scheduler) Tick() {
	now := s.opts.Clock.Now()

	s.state.Intent = s.opts.Commands.Poll(s.state.Intent)

	if now.Sub(s.state.LastSample) >= s.opts.Timing.SamplePeriod {
		s.sample()
		s.state.LastSample = now
		s.opts.Reporter.Diagnose(s.status(now))
	}

	s.actuate(control.Actuate(s.state.Intent, s.state.Class.Cap))

	if now.Sub(s.state.LastReport) >= s.opts.Timing.ReportPeriod {
		s.opts.Reporter.Render(s.status(now))
		s.state.LastReport = now
	}

	s.state.Ticks++
}

// Run ticks until ctx is cancelled, yielding between ticks. On exit the
// motors are driven to zero once.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Printf("[core] scheduler running: sample=%s report=%s yield=%s",
		s.opts.Timing.SamplePeriod, s.opts.Timing.ReportPeriod, s.opts.Timing.Yield)
	for {
		select {
		case <-ctx.Done():
			s.actuate(model.MotorOutput{})
			log.Printf("[core] scheduler stopped after %d ticks", s.state.Ticks)
			return ctx.Err()
		default:
		}
		s.Tick()
		if s.opts.Timing.Yield > 0 {
			s.opts.Clock.Sleep(s.opts.Timing.Yield)
		}
	}
}

// State returns a copy of the loop state.
func (s *Scheduler) State() State { return s.state }

// Snapshot returns the status as it would be rendered now.
func (s *Scheduler) Snapshot() model.Status { return s.status(s.opts.Clock.Now()) }

func (s *Scheduler) sample() {
	s.state.DistanceCM = s.opts.Distance.Measure()

	r, err := s.opts.Sampler.Sample()
	if err != nil {
		// keep the previous reading and classification until the sensor answers again
		if !s.sampleFailing {
			log.Printf("[core] visibility sample failed, holding last reading: %v", err)
			s.sampleFailing = true
		}
		return
	}
	if s.sampleFailing {
		log.Printf("[core] visibility sampling recovered")
		s.sampleFailing = false
	}
	s.state.Reading = r
	s.state.Class = s.opts.Classifier.Classify(r.Value)
}

func (s *Scheduler) actuate(out model.MotorOutput) {
	s.state.Motors = out
	if err := s.opts.Motors.Apply(out); err != nil {
		if !s.motorFailing {
			log.Printf("[core] motor driver error: %v", err)
			s.motorFailing = true
		}
		return
	}
	s.motorFailing = false
}

func (s *Scheduler) status(now time.Time) model.Status {
	return model.Status{
		RobotID:    s.opts.RobotID,
		RunID:      s.opts.RunID,
		Tick:       s.state.Ticks,
		Time:       now,
		Visibility: s.state.Class.State,
		Reading:    s.state.Reading.Value,
		Noise:      s.state.Reading.Noise,
		DistanceCM: s.state.DistanceCM,
		SpeedCap:   s.state.Class.Cap,
		Alert:      s.state.Class.Alert,
		Intent:     s.state.Intent,
		Motors:     s.state.Motors,
	}
}
