// Package core contains the rover's runtime: the cooperative control loop
// and the System that builds and supervises every component around it.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"FogRover/internal/app"
	"FogRover/internal/command"
	"FogRover/internal/control"
	"FogRover/internal/device"
	"FogRover/internal/lora"
	"FogRover/internal/model"
	"FogRover/internal/parser"
	"FogRover/internal/report"
	"FogRover/internal/store"
	"FogRover/internal/telemetry"
	"FogRover/internal/timeutil"
)

const (
	mailboxSize   = 8
	bridgeTimeout = 20 * time.Millisecond
)

// Peripherals are the hardware the control loop drives.
type Peripherals struct {
	Analog  control.AnalogInput
	Ranger  control.PulseRanger
	Motors  MotorDriver
	Display report.Display
	Closers []io.Closer
}

// System owns the rover's components and their lifecycle.
type System struct {
	cfg   model.Config
	RunID string

	Mailbox   *command.Mailbox
	Reporter  *report.Reporter
	Scheduler *Scheduler
	App       *app.App
	Hub       *app.Hub
	Link      *lora.Link
	Journal   *store.Journal

	mqtt    mqtt.Client
	closers []io.Closer

	cancel    context.CancelFunc
	done      chan error
	started   bool
	startLock sync.Mutex
}

// NewSystem builds every component from cfg, opening real or simulated
// peripherals according to hardware.mode.
func NewSystem(cfg model.Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := OpenPeripherals(cfg)
	if err != nil {
		return nil, err
	}
	s, err := NewSystemWith(cfg, p)
	if err != nil {
		for _, c := range p.Closers {
			_ = c.Close()
		}
		return nil, err
	}
	return s, nil
}

// OpenPeripherals opens the devices named by cfg.Hardware.
func OpenPeripherals(cfg model.Config) (Peripherals, error) {
	hw := cfg.Hardware
	var p Peripherals

	if hw.BridgeDevice != "" {
		sd, err := device.NewSerialDevice(hw.BridgeDevice, hw.BridgeBaud)
		if err != nil {
			return p, fmt.Errorf("analog bridge: %w", err)
		}
		p.Closers = append(p.Closers, sd)
		p.Analog = device.NewAnalogBridge(sd, cfg.Visibility.Channel, bridgeTimeout)
		log.Printf("[core] analog bridge on %s channel %d", sd, cfg.Visibility.Channel)
	} else {
		p.Analog = device.NewSimAnalog(device.DefaultProfile, 40)
		log.Printf("[core] simulated visibility sensor")
	}

	switch hw.Mode {
	case model.HardwarePi:
		r, err := device.NewRanger(hw.TrigPin, hw.EchoPin)
		if err != nil {
			closeAll(p.Closers)
			return Peripherals{}, fmt.Errorf("ranger: %w", err)
		}
		m, err := device.NewPWMMotors(hw.MotorPins, hw.PWMHz)
		if err != nil {
			closeAll(p.Closers)
			return Peripherals{}, fmt.Errorf("motors: %w", err)
		}
		p.Ranger, p.Motors = r, m
		p.Closers = append(p.Closers, m)
	default:
		p.Ranger = device.NewSimRanger(120, 0.05)
		p.Motors = device.NewSimMotors()
	}

	if hw.LCDDevice != "" {
		sd, err := device.NewSerialDevice(hw.LCDDevice, hw.LCDBaud)
		if err != nil {
			closeAll(p.Closers)
			return Peripherals{}, fmt.Errorf("lcd: %w", err)
		}
		p.Closers = append(p.Closers, sd)
		p.Display = device.NewSerialLCD(sd, hw.LCDWidth)
	} else {
		p.Display = device.NewConsoleDisplay(os.Stdout, hw.LCDWidth)
	}
	return p, nil
}

// NewSystemWith builds the system around already opened peripherals.
func NewSystemWith(cfg model.Config, p Peripherals) (*System, error) {
	s := &System{
		cfg:     cfg,
		RunID:   uuid.NewString(),
		Mailbox: command.NewMailbox(mailboxSize),
		Hub:     app.NewHub(),
		closers: p.Closers,
		done:    make(chan error, 1),
	}

	classifier, err := control.NewClassifier(
		control.Thresholds{Clear: cfg.Visibility.Clear, Fog: cfg.Visibility.Fog, Off: cfg.Visibility.Off},
		control.SpeedCaps{Max: model.SpeedCap(cfg.Speed.Max), Safe: model.SpeedCap(cfg.Speed.Safe), Stop: model.SpeedCap(cfg.Speed.Stop)},
	)
	if err != nil {
		return nil, err
	}

	diag := log.New(os.Stdout, "[diag] ", log.Ltime|log.Lmicroseconds)
	s.Reporter = report.NewReporter(p.Display, cfg.Hardware.LCDWidth, model.SpeedCap(cfg.Speed.Stop), diag, s.Hub)

	wire, err := parser.ForFormat(cfg.Robot.WireFormat)
	if err != nil {
		return nil, err
	}
	if cfg.LoRa.Device != "" {
		dev, err := lora.Open(cfg.LoRa.Device, cfg.LoRa.Baud)
		if err != nil {
			return nil, err
		}
		s.Link = lora.NewLink(cfg.Robot.ID, dev, wire, s.Mailbox)
		s.Reporter.AddSink(s.Link)
	}
	if cfg.MQTT.Broker != "" {
		c, err := telemetry.Dial(cfg.MQTT.Broker, cfg.Robot.ID, s.RunID)
		if err != nil {
			// the broker is optional; keep driving without it
			log.Printf("[core] mqtt disabled: %v", err)
		} else {
			s.mqtt = c
			s.Reporter.AddSink(telemetry.NewPublisher(c, cfg.MQTT.TopicPrefix, cfg.Robot.ID))
		}
	}
	opts := app.Options{RobotID: cfg.Robot.ID, Commands: s.Mailbox, Status: s.Reporter, Hub: s.Hub}
	if cfg.HTTP.JournalPath != "" {
		j, err := store.Open(cfg.HTTP.JournalPath)
		if err != nil {
			s.closeLinks()
			return nil, err
		}
		s.Journal = j
		s.Reporter.AddSink(j)
		opts.Events = j
	}

	s.App, err = app.NewApp(opts)
	if err != nil {
		s.closeLinks()
		return nil, err
	}

	s.Scheduler = NewScheduler(SchedulerOptions{
		RobotID:    cfg.Robot.ID,
		RunID:      s.RunID,
		Clock:      timeutil.RealClock{},
		Timing:     Timing{SamplePeriod: cfg.SamplePeriod(), ReportPeriod: cfg.ReportPeriod(), Yield: cfg.Yield()},
		Commands:   s.Mailbox,
		Distance:   control.NewDistanceFilter(p.Ranger, cfg.Distance.MinCM, cfg.Distance.MaxCM, time.Duration(cfg.Distance.TimeoutMs)*time.Millisecond),
		Sampler:    control.NewVisibilitySampler(p.Analog, timeutil.RealClock{}, cfg.Visibility.Samples, time.Duration(cfg.Visibility.SampleDelayMs)*time.Millisecond),
		Classifier: classifier,
		Motors:     p.Motors,
		Reporter:   s.Reporter,
	})
	log.Printf("[core] system %s ready (robot %s, mode %s)", s.RunID, cfg.Robot.ID, cfg.Hardware.Mode)
	return s, nil
}

// Config returns the configuration the system was built from.
func (s *System) Config() model.Config { return s.cfg }

// StartAll starts the HTTP server, the LoRa link and the control loop. If the
// HTTP address cannot be bound nothing is started and the devices are closed.
func (s *System) StartAll() error {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if s.started {
		return nil
	}
	if err := s.App.Listen(s.cfg.HTTP.Addr); err != nil {
		// nothing is running yet; release the devices so the caller can exit
		s.closeLinks()
		return err
	}
	go func() {
		if err := s.App.Serve(); err != nil {
			log.Printf("[core] app server: %v", err)
		}
	}()
	if s.Link != nil {
		s.Link.Start()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() { s.done <- s.Scheduler.Run(ctx) }()

	s.started = true
	return nil
}

// StopAll stops the control loop first, so the motors are zeroed, then the
// outer surfaces and devices.
func (s *System) StopAll() {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if !s.started {
		return
	}
	s.cancel()
	if err := <-s.done; err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[core] scheduler: %v", err)
	}
	s.App.Stop()
	s.closeLinks()
	s.started = false
	log.Printf("[core] system %s stopped", s.RunID)
}

func (s *System) closeLinks() {
	if s.Link != nil {
		s.Link.Stop()
	}
	if s.mqtt != nil {
		s.mqtt.Disconnect(250)
	}
	if s.Journal != nil {
		if err := s.Journal.Close(); err != nil {
			log.Printf("[core] %v", err)
		}
	}
	closeAll(s.closers)
}

func closeAll(cs []io.Closer) {
	for _, c := range cs {
		if err := c.Close(); err != nil {
			log.Printf("[core] close device: %v", err)
		}
	}
}
