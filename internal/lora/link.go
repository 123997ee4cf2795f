package lora

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"FogRover/internal/command"
	"FogRover/internal/device"
	"FogRover/internal/model"
	"FogRover/internal/parser"
)

// Broadcast addresses every rover on the channel.
const Broadcast = "*"

const pollTimeout = 500 * time.Millisecond

// Link is the rover side of the radio. It feeds received drive commands into
// the command mailbox and publishes rendered status as uplink frames.
type Link struct {
	robotID string
	dev     device.Device
	parser  parser.Parser
	submit  command.Submitter

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewLink binds dev to the rover robotID.
func NewLink(robotID string, dev device.Device, p parser.Parser, submit command.Submitter) *Link {
	return &Link{robotID: robotID, dev: dev, parser: p, submit: submit, stop: make(chan struct{})}
}

// Start begins the downlink reader in a background goroutine.
func (l *Link) Start() {
	l.wg.Add(1)
	go l.loop()
}

func (l *Link) loop() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stop:
			return
		default:
		}
		line, err := l.dev.ReadLine(pollTimeout)
		switch {
		case errors.Is(err, device.ErrTimeout):
			continue
		case errors.Is(err, device.ErrNotOpen):
			return
		case err != nil:
			// transient error: wait and continue
			time.Sleep(100 * time.Millisecond)
			continue
		}
		l.HandleLine(line)
	}
}

// HandleLine processes one downlink line. It reports whether a command for
// this rover was accepted.
func (l *Link) HandleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, err := l.parser.DecodeCommand(line)
	if err != nil {
		log.Printf("[lora] skip downlink %q: %v", line, err)
		return false
	}
	if cmd.RobotID != l.robotID && cmd.RobotID != Broadcast {
		return false
	}
	l.submit.Submit(cmd.Intent)

	ack, err := l.parser.EncodeAck(model.AckMessage{Code: cmd.Intent.Code(), Ack: true})
	if err != nil {
		log.Printf("[lora] encode ack: %v", err)
		return true
	}
	if err := writeFrame(l.dev, ack); err != nil {
		log.Printf("[lora] write ack: %v", err)
	}
	return true
}

// Publish sends st as one uplink frame.
func (l *Link) Publish(st model.Status) error {
	line, err := l.parser.EncodeStatus(st)
	if err != nil {
		return err
	}
	return writeFrame(l.dev, line)
}

// Stop stops the reader and closes the device.
func (l *Link) Stop() {
	select {
	case <-l.stop:
	default:
		close(l.stop)
	}
	_ = l.dev.Close()
	l.wg.Wait()
}
