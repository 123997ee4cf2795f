// Package command is the boundary between the remote operator and the control
// loop. Remote transports (HTTP, LoRa) translate their requests into drive
// intents through the dispatch Table and hand them to a Mailbox; the scheduler
// drains the Mailbox once per tick.
package command

import (
	"errors"
	"fmt"
	"strings"

	"FogRover/internal/model"
)

// ErrUnknownCode is returned for a drive code outside the dispatch table.
var ErrUnknownCode = errors.New("unknown drive code")

// Table maps single-letter route codes onto drive intents.
var Table = map[string]model.DriveIntent{
	"F": model.Forward,
	"B": model.Backward,
	"L": model.Left,
	"R": model.Right,
	"S": model.Stop,
}

// Parse resolves a drive code (case-insensitive, surrounding space ignored).
func Parse(code string) (model.DriveIntent, error) {
	intent, ok := Table[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return model.Stop, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return intent, nil
}

// Submitter is implemented by anything that accepts drive intents from a transport.
type Submitter interface {
	Submit(intent model.DriveIntent)
}

// Mailbox carries drive intents from transport goroutines to the scheduler.
// Submit never blocks; Poll is only called from the scheduler tick, so the
// intent seen by the actuator changes at a single point per tick.
type Mailbox struct {
	ch chan model.DriveIntent
}

// NewMailbox creates a mailbox buffering up to size pending intents.
func NewMailbox(size int) *Mailbox {
	if size < 1 {
		size = 1
	}
	return &Mailbox{ch: make(chan model.DriveIntent, size)}
}

// Submit queues an intent. When the buffer is full the oldest pending intent
// is discarded so the newest one always survives.
func (m *Mailbox) Submit(intent model.DriveIntent) {
	for {
		select {
		case m.ch <- intent:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// Poll drains every pending intent and returns the last one, or current if
// nothing arrived since the previous poll.
func (m *Mailbox) Poll(current model.DriveIntent) model.DriveIntent {
	for {
		select {
		case intent := <-m.ch:
			current = intent
		default:
			return current
		}
	}
}

// Pending returns the number of queued intents.
func (m *Mailbox) Pending() int { return len(m.ch) }
