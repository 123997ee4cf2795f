// Package parser converts rover messages to and from their wire formats.
//
// CSV status wire format (rover -> remote):
//
//	ROBOT_ID,TICK,STATE,READING,DISTANCE,CAP,ALERT,INTENT
//
// CSV command wire format (remote -> rover):
//
//	CTRL,ROBOT_ID,CODE
//
// CSV acknowledgement (rover -> remote):
//
//	ACK,CODE
package parser

import (
	"errors"
	"fmt"

	"FogRover/internal/model"
)

// ErrFieldCount is returned when a CSV line has the wrong number of fields.
var ErrFieldCount = errors.New("unexpected field count")

// Parser defines the interface for encoding/decoding rover messages.
type Parser interface {
	EncodeStatus(st model.Status) (string, error)
	DecodeStatus(line string) (model.Status, error)
	EncodeCommand(c model.Command) (string, error)
	DecodeCommand(line string) (model.Command, error)
	EncodeAck(a model.AckMessage) (string, error)
	DecodeAck(line string) (model.AckMessage, error)
}

// ForFormat returns the parser registered for a wire format name.
func ForFormat(format string) (Parser, error) {
	switch format {
	case "csv":
		return NewCSVParser(), nil
	case "json":
		return NewJSONParser(), nil
	default:
		return nil, fmt.Errorf("unknown wire format %q", format)
	}
}
