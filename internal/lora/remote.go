package lora

import (
	"errors"
	"strings"

	"FogRover/internal/device"
	"FogRover/internal/model"
	"FogRover/internal/parser"
)

// Uplink is one decoded frame received by the operator station. Exactly one
// of Status or Ack is set.
type Uplink struct {
	Status *model.Status
	Ack    *model.AckMessage
}

// Remote is the operator side of the radio.
type Remote struct {
	dev    device.Device
	parser parser.Parser
}

// NewRemote wraps an open LoRa module.
func NewRemote(dev device.Device, p parser.Parser) *Remote {
	return &Remote{dev: dev, parser: p}
}

// Send transmits a drive command to robotID (or Broadcast).
func (r *Remote) Send(robotID string, intent model.DriveIntent) error {
	line, err := r.parser.EncodeCommand(model.Command{RobotID: robotID, Intent: intent})
	if err != nil {
		return err
	}
	return writeFrame(r.dev, line)
}

// Decode classifies an uplink line as an ack or a status report.
func (r *Remote) Decode(line string) (Uplink, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Uplink{}, errors.New("empty frame")
	}
	if a, err := r.parser.DecodeAck(line); err == nil && a.Code != "" {
		return Uplink{Ack: &a}, nil
	}
	st, err := r.parser.DecodeStatus(line)
	if err != nil {
		return Uplink{}, err
	}
	return Uplink{Status: &st}, nil
}

// Receive blocks for the next uplink frame.
func (r *Remote) Receive() (Uplink, error) {
	line, err := r.dev.ReadLine(0)
	if err != nil {
		return Uplink{}, err
	}
	return r.Decode(line)
}

// Close closes the module.
func (r *Remote) Close() error { return r.dev.Close() }
