package parser

import (
	"encoding/json"
	"errors"

	"FogRover/internal/model"
)

// JSONParser implements Parser interface using JSON serialization.
type JSONParser struct{}

// NewJSONParser creates a new JSON parser.
func NewJSONParser() *JSONParser { return &JSONParser{} }

// EncodeStatus encodes a Status into JSON.
func (p *JSONParser) EncodeStatus(st model.Status) (string, error) {
	b, err := json.Marshal(st)
	return string(b), err
}

// DecodeStatus decodes a JSON Status.
func (p *JSONParser) DecodeStatus(s string) (model.Status, error) {
	var st model.Status
	err := json.Unmarshal([]byte(s), &st)
	return st, err
}

// EncodeCommand encodes a Command into JSON.
func (p *JSONParser) EncodeCommand(c model.Command) (string, error) {
	b, err := json.Marshal(c)
	return string(b), err
}

// DecodeCommand decodes a JSON Command. Both robot_id and code are mandatory.
func (p *JSONParser) DecodeCommand(s string) (model.Command, error) {
	var raw struct {
		RobotID string             `json:"robot_id"`
		Code    *model.DriveIntent `json:"code"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return model.Command{}, err
	}
	if raw.RobotID == "" {
		return model.Command{}, errors.New("missing robot_id")
	}
	if raw.Code == nil {
		return model.Command{}, errors.New("missing code")
	}
	return model.Command{RobotID: raw.RobotID, Intent: *raw.Code}, nil
}

// EncodeAck encodes an AckMessage into JSON.
func (p *JSONParser) EncodeAck(a model.AckMessage) (string, error) {
	b, err := json.Marshal(a)
	return string(b), err
}

// DecodeAck decodes a JSON AckMessage.
func (p *JSONParser) DecodeAck(s string) (model.AckMessage, error) {
	var a model.AckMessage
	err := json.Unmarshal([]byte(s), &a)
	return a, err
}
