package parser

import (
	"fmt"
	"strconv"
	"strings"

	"FogRover/internal/model"
)

const (
	ctrlTag = "CTRL"
	ackTag  = "ACK"
)

// CSVParser implements Parser using comma-separated values.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser { return &CSVParser{} }

func splitFields(line string, n int) ([]string, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d: %w", n, len(fields), ErrFieldCount)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// EncodeStatus converts a Status into a CSV line.
func (p *CSVParser) EncodeStatus(st model.Status) (string, error) {
	alert := 0
	if st.Alert {
		alert = 1
	}
	return fmt.Sprintf("%s,%d,%s,%d,%.1f,%d,%d,%s",
		st.RobotID, st.Tick, st.Visibility, st.Reading, st.DistanceCM, st.SpeedCap, alert, st.Intent.Code()), nil
}

// DecodeStatus parses a CSV status line. Fields not carried on the wire
// (noise, motor terminals, timestamps) are left zero.
func (p *CSVParser) DecodeStatus(line string) (model.Status, error) {
	f, err := splitFields(line, 8)
	if err != nil {
		return model.Status{}, err
	}
	var st model.Status
	st.RobotID = f[0]
	if st.Tick, err = strconv.ParseUint(f[1], 10, 64); err != nil {
		return model.Status{}, fmt.Errorf("invalid tick %q", f[1])
	}
	if err := st.Visibility.UnmarshalText([]byte(f[2])); err != nil {
		return model.Status{}, err
	}
	if st.Reading, err = strconv.Atoi(f[3]); err != nil {
		return model.Status{}, fmt.Errorf("invalid reading %q", f[3])
	}
	if st.DistanceCM, err = strconv.ParseFloat(f[4], 64); err != nil {
		return model.Status{}, fmt.Errorf("invalid distance %q", f[4])
	}
	c, err := strconv.Atoi(f[5])
	if err != nil {
		return model.Status{}, fmt.Errorf("invalid cap %q", f[5])
	}
	st.SpeedCap = model.SpeedCap(c)
	switch f[6] {
	case "1":
		st.Alert = true
	case "0":
	default:
		return model.Status{}, fmt.Errorf("invalid alert %q", f[6])
	}
	if err := st.Intent.UnmarshalText([]byte(f[7])); err != nil {
		return model.Status{}, err
	}
	return st, nil
}

// EncodeCommand converts a Command into "CTRL,ROBOT_ID,CODE".
func (p *CSVParser) EncodeCommand(c model.Command) (string, error) {
	return fmt.Sprintf("%s,%s,%s", ctrlTag, c.RobotID, c.Intent.Code()), nil
}

// DecodeCommand parses a "CTRL,ROBOT_ID,CODE" line.
func (p *CSVParser) DecodeCommand(line string) (model.Command, error) {
	f, err := splitFields(line, 3)
	if err != nil {
		return model.Command{}, err
	}
	if !strings.EqualFold(f[0], ctrlTag) {
		return model.Command{}, fmt.Errorf("not a control line: %q", line)
	}
	if f[1] == "" {
		return model.Command{}, fmt.Errorf("missing robot id: %q", line)
	}
	c := model.Command{RobotID: f[1]}
	if len(f[2]) != 1 {
		return model.Command{}, fmt.Errorf("invalid code %q", f[2])
	}
	if err := c.Intent.UnmarshalText([]byte(f[2])); err != nil {
		return model.Command{}, err
	}
	return c, nil
}

// EncodeAck converts an AckMessage into "ACK,CODE".
func (p *CSVParser) EncodeAck(a model.AckMessage) (string, error) {
	return fmt.Sprintf("%s,%s", ackTag, a.Code), nil
}

// DecodeAck parses an "ACK,CODE" line.
func (p *CSVParser) DecodeAck(line string) (model.AckMessage, error) {
	f, err := splitFields(line, 2)
	if err != nil {
		return model.AckMessage{}, err
	}
	if !strings.EqualFold(f[0], ackTag) {
		return model.AckMessage{}, fmt.Errorf("not an ack line: %q", line)
	}
	return model.AckMessage{Code: f[1], Ack: true}, nil
}
