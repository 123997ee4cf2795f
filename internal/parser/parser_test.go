package parser

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FogRover/internal/model"
)

func sampleStatus() model.Status {
	return model.Status{
		RobotID:    "rover-01",
		Tick:       420,
		Visibility: model.LightFog,
		Reading:    1200,
		DistanceCM: 87.5,
		SpeedCap:   140,
		Alert:      true,
		Intent:     model.Forward,
	}
}

func TestCSVParser_Status(t *testing.T) {
	p := NewCSVParser()
	line, err := p.EncodeStatus(sampleStatus())
	require.NoError(t, err)
	assert.Equal(t, "rover-01,420,LIGHT_FOG,1200,87.5,140,1,F", line)

	got, err := p.DecodeStatus(line + "\r\n")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleStatus(), got); diff != "" {
		t.Errorf("DecodeStatus mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVParser_DecodeStatusErrors(t *testing.T) {
	p := NewCSVParser()
	tests := map[string]string{
		"short":      "rover-01,1,CLEAR",
		"bad tick":   "rover-01,x,CLEAR,3000,10.0,255,0,S",
		"bad state":  "rover-01,1,FOGGY,3000,10.0,255,0,S",
		"bad alert":  "rover-01,1,CLEAR,3000,10.0,255,yes,S",
		"bad intent": "rover-01,1,CLEAR,3000,10.0,255,0,Q",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.DecodeStatus(line)
			assert.Error(t, err)
		})
	}
	_, err := p.DecodeStatus("a,b")
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestCSVParser_Command(t *testing.T) {
	p := NewCSVParser()
	line, err := p.EncodeCommand(model.Command{RobotID: "rover-01", Intent: model.Right})
	require.NoError(t, err)
	assert.Equal(t, "CTRL,rover-01,R", line)

	c, err := p.DecodeCommand("ctrl,*,b")
	require.NoError(t, err)
	assert.Equal(t, model.Command{RobotID: "*", Intent: model.Backward}, c)

	for _, bad := range []string{"CTRL,rover-01", "ACK,rover-01,F", "CTRL,,F", "CTRL,rover-01,FORWARD", "CTRL,rover-01,X"} {
		_, err := p.DecodeCommand(bad)
		assert.Error(t, err, bad)
	}
}

func TestCSVParser_Ack(t *testing.T) {
	p := NewCSVParser()
	line, err := p.EncodeAck(model.AckMessage{Code: "F", Ack: true})
	require.NoError(t, err)
	assert.Equal(t, "ACK,F", line)

	a, err := p.DecodeAck(line)
	require.NoError(t, err)
	assert.Equal(t, model.AckMessage{Code: "F", Ack: true}, a)

	_, err = p.DecodeAck("CTRL,F")
	assert.Error(t, err)
}

func TestJSONParser_Status(t *testing.T) {
	p := NewJSONParser()
	st := sampleStatus()
	st.Time = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	st.Motors = model.MotorOutput{LeftForward: 140, RightForward: 140}

	line, err := p.EncodeStatus(st)
	require.NoError(t, err)
	assert.Contains(t, line, `"visibility":"LIGHT_FOG"`)
	assert.Contains(t, line, `"intent":"FORWARD"`)

	got, err := p.DecodeStatus(line)
	require.NoError(t, err)
	if diff := cmp.Diff(st, got); diff != "" {
		t.Errorf("DecodeStatus mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONParser_Command(t *testing.T) {
	p := NewJSONParser()
	c, err := p.DecodeCommand(`{"robot_id":"rover-01","code":"L"}`)
	require.NoError(t, err)
	assert.Equal(t, model.Command{RobotID: "rover-01", Intent: model.Left}, c)

	line, err := p.EncodeCommand(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"robot_id":"rover-01","code":"LEFT"}`, line)

	_, err = p.DecodeCommand(`{"code":"F"}`)
	assert.Error(t, err)
	_, err = p.DecodeCommand(`{"robot_id":"rover-01"}`)
	assert.Error(t, err)
	_, err = p.DecodeCommand(`{"robot_id":"rover-01","code":"Z"}`)
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	p, err := ForFormat("csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)
	p, err = ForFormat("json")
	require.NoError(t, err)
	assert.IsType(t, &JSONParser{}, p)
	_, err = ForFormat("xml")
	assert.Error(t, err)
}
