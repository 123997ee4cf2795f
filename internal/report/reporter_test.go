package report

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FogRover/internal/model"
)

type recordingDisplay struct {
	clears int
	rows   map[int]string
	err    error
}

func (d *recordingDisplay) Clear() error {
	d.clears++
	d.rows = map[int]string{}
	return d.err
}

func (d *recordingDisplay) WriteAt(row, col int, text string) error {
	d.rows[row] = strings.Repeat(" ", col) + text
	return d.err
}

type recordingSink struct {
	got []model.Status
	err error
}

func (s *recordingSink) Publish(st model.Status) error {
	s.got = append(s.got, st)
	return s.err
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		name string
		st   model.Status
		want string
	}{
		{"clear", model.Status{Visibility: model.Clear, SpeedCap: 255}, "PATH CLEAR"},
		{"light fog", model.Status{Visibility: model.LightFog, SpeedCap: 140, Alert: true}, "CAUTION: FOG"},
		{"dense fog", model.Status{Visibility: model.DenseFog, SpeedCap: 0, Alert: true}, "DANGER: FOG!"},
		{"system off wins", model.Status{Visibility: model.SystemOff, SpeedCap: 0}, "SYSTEM OFF/LOW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Headline(tt.st, 0))
		})
	}
}

func TestDiagnosticLine(t *testing.T) {
	st := model.Status{Reading: 1000, DistanceCM: 80, SpeedCap: 140, Intent: model.Forward}
	assert.Equal(t, "1000 | 80.0 | 140 | FORWARD", DiagnosticLine(st))
	assert.Equal(t, "D:80cm V:1000", DetailLine(st))
}

func TestRender_WritesDisplayAndSinks(t *testing.T) {
	var diag bytes.Buffer
	display := &recordingDisplay{}
	good := &recordingSink{}
	bad := &recordingSink{err: errors.New("link down")}
	r := NewReporter(display, 16, 0, log.New(&diag, "[diag] ", 0), good)
	r.AddSink(bad)
	r.AddSink(nil)

	_, ok := r.Latest()
	assert.False(t, ok)

	st := model.Status{Visibility: model.DenseFog, Reading: 500, DistanceCM: 120, Alert: true}
	r.Render(st)

	assert.Equal(t, 1, display.clears)
	assert.Equal(t, "DANGER: FOG!", display.rows[0])
	assert.Equal(t, "D:120cm V:500", display.rows[1])
	assert.Contains(t, diag.String(), "[diag] DANGER: FOG! | D:120cm V:500")

	require.Len(t, good.got, 1)
	require.Len(t, bad.got, 1)
	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, st, latest)
}

func TestRender_TruncatesToDisplayWidth(t *testing.T) {
	display := &recordingDisplay{}
	r := NewReporter(display, 8, 0, nil)
	r.Render(model.Status{Visibility: model.Clear, Reading: 4095, DistanceCM: 399})

	assert.Equal(t, "PATH CLE", display.rows[0])
	assert.Equal(t, "D:399cm ", display.rows[1])
}

func TestRender_IgnoresDisplayFailure(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(&recordingDisplay{err: errors.New("i2c nack")}, 16, 0, nil, sink)
	r.Render(model.Status{Visibility: model.Clear})
	assert.Len(t, sink.got, 1)
}

func TestDiagnose(t *testing.T) {
	var diag bytes.Buffer
	r := NewReporter(nil, 16, 0, log.New(&diag, "", 0))
	r.Diagnose(model.Status{Reading: 2500, DistanceCM: 42.3, SpeedCap: 255, Intent: model.Stop})
	assert.Equal(t, "2500 | 42.3 | 255 | STOP\n", diag.String())
}
