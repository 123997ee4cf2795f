package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FogRover/internal/model"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()
	tests := []struct {
		name    string
		reading int
		want    Classification
	}{
		{"bright", 2500, Classification{model.Clear, 255, false}},
		{"clear boundary is inclusive", 2000, Classification{model.Clear, 255, false}},
		{"just below clear", 1999, Classification{model.LightFog, 140, true}},
		{"light fog", 1000, Classification{model.LightFog, 140, true}},
		{"just above fog", 801, Classification{model.LightFog, 140, true}},
		{"fog boundary is dense", 800, Classification{model.DenseFog, 0, true}},
		{"dense fog", 500, Classification{model.DenseFog, 0, true}},
		{"just above off", 201, Classification{model.DenseFog, 0, true}},
		{"off boundary is silent", 200, Classification{model.SystemOff, 0, false}},
		{"emitter switched off", 150, Classification{model.SystemOff, 0, false}},
		{"zero", 0, Classification{model.SystemOff, 0, false}},
		{"negative noise", -5, Classification{model.SystemOff, 0, false}},
		{"saturated", 4095, Classification{model.Clear, 255, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.reading))
		})
	}
}

func TestClassify_AlertOnlyInFogBands(t *testing.T) {
	c := DefaultClassifier()
	for r := -10; r <= 4200; r++ {
		got := c.Classify(r)
		inFog := got.State == model.LightFog || got.State == model.DenseFog
		require.Equal(t, inFog, got.Alert, "reading %d", r)
	}
}

func TestClassify_MonotonicSafety(t *testing.T) {
	// A falling reading never moves the state back toward Clear.
	c := DefaultClassifier()
	prev := c.Classify(4095)
	for r := 4094; r >= 0; r-- {
		got := c.Classify(r)
		require.GreaterOrEqual(t, int(got.State), int(prev.State), "reading %d", r)
		require.LessOrEqual(t, got.Cap, prev.Cap, "reading %d", r)
		prev = got
	}
}

func TestNewClassifier_RejectsUnorderedThresholds(t *testing.T) {
	_, err := NewClassifier(Thresholds{Clear: 800, Fog: 800, Off: 200}, DefaultSpeedCaps)
	assert.ErrorIs(t, err, ErrThresholdOrder)

	_, err = NewClassifier(Thresholds{Clear: 2000, Fog: 100, Off: 200}, DefaultSpeedCaps)
	assert.ErrorIs(t, err, ErrThresholdOrder)

	c, err := NewClassifier(Thresholds{Clear: 3000, Fog: 1500, Off: 100}, SpeedCaps{Max: 200, Safe: 100, Stop: 0})
	require.NoError(t, err)
	assert.Equal(t, Classification{model.LightFog, 100, true}, c.Classify(2000))
}
