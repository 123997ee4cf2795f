package control

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"FogRover/internal/model"
)

func TestActuate(t *testing.T) {
	tests := []struct {
		name   string
		intent model.DriveIntent
		cap    model.SpeedCap
		want   model.MotorOutput
	}{
		{"stop at max", model.Stop, 255, model.MotorOutput{}},
		{"stop at stop", model.Stop, 0, model.MotorOutput{}},
		{"forward", model.Forward, 255, model.MotorOutput{LeftForward: 255, RightForward: 255}},
		{"forward in light fog", model.Forward, 140, model.MotorOutput{LeftForward: 140, RightForward: 140}},
		{"forward capped to stop", model.Forward, 0, model.MotorOutput{}},
		{"backward", model.Backward, 140, model.MotorOutput{LeftReverse: 140, RightReverse: 140}},
		{"left pivot", model.Left, 200, model.MotorOutput{LeftReverse: 200, RightForward: 200}},
		{"right pivot", model.Right, 200, model.MotorOutput{LeftForward: 200, RightReverse: 200}},
		{"cap above pwm range", model.Forward, 300, model.MotorOutput{LeftForward: 255, RightForward: 255}},
		{"negative cap", model.Backward, -1, model.MotorOutput{}},
		{"unknown intent stops", model.DriveIntent(42), 255, model.MotorOutput{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Actuate(tt.intent, tt.cap)); diff != "" {
				t.Errorf("Actuate(%v, %d) mismatch (-want +got):\n%s", tt.intent, tt.cap, diff)
			}
		})
	}
}

func TestActuate_LeftRightMirror(t *testing.T) {
	for _, c := range []model.SpeedCap{0, 140, 200, 255} {
		left := Actuate(model.Left, c)
		right := Actuate(model.Right, c)
		assert.Equal(t, right, left.Mirror(), "cap %d", c)
		assert.Equal(t, left, right.Mirror(), "cap %d", c)
	}
}

func TestActuate_ForwardBackwardSymmetry(t *testing.T) {
	fwd := Actuate(model.Forward, 140).Terminals()
	back := Actuate(model.Backward, 140).Terminals()
	assert.Equal(t, [4]int{fwd[1], fwd[0], fwd[3], fwd[2]}, back)
}
