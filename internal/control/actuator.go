package control

import "FogRover/internal/model"

// Actuate maps a drive intent and the current speed cap onto the four H-bridge
// terminals. It keeps no state, so a cap change applies on the very next call.
func Actuate(intent model.DriveIntent, speedCap model.SpeedCap) model.MotorOutput {
	duty := int(speedCap)
	if duty < 0 {
		duty = 0
	}
	if duty > 255 {
		duty = 255
	}
	switch intent {
	case model.Forward:
		return model.MotorOutput{LeftForward: duty, RightForward: duty}
	case model.Backward:
		return model.MotorOutput{LeftReverse: duty, RightReverse: duty}
	case model.Left:
		// pivot in place: left side backs up while the right side pulls forward
		return model.MotorOutput{LeftReverse: duty, RightForward: duty}
	case model.Right:
		return model.MotorOutput{LeftForward: duty, RightReverse: duty}
	default:
		return model.MotorOutput{}
	}
}
