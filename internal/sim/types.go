package sim

import "github.com/san-kum/quadsim/internal/quad"

// Setpoint holds the operator-supplied references for one tick. The
// simulator reads the current value every Step; callers are responsible
// for keeping references inside a sane flight envelope.
type Setpoint struct {
	Roll  float64 // rad
	Pitch float64 // rad
	Yaw   float64 // rad
	Z     float64 // m
}

// DefaultSetpoint is hover: level attitude at the initial altitude.
func DefaultSetpoint() Setpoint {
	return Setpoint{Z: quad.InitialAltitude}
}

// ExtendedState is a non-mutating projection of the simulation: the
// vehicle snapshot, the active references, the per-axis instantaneous
// errors, and the tick bookkeeping.
type ExtendedState struct {
	State quad.State
	Ref   Setpoint

	ZErr     float64
	RollErr  float64
	PitchErr float64
	YawErr   float64

	SimTime   float64
	StepCount int
}

// Observer receives the extended state after each completed step.
// Observers are diagnostic; they are not part of the feedback path.
type Observer interface {
	OnStep(es ExtendedState)
}
