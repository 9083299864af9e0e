package quad

import (
	"errors"
	"fmt"
)

// Default physical constants and saturation limits. The limits are
// stability safeguards, not flight-envelope modeling: exceeding one
// clamps the value rather than raising an error.
const (
	DefaultGravity = 9.81

	// MaxAngle bounds roll and pitch (rad). Yaw is unbounded and wrapped.
	MaxAngle = 1.57
	// MaxVel bounds each velocity component (m/s).
	MaxVel = 50.0
	// MaxPos bounds |x| and |y|, and z from above (m).
	MaxPos = 500.0

	// InitialAltitude is the construction-time z (m).
	InitialAltitude = 2.5
)

var (
	// ErrBadParams indicates non-positive mass or inertia at construction.
	ErrBadParams = errors.New("quad: mass and inertia must be positive")

	// ErrBadTimestep indicates a Step call with dt <= 0.
	ErrBadTimestep = errors.New("quad: timestep must be positive")
)

// Params holds the physical constants of the vehicle.
type Params struct {
	Mass      float64 // kg
	ArmLength float64 // m, stored constant; the point-torque model does not use it
	Ixx       float64 // kg*m^2, principal moment about body x
	Iyy       float64 // kg*m^2, principal moment about body y
	Izz       float64 // kg*m^2, principal moment about body z
	Gravity   float64 // m/s^2, defaults to DefaultGravity when zero
}

// Validate rejects parameter sets the integrator cannot handle: the
// angular update divides by each inertia term and the linear update by
// mass.
func (p Params) Validate() error {
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass %g", ErrBadParams, p.Mass)
	}
	if p.Ixx <= 0 || p.Iyy <= 0 || p.Izz <= 0 {
		return fmt.Errorf("%w: inertia (%g, %g, %g)", ErrBadParams, p.Ixx, p.Iyy, p.Izz)
	}
	return nil
}

// State is a snapshot of the vehicle. Position and velocity are in the
// world frame, angular rates about the body axes. The last-applied
// control inputs ride along for diagnostics.
type State struct {
	X, Y, Z    float64 // m
	VX, VY, VZ float64 // m/s

	Roll, Pitch, Yaw float64 // rad, ZYX Euler
	P, Q, R          float64 // rad/s, body rates

	Thrust      float64 // N, >= 0
	TorqueRoll  float64 // N*m
	TorquePitch float64 // N*m
	TorqueYaw   float64 // N*m
}

// Quadrotor owns the vehicle state and advances it one fixed time
// increment at a time. State is mutated only by Step and Reset.
type Quadrotor struct {
	params Params
	state  State
}

// New validates the parameters and returns a vehicle at rest at the
// initial altitude.
func New(p Params) (*Quadrotor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Gravity == 0 {
		p.Gravity = DefaultGravity
	}
	q := &Quadrotor{params: p}
	q.Reset()
	return q, nil
}

// Params returns the physical constants.
func (q *Quadrotor) Params() Params { return q.params }

// SetControl stores the control vector applied on the next Step.
// Negative thrust is not physically realizable and is floored at zero.
func (q *Quadrotor) SetControl(torqueRoll, torquePitch, torqueYaw, thrust float64) {
	q.state.TorqueRoll = torqueRoll
	q.state.TorquePitch = torquePitch
	q.state.TorqueYaw = torqueYaw
	q.state.Thrust = max(0, thrust)
}

// Step advances the state by dt seconds with an explicit Euler update.
// The angular state is integrated and saturated before the thrust vector
// is rotated, so the force computation always sees post-clamp attitude.
func (q *Quadrotor) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: %g", ErrBadTimestep, dt)
	}
	s := &q.state

	// Angular accelerations about the principal axes, no cross coupling.
	pdot := s.TorqueRoll / q.params.Ixx
	qdot := s.TorquePitch / q.params.Iyy
	rdot := s.TorqueYaw / q.params.Izz

	s.P += pdot * dt
	s.Q += qdot * dt
	s.R += rdot * dt

	s.Roll += s.P * dt
	s.Pitch += s.Q * dt
	s.Yaw += s.R * dt

	// Saturate, not wrap: the angle freezes at the limit, the rate is
	// left alone. Yaw rotates freely and is wrapped into (-pi, pi].
	s.Roll = clamp(s.Roll, -MaxAngle, MaxAngle)
	s.Pitch = clamp(s.Pitch, -MaxAngle, MaxAngle)
	s.Yaw = WrapAngle(s.Yaw)

	// Body thrust (0, 0, T) into the world frame, gravity on world z.
	f := BodyToWorld(Vec3{Z: s.Thrust}, s.Roll, s.Pitch, s.Yaw)
	f.Z -= q.params.Mass * q.params.Gravity

	s.VX += f.X / q.params.Mass * dt
	s.VY += f.Y / q.params.Mass * dt
	s.VZ += f.Z / q.params.Mass * dt

	s.VX = clamp(s.VX, -MaxVel, MaxVel)
	s.VY = clamp(s.VY, -MaxVel, MaxVel)
	s.VZ = clamp(s.VZ, -MaxVel, MaxVel)

	s.X += s.VX * dt
	s.Y += s.VY * dt
	s.Z += s.VZ * dt

	// Inelastic ground contact.
	if s.Z < 0 {
		s.Z = 0
		s.VZ = 0
	}

	s.X = clamp(s.X, -MaxPos, MaxPos)
	s.Y = clamp(s.Y, -MaxPos, MaxPos)
	s.Z = clamp(s.Z, 0, MaxPos)

	return nil
}

// Snapshot returns a value copy of the current state; it does not alias
// internal storage.
func (q *Quadrotor) Snapshot() State { return q.state }

// Reset restores the construction defaults: at rest at (0, 0,
// InitialAltitude) with level attitude and zero controls.
func (q *Quadrotor) Reset() {
	q.state = State{Z: InitialAltitude}
}
