// Package sim orchestrates one control-and-integration cycle per tick:
// read the rigid-body state, run the cascaded controller, apply the
// commands, advance the dynamics, and keep a bounded diagnostic log.
//
// A Simulator is single-threaded by contract: one Step completes before
// the next may begin, and no goroutines or locks are involved. It is
// not safe for concurrent use without external mutual exclusion.
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/quadsim/internal/control"
	"github.com/san-kum/quadsim/internal/quad"
)

// History defaults: every HistoryStride-th tick is sampled, and at most
// HistoryCapacity samples are retained (FIFO eviction).
const (
	DefaultHistoryCapacity = 5000
	DefaultHistoryStride   = 4
)

// ErrBadTimestep indicates a Step call with dt <= 0.
var ErrBadTimestep = errors.New("sim: timestep must be positive")

// Config tunes the diagnostic log. Zero values select the defaults.
type Config struct {
	HistoryCapacity int `yaml:"history_capacity"`
	HistoryStride   int `yaml:"history_stride"`
}

// Simulator couples one rigid body with one cascaded controller and
// advances them in lockstep.
type Simulator struct {
	vehicle *quad.Quadrotor
	ctrl    *control.Cascade

	ref       Setpoint
	simTime   float64
	stepCount int

	stride    int
	history   *History
	observers []Observer
}

// New builds a simulator around an existing vehicle and controller.
// The initial setpoint is hover.
func New(vehicle *quad.Quadrotor, ctrl *control.Cascade, cfg Config) *Simulator {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	if cfg.HistoryStride <= 0 {
		cfg.HistoryStride = DefaultHistoryStride
	}
	return &Simulator{
		vehicle: vehicle,
		ctrl:    ctrl,
		ref:     DefaultSetpoint(),
		stride:  cfg.HistoryStride,
		history: NewHistory(cfg.HistoryCapacity),
	}
}

// AddObserver registers a diagnostic observer.
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetReferences overwrites the active setpoint. No validation is
// performed; the controller has no setpoint-side saturation.
func (s *Simulator) SetReferences(roll, pitch, yaw, z float64) {
	s.ref = Setpoint{Roll: roll, Pitch: pitch, Yaw: yaw, Z: z}
}

// References returns the active setpoint.
func (s *Simulator) References() Setpoint { return s.ref }

// Vehicle exposes the owned rigid body (read-side use only).
func (s *Simulator) Vehicle() *quad.Quadrotor { return s.vehicle }

// History exposes the diagnostic log.
func (s *Simulator) History() *History { return s.history }

// Step runs one full control-and-dynamics cycle and returns the new
// snapshot. The order is fixed: read state, compute thrust, compute
// torques, apply controls, integrate, then bookkeeping and logging.
func (s *Simulator) Step(dt float64) (quad.State, error) {
	if dt <= 0 {
		return quad.State{}, fmt.Errorf("%w: %g", ErrBadTimestep, dt)
	}

	st := s.vehicle.Snapshot()
	p := s.vehicle.Params()

	thrust := s.ctrl.UpdateAltitude(s.ref.Z, st.Z, st.VZ, p.Mass, p.Gravity, dt)
	torqueRoll, torquePitch, torqueYaw := s.ctrl.UpdateAttitude(
		s.ref.Roll, s.ref.Pitch, s.ref.Yaw,
		st.Roll, st.Pitch, st.Yaw, dt,
	)

	s.vehicle.SetControl(torqueRoll, torquePitch, torqueYaw, thrust)
	if err := s.vehicle.Step(dt); err != nil {
		return quad.State{}, err
	}

	s.simTime += dt
	s.stepCount++

	if s.stepCount%s.stride == 0 {
		s.history.Push(Entry{Time: s.simTime, State: s.vehicle.Snapshot()})
	}

	if len(s.observers) > 0 {
		es := s.ExtendedState()
		for _, o := range s.observers {
			o.OnStep(es)
		}
	}

	return s.vehicle.Snapshot(), nil
}

// ExtendedState projects the current simulation state without mutating
// anything.
func (s *Simulator) ExtendedState() ExtendedState {
	st := s.vehicle.Snapshot()
	return ExtendedState{
		State:     st,
		Ref:       s.ref,
		ZErr:      s.ref.Z - st.Z,
		RollErr:   s.ref.Roll - st.Roll,
		PitchErr:  s.ref.Pitch - st.Pitch,
		YawErr:    s.ref.Yaw - st.Yaw,
		SimTime:   s.simTime,
		StepCount: s.stepCount,
	}
}

// Reset restores the vehicle and controller to construction defaults,
// zeroes the tick bookkeeping, and clears the history. The active
// setpoint is left alone; it belongs to the caller.
func (s *Simulator) Reset() {
	s.vehicle.Reset()
	s.ctrl.Reset()
	s.simTime = 0
	s.stepCount = 0
	s.history.Clear()
}
