package metrics

import (
	"math"

	"github.com/san-kum/quadsim/internal/sim"
)

// AltitudeOvershoot tracks how far the vehicle travels beyond its
// altitude reference, in the direction of travel. The first observation
// fixes the starting altitude; the reference may move during the run
// and the worst excursion past it is kept.
type AltitudeOvershoot struct {
	started bool
	startZ  float64
	worst   float64
}

func NewAltitudeOvershoot() *AltitudeOvershoot { return &AltitudeOvershoot{} }

func (a *AltitudeOvershoot) Name() string { return "altitude_overshoot_m" }

func (a *AltitudeOvershoot) Observe(es sim.ExtendedState) {
	if !a.started {
		a.started = true
		a.startZ = es.State.Z
	}

	var excess float64
	if es.Ref.Z >= a.startZ {
		excess = es.State.Z - es.Ref.Z // climbing: past the target from below
	} else {
		excess = es.Ref.Z - es.State.Z // descending: past the target from above
	}
	if excess > a.worst {
		a.worst = excess
	}
}

func (a *AltitudeOvershoot) Value() float64 { return a.worst }

func (a *AltitudeOvershoot) Reset() {
	a.started = false
	a.startZ = 0
	a.worst = 0
}

// SettlingTime records the last simulation time at which the altitude
// error exceeded the tolerance band; the value is the time after which
// the error stayed inside it for the rest of the run.
type SettlingTime struct {
	tolerance float64
	last      float64
}

// NewSettlingTime builds the metric with an absolute error band in
// meters.
func NewSettlingTime(tolerance float64) *SettlingTime {
	return &SettlingTime{tolerance: tolerance}
}

func (s *SettlingTime) Name() string { return "settling_time_s" }

func (s *SettlingTime) Observe(es sim.ExtendedState) {
	if math.Abs(es.ZErr) > s.tolerance {
		s.last = es.SimTime
	}
}

func (s *SettlingTime) Value() float64 { return s.last }

func (s *SettlingTime) Reset() { s.last = 0 }
