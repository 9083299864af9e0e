// Package control implements the cascaded feedback law that drives the
// quadrotor toward attitude/altitude setpoints: a single-axis PID
// building block and a four-axis cascade composing one altitude loop
// (thrust) with three independent attitude loops (torques).
package control

// PIDConfig holds the gains and shaping parameters of one axis.
type PIDConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`

	// IntegralLimit clamps the accumulated integral symmetrically to
	// [-limit, limit] before the Ki multiply (anti-windup on the
	// accumulator, not the output). Zero disables clamping.
	IntegralLimit float64 `yaml:"integral_limit"`

	// DerivativeTau is the first-order low-pass time constant applied
	// to the raw derivative. Zero means unfiltered.
	DerivativeTau float64 `yaml:"derivative_tau"`
}

// PID is a single-axis proportional-integral-derivative compensator.
// Update mutates internal state and is meant to be called exactly once
// per control tick.
type PID struct {
	cfg PIDConfig

	integral      float64
	prevErr       float64
	filteredDeriv float64
	first         bool
}

// NewPID returns a compensator with zeroed state and an armed
// first-call flag.
func NewPID(cfg PIDConfig) *PID {
	return &PID{cfg: cfg, first: true}
}

// Update advances the compensator by one tick and returns the control
// contribution for the given error.
//
// The derivative term is exactly zero on the first call after
// construction or Reset (there is no previous error to difference
// against) and whenever dt <= 0.
func (p *PID) Update(err, dt float64) float64 {
	pTerm := p.cfg.Kp * err

	p.integral += err * dt
	if lim := p.cfg.IntegralLimit; lim > 0 {
		if p.integral > lim {
			p.integral = lim
		} else if p.integral < -lim {
			p.integral = -lim
		}
	}
	iTerm := p.cfg.Ki * p.integral

	var dTerm float64
	if p.first {
		p.first = false
	} else {
		raw := 0.0
		if dt > 0 {
			raw = (err - p.prevErr) / dt
		}
		if tau := p.cfg.DerivativeTau; tau > 0 {
			alpha := dt / (dt + tau)
			p.filteredDeriv = alpha*raw + (1-alpha)*p.filteredDeriv
			dTerm = p.cfg.Kd * p.filteredDeriv
		} else {
			dTerm = p.cfg.Kd * raw
		}
	}
	p.prevErr = err

	return pTerm + iTerm + dTerm
}

// Reset zeroes the accumulated state and re-arms the first-call flag,
// without touching the configuration.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.filteredDeriv = 0
	p.first = true
}
