// Package metrics provides diagnostic observers that summarize a
// simulation run: control effort, altitude overshoot, and settling
// time. Metrics ride on the simulator's observer hook and never feed
// back into the control loop.
package metrics

import "github.com/san-kum/quadsim/internal/sim"

// Metric accumulates one summary value over a run.
type Metric interface {
	Name() string
	Observe(es sim.ExtendedState)
	Value() float64
	Reset()
}

// Attach registers metrics on a simulator.
func Attach(s *sim.Simulator, ms ...Metric) {
	for _, m := range ms {
		s.AddObserver(observer{m})
	}
}

type observer struct{ m Metric }

func (o observer) OnStep(es sim.ExtendedState) { o.m.Observe(es) }

// Collect returns the current values keyed by metric name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
