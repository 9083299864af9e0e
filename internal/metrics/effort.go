package metrics

import (
	"math"

	"github.com/san-kum/quadsim/internal/sim"
)

// ControlEffort averages the magnitude of the applied controls per
// step: the three torques plus the thrust deviation from the hover
// feedforward, so a perfect hover scores zero.
type ControlEffort struct {
	hoverThrust float64
	sum         float64
	samples     int
}

// NewControlEffort takes the vehicle's hover thrust mass*g.
func NewControlEffort(hoverThrust float64) *ControlEffort {
	return &ControlEffort{hoverThrust: hoverThrust}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(es sim.ExtendedState) {
	st := es.State
	c.sum += math.Abs(st.TorqueRoll) + math.Abs(st.TorquePitch) + math.Abs(st.TorqueYaw)
	c.sum += math.Abs(st.Thrust - c.hoverThrust)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
