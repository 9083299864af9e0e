package control

// Gains configures the four loops of the cascade. The defaults were
// hand-tuned for the 1.0 kg / (0.01, 0.01, 0.02) kg*m^2 vehicle; other
// mass/inertia combinations may need retuning.
type Gains struct {
	Altitude PIDConfig `yaml:"altitude"`
	Roll     PIDConfig `yaml:"roll"`
	Pitch    PIDConfig `yaml:"pitch"`
	Yaw      PIDConfig `yaml:"yaw"`

	// VelocityDamping scales the vertical-velocity term folded into the
	// altitude error signal.
	VelocityDamping float64 `yaml:"velocity_damping"`
}

// DefaultGains returns the tuned configuration.
func DefaultGains() Gains {
	return Gains{
		Altitude: PIDConfig{
			Kp: 10.0, Ki: 2.0, Kd: 5.0,
			IntegralLimit: 2.5,
			DerivativeTau: 0.02,
		},
		Roll: PIDConfig{
			Kp: 2.0, Ki: 0.1, Kd: 1.0,
			IntegralLimit: 0.1,
			DerivativeTau: 0.08,
		},
		Pitch: PIDConfig{
			Kp: 2.0, Ki: 0.1, Kd: 1.0,
			IntegralLimit: 0.1,
			DerivativeTau: 0.08,
		},
		Yaw: PIDConfig{
			Kp: 1.0, Ki: 0.05, Kd: 0.5,
			IntegralLimit: 0.05,
			DerivativeTau: 0.08,
		},
		VelocityDamping: 0.2,
	}
}

// Cascade is the two-layer control law: an altitude loop producing a
// scalar thrust command and three attitude loops each producing a
// torque. The four loops share no state; cross-axis coupling happens
// only physically, inside the rigid body.
type Cascade struct {
	gains Gains

	alt   *PID
	roll  *PID
	pitch *PID
	yaw   *PID
}

// NewCascade builds the four compensators from the given gains.
func NewCascade(g Gains) *Cascade {
	return &Cascade{
		gains: g,
		alt:   NewPID(g.Altitude),
		roll:  NewPID(g.Roll),
		pitch: NewPID(g.Pitch),
		yaw:   NewPID(g.Yaw),
	}
}

// Gains returns the configuration the cascade was built with.
func (c *Cascade) Gains() Gains { return c.gains }

// UpdateAltitude runs the altitude loop and returns the thrust command.
// The PID sees the altitude error with a vertical-velocity damping term
// folded in, and the output rides on the hover feedforward mass*g, so
// the feedback only corrects the delta around the hover point.
func (c *Cascade) UpdateAltitude(zRef, z, vz, mass, g, dt float64) float64 {
	zErr := zRef - z
	cmd := c.alt.Update(zErr-c.gains.VelocityDamping*vz, dt)
	return mass*g + cmd
}

// UpdateAttitude runs the three attitude loops and returns the roll,
// pitch, and yaw torque commands.
//
// Errors are plain subtractions. In particular the yaw error is not
// wrapped to the shortest path, so near the +/-pi boundary it can
// approach 2*pi in magnitude and command a long-way-around turn.
func (c *Cascade) UpdateAttitude(rollRef, pitchRef, yawRef, roll, pitch, yaw, dt float64) (torqueRoll, torquePitch, torqueYaw float64) {
	torqueRoll = c.roll.Update(rollRef-roll, dt)
	torquePitch = c.pitch.Update(pitchRef-pitch, dt)
	torqueYaw = c.yaw.Update(yawRef-yaw, dt)
	return torqueRoll, torquePitch, torqueYaw
}

// Reset resets all four compensators.
func (c *Cascade) Reset() {
	c.alt.Reset()
	c.roll.Reset()
	c.pitch.Reset()
	c.yaw.Reset()
}
