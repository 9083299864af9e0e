package control

import (
	"math"
	"testing"
)

const (
	testMass = 1.0
	testG    = 9.81
)

func TestCascadeHoverThrustIsFeedforward(t *testing.T) {
	c := NewCascade(DefaultGains())

	// Zero error at rest: the PID contributes nothing on the first tick,
	// so the command is exactly the hover feedforward.
	thrust := c.UpdateAltitude(2.5, 2.5, 0, testMass, testG, 0.02)
	if math.Abs(thrust-testMass*testG) > 1e-12 {
		t.Errorf("expected hover thrust %g, got %g", testMass*testG, thrust)
	}
}

func TestCascadeClimbCommandsMoreThanHover(t *testing.T) {
	c := NewCascade(DefaultGains())
	thrust := c.UpdateAltitude(5.0, 2.5, 0, testMass, testG, 0.02)
	if thrust <= testMass*testG {
		t.Errorf("expected thrust above hover for positive error, got %g", thrust)
	}
}

func TestCascadeVelocityDampingReducesThrust(t *testing.T) {
	g := DefaultGains()
	climbing := NewCascade(g)
	still := NewCascade(g)

	// Same altitude error, but one vehicle is already climbing: the
	// damping term must shave its command.
	tClimb := climbing.UpdateAltitude(5.0, 2.5, 2.0, testMass, testG, 0.02)
	tStill := still.UpdateAltitude(5.0, 2.5, 0, testMass, testG, 0.02)
	if tClimb >= tStill {
		t.Errorf("expected damped thrust %g < undamped %g", tClimb, tStill)
	}
}

func TestCascadeAttitudeTorqueSigns(t *testing.T) {
	c := NewCascade(DefaultGains())

	tr, tp, ty := c.UpdateAttitude(0.1, -0.1, 0.2, 0, 0, 0, 0.02)
	if tr <= 0 {
		t.Errorf("expected positive roll torque, got %g", tr)
	}
	if tp >= 0 {
		t.Errorf("expected negative pitch torque, got %g", tp)
	}
	if ty <= 0 {
		t.Errorf("expected positive yaw torque, got %g", ty)
	}
}

func TestCascadeAxesAreIndependent(t *testing.T) {
	g := DefaultGains()
	coupled := NewCascade(g)
	solo := NewCascade(g)

	// Driving roll hard must not change what the pitch loop outputs.
	for i := 0; i < 20; i++ {
		coupled.UpdateAttitude(1.0, 0.05, 0, 0, 0, 0, 0.02)
		solo.UpdateAttitude(0, 0.05, 0, 0, 0, 0, 0.02)
	}
	_, tpCoupled, _ := coupled.UpdateAttitude(1.0, 0.05, 0, 0, 0, 0, 0.02)
	_, tpSolo, _ := solo.UpdateAttitude(0, 0.05, 0, 0, 0, 0, 0.02)
	if tpCoupled != tpSolo {
		t.Errorf("pitch loop saw cross-axis state: %g != %g", tpCoupled, tpSolo)
	}
}

func TestCascadeYawErrorIsNotWrapped(t *testing.T) {
	c := NewCascade(DefaultGains())

	// Reference and attitude sit on opposite sides of the +/-pi seam.
	// Plain subtraction yields an error near 2*pi, so the command takes
	// the long way around instead of the 0.2 rad shortcut.
	yawRef := math.Pi - 0.1
	yaw := -math.Pi + 0.1
	_, _, ty := c.UpdateAttitude(0, 0, yawRef, 0, 0, yaw, 0.02)

	wantErr := yawRef - yaw // ~ 2*pi - 0.2
	g := DefaultGains().Yaw
	wantP := g.Kp * wantErr
	if math.Abs(ty-wantP) > g.Ki*g.IntegralLimit+1e-9 {
		t.Errorf("expected torque near %g (unwrapped error), got %g", wantP, ty)
	}
}

func TestCascadeResetClearsAllLoops(t *testing.T) {
	c := NewCascade(DefaultGains())
	for i := 0; i < 50; i++ {
		c.UpdateAltitude(5.0, 2.5, 0, testMass, testG, 0.02)
		c.UpdateAttitude(0.3, 0.3, 0.3, 0, 0, 0, 0.02)
	}

	c.Reset()
	fresh := NewCascade(DefaultGains())

	got := c.UpdateAltitude(2.5, 2.5, 0, testMass, testG, 0.02)
	want := fresh.UpdateAltitude(2.5, 2.5, 0, testMass, testG, 0.02)
	if got != want {
		t.Errorf("reset cascade disagrees with fresh one: %g != %g", got, want)
	}
}
