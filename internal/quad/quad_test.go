package quad

import (
	"errors"
	"math"
	"testing"
)

func testParams() Params {
	return Params{Mass: 1.0, ArmLength: 0.3, Ixx: 0.01, Iyy: 0.01, Izz: 0.02}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero mass", Params{Ixx: 0.01, Iyy: 0.01, Izz: 0.02}},
		{"negative mass", Params{Mass: -1, Ixx: 0.01, Iyy: 0.01, Izz: 0.02}},
		{"zero ixx", Params{Mass: 1, Iyy: 0.01, Izz: 0.02}},
		{"zero iyy", Params{Mass: 1, Ixx: 0.01, Izz: 0.02}},
		{"negative izz", Params{Mass: 1, Ixx: 0.01, Iyy: 0.01, Izz: -0.02}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.p); !errors.Is(err, ErrBadParams) {
				t.Errorf("expected ErrBadParams, got %v", err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	q, err := New(testParams())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g := q.Params().Gravity; g != DefaultGravity {
		t.Errorf("expected gravity %g, got %g", DefaultGravity, g)
	}
	st := q.Snapshot()
	if st.Z != InitialAltitude {
		t.Errorf("expected initial z %g, got %g", InitialAltitude, st.Z)
	}
	if st.X != 0 || st.Y != 0 || st.VX != 0 || st.VY != 0 || st.VZ != 0 {
		t.Errorf("expected rest state, got %+v", st)
	}
}

func TestStepRejectsBadTimestep(t *testing.T) {
	q, _ := New(testParams())
	for _, dt := range []float64{0, -0.01} {
		if err := q.Step(dt); !errors.Is(err, ErrBadTimestep) {
			t.Errorf("dt=%g: expected ErrBadTimestep, got %v", dt, err)
		}
	}
	if st := q.Snapshot(); st.Z != InitialAltitude {
		t.Errorf("rejected step mutated state: z=%g", st.Z)
	}
}

func TestFreefallAtG(t *testing.T) {
	q, _ := New(testParams())
	dt := 0.01

	if err := q.Step(dt); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	st := q.Snapshot()
	if math.Abs(st.VZ+DefaultGravity*dt) > 1e-12 {
		t.Errorf("expected vz %g after one step, got %g", -DefaultGravity*dt, st.VZ)
	}

	// Fall until ground contact, then z holds at 0 and vz snaps to 0.
	for i := 0; i < 1000; i++ {
		if err := q.Step(dt); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}
	st = q.Snapshot()
	if st.Z != 0 {
		t.Errorf("expected z=0 on the ground, got %g", st.Z)
	}
	if st.VZ != 0 {
		t.Errorf("expected vz=0 on the ground, got %g", st.VZ)
	}
}

func TestAngularRateLinearInTorque(t *testing.T) {
	p := testParams()
	q, _ := New(p)
	dt := 0.05

	q.SetControl(0.01, -0.02, 0.004, 0)
	if err := q.Step(dt); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	st := q.Snapshot()
	tests := []struct {
		name      string
		got, want float64
	}{
		{"p", st.P, 0.01 / p.Ixx * dt},
		{"q", st.Q, -0.02 / p.Iyy * dt},
		{"r", st.R, 0.004 / p.Izz * dt},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s: expected %g, got %g", tt.name, tt.want, tt.got)
		}
	}
}

func TestRollPitchSaturate(t *testing.T) {
	q, _ := New(testParams())

	q.SetControl(1.0, 1.0, 0, 0)
	for i := 0; i < 500; i++ {
		if err := q.Step(0.01); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		st := q.Snapshot()
		if math.Abs(st.Roll) > MaxAngle || math.Abs(st.Pitch) > MaxAngle {
			t.Fatalf("step %d: roll=%g pitch=%g outside +/-%g", i, st.Roll, st.Pitch, MaxAngle)
		}
	}

	st := q.Snapshot()
	if st.Roll != MaxAngle || st.Pitch != MaxAngle {
		t.Errorf("expected saturation at %g, got roll=%g pitch=%g", MaxAngle, st.Roll, st.Pitch)
	}
	if st.P <= 0 || st.Q <= 0 {
		t.Errorf("rates should not be zeroed by angle saturation: p=%g q=%g", st.P, st.Q)
	}
}

func TestYawWrapsDuringSpin(t *testing.T) {
	q, _ := New(testParams())

	q.SetControl(0, 0, 0.05, 0)
	for i := 0; i < 2000; i++ {
		if err := q.Step(0.01); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		yaw := q.Snapshot().Yaw
		if yaw <= -math.Pi || yaw > math.Pi {
			t.Fatalf("step %d: yaw %g outside (-pi, pi]", i, yaw)
		}
	}
}

func TestThrustFlooredAtZero(t *testing.T) {
	q, _ := New(testParams())
	q.SetControl(0, 0, 0, -5.0)
	if th := q.Snapshot().Thrust; th != 0 {
		t.Errorf("expected thrust floored to 0, got %g", th)
	}
}

func TestHoverThrustHoldsAltitude(t *testing.T) {
	p := testParams()
	q, _ := New(p)
	q.SetControl(0, 0, 0, p.Mass*DefaultGravity)

	for i := 0; i < 200; i++ {
		if err := q.Step(0.01); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}
	st := q.Snapshot()
	if math.Abs(st.Z-InitialAltitude) > 1e-9 {
		t.Errorf("expected z to hold at %g, got %g", InitialAltitude, st.Z)
	}
}

func TestTiltedThrustAccelerates(t *testing.T) {
	p := testParams()
	q, _ := New(p)

	// Pitch the vehicle nose-down slightly, then thrust: positive pitch
	// tips the thrust vector toward world +x.
	q.SetControl(0, 0.001, 0, 0)
	if err := q.Step(0.1); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	q.SetControl(0, 0, 0, 2*p.Mass*DefaultGravity)
	if err := q.Step(0.1); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	st := q.Snapshot()
	if st.VX <= 0 {
		t.Errorf("expected forward acceleration under positive pitch, got vx=%g", st.VX)
	}
}

func TestVelocityClamp(t *testing.T) {
	p := testParams()
	q, _ := New(p)

	// Far more thrust than needed; vz must stay inside the envelope.
	q.SetControl(0, 0, 0, 100*p.Mass*DefaultGravity)
	for i := 0; i < 100; i++ {
		if err := q.Step(0.1); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if vz := q.Snapshot().VZ; vz > MaxVel {
			t.Fatalf("vz %g exceeds %g", vz, MaxVel)
		}
	}
	if vz := q.Snapshot().VZ; vz != MaxVel {
		t.Errorf("expected vz saturated at %g, got %g", MaxVel, vz)
	}
}

func TestPositionClamp(t *testing.T) {
	q, _ := New(testParams())
	st := &q.state
	st.VX = MaxVel
	st.VZ = MaxVel

	for i := 0; i < 300; i++ {
		q.SetControl(0, 0, 0, 2*DefaultGravity) // keep climbing
		if err := q.Step(1.0); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}
	got := q.Snapshot()
	if got.X != MaxPos {
		t.Errorf("expected x clamped at %g, got %g", MaxPos, got.X)
	}
	if got.Z != MaxPos {
		t.Errorf("expected z clamped at %g, got %g", MaxPos, got.Z)
	}
}

func TestResetRestoresDefaultsExactly(t *testing.T) {
	q, _ := New(testParams())
	q.SetControl(0.1, -0.1, 0.05, 20)
	for i := 0; i < 50; i++ {
		if err := q.Step(0.02); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	q.Reset()
	want := State{Z: InitialAltitude}
	if got := q.Snapshot(); got != want {
		t.Errorf("reset state = %+v, want %+v", got, want)
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	q, _ := New(testParams())
	st := q.Snapshot()
	st.Z = -100
	if q.Snapshot().Z != InitialAltitude {
		t.Error("mutating a snapshot leaked into internal state")
	}
}
