package mission

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAtSegmentBoundaries(t *testing.T) {
	m := &Mission{
		Name: "test",
		Segments: []Segment{
			{Duration: 5, Z: 2.5},
			{Duration: 10, Z: 5.0, Yaw: 1.0},
		},
	}

	tests := []struct {
		t       float64
		wantZ   float64
		wantYaw float64
	}{
		{0, 2.5, 0},
		{4.99, 2.5, 0},
		{5.0, 5.0, 1.0}, // boundary belongs to the next segment
		{14.99, 5.0, 1.0},
		{15.0, 5.0, 1.0},  // past the end: hold last
		{100.0, 5.0, 1.0}, // far past the end: still holding
	}
	for _, tt := range tests {
		sp := m.At(tt.t)
		if sp.Z != tt.wantZ || sp.Yaw != tt.wantYaw {
			t.Errorf("At(%g) = %+v, want z=%g yaw=%g", tt.t, sp, tt.wantZ, tt.wantYaw)
		}
	}
}

func TestValidate(t *testing.T) {
	empty := &Mission{Name: "empty"}
	if err := empty.Validate(); !errors.Is(err, ErrEmptyMission) {
		t.Errorf("expected ErrEmptyMission, got %v", err)
	}

	bad := &Mission{Name: "bad", Segments: []Segment{{Duration: 0, Z: 1}}}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero-duration segment")
	}
}

func TestDuration(t *testing.T) {
	m := Preset("yaw-turn")
	if m == nil {
		t.Fatal("yaw-turn preset missing")
	}
	if got := m.Duration(); got != 20 {
		t.Errorf("expected duration 20, got %g", got)
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets")
	}
	for _, name := range names {
		m := Preset(name)
		if m == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("preset %q: %v", name, err)
		}
	}
	if Preset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	doc := `name: takeoff
segments:
  - duration: 2
    z: 1.0
  - duration: 8
    z: 4.0
    yaw: 0.5
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.Name != "takeoff" || len(m.Segments) != 2 {
		t.Fatalf("unexpected mission: %+v", m)
	}
	if sp := m.At(3); sp.Z != 4.0 || sp.Yaw != 0.5 {
		t.Errorf("At(3) = %+v", sp)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: bad\nsegments: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty mission")
	}
}
