// Package mission provides timed setpoint programs: sequences of
// reference segments that an external driver feeds to the simulator,
// one lookup per tick. A mission is the scripted stand-in for manual
// operator input.
package mission

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quadsim/internal/sim"
)

// ErrEmptyMission indicates a mission without segments.
var ErrEmptyMission = errors.New("mission: no segments")

// Segment holds one set of references and how long to hold them.
type Segment struct {
	Duration float64 `yaml:"duration"` // s
	Roll     float64 `yaml:"roll"`     // rad
	Pitch    float64 `yaml:"pitch"`    // rad
	Yaw      float64 `yaml:"yaw"`      // rad
	Z        float64 `yaml:"z"`        // m
}

func (s Segment) setpoint() sim.Setpoint {
	return sim.Setpoint{Roll: s.Roll, Pitch: s.Pitch, Yaw: s.Yaw, Z: s.Z}
}

// Mission is an ordered list of segments.
type Mission struct {
	Name     string    `yaml:"name"`
	Segments []Segment `yaml:"segments"`
}

// Validate checks that the mission can drive a run.
func (m *Mission) Validate() error {
	if len(m.Segments) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyMission, m.Name)
	}
	for i, seg := range m.Segments {
		if seg.Duration <= 0 {
			return fmt.Errorf("mission %q: segment %d has non-positive duration %g", m.Name, i, seg.Duration)
		}
	}
	return nil
}

// Duration returns the total scripted time.
func (m *Mission) Duration() float64 {
	total := 0.0
	for _, seg := range m.Segments {
		total += seg.Duration
	}
	return total
}

// At returns the references active at simulation time t. Past the end
// of the script the last segment's references are held.
func (m *Mission) At(t float64) sim.Setpoint {
	elapsed := 0.0
	for _, seg := range m.Segments {
		elapsed += seg.Duration
		if t < elapsed {
			return seg.setpoint()
		}
	}
	return m.Segments[len(m.Segments)-1].setpoint()
}

// Load reads a mission from a yaml file.
func Load(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Mission
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Built-in mission programs.
var presets = map[string]*Mission{
	"hover": {
		Name: "hover",
		Segments: []Segment{
			{Duration: 20, Z: 2.5},
		},
	},
	"climb": {
		Name: "climb",
		Segments: []Segment{
			{Duration: 5, Z: 2.5},
			{Duration: 15, Z: 5.0},
		},
	},
	"descent": {
		Name: "descent",
		Segments: []Segment{
			{Duration: 5, Z: 5.0},
			{Duration: 15, Z: 1.0},
		},
	},
	"yaw-turn": {
		Name: "yaw-turn",
		Segments: []Segment{
			{Duration: 5, Z: 2.5},
			{Duration: 10, Z: 2.5, Yaw: 1.5},
			{Duration: 5, Z: 2.5},
		},
	},
	"square": {
		Name: "square",
		Segments: []Segment{
			{Duration: 4, Z: 3.0},
			{Duration: 4, Z: 3.0, Pitch: 0.15},
			{Duration: 4, Z: 3.0, Roll: 0.15},
			{Duration: 4, Z: 3.0, Pitch: -0.15},
			{Duration: 4, Z: 3.0, Roll: -0.15},
			{Duration: 4, Z: 3.0},
		},
	},
}

// Preset returns a built-in mission by name, or nil.
func Preset(name string) *Mission { return presets[name] }

// ListPresets returns the built-in mission names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
