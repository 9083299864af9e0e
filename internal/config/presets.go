package config

import "sort"

// Presets are named vehicle configurations. Gains are shared across
// presets; they were tuned for the default mass/inertia and are only a
// starting point for the heavier airframes.
var presets = map[string]VehicleConfig{
	"default": {
		Mass: DefaultMass, ArmLength: DefaultArmLength,
		Ixx: DefaultIxx, Iyy: DefaultIyy, Izz: DefaultIzz,
	},
	"micro": {
		Mass: 0.25, ArmLength: 0.1,
		Ixx: 0.002, Iyy: 0.002, Izz: 0.004,
	},
	"heavy": {
		Mass: 2.5, ArmLength: 0.45,
		Ixx: 0.03, Iyy: 0.03, Izz: 0.06,
	},
}

// GetPreset returns a full config with the named vehicle, or nil when
// the preset does not exist.
func GetPreset(name string) *Config {
	v, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Vehicle = v
	return cfg
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
