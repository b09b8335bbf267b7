package config

import "sort"

// Presets are ready-made scenarios for the CLI.
var Presets = map[string]*Config{
	"uniform": {
		Grid:      GridConfig{Nx: 10, Dx: 1.0, Periodic: true},
		Gamma:     DefaultGamma,
		Dt:        1e-4,
		Steps:     100,
		Viscosity: ViscosityConfig{ShockCoeff: 0.4, HyperdiffCoeff: 1.0},
		InitState: InitStateConfig{Profile: "uniform", Density: 1.0, Energy: 1.0},
	},
	"sound_wave": {
		Grid:      GridConfig{Nx: 128, Dx: 1.0, Periodic: true},
		Gamma:     DefaultGamma,
		Dt:        1e-3,
		Steps:     2000,
		Viscosity: ViscosityConfig{ShockCoeff: 0.4, HyperdiffCoeff: 1.0},
		InitState: InitStateConfig{
			Profile: "sound_wave", Density: 1.0, Energy: 1.0,
			Amplitude: 0.01, Mode: 1,
		},
	},
	"density_pulse": {
		Grid:      GridConfig{Nx: 128, Dx: 1.0, Periodic: true},
		Gamma:     DefaultGamma,
		Dt:        1e-3,
		Steps:     5000,
		Viscosity: ViscosityConfig{ShockCoeff: 0.4, HyperdiffCoeff: 1.0},
		InitState: InitStateConfig{
			Profile: "density_pulse", Density: 1.0, Energy: 1.0,
			Amplitude: 0.5, Velocity: 0.1,
		},
	},
	"alfven_wave": {
		Grid:      GridConfig{Nx: 128, Dx: 1.0, Periodic: true},
		Gamma:     DefaultGamma,
		Dt:        1e-3,
		Steps:     2000,
		Viscosity: ViscosityConfig{ShockCoeff: 0.4, HyperdiffCoeff: 1.0},
		InitState: InitStateConfig{
			Profile: "alfven_wave", Density: 1.0, Energy: 1.0,
			Amplitude: 0.01, Mode: 1, MagField: 1e-3,
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
