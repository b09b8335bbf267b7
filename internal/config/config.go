package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt      = 1e-4
	DefaultSteps   = 1000
	DefaultGamma   = 5.0 / 3.0
	DefaultNx      = 64
	DefaultDx      = 1.0
	DefaultDensity = 1.0
	DefaultEnergy  = 1.0
)

type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Gamma     float64         `yaml:"gamma"`
	Dt        float64         `yaml:"dt"`
	Steps     int             `yaml:"steps"`
	Viscosity ViscosityConfig `yaml:"viscosity"`
	InitState InitStateConfig `yaml:"init_state"`
}

type GridConfig struct {
	Nx       int     `yaml:"nx"`
	Ny       int     `yaml:"ny"`
	Nz       int     `yaml:"nz"`
	Dx       float64 `yaml:"dx"`
	Dy       float64 `yaml:"dy"`
	Dz       float64 `yaml:"dz"`
	Periodic bool    `yaml:"periodic"`
}

type ViscosityConfig struct {
	ShockCoeff     float64 `yaml:"shock_coeff"`
	HyperdiffCoeff float64 `yaml:"hyperdiff_coeff"`
}

type InitStateConfig struct {
	Profile   string  `yaml:"profile"`
	Density   float64 `yaml:"density"`
	Energy    float64 `yaml:"energy"`
	Amplitude float64 `yaml:"amplitude"`
	Mode      int     `yaml:"mode"`
	Velocity  float64 `yaml:"velocity"`
	MagField  float64 `yaml:"mag_field"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid:  GridConfig{Nx: DefaultNx, Dx: DefaultDx, Periodic: true},
		Gamma: DefaultGamma,
		Dt:    DefaultDt,
		Steps: DefaultSteps,
		Viscosity: ViscosityConfig{
			ShockCoeff:     0.4,
			HyperdiffCoeff: 1.0,
		},
		InitState: InitStateConfig{
			Profile: "uniform",
			Density: DefaultDensity,
			Energy:  DefaultEnergy,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Grid.Nx < 2 {
		return fmt.Errorf("config: nx must be at least 2, got %d", c.Grid.Nx)
	}
	if c.Grid.Ny < 0 || c.Grid.Nz < 0 {
		return fmt.Errorf("config: grid sizes must be non-negative")
	}
	if c.Grid.Nz > 0 && c.Grid.Ny == 0 {
		return fmt.Errorf("config: nz set without ny")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("config: steps must be non-negative, got %d", c.Steps)
	}
	if c.Gamma <= 1 {
		return fmt.Errorf("config: gamma must exceed 1, got %f", c.Gamma)
	}
	return nil
}
