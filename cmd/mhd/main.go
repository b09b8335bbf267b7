package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mhd/internal/config"
	"github.com/san-kum/mhd/internal/equations"
	"github.com/san-kum/mhd/internal/metrics"
	"github.com/san-kum/mhd/internal/sim"
	"github.com/san-kum/mhd/internal/viscosity"
	"github.com/san-kum/mhd/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile    string
	preset        string
	dt            float64
	steps         int
	stepsPerFrame int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mhd",
		Short: "explicit ideal-MHD time integration on structured grids",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and report conservation metrics",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "sound_wave", "preset scenario")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().IntVar(&steps, "steps", 0, "step count override")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "sound_wave", "preset scenario")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 5, "integration steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if steps > 0 {
		cfg.Steps = steps
	}
	return cfg, nil
}

func buildSimulation(cfg *config.Config) (*sim.Simulation, error) {
	state, solv, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	visc := viscosity.New(state, solv)
	visc.ShockCoeff = cfg.Viscosity.ShockCoeff
	visc.HyperdiffCoeff = cfg.Viscosity.HyperdiffCoeff
	system := equations.New(state, solv, visc)
	return sim.New(state, system, cfg.Dt), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	spacing := s.State.Spacing()
	s.AddMetric(metrics.NewTotalMass(spacing))
	s.AddMetric(metrics.NewTotalEnergy(spacing))
	s.AddMetric(metrics.NewMassDrift(spacing))
	s.AddMetric(metrics.NewMaxWaveSpeed())

	fmt.Printf("running %s (%d steps, dt=%g)...\n", cfg.InitState.Profile, cfg.Steps, cfg.Dt)
	start := time.Now()
	if err := s.Run(context.Background(), cfg.Steps); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("simulation time: %g s, iterations: %d\n\n", s.Time, s.Iteration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for name, val := range s.MetricValues() {
		fmt.Fprintf(w, "%s\t%.9g\n", name, val)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	profile := viz.DensityProfile(s.State.Density)
	fmt.Println()
	fmt.Println(asciigraph.Plot(profile,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("final density along x"),
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := buildSimulation(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(viz.NewModel(s, stepsPerFrame))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
