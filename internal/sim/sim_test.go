package sim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/mhd/internal/equations"
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/metrics"
	"github.com/san-kum/mhd/internal/plasma"
	"github.com/san-kum/mhd/internal/solver"
	"github.com/san-kum/mhd/internal/viscosity"
	"gonum.org/v1/gonum/floats/scalar"
)

func newSim(t *testing.T, density func(i int) float64, vx float64, n int, dt float64) *Simulation {
	t.Helper()
	grid := []int{n}
	rho := field.NewScalar(grid, field.MassDensity)
	momentum := field.NewVector(grid, field.MomentumDensity)
	energy := field.NewScalar(grid, field.EnergyDensity)
	magfield := field.NewVector(grid, field.Tesla)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		rho.Data[i] = density(i)
		momentum.Data[i] = rho.Data[i] * vx
		energy.Data[i] = 1
	}
	st, err := plasma.New(rho, momentum, energy, magfield, x, nil, nil, 5.0/3.0)
	if err != nil {
		t.Fatal(err)
	}
	s := solver.NewCentral([]float64{1}, true)
	sys := equations.New(st, s, viscosity.New(st, s))
	return New(st, sys, dt)
}

func TestUniformStateIsFixedPoint(t *testing.T) {
	// A 10-cell uniform state has zero right-hand sides, so ten RK4
	// cycles must leave every variable bit-for-bit unchanged up to
	// round-off while the clock still advances.
	s := newSim(t, func(int) float64 { return 1 }, 0, 10, 1e-4)
	before := make([][]float64, 4)
	for i, f := range s.State.CoreVariables() {
		before[i] = append([]float64(nil), f.Data...)
	}

	if err := s.Run(context.Background(), 10); err != nil {
		t.Fatal(err)
	}

	for i, f := range s.State.CoreVariables() {
		for p := range f.Data {
			if !scalar.EqualWithinAbs(f.Data[p], before[i][p], 1e-12) {
				t.Errorf("variable %d drifted at %d: %g -> %g", i, p, before[i][p], f.Data[p])
			}
		}
	}
	if s.Iteration != 10 {
		t.Errorf("iteration = %d, want 10", s.Iteration)
	}
	if !scalar.EqualWithinAbs(s.Time, 10*1e-4, 1e-15) {
		t.Errorf("time = %g, want %g", s.Time, 10*1e-4)
	}
}

func TestStepAdvancesClock(t *testing.T) {
	s := newSim(t, func(int) float64 { return 1 }, 0, 10, 1e-4)
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if s.Iteration != 1 {
		t.Errorf("iteration = %d, want 1", s.Iteration)
	}
	if s.Time != 1e-4 {
		t.Errorf("time = %g, want 1e-4", s.Time)
	}
}

func TestMassConservedOnPeriodicGrid(t *testing.T) {
	// Continuity is a pure divergence (the diffusive flux included), so
	// central differences telescope to zero over a periodic grid and
	// total mass stays at round-off.
	n := 64
	s := newSim(t, func(i int) float64 {
		return 1 + 0.2*math.Sin(2*math.Pi*float64(i)/64)
	}, 0.1, n, 1e-3)

	initial := s.State.Density.Sum()
	if err := s.Run(context.Background(), 50); err != nil {
		t.Fatal(err)
	}
	final := s.State.Density.Sum()
	rel := math.Abs(final-initial) / math.Abs(initial)
	if rel > 1e-10 {
		t.Errorf("relative mass drift = %g after 50 steps", rel)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	s := newSim(t, func(int) float64 { return 1 }, 0, 10, 1e-4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, 100); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if s.Iteration != 0 {
		t.Errorf("iteration = %d after cancelled run", s.Iteration)
	}
}

func TestRunValidatesArguments(t *testing.T) {
	s := newSim(t, func(int) float64 { return 1 }, 0, 10, 0)
	if err := s.Run(context.Background(), 10); err == nil {
		t.Error("expected error for dt = 0")
	}
	s.Dt = 1e-4
	if err := s.Run(context.Background(), -1); err == nil {
		t.Error("expected error for negative step count")
	}
}

func TestMetricsObservedDuringRun(t *testing.T) {
	s := newSim(t, func(int) float64 { return 2 }, 0, 10, 1e-4)
	mass := metrics.NewTotalMass(s.State.Spacing())
	drift := metrics.NewMassDrift(s.State.Spacing())
	s.AddMetric(mass)
	s.AddMetric(drift)

	if err := s.Run(context.Background(), 5); err != nil {
		t.Fatal(err)
	}

	vals := s.MetricValues()
	if !scalar.EqualWithinAbs(vals["total_mass"], 20, 1e-9) {
		t.Errorf("total_mass = %g, want 20", vals["total_mass"])
	}
	if vals["mass_drift"] > 1e-12 {
		t.Errorf("mass_drift = %g for a uniform state", vals["mass_drift"])
	}
}

func TestObserverCalledPerStep(t *testing.T) {
	s := newSim(t, func(int) float64 { return 1 }, 0, 10, 1e-4)
	var calls int
	s.AddObserver(observerFunc(func(st *plasma.State, tm float64) { calls++ }))
	if err := s.Run(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if calls != 7 {
		t.Errorf("observer called %d times, want 7", calls)
	}
}

type observerFunc func(st *plasma.State, t float64)

func (f observerFunc) OnStep(st *plasma.State, t float64) { f(st, t) }
