// Package sim advances a plasma state through time with a classical
// fourth-order Runge-Kutta cycle over the four MHD conservation laws.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/mhd/internal/equations"
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/plasma"
)

// Simulation owns the integration clock and drives the equation
// system. Time and Iteration never decrease.
type Simulation struct {
	Time      float64
	Iteration int
	Dt        float64

	State  *plasma.State
	System *equations.System

	metrics   []Metric
	observers []Observer
}

func New(state *plasma.State, system *equations.System, dt float64) *Simulation {
	return &Simulation{State: state, System: system, Dt: dt}
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// rk4Stages: evaluation-time offset, weight of the stage derivative in
// the accumulated sum, and the fraction of the stage derivative used
// to build the next working state.
var rk4Stages = []struct {
	tOff, accWeight, stepWeight float64
}{
	{0, 1, 0.5},
	{0.5, 2, 0.5},
	{0.5, 2, 1},
	{1, 1, 0},
}

// Step advances the state by one RK4 cycle: snapshot, four staged RHS
// evaluations, then a single commit of (k1 + 2k2 + 2k3 + k4)/6. All
// four evaluators within a stage read the same working state; any
// stage error restores the snapshot so no partial mutation is left
// visible.
func (s *Simulation) Step() error {
	vars := s.State.CoreVariables()
	eqs := s.System.Equations()

	orig := make([]*field.Field, len(vars))
	deriv := make([]*field.Field, len(vars))
	for i, f := range vars {
		orig[i] = f.Clone()
		deriv[i] = f.ZerosLike(f.Unit)
	}

	for _, stage := range rk4Stages {
		t := s.Time + stage.tOff*s.Dt

		ks, err := s.evalStage(eqs, t)
		if err != nil {
			s.restore(vars, orig)
			return fmt.Errorf("sim: step %d aborted: %w", s.Iteration, err)
		}

		for i := range vars {
			deriv[i], err = deriv[i].AddScaled(stage.accWeight, ks[i])
			if err != nil {
				s.restore(vars, orig)
				return fmt.Errorf("sim: step %d aborted: %w", s.Iteration, err)
			}
			if stage.stepWeight != 0 {
				next, err := orig[i].AddScaled(stage.stepWeight, ks[i])
				if err != nil {
					s.restore(vars, orig)
					return fmt.Errorf("sim: step %d aborted: %w", s.Iteration, err)
				}
				copy(vars[i].Data, next.Data)
			}
		}
	}

	for i := range vars {
		final, err := orig[i].AddScaled(1.0/6.0, deriv[i])
		if err != nil {
			s.restore(vars, orig)
			return fmt.Errorf("sim: step %d aborted: %w", s.Iteration, err)
		}
		copy(vars[i].Data, final.Data)
	}
	s.Time += s.Dt
	s.Iteration++
	return nil
}

// evalStage runs all four RHS evaluators against the current working
// state and scales each result by dt. The evaluators only read the
// state, so they fan out concurrently; the working state is not
// touched until every one has returned.
func (s *Simulation) evalStage(eqs []equations.RHS, t float64) ([]*field.Field, error) {
	ks := make([]*field.Field, len(eqs))
	errs := make([]error, len(eqs))

	var wg sync.WaitGroup
	for i, eq := range eqs {
		wg.Add(1)
		go func(idx int, rhs equations.RHS) {
			defer wg.Done()
			d, err := rhs(t, nil)
			if err != nil {
				errs[idx] = err
				return
			}
			ks[idx] = d.MulConst(s.Dt, field.Second)
		}(i, eq)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return ks, nil
}

func (s *Simulation) restore(vars, orig []*field.Field) {
	for i := range vars {
		copy(vars[i].Data, orig[i].Data)
	}
}

// Run advances the simulation by steps cycles, observing metrics
// before each step and once more at the end. A step in flight always
// completes; cancellation is only honored between steps.
func (s *Simulation) Run(ctx context.Context, steps int) error {
	if s.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", s.Dt)
	}
	if steps < 0 {
		return fmt.Errorf("sim: steps must be non-negative, got %d", steps)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(s.State, s.Time)
		}

		if err := s.Step(); err != nil {
			return err
		}

		for _, o := range s.observers {
			o.OnStep(s.State, s.Time)
		}
	}

	for _, m := range s.metrics {
		m.Observe(s.State, s.Time)
	}
	return nil
}

// MetricValues reports the current value of every attached metric.
func (s *Simulation) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
