package sim

import "github.com/san-kum/mhd/internal/plasma"

// Metric accumulates a diagnostic over a run.
type Metric interface {
	Name() string
	Observe(st *plasma.State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every committed step.
type Observer interface {
	OnStep(st *plasma.State, t float64)
}
