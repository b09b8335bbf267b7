// Package metrics provides run diagnostics for plasma simulations:
// conserved totals, their drift, and the fastest wave speed seen.
package metrics

import (
	"math"

	"github.com/san-kum/mhd/internal/plasma"
)

// TotalMass integrates density over the domain, sum(rho) * cell volume.
type TotalMass struct {
	name       string
	cellVolume float64
	last       float64
}

func NewTotalMass(spacing []float64) *TotalMass {
	vol := 1.0
	for _, h := range spacing {
		vol *= h
	}
	return &TotalMass{name: "total_mass", cellVolume: vol}
}

func (m *TotalMass) Name() string { return m.name }

func (m *TotalMass) Observe(st *plasma.State, t float64) {
	m.last = st.Density.Sum() * m.cellVolume
}

func (m *TotalMass) Value() float64 { return m.last }

func (m *TotalMass) Reset() { m.last = 0 }

// TotalEnergy integrates the energy density over the domain.
type TotalEnergy struct {
	name       string
	cellVolume float64
	last       float64
}

func NewTotalEnergy(spacing []float64) *TotalEnergy {
	vol := 1.0
	for _, h := range spacing {
		vol *= h
	}
	return &TotalEnergy{name: "total_energy", cellVolume: vol}
}

func (m *TotalEnergy) Name() string { return m.name }

func (m *TotalEnergy) Observe(st *plasma.State, t float64) {
	m.last = st.Energy.Sum() * m.cellVolume
}

func (m *TotalEnergy) Value() float64 { return m.last }

func (m *TotalEnergy) Reset() { m.last = 0 }

// MassDrift tracks the maximum relative deviation of total mass from
// its first observation. Continuity is a pure divergence form, so on a
// periodic grid this should stay at round-off.
type MassDrift struct {
	name       string
	cellVolume float64
	initial    float64
	maxDrift   float64
	samples    int
}

func NewMassDrift(spacing []float64) *MassDrift {
	vol := 1.0
	for _, h := range spacing {
		vol *= h
	}
	return &MassDrift{name: "mass_drift", cellVolume: vol}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(st *plasma.State, t float64) {
	mass := st.Density.Sum() * m.cellVolume
	if m.samples == 0 {
		m.initial = mass
	}
	m.samples++
	if m.initial != 0 {
		drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// MaxWaveSpeed records the largest combined characteristic speed
// (max sound + max Alfvén) observed during the run, the quantity that
// bounds the stable explicit time step.
type MaxWaveSpeed struct {
	name string
	max  float64
}

func NewMaxWaveSpeed() *MaxWaveSpeed {
	return &MaxWaveSpeed{name: "max_wave_speed"}
}

func (m *MaxWaveSpeed) Name() string { return m.name }

func (m *MaxWaveSpeed) Observe(st *plasma.State, t float64) {
	cs, err := st.MaxSoundSpeed()
	if err != nil {
		return
	}
	va, err := st.MaxAlfvenSpeed()
	if err != nil {
		return
	}
	m.max = math.Max(m.max, cs+va)
}

func (m *MaxWaveSpeed) Value() float64 { return m.max }

func (m *MaxWaveSpeed) Reset() { m.max = 0 }
