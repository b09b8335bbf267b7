package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mhd/internal/equations"
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/metrics"
	"github.com/san-kum/mhd/internal/plasma"
	"github.com/san-kum/mhd/internal/sim"
	"github.com/san-kum/mhd/internal/solver"
	"github.com/san-kum/mhd/internal/viscosity"
)

// soundWaveSim seeds a small sinusoidal density perturbation on a
// periodic 64-cell line, the classic acoustic test problem.
func soundWaveSim(amplitude, dt float64) *sim.Simulation {
	n := 64
	grid := []int{n}
	rho := field.NewScalar(grid, field.MassDensity)
	momentum := field.NewVector(grid, field.MomentumDensity)
	energy := field.NewScalar(grid, field.EnergyDensity)
	magfield := field.NewVector(grid, field.Tesla)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		rho.Data[i] = 1 + amplitude*math.Sin(2*math.Pi*float64(i)/float64(n))
		energy.Data[i] = 1
	}
	st, err := plasma.New(rho, momentum, energy, magfield, x, nil, nil, 5.0/3.0)
	Expect(err).NotTo(HaveOccurred())
	s := solver.NewCentral([]float64{1}, true)
	sys := equations.New(st, s, viscosity.New(st, s))
	return sim.New(st, sys, dt)
}

var _ = Describe("Simulation run", func() {
	var s *sim.Simulation

	BeforeEach(func() {
		s = soundWaveSim(0.01, 1e-3)
	})

	It("advances time and iteration together", func() {
		Expect(s.Run(context.Background(), 20)).To(Succeed())
		Expect(s.Iteration).To(Equal(20))
		Expect(s.Time).To(BeNumerically("~", 0.02, 1e-12))
	})

	It("conserves mass over the run", func() {
		drift := metrics.NewMassDrift(s.State.Spacing())
		s.AddMetric(drift)
		Expect(s.Run(context.Background(), 100)).To(Succeed())
		Expect(drift.Value()).To(BeNumerically("<", 1e-10))
	})

	It("keeps every evolved field finite", func() {
		Expect(s.Run(context.Background(), 100)).To(Succeed())
		for _, f := range s.State.CoreVariables() {
			for _, v := range f.Data {
				Expect(math.IsNaN(v)).To(BeFalse())
				Expect(math.IsInf(v, 0)).To(BeFalse())
			}
		}
	})

	It("damps the perturbation rather than amplifying it", func() {
		var initialRange float64
		for _, v := range s.State.Density.Data {
			initialRange = math.Max(initialRange, math.Abs(v-1))
		}
		Expect(s.Run(context.Background(), 200)).To(Succeed())
		var finalRange float64
		for _, v := range s.State.Density.Data {
			finalRange = math.Max(finalRange, math.Abs(v-1))
		}
		Expect(finalRange).To(BeNumerically("<", 2*initialRange))
	})

	It("rejects invalid arguments", func() {
		Expect(s.Run(context.Background(), -1)).To(HaveOccurred())
		s.Dt = 0
		Expect(s.Run(context.Background(), 1)).To(HaveOccurred())
	})
})
