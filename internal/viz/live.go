// Package viz renders a running simulation in the terminal: the
// density profile along x, conserved totals and the integration clock.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mhd/internal/field"
	"github.com/san-kum/mhd/internal/metrics"
	"github.com/san-kum/mhd/internal/sim"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the simulation from the Bubble Tea event loop.
type Model struct {
	sim           *sim.Simulation
	mass          *metrics.TotalMass
	initial       []*field.Field
	massHistory   []float64
	stepsPerFrame int
	running       bool
	err           error
}

func NewModel(s *sim.Simulation, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	vars := s.State.CoreVariables()
	initial := make([]*field.Field, len(vars))
	for i, f := range vars {
		initial[i] = f.Clone()
	}
	return Model{
		sim:           s,
		mass:          metrics.NewTotalMass(s.State.Spacing()),
		initial:       initial,
		massHistory:   make([]float64, 0, historyCapacity),
		stepsPerFrame: stepsPerFrame,
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				if err := m.sim.Step(); err != nil {
					m.err = err
					break
				}
			}
			m.mass.Observe(m.sim.State, m.sim.Time)
			m.massHistory = append(m.massHistory, m.mass.Value())
			if len(m.massHistory) > historyCapacity {
				m.massHistory = m.massHistory[1:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) reset() {
	vars := m.sim.State.CoreVariables()
	for i, f := range vars {
		copy(f.Data, m.initial[i].Data)
	}
	m.sim.Time = 0
	m.sim.Iteration = 0
	m.massHistory = m.massHistory[:0]
	m.err = nil
}

// DensityProfile extracts density along x at the center of any higher
// axes.
func DensityProfile(f *field.Field) []float64 {
	grid := f.GridShape()
	nx := grid[0]
	block := len(f.Data) / nx
	mid := block / 2
	out := make([]float64, nx)
	for i := 0; i < nx; i++ {
		out[i] = f.Data[i*block+mid]
	}
	return out
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("MHD SIMULATION") + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = "ABORTED"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	profile := DensityProfile(m.sim.State.Density)
	chart := asciigraph.Plot(profile,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("density along x"),
	)
	s.WriteString(graphStyle.Render(chart) + "\n")

	if len(m.massHistory) > 1 {
		massChart := asciigraph.Plot(m.massHistory,
			asciigraph.Height(4),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("total mass"),
		)
		s.WriteString(graphStyle.Render(massChart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.6fs", m.sim.Time)) + "\n")
	s.WriteString(labelStyle.Render("Iteration") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Iteration)) + "\n")
	s.WriteString(labelStyle.Render("Total mass") + valueStyle.Render(fmt.Sprintf("%.9g", m.mass.Value())) + "\n")
	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  Q:Quit"))
	return s.String()
}
