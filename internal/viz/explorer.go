package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/labkit/internal/physics"
)

const (
	betaStep   = 0.05
	maxHistory = 60
)

// Explorer is an interactive view of a single particle. Every key press
// goes through the particle setters, so soft rejections show up as notices.
type Explorer struct {
	particle *physics.Particle
	initial  float64
	step     float64
	notice   string
	history  []float64
}

func NewExplorer(p *physics.Particle, step float64) Explorer {
	if step <= 0 {
		step = 10
	}
	return Explorer{
		particle: p,
		initial:  p.Momentum(),
		step:     step,
		history:  []float64{p.Beta()},
	}
}

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.notice = ""
	p := m.particle
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		p.SetMomentum(p.Momentum() + m.step)
	case "down", "j":
		if p.SetMomentum(p.Momentum() - m.step) {
			m.notice = "momentum cannot be negative, set to 0"
		}
	case "right", "l":
		m.reject(p.SetBeta(p.Beta() + betaStep))
	case "left", "h":
		m.reject(p.SetBeta(p.Beta() - betaStep))
	case "E":
		m.reject(p.SetEnergy(p.Energy() + m.step))
	case "e":
		m.reject(p.SetEnergy(p.Energy() - m.step))
	case "+", "=":
		m.step *= 10
	case "-", "_":
		if m.step > 1e-6 {
			m.step /= 10
		}
	case "r":
		p.SetMomentum(m.initial)
	default:
		return m, nil
	}

	m.history = append(m.history, p.Beta())
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	return m, nil
}

func (m *Explorer) reject(err error) {
	if err != nil {
		m.notice = err.Error()
	}
}

// Notice returns the message produced by the last key press, if any.
func (m Explorer) Notice() string { return m.notice }

// Particle returns the particle being explored.
func (m Explorer) Particle() *physics.Particle { return m.particle }

func (m Explorer) Step() float64 { return m.step }

func (m Explorer) View() string {
	p := m.particle
	var s strings.Builder

	s.WriteString(Title.Render(strings.ToUpper(p.Name())) + "\n\n")
	rows := []struct {
		label string
		value string
	}{
		{"mass", fmt.Sprintf("%g MeV/c^2", p.Mass())},
		{"charge", fmt.Sprintf("%g e", p.Charge())},
		{"momentum", fmt.Sprintf("%.4f MeV/c", p.Momentum())},
		{"energy", fmt.Sprintf("%.4f MeV", p.Energy())},
		{"beta", fmt.Sprintf("%.6f", p.Beta())},
		{"step", fmt.Sprintf("%g", m.step)},
	}
	for _, r := range rows {
		s.WriteString(MetricLabel.Render(r.label) + MetricValue.Render(r.value) + "\n")
	}
	s.WriteString("\n" + Bar(p.Beta(), 30, "#00ff88") + "\n")
	s.WriteString(Separator(42) + "\n")

	if len(m.history) > 1 {
		s.WriteString("\n" + asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(40),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("beta"),
		) + "\n")
	}

	if m.notice != "" {
		s.WriteString("\n" + Warning.Render(m.notice) + "\n")
	}
	s.WriteString(KeyHint.Render("\n↑↓:momentum ←→:beta e/E:energy +/-:step r:reset q:quit"))
	return Panel.Render(s.String())
}
