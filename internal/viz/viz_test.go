package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/labkit/internal/freq"
	"github.com/san-kum/labkit/internal/physics"
)

func sampleFrequencies(t *testing.T) []freq.Frequency {
	t.Helper()
	table, err := freq.Count("aabbc", false)
	if err != nil {
		t.Fatal(err)
	}
	freqs, err := table.Frequencies()
	if err != nil {
		t.Fatal(err)
	}
	return freqs
}

func TestBar(t *testing.T) {
	tests := []struct {
		fraction float64
		filled   int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 10},
		{-1, 0},
	}

	for _, tt := range tests {
		bar := Bar(tt.fraction, 10, "")
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("Bar(%v) filled = %d, want %d", tt.fraction, got, tt.filled)
		}
		if got := strings.Count(bar, "░"); got != 10-tt.filled {
			t.Errorf("Bar(%v) empty = %d, want %d", tt.fraction, got, 10-tt.filled)
		}
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(20); !strings.Contains(got, " ◆ ") || strings.Count(got, "─") != 14 {
		t.Errorf("unexpected separator %q", got)
	}
	if got := Separator(4); strings.Contains(got, "◆") || strings.Count(got, "─") != 4 {
		t.Errorf("narrow separator should be a plain rule, got %q", got)
	}
}

func TestHistogram(t *testing.T) {
	out := Histogram(sampleFrequencies(t), HistogramOptions{Width: 10})

	lines := strings.Split(out, "\n")
	var rows []string
	for _, l := range lines {
		if strings.Contains(l, "│") {
			rows = append(rows, l)
		}
	}
	if len(rows) != 26 {
		t.Fatalf("expected 26 bars, got %d", len(rows))
	}
	if strings.Count(rows[0], "█") != 10 {
		t.Errorf("most frequent letter should fill the bar: %q", rows[0])
	}
	if strings.Count(rows[2], "█") != 5 {
		t.Errorf("c should fill half the bar: %q", rows[2])
	}
	if strings.Count(rows[25], "█") != 0 {
		t.Errorf("z should be empty: %q", rows[25])
	}
	if !strings.Contains(rows[0], "40.000%") {
		t.Errorf("missing percentage in %q", rows[0])
	}
}

func TestHistogram_Empty(t *testing.T) {
	if Histogram(nil, HistogramOptions{}) != "" {
		t.Error("expected empty histogram")
	}
	if Profile(nil, HistogramOptions{}) != "" {
		t.Error("expected empty profile")
	}
}

func TestProfile(t *testing.T) {
	out := Profile(sampleFrequencies(t), HistogramOptions{Height: 5})
	if !strings.Contains(out, "abcdefghijklmnopqrstuvwxyz") {
		t.Errorf("missing caption in %q", out)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Explorer, keys ...string) Explorer {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Explorer)
	}
	return m
}

func TestExplorer_Momentum(t *testing.T) {
	p, _ := physics.NewProton(5)
	m := NewExplorer(p, 10)

	m = press(m, "up")
	if p.Momentum() != 15 {
		t.Errorf("expected momentum 15, got %f", p.Momentum())
	}

	m = press(m, "down", "down")
	if p.Momentum() != 0 {
		t.Errorf("expected clamped momentum, got %f", p.Momentum())
	}
	if m.Notice() == "" {
		t.Error("expected a clamp notice")
	}

	m = press(m, "r")
	if p.Momentum() != 5 {
		t.Errorf("expected reset to 5, got %f", p.Momentum())
	}
	if m.Notice() != "" {
		t.Errorf("notice should clear, got %q", m.Notice())
	}
}

func TestExplorer_SoftRejections(t *testing.T) {
	p, _ := physics.NewProton(0)
	m := NewExplorer(p, 10)

	m = press(m, "left")
	if m.Notice() == "" {
		t.Error("expected beta rejection notice")
	}
	if p.Momentum() != 0 {
		t.Errorf("momentum changed on rejection: %f", p.Momentum())
	}

	m = press(m, "e")
	if m.Notice() == "" {
		t.Error("expected energy rejection notice")
	}

	m = press(m, "right")
	if p.Beta() < 0.049 || p.Beta() > 0.051 {
		t.Errorf("expected beta 0.05, got %f", p.Beta())
	}
}

func TestExplorer_StepAndQuit(t *testing.T) {
	p, _ := physics.NewAlpha(0)
	m := NewExplorer(p, 10)

	m = press(m, "+")
	if m.Step() != 100 {
		t.Errorf("expected step 100, got %f", m.Step())
	}
	m = press(m, "-", "-")
	if m.Step() != 1 {
		t.Errorf("expected step 1, got %f", m.Step())
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestExplorer_View(t *testing.T) {
	p, _ := physics.NewProton(200)
	m := press(NewExplorer(p, 10), "up")

	if m.Particle() != p {
		t.Fatal("explorer should hold the particle it was built with")
	}

	view := m.View()
	for _, want := range []string{"PROTON", "momentum", "210.0000 MeV/c", "beta", "◆"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
