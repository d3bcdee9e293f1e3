package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/labkit/internal/freq"
)

type HistogramOptions struct {
	Width  int
	Height int
	Color  string
}

// Histogram renders one horizontal bar per letter. Bars are scaled so the
// most frequent letter fills the full width.
func Histogram(freqs []freq.Frequency, opts HistogramOptions) string {
	if len(freqs) == 0 {
		return ""
	}
	width := opts.Width
	if width <= 0 {
		width = 50
	}

	maxPct := 0.0
	for _, f := range freqs {
		if f.Percent > maxPct {
			maxPct = f.Percent
		}
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Frequencies (%)") + "\n")
	for _, f := range freqs {
		fraction := 0.0
		if maxPct > 0 {
			fraction = f.Percent / maxPct
		}
		fmt.Fprintf(&sb, "%c │%s %6.3f%%\n", f.Letter, Bar(fraction, width, lipgloss.Color(opts.Color)), f.Percent)
	}
	sb.WriteString(Subtle.Render("Letter"))
	return sb.String()
}

// Profile plots the frequencies in alphabetical order as a line chart.
func Profile(freqs []freq.Frequency, opts HistogramOptions) string {
	if len(freqs) == 0 {
		return ""
	}
	data := make([]float64, len(freqs))
	letters := make([]string, len(freqs))
	for i, f := range freqs {
		data[i] = f.Percent
		letters[i] = string(f.Letter)
	}

	height := opts.Height
	if height <= 0 {
		height = 12
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.Caption("frequencies (%) by letter: "+strings.Join(letters, "")),
	)
	return graph
}
