package export

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/san-kum/labkit/internal/freq"
)

const (
	svgMargin    = 30.0
	svgLabelSize = 12
)

// HistogramToSVG renders the frequencies as a vertical bar chart.
func HistogramToSVG(freqs []freq.Frequency, width, height int, fillColor string) string {
	if len(freqs) == 0 {
		return ""
	}

	maxPct := 0.0
	for _, f := range freqs {
		if f.Percent > maxPct {
			maxPct = f.Percent
		}
	}
	if maxPct == 0 {
		maxPct = 1
	}

	plotW := max(float64(width)-2*svgMargin, 0)
	plotH := max(float64(height)-2*svgMargin, 0)
	slot := plotW / float64(len(freqs))
	baseY := svgMargin + plotH

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="%.1f" y="%.1f" fill="#cccccc" font-size="%d" transform="rotate(-90 %.1f %.1f)">Frequencies (%%)</text>
<text x="%.1f" y="%.1f" fill="#cccccc" font-size="%d" text-anchor="middle">Letter</text>
<g fill="%s">
`, width, height, width, height,
		svgMargin/2, float64(height)/2, svgLabelSize, svgMargin/2, float64(height)/2,
		float64(width)/2, float64(height)-4, svgLabelSize,
		html.EscapeString(fillColor)))

	for i, f := range freqs {
		h := f.Percent / maxPct * plotH
		x := svgMargin + float64(i)*slot
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%c %.3f%%</title></rect>
`, x, baseY-h, slot, h, f.Letter, f.Percent))
	}
	sb.WriteString("</g>\n<g fill=\"#cccccc\" font-size=\"10\" text-anchor=\"middle\">\n")

	for i, f := range freqs {
		cx := svgMargin + (float64(i)+0.5)*slot
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%c</text>
`, cx, baseY+svgLabelSize, f.Letter))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteHistogramSVG renders the histogram and writes it to path.
func WriteHistogramSVG(path string, freqs []freq.Frequency, width, height int, fillColor string) error {
	svg := HistogramToSVG(freqs, width, height, fillColor)
	if svg == "" {
		return fmt.Errorf("export: nothing to render")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
