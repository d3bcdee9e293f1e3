package storage

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/labkit/internal/freq"
)

type ExportData struct {
	ID           string            `json:"id"`
	Source       string            `json:"source"`
	Timestamp    time.Time         `json:"timestamp"`
	Options      freq.Options      `json:"options"`
	TotalChars   int               `json:"total_chars"`
	TotalLetters int               `json:"total_letters"`
	TotalLines   int               `json:"total_lines"`
	Words        int               `json:"words"`
	Frequencies  []ExportFrequency `json:"frequencies"`
}

// ExportFrequency spells the letter out so the JSON stays readable.
type ExportFrequency struct {
	Letter  string  `json:"letter"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

func ExportJSON(w io.Writer, meta *ReportMetadata, report *freq.Report) error {
	data := ExportData{
		ID:           meta.ID,
		Source:       meta.Source,
		Timestamp:    meta.Timestamp,
		Options:      meta.Options,
		TotalChars:   meta.TotalChars,
		TotalLetters: meta.TotalLetters,
		TotalLines:   meta.TotalLines,
		Words:        meta.Words,
		Frequencies:  make([]ExportFrequency, len(report.Frequencies)),
	}

	for i, f := range report.Frequencies {
		data.Frequencies[i] = ExportFrequency{Letter: string(f.Letter), Count: f.Count, Percent: f.Percent}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
