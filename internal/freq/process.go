package freq

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextExtension is the only file extension Process accepts.
const TextExtension = ".txt"

type Options struct {
	Histogram    bool `json:"histogram"`
	SkipPreamble bool `json:"skip_preamble"`
	Stats        bool `json:"stats"`
}

// Report is the outcome of processing one file.
type Report struct {
	Path        string      `json:"path"`
	Options     Options     `json:"options"`
	Table       Table       `json:"table"`
	Frequencies []Frequency `json:"frequencies"`
}

// Validate checks that path names an existing text file.
func Validate(path string) error {
	if !strings.EqualFold(filepath.Ext(path), TextExtension) {
		return fmt.Errorf("%w: invalid file extension %q", ErrValidation, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: file not found: %w", ErrValidation, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file: %s", ErrValidation, path)
	}
	return nil
}

type Processor struct {
	logger  *slog.Logger
	printer *message.Printer
}

func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// Process is NewProcessor(nil).Process.
func Process(path string, opts Options, w io.Writer) (*Report, error) {
	return NewProcessor(nil).Process(path, opts, w)
}

// Process validates and reads the file at path, counts its letters and writes
// the statistics (when requested) and the relative frequencies to w. Nothing
// is written unless every step succeeds.
func (p *Processor) Process(path string, opts Options, w io.Writer) (*Report, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}

	text, err := p.read(path)
	if err != nil {
		return nil, err
	}

	body, err := Prepare(text, opts.SkipPreamble)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("beginning of the text", "head", head(body, 100))

	table := Tally(body)
	p.logger.Debug("letter count", "letters", table.TotalLetters, "a", table.Count('a'))

	freqs, err := table.Frequencies()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.logger.Debug("sum of all the frequencies", "sum", Sum(freqs))

	report := &Report{
		Path:        path,
		Options:     opts,
		Table:       *table,
		Frequencies: freqs,
	}
	if err := p.Write(w, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (p *Processor) read(path string) (string, error) {
	p.logger.Info("opening input file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	p.logger.Info("file opened", "bytes", len(data))
	return string(data), nil
}

// Write renders the report: statistics first when requested, then one line
// per letter.
func (p *Processor) Write(w io.Writer, r *Report) error {
	if r.Options.Stats {
		if err := p.WriteStats(w, &r.Table); err != nil {
			return err
		}
	}
	return WriteFrequencies(w, r.Frequencies)
}

func (p *Processor) WriteStats(w io.Writer, t *Table) error {
	lines := []struct {
		label string
		value int
	}{
		{"Number of generic characters", t.TotalChars},
		{"Number of alphabet letters", t.TotalLetters},
		{"Number of lines", t.TotalLines},
		{"Number of words", t.Words},
	}
	if _, err := fmt.Fprintln(w, "### STATS ###"); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := p.printer.Fprintf(w, "%s: %d\n", l.label, l.value); err != nil {
			return err
		}
	}
	return nil
}

func WriteFrequencies(w io.Writer, freqs []Frequency) error {
	if _, err := fmt.Fprintln(w, "The relative frequencies are the following:"); err != nil {
		return err
	}
	for _, f := range freqs {
		if _, err := fmt.Fprintf(w, "%c %.3f%%\n", f.Letter, f.Percent); err != nil {
			return err
		}
	}
	return nil
}

func head(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i] + "..."
		}
		n--
	}
	return s
}
