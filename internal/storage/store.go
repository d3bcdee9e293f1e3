package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/xid"
	"github.com/san-kum/labkit/internal/freq"
)

const (
	metadataFile    = "metadata.json"
	frequenciesFile = "frequencies.csv"
)

// ErrNotFound indicates an unknown report id.
var ErrNotFound = errors.New("storage: report not found")

// Store keeps frequency reports on disk, one directory per report.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ReportMetadata struct {
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	Timestamp    time.Time    `json:"timestamp"`
	Options      freq.Options `json:"options"`
	TotalChars   int          `json:"total_chars"`
	TotalLetters int          `json:"total_letters"`
	TotalLines   int          `json:"total_lines"`
	Words        int          `json:"words"`
}

var newID = func() string { return xid.New().String() }

// Save writes the report and returns its new id. A failed save leaves no
// report directory behind.
func (s *Store) Save(report *freq.Report) (string, error) {
	id := newID()
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	source, err := filepath.Abs(report.Path)
	if err != nil {
		source = report.Path
	}

	meta := ReportMetadata{
		ID:           id,
		Source:       source,
		Timestamp:    time.Now(),
		Options:      report.Options,
		TotalChars:   report.Table.TotalChars,
		TotalLetters: report.Table.TotalLetters,
		TotalLines:   report.Table.TotalLines,
		Words:        report.Table.Words,
	}

	err = writeFile(filepath.Join(dir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(dir, frequenciesFile), func(w io.Writer) error {
			return WriteCSV(w, report.Frequencies)
		})
	}
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("save report %s: %w", id, err)
	}
	return id, nil
}

// writeFile creates path, runs write on it and reports the first of the
// write and close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// WriteCSV writes one row per letter with a header.
func WriteCSV(out io.Writer, freqs []freq.Frequency) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"letter", "count", "percent"}); err != nil {
		return err
	}
	for _, f := range freqs {
		row := []string{
			string(f.Letter),
			strconv.Itoa(f.Count),
			strconv.FormatFloat(f.Percent, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable report, oldest first.
func (s *Store) List() ([]ReportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ReportMetadata{}, nil
		}
		return nil, err
	}

	reports := make([]ReportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		reports = append(reports, *meta)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})
	return reports, nil
}

func (s *Store) Load(id string) (*ReportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta ReportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrequencies(id string) ([]freq.Frequency, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, frequenciesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []freq.Frequency{}, nil
	}

	freqs := make([]freq.Frequency, 0, len(records)-1)
	for _, record := range records[1:] {
		letter := []rune(record[0])
		if len(letter) != 1 {
			return nil, fmt.Errorf("storage: bad letter %q in %s", record[0], id)
		}
		count, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("storage: bad count in %s: %w", id, err)
		}
		pct, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad percent in %s: %w", id, err)
		}
		freqs = append(freqs, freq.Frequency{Letter: letter[0], Count: count, Percent: pct})
	}
	return freqs, nil
}

// LoadReport rebuilds a freq.Report from the stored files.
func (s *Store) LoadReport(id string) (*ReportMetadata, *freq.Report, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, nil, err
	}
	freqs, err := s.LoadFrequencies(id)
	if err != nil {
		return nil, nil, err
	}

	report := &freq.Report{
		Path:        meta.Source,
		Options:     meta.Options,
		Frequencies: freqs,
		Table: freq.Table{
			TotalChars:   meta.TotalChars,
			TotalLetters: meta.TotalLetters,
			TotalLines:   meta.TotalLines,
			Words:        meta.Words,
		},
	}
	for _, f := range freqs {
		if f.Letter >= 'a' && f.Letter <= 'z' {
			report.Table.Counts[f.Letter-'a'] = f.Count
		}
	}
	return meta, report, nil
}
