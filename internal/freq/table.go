package freq

import (
	"fmt"
	"strings"
)

// PreambleMarker ends the license block of plain-text archive books.
const PreambleMarker = "***"

// Alphabet is the set of letters that are counted, in report order.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Table holds the raw counts of a single pass over a text.
type Table struct {
	Counts       [len(Alphabet)]int
	TotalChars   int
	TotalLetters int
	TotalLines   int
	Words        int
}

// Frequency is the share of one letter among all counted letters.
type Frequency struct {
	Letter  rune    `json:"letter"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SkipPreamble drops everything up to and including the first newline that
// follows the first preamble marker. If no newline follows the marker the
// whole text is preamble and the result is empty.
func SkipPreamble(text string) (string, error) {
	idx := strings.Index(text, PreambleMarker)
	if idx < 0 {
		return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrPreambleNotFound, PreambleMarker)
	}
	nl := strings.IndexByte(text[idx:], '\n')
	if nl < 0 {
		return "", nil
	}
	return text[idx+nl+1:], nil
}

// Prepare lowercases text and, if requested, drops the preamble.
func Prepare(text string, skipPreamble bool) (string, error) {
	text = strings.ToLower(text)
	if skipPreamble {
		return SkipPreamble(text)
	}
	return text, nil
}

// Count prepares text and tallies it.
func Count(text string, skipPreamble bool) (*Table, error) {
	body, err := Prepare(text, skipPreamble)
	if err != nil {
		return nil, err
	}
	return Tally(body), nil
}

// Tally counts every character of an already prepared text in a single pass.
// Words are counted with a separate whitespace split.
func Tally(text string) *Table {
	t := &Table{}
	for _, c := range text {
		t.TotalChars++
		if c >= 'a' && c <= 'z' {
			t.TotalLetters++
			t.Counts[c-'a']++
		}
		if c == '\n' {
			t.TotalLines++
		}
	}
	t.Words = len(strings.Fields(text))
	return t
}

// Count returns the absolute count of a letter, or zero outside the alphabet.
func (t *Table) Count(letter rune) int {
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return t.Counts[letter-'a']
}

// Frequencies converts the counts to percentages of all letters in
// alphabetical order.
func (t *Table) Frequencies() ([]Frequency, error) {
	if t.TotalLetters == 0 {
		return nil, ErrDivisionByZero
	}
	out := make([]Frequency, len(Alphabet))
	total := float64(t.TotalLetters)
	for i, letter := range Alphabet {
		out[i] = Frequency{
			Letter:  letter,
			Count:   t.Counts[i],
			Percent: float64(t.Counts[i]) / total * 100,
		}
	}
	return out, nil
}

// Sum adds up the percentages; it should be close to 100.
func Sum(freqs []Frequency) float64 {
	sum := 0.0
	for _, f := range freqs {
		sum += f.Percent
	}
	return sum
}
