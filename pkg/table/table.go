// Package table loads the directory-to-line-count lookup table from CSV.
package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Count is the line count recorded for a directory. Real counts are
// non-negative; NotApplicable is the single out-of-band value.
type Count int

// NotApplicable marks a directory whose line count is intentionally absent.
const NotApplicable Count = -1

// IsNotApplicable reports whether the count is the not-applicable marker.
func (c Count) IsNotApplicable() bool {
	return c == NotApplicable
}

// Table maps directory paths to line counts. Immutable after construction.
type Table struct {
	counts map[string]Count
}

// New builds a Table from an existing mapping. The mapping is copied.
func New(counts map[string]Count) *Table {
	copied := make(map[string]Count, len(counts))
	for dir, count := range counts {
		copied[dir] = count
	}
	return &Table{counts: copied}
}

// Lookup returns the count recorded for a directory path.
func (t *Table) Lookup(directory string) (Count, bool) {
	count, ok := t.counts[directory]
	return count, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.counts)
}

type loadOptions struct {
	comma    rune
	warnings io.Writer
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithComma sets the CSV field delimiter (default ',').
func WithComma(comma rune) LoadOption {
	return func(o *loadOptions) {
		o.comma = comma
	}
}

// WithWarnings sets the writer for row-level warning notices (default stderr).
func WithWarnings(w io.Writer) LoadOption {
	return func(o *loadOptions) {
		o.warnings = w
	}
}

// Load reads a CSV file into a Table.
//
// Each row has the shape [directory, value, ...]; extra columns are ignored.
// A value of all decimal digits is stored as a line count; a value equal to
// "N/A" (any case) is stored as the not-applicable marker. Malformed rows are
// skipped with a warning notice. Only a failure to read the file itself is
// returned as an error. Later rows with a duplicate directory overwrite
// earlier ones.
func Load(ctx context.Context, path string, opts ...LoadOption) (*Table, error) {
	o := loadOptions{comma: ',', warnings: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided CSV path is expected
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = o.comma
	reader.FieldsPerRecord = -1

	counts := make(map[string]Count)
	rowNum := 0

	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				fmt.Fprintf(o.warnings, "Warning: skipping malformed row %d: %v\n", rowNum, err)
				continue
			}
			return nil, fmt.Errorf("reading CSV file: %w", err)
		}

		if len(row) < 2 {
			fmt.Fprintf(o.warnings, "Warning: skipping malformed row %d: %v\n", rowNum, row)
			continue
		}

		directory := strings.TrimSpace(row[0])
		value := strings.TrimSpace(row[1])

		switch {
		case isDigits(value):
			n, err := strconv.Atoi(value)
			if err != nil {
				// Digits only, so this can only be an out-of-range value.
				fmt.Fprintf(o.warnings, "Warning: skipping row %d: line count %q out of range\n", rowNum, value)
				continue
			}
			counts[directory] = Count(n)
		case strings.EqualFold(value, "N/A"):
			counts[directory] = NotApplicable
		default:
			fmt.Fprintf(o.warnings, "Warning: skipping row %d: invalid line count %q\n", rowNum, value)
		}
	}

	return &Table{counts: counts}, nil
}

// isDigits reports whether s is non-empty and entirely decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
