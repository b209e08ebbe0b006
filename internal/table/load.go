// Package table reads decision tables from delimited files and writes
// evaluated result tables.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tensorplex-labs/topsis/internal/topsis"
)

// Load reads and validates the table at path. The first column holds the
// alternative identifiers and every other column must be numeric.
func Load(path string, opts ...Option) (*Table, error) {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", topsis.ErrFileNotFound, err)
	}
	defer f.Close() //nolint:errcheck

	_, compression := DetectFormat(path)
	r, err := decompressReader(f, compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", topsis.ErrMalformedInput, path, err)
	}
	defer r.Close() //nolint:errcheck

	t, err := Read(r, opts...)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("alternatives", len(t.Rows)).
		Int("criteria", len(t.Header)-1).
		Str("delimiter", string(o.delimiter)).
		Msg("loaded decision table")

	return t, nil
}

// Read parses a delimited table from r. A leading byte order mark is
// honoured and stripped.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	o := newOptions(opts)

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = o.delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %w", topsis.ErrMalformedInput, err)
		}
		return nil, fmt.Errorf("%w: read table: %w", topsis.ErrUnexpected, err)
	}

	return FromRecords(records)
}

// FromRecords validates a header row followed by data rows.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: input is empty (no header row)", topsis.ErrMalformedInput)
	}

	header := records[0]
	if len(header) < topsis.MinColumns {
		return nil, fmt.Errorf("%w: input file must have at least three columns (ID, Criteria1, Criteria2, ...), got %d",
			topsis.ErrMalformedInput, len(header))
	}
	if len(records) == 1 {
		return nil, fmt.Errorf("%w: input has a header but no alternatives", topsis.ErrMalformedInput)
	}

	t := &Table{
		Header: append([]string(nil), header...),
		Rows:   make([][]string, 0, len(records)-1),
		values: make([][]float64, 0, len(records)-1),
	}

	for rowIdx, record := range records[1:] {
		line := rowIdx + 2
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", topsis.ErrMalformedInput, line, len(record), len(header))
		}

		values := make([]float64, len(record)-1)
		for colIdx, cell := range record[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, column %q: %w", topsis.ErrMalformedInput, line, header[colIdx+1], err)
			}
			values[colIdx] = v
		}

		t.Rows = append(t.Rows, append([]string(nil), record...))
		t.values = append(t.values, values)
	}

	return t, nil
}

func parseCell(cell string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", cell)
	}
	return v, nil
}

// Criteria returns the criterion column labels.
func (t *Table) Criteria() []string {
	return t.Header[1:]
}

// Alternatives returns the identifier column.
func (t *Table) Alternatives() []string {
	ids := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		ids[i] = row[0]
	}
	return ids
}

func (t *Table) Matrix() (topsis.DecisionMatrix, error) {
	return topsis.NewDecisionMatrix(t.Alternatives(), t.Criteria(), t.values)
}
