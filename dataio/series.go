// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/matrix"
)

var (
	// ErrTooFewColumns indicates fewer than three columns (index, ≥1 feature, label).
	ErrTooFewColumns = errors.New("dataio: need index, at least one feature and label columns")

	// ErrNoRows indicates a file with a header but no data rows.
	ErrNoRows = errors.New("dataio: no data rows")

	// ErrRaggedRow indicates a row whose width differs from the header.
	ErrRaggedRow = errors.New("dataio: row width differs from header")

	// ErrParse indicates a feature cell that is not a number.
	ErrParse = errors.New("dataio: cannot parse feature value")
)

// ReadSeries decodes a CSV table into an n×p series, dropping the first
// (index) and last (label) columns.
//
// Errors: ErrTooFewColumns, ErrNoRows, ErrRaggedRow, ErrParse,
// matrix.ErrNaNInf, and reader errors.
func ReadSeries(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ReadSeries: %w", ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadSeries: header: %w", err)
	}
	header = append([]string(nil), header...)
	width := len(header)
	if width < 3 {
		return nil, fmt.Errorf("ReadSeries: %d columns: %w", width, ErrTooFewColumns)
	}
	p := width - 2
	// Column count is enforced by us so the error names our sentinel.
	cr.FieldsPerRecord = -1

	var data []float64
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadSeries: %w", err)
		}
		line++
		if len(rec) != width {
			return nil, fmt.Errorf("ReadSeries: line %d has %d fields, want %d: %w", line, len(rec), width, ErrRaggedRow)
		}
		for j, cell := range rec[1 : width-1] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("ReadSeries: line %d column %q: %w: %w", line, header[j+1], ErrParse, err)
			}
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ReadSeries: %w", ErrNoRows)
	}

	series := mat.NewDense(len(data)/p, p, data)
	if err = matrix.ValidateFinite(series); err != nil {
		return nil, fmt.Errorf("ReadSeries: %w", err)
	}

	return series, nil
}

// WriteScores writes one score per line, shortest round-trip formatting,
// newline-separated without a trailing separator.
func WriteScores(w io.Writer, scores []float64) error {
	var b strings.Builder
	for i, v := range scores {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("WriteScores: %w", err)
	}

	return nil
}
