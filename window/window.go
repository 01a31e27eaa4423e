// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptySeries indicates a nil or zero-length series.
	ErrEmptySeries = errors.New("window: series is empty")

	// ErrBadSize indicates a window length below 1.
	ErrBadSize = errors.New("window: window length must be >= 1")

	// ErrWindowTooLarge indicates a window longer than the series.
	ErrWindowTooLarge = errors.New("window: window length exceeds series length")
)

// Count returns the number of stride-1 windows of length s over n rows,
// or 0 when s is not in [1, n].
func Count(n, s int) int {
	if s < 1 || s > n {
		return 0
	}

	return n - s + 1
}

// Extract returns the n−s+1 windows of length s over series.
// Window i is the row range [i, i+s) and aliases the series storage.
//
// Errors: ErrEmptySeries, ErrBadSize, ErrWindowTooLarge.
// Complexity: O(n) time, O(n) extra memory for the view headers.
func Extract(series *mat.Dense, s int) ([]*mat.Dense, error) {
	if series == nil || series.IsEmpty() {
		return nil, ErrEmptySeries
	}
	if s < 1 {
		return nil, fmt.Errorf("Extract: s=%d: %w", s, ErrBadSize)
	}
	n, p := series.Dims()
	if s > n {
		return nil, fmt.Errorf("Extract: s=%d, n=%d: %w", s, n, ErrWindowTooLarge)
	}

	out := make([]*mat.Dense, Count(n, s))
	for i := range out {
		out[i] = series.Slice(i, i+s, 0, p).(*mat.Dense)
	}

	return out, nil
}
