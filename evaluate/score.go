// SPDX-License-Identifier: MIT

package evaluate

import (
	"fmt"

	"github.com/katalvlaran/tdpad/detector"
)

// Score reduces one window result to its anomaly score, the Frobenius norm
// of the final residual matrix.
//
// Errors: ErrMissingResult for a nil result, matrix.ErrNilMatrix for a
// result without R.
func Score(r *detector.Result) (float64, error) {
	if r == nil {
		return 0, ErrMissingResult
	}

	return r.Score()
}

// Assemble maps results, indexed by window, to the score sequence. Every
// slot must be filled.
//
// Errors: ErrNoWindows, ErrMissingResult, and Score errors tagged with the
// window index.
func Assemble(results []*detector.Result) ([]float64, error) {
	if len(results) == 0 {
		return nil, ErrNoWindows
	}
	scores := make([]float64, len(results))
	for i, r := range results {
		v, err := Score(r)
		if err != nil {
			return nil, fmt.Errorf("Assemble: window %d: %w", i, err)
		}
		scores[i] = v
	}

	return scores, nil
}
