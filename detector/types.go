// SPDX-License-Identifier: MIT

package detector

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/matrix"
)

// Defaults for the regularization weights and iteration budget.
const (
	DefaultAlpha = 0.01
	DefaultBeta  = 0.01
	DefaultMaxIt = 10
)

// Options configures one Solve call.
//
// Fields:
//   - Alpha: weight of the row-sparsity penalty on P (≥ 0).
//   - Beta: weight of the row-sparsity penalty on R (≥ 0).
//   - MaxIt: exact number of alternating rounds (≥ 1).
type Options struct {
	Alpha float64
	Beta  float64
	MaxIt int
}

// DefaultOptions returns {Alpha: 0.01, Beta: 0.01, MaxIt: 10}.
func DefaultOptions() Options {
	return Options{Alpha: DefaultAlpha, Beta: DefaultBeta, MaxIt: DefaultMaxIt}
}

// Result is everything one Solve call produced.
//
//   - P: final projection, p×h.
//   - R: final residual, h×s.
//   - Dp, Dr: final reweighting diagonals (p×p, s×s), non-negative.
//   - Loss: per-round objective, exactly MaxIt entries.
//   - Elapsed: wall time spent in the iteration loop.
//   - Options: the parameters used.
type Result struct {
	P       *mat.Dense
	R       *mat.Dense
	Dp      *mat.DiagDense
	Dr      *mat.DiagDense
	Loss    []float64
	Elapsed time.Duration
	Options Options
}

// Score returns the window's anomaly score ‖R‖_F.
//
// Errors: matrix.ErrNilMatrix when R is missing.
func (r *Result) Score() (float64, error) {
	score, err := matrix.Frobenius(r.R)
	if err != nil {
		return 0, fmt.Errorf("Score: %w", err)
	}

	return score, nil
}

// FinalLoss returns the objective after the last round.
func (r *Result) FinalLoss() float64 {
	return r.Loss[len(r.Loss)-1]
}
