// SPDX-License-Identifier: MIT

package detector

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/matrix"
)

var (
	// ErrBadParam indicates a negative or non-finite weight, or MaxIt < 1.
	ErrBadParam = errors.New("detector: invalid solver parameter")

	// ErrDimensionMismatch indicates inputs whose shapes do not line up
	// (W s×p, Z s×h, P₀ p×h, R₀ h×s).
	ErrDimensionMismatch = errors.New("detector: dimension mismatch")
)

// Solve runs the alternating least-squares factorization of window w.
//
// Inputs:
//   - w: window, s×p (read only).
//   - z: shared temporal embedding, s×h (read only).
//   - p0: initial projection template, p×h (copied).
//   - r0: initial residual template, h×s (copied).
//
// Dp and Dr always start from the identity; any previous reweighting is
// discarded.
//
// Errors: ErrBadParam, ErrDimensionMismatch, matrix.ErrSVDFailed (propagated
// unchanged in the chain; no local recovery).
// Complexity: O(MaxIt·(p³ + s·p·h + s·h)) time.
func Solve(w, z, p0, r0 mat.Matrix, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	s, p, err := shapes(w, z, p0, r0)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	var (
		pi   = mat.DenseCopyOf(p0)
		ri   = mat.DenseCopyOf(r0)
		dp   = matrix.Identity(p)
		dr   = matrix.Identity(s)
		loss = make([]float64, opts.MaxIt)
	)

	// WᵗW is loop-invariant.
	var wtw mat.Dense
	wtw.Mul(w.T(), w)

	var (
		lhs    mat.Dense // WᵗW + α·Dp
		target mat.Dense // Rᵗ + Z
		rhs    mat.Dense // Wᵗ·(Rᵗ + Z)
		wp     mat.Dense // W·P
		resid  mat.Dense // W·P − Z, then W·P − Rᵗ − Z
		alphaD mat.Dense
		rowP   []float64
		rowR   []float64
		colR   []float64
		inv    []float64
	)

	start := time.Now()
	for t := 0; t < opts.MaxIt; t++ {
		// Step 1: P = pinv(WᵗW + α·Dp) · Wᵗ·(Rᵗ + Z)
		alphaD.Scale(opts.Alpha, dp)
		lhs.Add(&wtw, &alphaD)
		pinvLHS, err := matrix.Pinv(&lhs)
		if err != nil {
			return nil, fmt.Errorf("Solve: round %d: update P: %w", t, err)
		}
		target.Add(ri.T(), z)
		rhs.Mul(w.T(), &target)
		pi.Mul(pinvLHS, &rhs)

		// Step 2: R = (W·P − Z)ᵗ · pinv(I + β·Dr)ᵗ. The penalty matrix is
		// diagonal, so its pseudo-inverse is the entry-wise reciprocal and
		// the right-multiplication scales the columns of (W·P − Z)ᵗ.
		wp.Mul(w, pi)
		resid.Sub(&wp, z)
		inv = matrix.PinvDiag(shiftedDiag(opts.Beta, dr))
		ri.Copy(resid.T())
		scaleCols(ri, inv)

		// Step 3: reweight from the row norms of P and Rᵗ.
		if rowP, err = matrix.RowNorms(pi); err != nil {
			return nil, fmt.Errorf("Solve: round %d: %w", t, err)
		}
		if colR, err = matrix.ColNorms(ri); err != nil {
			return nil, fmt.Errorf("Solve: round %d: %w", t, err)
		}
		dp = matrix.ScaledDiag(0.5, rowP)
		dr = matrix.ScaledDiag(0.5, colR)

		// Step 4: objective.
		if rowR, err = matrix.RowNorms(ri); err != nil {
			return nil, fmt.Errorf("Solve: round %d: %w", t, err)
		}
		resid.Sub(&wp, ri.T())
		resid.Sub(&resid, z)
		loss[t] = mat.Norm(&resid, 2) + opts.Alpha*floats.Sum(rowP) + opts.Beta*floats.Sum(rowR)
	}

	return &Result{
		P:       pi,
		R:       ri,
		Dp:      dp,
		Dr:      dr,
		Loss:    loss,
		Elapsed: time.Since(start),
		Options: opts,
	}, nil
}

// shiftedDiag returns the diagonal of I + β·D.
func shiftedDiag(beta float64, d *mat.DiagDense) []float64 {
	out := matrix.DiagValues(d)
	for i := range out {
		out[i] = 1 + beta*out[i]
	}

	return out
}

// scaleCols multiplies column j of m by f[j] in place.
func scaleCols(m *mat.Dense, f []float64) {
	r, c := m.Dims()
	var i, j int
	for i = 0; i < r; i++ {
		row := m.RawRowView(i)
		for j = 0; j < c; j++ {
			row[j] *= f[j]
		}
	}
}

// shapes validates the operand shapes and returns the window dims (s, p).
func shapes(w, z, p0, r0 mat.Matrix) (s, p int, err error) {
	for _, m := range []mat.Matrix{w, z, p0, r0} {
		if err = matrix.ValidateNotNil(m); err != nil {
			return 0, 0, err
		}
	}
	s, p = w.Dims()
	zs, h := z.Dims()
	if zs != s {
		return 0, 0, fmt.Errorf("Z has %d rows, window has %d: %w", zs, s, ErrDimensionMismatch)
	}
	if err = matrix.ValidateShape(p0, p, h); err != nil {
		return 0, 0, fmt.Errorf("initial P: %w: %w", ErrDimensionMismatch, err)
	}
	if err = matrix.ValidateShape(r0, h, s); err != nil {
		return 0, 0, fmt.Errorf("initial R: %w: %w", ErrDimensionMismatch, err)
	}

	return s, p, nil
}

func (o Options) validate() error {
	if math.IsNaN(o.Alpha) || math.IsInf(o.Alpha, 0) || o.Alpha < 0 {
		return fmt.Errorf("alpha=%v: %w", o.Alpha, ErrBadParam)
	}
	if math.IsNaN(o.Beta) || math.IsInf(o.Beta, 0) || o.Beta < 0 {
		return fmt.Errorf("beta=%v: %w", o.Beta, ErrBadParam)
	}
	if o.MaxIt < 1 {
		return fmt.Errorf("maxIt=%d: %w", o.MaxIt, ErrBadParam)
	}

	return nil
}
