// SPDX-License-Identifier: MIT
// Package matrix: pseudo-inverse, diagonal builders and norm reductions.
//
// Notes:
//   - Pinv follows the NumPy convention: singular values σ ≤ PinvRcond·σmax
//     are treated as exact zeros, which is what makes rank-deficient normal
//     equations (WᵗW for short windows) solvable.
//   - All results are freshly allocated; inputs stay untouched.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PinvRcond is the relative cutoff for small singular values in Pinv.
const PinvRcond = 1e-15

// Pinv returns the Moore–Penrose pseudo-inverse of a (m×n → n×m).
//
// Implementation:
//   - Stage 1: thin SVD a = U·Σ·Vᵗ.
//   - Stage 2: Σ⁺ = 1/σ for σ > PinvRcond·σmax, else 0.
//   - Stage 3: a⁺ = V·Σ⁺·Uᵗ (V columns scaled in place, then one Mul).
//
// Errors: ErrNilMatrix, ErrSVDFailed (wrapped with "Pinv").
// Complexity: O(m·n·min(m,n)).
func Pinv(a mat.Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, matrixErrorf(opPinv, ErrSVDFailed)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	// Values are returned in descending order; σmax is the first.
	cutoff := 0.0
	if len(sigma) > 0 {
		cutoff = PinvRcond * sigma[0]
	}

	rows, _ := v.Dims()
	var i, k int
	var inv float64
	for k = range sigma {
		inv = 0
		if sigma[k] > cutoff {
			inv = 1 / sigma[k]
		}
		for i = 0; i < rows; i++ {
			v.Set(i, k, v.At(i, k)*inv)
		}
	}

	var out mat.Dense
	out.Mul(&v, u.T())

	return &out, nil
}

// PinvDiag returns the pseudo-inverse of diag(d): 1/d[i] where d[i] is
// non-zero (relative to PinvRcond·max|d|), 0 otherwise.
//
// Complexity: O(n).
func PinvDiag(d []float64) []float64 {
	out := make([]float64, len(d))
	maxAbs := 0.0
	for _, x := range d {
		maxAbs = math.Max(maxAbs, math.Abs(x))
	}
	cutoff := PinvRcond * maxAbs
	for i, x := range d {
		if math.Abs(x) > cutoff {
			out[i] = 1 / x
		}
	}

	return out
}

// Identity returns the n×n identity as a diagonal matrix.
func Identity(n int) *mat.DiagDense {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1
	}

	return mat.NewDiagDense(n, d)
}

// ScaledDiag returns diag(scale·v). v is copied.
func ScaledDiag(scale float64, v []float64) *mat.DiagDense {
	d := make([]float64, len(v))
	for i, x := range v {
		d[i] = scale * x
	}

	return mat.NewDiagDense(len(d), d)
}

// DiagValues copies the diagonal of d into a fresh slice.
func DiagValues(d *mat.DiagDense) []float64 {
	n := d.Diag()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = d.At(i, i)
	}

	return out
}

// RowNorms returns the Euclidean norm of every row of a.
//
// Errors: ErrNilMatrix (wrapped with "RowNorms").
// Complexity: O(r·c).
func RowNorms(a mat.Matrix) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opRowNorms, err)
	}
	r, c := a.Dims()
	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, a)
		out[i] = floats.Norm(row, 2)
	}

	return out, nil
}

// ColNorms returns the Euclidean norm of every column of a, i.e. the row
// norms of aᵗ.
//
// Errors: ErrNilMatrix (wrapped with "ColNorms").
// Complexity: O(r·c).
func ColNorms(a mat.Matrix) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opColNorms, err)
	}
	r, c := a.Dims()
	out := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, a)
		out[j] = floats.Norm(col, 2)
	}

	return out, nil
}

// Frobenius returns ‖a‖_F.
//
// Errors: ErrNilMatrix (wrapped with "Frobenius").
func Frobenius(a mat.Matrix) (float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}

	return mat.Norm(a, 2), nil
}
