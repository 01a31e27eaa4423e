// SPDX-License-Identifier: MIT

package embedding

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/matrix"
)

// SymmetryTol bounds |K[i,j] − K[j,i]| accepted before decomposition.
const SymmetryTol = 1e-12

var (
	// ErrBadSize indicates s < 1, h < 1 or h > s.
	ErrBadSize = errors.New("embedding: invalid window length or reduced dimension")

	// ErrBadParam indicates a non-positive λ or a non-finite kernel parameter.
	ErrBadParam = errors.New("embedding: invalid kernel parameter")
)

// Similarity is the kernel value for a time offset d = |i−j|.
func Similarity(d float64, opts Options) float64 {
	c := math.Cos(opts.Omega * d)

	return c * c * math.Exp(-opts.Lambda*d)
}

// Kernel builds the s×s temporal-dependency matrix K.
//
// K depends only on |i−j|, so it is symmetric Toeplitz with K[i,i] = 1.
//
// Errors: ErrBadSize, ErrBadParam.
// Complexity: O(s²).
func Kernel(s int, opts Options) (*mat.SymDense, error) {
	if s < 1 {
		return nil, fmt.Errorf("Kernel: s=%d: %w", s, ErrBadSize)
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("Kernel: %w", err)
	}

	// One value per distinct offset.
	byOffset := make([]float64, s)
	for d := range byOffset {
		byOffset[d] = Similarity(float64(d), opts)
	}

	k := mat.NewSymDense(s, nil)
	var i, j int
	for i = 0; i < s; i++ {
		for j = i; j < s; j++ {
			k.SetSym(i, j, byOffset[j-i])
		}
	}

	return k, nil
}

// ReducedDim returns min(ceil(hFrac·nFeatures), s).
// The result is not clamped from below; callers validate hFrac > 0.
func ReducedDim(hFrac float64, nFeatures, s int) int {
	h := int(math.Ceil(hFrac * float64(nFeatures)))
	if h > s {
		return s
	}

	return h
}

// Build computes the embedding Z (s×h) from the top-h eigenvectors of K by
// eigenvalue magnitude.
//
// Implementation:
//   - Stage 1: validate s ≥ 1, 1 ≤ h ≤ s and the kernel options.
//   - Stage 2: build K, check it is symmetric within SymmetryTol and
//     decompose it with matrix.EigenSymSorted.
//   - Stage 3: copy the leading h columns into a fresh s×h matrix.
//
// Errors: ErrBadSize, ErrBadParam, matrix.ErrAsymmetry, matrix.ErrEigenFailed.
// Complexity: O(s³).
func Build(s, h int, opts Options) (*Embedding, error) {
	if s < 1 || h < 1 || h > s {
		return nil, fmt.Errorf("Build: s=%d h=%d: %w", s, h, ErrBadSize)
	}

	k, err := Kernel(s, opts)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	if err = matrix.ValidateSymmetric(k, SymmetryTol); err != nil {
		return nil, fmt.Errorf("Build: kernel: %w", err)
	}

	values, vectors, err := matrix.EigenSymSorted(k)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	z := mat.DenseCopyOf(vectors.Slice(0, s, 0, h))

	return &Embedding{Z: z, Values: append([]float64(nil), values[:h]...)}, nil
}

func (o Options) validate() error {
	if math.IsNaN(o.Lambda) || math.IsInf(o.Lambda, 0) || o.Lambda <= 0 {
		return fmt.Errorf("lambda=%v: %w", o.Lambda, ErrBadParam)
	}
	if math.IsNaN(o.Omega) || math.IsInf(o.Omega, 0) {
		return fmt.Errorf("omega=%v: %w", o.Omega, ErrBadParam)
	}

	return nil
}
