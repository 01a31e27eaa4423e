// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// EigenSymSorted decomposes the symmetric matrix a and returns its
// eigenvalues together with the matching eigenvectors (as columns), both
// ordered by descending |λ|. Ties keep the solver's original order.
//
// The ordering is part of the contract: callers slice the leading columns to
// obtain the dominant modes and must not depend on the raw solver order.
//
// Errors: ErrNilMatrix, ErrEigenFailed (wrapped with "EigenSymSorted").
// Complexity: O(n³) time, O(n²) memory.
func EigenSymSorted(a *mat.SymDense) ([]float64, *mat.Dense, error) {
	if a == nil {
		return nil, nil, matrixErrorf(opEigen, ErrNilMatrix)
	}

	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}
	raw := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	n := len(raw)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return math.Abs(raw[order[x]]) > math.Abs(raw[order[y]])
	})

	values := make([]float64, n)
	vectors := mat.NewDense(n, n, nil)
	col := make([]float64, n)
	for dst, src := range order {
		values[dst] = raw[src]
		mat.Col(col, src, &vecs)
		vectors.SetCol(dst, col)
	}

	return values, vectors, nil
}
