// SPDX-License-Identifier: MIT

package embedding_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/embedding"
	"github.com/katalvlaran/tdpad/matrix"
)

const tol = 1e-9

func TestSimilarity(t *testing.T) {
	opts := embedding.DefaultOptions()
	assert.InDelta(t, 1.0, embedding.Similarity(0, opts), tol)

	want := math.Pow(math.Cos(2), 2) * math.Exp(-0.2)
	assert.InDelta(t, want, embedding.Similarity(2, opts), tol)
}

// TestKernel_Structure checks symmetry, unit diagonal and Toeplitz layout.
func TestKernel_Structure(t *testing.T) {
	opts := embedding.Options{Lambda: 0.3, Omega: 0.7}
	k, err := embedding.Kernel(6, opts)
	require.NoError(t, err)

	require.NoError(t, matrix.ValidateSymmetric(k, 0))
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 1.0, k.At(i, i), tol)
		for j := 0; j < 6; j++ {
			d := math.Abs(float64(i - j))
			assert.InDelta(t, embedding.Similarity(d, opts), k.At(i, j), tol, "K[%d,%d]", i, j)
		}
	}
}

// TestBuild_AcrossLengths builds Z for a range of window lengths and
// parameters, each passing the symmetry check on K.
func TestBuild_AcrossLengths(t *testing.T) {
	for _, opts := range []embedding.Options{
		embedding.DefaultOptions(),
		{Lambda: 2, Omega: 0},
		{Lambda: 1e-3, Omega: -4.5},
	} {
		for s := 1; s <= 40; s += 13 {
			k, err := embedding.Kernel(s, opts)
			require.NoError(t, err)
			require.NoError(t, matrix.ValidateSymmetric(k, embedding.SymmetryTol))

			emb, err := embedding.Build(s, s, opts)
			require.NoError(t, err, "s=%d opts=%+v", s, opts)
			r, c := emb.Dims()
			assert.Equal(t, s, r)
			assert.Equal(t, s, c)
		}
	}
}

func TestKernel_Errors(t *testing.T) {
	_, err := embedding.Kernel(0, embedding.DefaultOptions())
	assert.ErrorIs(t, err, embedding.ErrBadSize)

	_, err = embedding.Kernel(3, embedding.Options{Lambda: 0, Omega: 1})
	assert.ErrorIs(t, err, embedding.ErrBadParam)

	_, err = embedding.Kernel(3, embedding.Options{Lambda: 0.1, Omega: math.NaN()})
	assert.ErrorIs(t, err, embedding.ErrBadParam)
}

func TestReducedDim(t *testing.T) {
	assert.Equal(t, 3, embedding.ReducedDim(0.75, 3, 20), "ceil(2.25) = 3")
	assert.Equal(t, 3, embedding.ReducedDim(0.75, 4, 20), "ceil(3.0) = 3")
	assert.Equal(t, 2, embedding.ReducedDim(0.75, 10, 2), "clamped to s")
	assert.Equal(t, 1, embedding.ReducedDim(0.75, 3, 1), "s == 1")
	assert.Equal(t, 5, embedding.ReducedDim(1, 5, 5))
}

// TestBuild_ShapeAndOrthonormality verifies Z is s×h with orthonormal
// columns that are eigenvectors of K.
func TestBuild_ShapeAndOrthonormality(t *testing.T) {
	opts := embedding.DefaultOptions()
	const s, h = 8, 3

	emb, err := embedding.Build(s, h, opts)
	require.NoError(t, err)

	r, c := emb.Dims()
	assert.Equal(t, s, r)
	assert.Equal(t, h, c)
	require.Len(t, emb.Values, h)

	var ztz mat.Dense
	ztz.Mul(emb.Z.T(), emb.Z)
	assert.True(t, mat.EqualApprox(&ztz, matrix.Identity(h), 1e-8), "ZᵗZ must be I")

	k, err := embedding.Kernel(s, opts)
	require.NoError(t, err)
	var kz mat.Dense
	kz.Mul(k, emb.Z)
	for j := 0; j < h; j++ {
		for i := 0; i < s; i++ {
			assert.InDelta(t, emb.Values[j]*emb.Z.At(i, j), kz.At(i, j), 1e-8)
		}
	}
}

// TestBuild_SelectsDominantModes compares the selected eigenvalues with the
// full spectrum sorted by magnitude.
func TestBuild_SelectsDominantModes(t *testing.T) {
	opts := embedding.Options{Lambda: 0.05, Omega: 2.5}
	const s, h = 10, 4

	emb, err := embedding.Build(s, h, opts)
	require.NoError(t, err)

	k, err := embedding.Kernel(s, opts)
	require.NoError(t, err)
	var es mat.EigenSym
	require.True(t, es.Factorize(k, false))
	all := es.Values(nil)
	sort.Slice(all, func(i, j int) bool { return math.Abs(all[i]) > math.Abs(all[j]) })

	for j := 0; j < h; j++ {
		assert.InDelta(t, math.Abs(all[j]), math.Abs(emb.Values[j]), 1e-8, "mode %d", j)
	}
	for j := 1; j < h; j++ {
		assert.GreaterOrEqual(t, math.Abs(emb.Values[j-1]), math.Abs(emb.Values[j]))
	}
}

func TestBuild_SingleOffset(t *testing.T) {
	emb, err := embedding.Build(1, 1, embedding.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, math.Abs(emb.Z.At(0, 0)), tol)
	assert.InDelta(t, 1.0, emb.Values[0], tol)
}

func TestBuild_Errors(t *testing.T) {
	opts := embedding.DefaultOptions()

	_, err := embedding.Build(3, 4, opts)
	assert.ErrorIs(t, err, embedding.ErrBadSize, "h > s")

	_, err = embedding.Build(3, 0, opts)
	assert.ErrorIs(t, err, embedding.ErrBadSize, "h < 1")

	_, err = embedding.Build(0, 0, opts)
	assert.ErrorIs(t, err, embedding.ErrBadSize, "s < 1")

	_, err = embedding.Build(3, 2, embedding.Options{Lambda: -1, Omega: 1})
	assert.ErrorIs(t, err, embedding.ErrBadParam)
}
