// SPDX-License-Identifier: MIT

package embedding

import "gonum.org/v1/gonum/mat"

// Defaults mirror the detector's documented custom parameters.
const (
	// DefaultLambda is the decay rate λ of the temporal kernel.
	DefaultLambda = 0.1

	// DefaultOmega is the angular frequency ω of the periodic term.
	DefaultOmega = 1.0
)

// Options configures the temporal kernel.
//
// Fields:
//   - Lambda: decay rate λ, must be > 0.
//   - Omega: angular frequency ω of the cos² term, any finite value.
type Options struct {
	Lambda float64
	Omega  float64
}

// DefaultOptions returns {Lambda: 0.1, Omega: 1}.
func DefaultOptions() Options {
	return Options{Lambda: DefaultLambda, Omega: DefaultOmega}
}

// Embedding is the shared temporal basis.
//
// Z is s×h; Values holds the eigenvalues matching Z's columns, ordered by
// descending magnitude. Treat both as immutable once built.
type Embedding struct {
	Z      *mat.Dense
	Values []float64
}

// Dims returns (s, h).
func (e *Embedding) Dims() (s, h int) {
	return e.Z.Dims()
}
