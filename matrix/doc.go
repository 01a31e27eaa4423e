// SPDX-License-Identifier: MIT

// Package matrix provides the small set of dense linear-algebra kernels the
// detector needs on top of gonum/mat.
//
// The package provides:
//
//   - Pinv / PinvDiag: Moore–Penrose pseudo-inverses (thin SVD for general
//     matrices, reciprocal-or-zero for diagonals). Rank-deficient inputs are
//     tolerated by construction.
//   - EigenSymSorted: symmetric eigen-decomposition whose eigenpairs are
//     ordered by descending eigenvalue magnitude, so "the first h vectors"
//     always means the h dominant modes.
//   - RowNorms / ColNorms / Frobenius: the reductions behind the L2,1
//     penalty and the anomaly score.
//   - Identity / ScaledDiag: diagonal reweighting matrices.
//   - Validators returning package sentinels (see errors.go).
//
// All kernels allocate fresh results and never mutate their operands.
// Errors are plain sentinels wrapped with an operation tag; match them with
// errors.Is.
package matrix
