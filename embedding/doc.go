// SPDX-License-Identifier: MIT

// Package embedding builds the temporal-dependency embedding Z shared by
// every window of the same length.
//
// 🚀 What is it?
//
//	For offsets i, j inside a window of length s the kernel
//
//	    K[i,j] = cos(ω·|i−j|)² · exp(−λ·|i−j|)
//
//	blends a periodic term with exponential decay. Z (s×h) is formed from
//	the h eigenvectors of K with the largest eigenvalue magnitude: the
//	dominant temporal modes of a window.
//
// ✨ Key features:
//   - Z depends only on s, λ and ω, never on window content, so one
//     instance is computed per run and shared read-only across workers
//   - K is checked for symmetry before decomposition
//   - eigenpairs are explicitly sorted by |λ| before slicing
//   - h is clamped to s via ReducedDim
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/tdpad/embedding"
//
//	h := embedding.ReducedDim(0.75, nFeatures, s)
//	emb, err := embedding.Build(s, h, embedding.DefaultOptions())
//	// emb.Z is s×h, emb.Values the matching eigenvalues
//
// Performance:
//
//   - Time:   O(s²) for K, O(s³) for the eigen-decomposition
//   - Memory: O(s²)
//
// See example_test.go for a runnable case.
package embedding
