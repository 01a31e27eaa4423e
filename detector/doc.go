// SPDX-License-Identifier: MIT

// Package detector factors a single window into a projection matrix P and a
// residual matrix R by alternating least squares under an iteratively
// reweighted L2,1 (row-sparsity) penalty.
//
// 🚀 What is it?
//
//	Given a window W (s×p) and the shared temporal embedding Z (s×h), each
//	of exactly MaxIt rounds performs:
//
//	  1. P  = pinv(WᵗW + α·Dp) · Wᵗ·(Rᵗ + Z)
//	  2. R  = (W·P − Z)ᵗ · pinv(I + β·Dr)ᵗ
//	  3. Dp = ½·diag(‖P_row‖₂),  Dr = ½·diag(‖Rᵗ_row‖₂)
//	  4. loss[t] = ‖W·P − Rᵗ − Z‖_F + α·Σ‖P_row‖₂ + β·Σ‖R_row‖₂
//
//	What W·P cannot explain in terms of Z ends up in R; ‖R‖_F is the
//	window's anomaly score.
//
// ✨ Key features:
//   - fixed iteration budget, no convergence check: every window gets the
//     same number of rounds so scores stay comparable
//   - pseudo-inverse updates: rank-deficient windows (s < p, α = 0) stay
//     finite
//   - per-round loss trace in Result.Loss (diagnostic only)
//   - inputs are never mutated; P₀ and R₀ are copied, so one set of
//     templates can be shared by concurrent calls
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/tdpad/detector"
//
//	opts := detector.DefaultOptions() // α=0.01, β=0.01, MaxIt=10
//	res, err := detector.Solve(window, z, p0, r0, opts)
//	if err != nil {
//	  return err
//	}
//	score, err := res.Score()
//
// Performance:
//
//   - Time:   O(MaxIt·(p³ + s·p·h + s·h)), one SVD of a p×p matrix per round
//   - Memory: O(p² + s·h + s·p)
//
// See example_test.go and bench_test.go for runnable cases.
package detector
