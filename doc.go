// SPDX-License-Identifier: MIT

// Package tdpad detects anomalies in multivariate time series by Temporal
// Dictionary Projection: every sliding window is explained by a shared
// temporal embedding and the unexplained part becomes its anomaly score.
//
// 🚀 What is tdpad?
//
//	A small pipeline over gonum matrices that brings together:
//		• Windowing: n−s+1 overlapping windows of length s (window/)
//		• Temporal embedding: top-h eigenvectors of a cos²·exp kernel (embedding/)
//		• Sparse factorization: ALS with L2,1 reweighting per window (detector/)
//		• Parallel evaluation: bounded worker pool, index-ordered scores (evaluate/)
//		• I/O: CSV series in, newline-separated scores out, local or s3:// (dataio/)
//		• Reporting: score summary and plot (report/)
//
// ✨ Entry points
//
//   - Detect scores an in-memory series.
//   - Execute runs a full invocation described by config.AlgorithmArgs:
//     "train" is a no-op, "execute" reads dataInput and writes dataOutput.
//
// A window's score is ‖R‖_F, the Frobenius norm of its residual. Larger
// means more anomalous; scores are relative, there is no threshold.
//
// Quick example:
//
//	params := config.DefaultCustomParameters()
//	params.S = 3
//	scores, err := tdpad.Detect(ctx, series, params)
//
// Results are deterministic for a fixed random_state, independent of the
// worker count.
package tdpad
