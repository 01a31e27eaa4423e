// SPDX-License-Identifier: MIT

// Package window slices a multivariate time series into overlapping,
// fixed-length windows with stride 1.
//
// A series of n timesteps and window length s yields N = n−s+1 windows;
// window i covers rows [i, i+s). Windows are views that share storage with
// the series, so callers must treat them as read-only.
//
//	series (n×p) ──Extract(s)──▶ [W₀ … W_{N−1}], each s×p
package window
