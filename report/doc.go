// SPDX-License-Identifier: MIT

// Package report summarises and renders a sequence of window anomaly scores.
//
// Summarize reduces the scores to a handful of descriptive statistics
// (montanaflynn/stats) suitable for a log line; PlotScores draws score
// against window start with gonum/plot.
//
// Neither function touches the scores slice it is given.
package report
