// SPDX-License-Identifier: MIT

// Package evaluate runs the detector over every window on a bounded worker
// pool and assembles the ordered anomaly-score sequence.
//
// Each window is an independent task. Tasks may finish in any order on any
// worker; every result carries the index of its originating window and is
// written to that slot, so the output order never depends on scheduling.
//
// The pool exists only for the duration of one Evaluate call and all
// workers are joined before it returns. Evaluation is fail-fast: the first
// solver error stops the remaining tasks and no partial scores are returned.
package evaluate
