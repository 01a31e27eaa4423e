// SPDX-License-Identifier: MIT

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/detector"
)

var (
	// ErrNoWindows indicates an empty window list.
	ErrNoWindows = errors.New("evaluate: no windows to evaluate")

	// ErrWindowFailed wraps the first solver error; the message names the window.
	ErrWindowFailed = errors.New("evaluate: window evaluation failed")

	// ErrMissingResult indicates a window without a result.
	ErrMissingResult = errors.New("evaluate: missing window result")
)

// Templates are the initial P (p×h) and R (h×s) shared by every task.
// They are read concurrently and never mutated; the solver copies them.
type Templates struct {
	P *mat.Dense
	R *mat.Dense
}

// outcome is what a worker reports for one window.
type outcome struct {
	index  int
	result *detector.Result
	err    error
}

// Evaluate solves every window against the shared embedding z and returns
// one score per window, ordered by window index.
//
// Implementation:
//   - Stage 1: start min(workers, len(windows)) workers reading indices from
//     a job channel.
//   - Stage 2: collect outcomes as they complete into results[index].
//   - Stage 3: on the first error cancel the remaining jobs, drain, join
//     and return the error. No partial output.
//   - Stage 4: reduce the results to scores with Assemble.
//
// Errors: ErrNoWindows, ErrWindowFailed (wrapping the solver error),
// ctx.Err() when the caller cancels.
func Evaluate(
	ctx context.Context,
	windows []*mat.Dense,
	z *mat.Dense,
	init Templates,
	opts detector.Options,
	optFns ...Option,
) ([]float64, error) {
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := defaultOptions()
	for _, fn := range optFns {
		fn(&cfg)
	}
	workers := cfg.workers
	if workers > len(windows) {
		workers = len(windows)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan outcome, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if cfg.onTask != nil {
					cfg.onTask(i)
				}
				res, err := detector.Solve(windows[i], z, init.P, init.R, opts)
				results <- outcome{index: i, result: res, err: err}
			}
		}()
	}

	// Feed jobs until done or cancelled.
	go func() {
		defer close(jobs)
		for i := range windows {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]*detector.Result, len(windows))
	var firstErr error
	done := 0
	for out := range results {
		if firstErr != nil {
			continue // draining
		}
		if out.err != nil {
			firstErr = fmt.Errorf("%w: window %d: %w", ErrWindowFailed, out.index, out.err)
			cancel()
			continue
		}
		collected[out.index] = out.result
		if cfg.onResult != nil {
			cfg.onResult(out.index, out.result)
		}
		done++
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if done != len(windows) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return Assemble(collected)
}
