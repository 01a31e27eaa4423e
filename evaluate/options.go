// SPDX-License-Identifier: MIT

package evaluate

import (
	"runtime"

	"github.com/katalvlaran/tdpad/detector"
)

// Option customizes an Evaluate call.
type Option func(*options)

// options holds the resolved Evaluate configuration.
type options struct {
	workers  int
	onTask   func(index int)
	onResult func(index int, r *detector.Result)
}

// defaultOptions sizes the pool to the available parallelism.
func defaultOptions() options {
	return options{workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers sets the pool size. Values < 1 keep the default.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithTaskHook registers fn to run on the worker goroutine right before a
// window is solved. fn must be safe for concurrent use.
func WithTaskHook(fn func(index int)) Option {
	return func(o *options) {
		o.onTask = fn
	}
}

// WithResultHook registers fn to observe every completed result. It is
// called from the single collecting goroutine, in completion order.
func WithResultHook(fn func(index int, r *detector.Result)) Option {
	return func(o *options) {
		o.onResult = fn
	}
}
