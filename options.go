// SPDX-License-Identifier: MIT

package tdpad

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/tdpad/dataio"
)

// Option customizes Detect and Execute.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	workers  int
	plotPath string
	store    *dataio.Store
}

// defaultOptions logs nowhere, sizes the pool from GOMAXPROCS and resolves
// only local paths.
func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  dataio.NewLocalStore(),
	}
}

func gatherOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	return o
}

// WithLogger sets the structured logger. Nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers sets the evaluation pool size. Values < 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPlot makes Execute save a score plot to path; the extension picks
// the image format.
func WithPlot(path string) Option {
	return func(o *options) {
		o.plotPath = path
	}
}

// WithStore sets the Store used by Execute for dataInput and dataOutput.
// Nil keeps the local-only default.
func WithStore(s *dataio.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}
