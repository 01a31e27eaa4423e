// SPDX-License-Identifier: MIT

package tdpad

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad/config"
	"github.com/katalvlaran/tdpad/dataio"
	"github.com/katalvlaran/tdpad/detector"
	"github.com/katalvlaran/tdpad/embedding"
	"github.com/katalvlaran/tdpad/evaluate"
	"github.com/katalvlaran/tdpad/matrix"
	"github.com/katalvlaran/tdpad/report"
	"github.com/katalvlaran/tdpad/window"
)

// Detect returns one anomaly score per window of series (n×p), in window
// order.
//
// Implementation:
//   - Stage 1: validate params and require s ≤ n.
//   - Stage 2: extract windows, compute h = min(ceil(h·p), s), build Z.
//   - Stage 3: draw P₀ (p×h) and R₀ (h×s) uniformly from [0,1) with a
//     source seeded by random_state.
//   - Stage 4: solve every window in parallel and collect ‖R‖_F.
//
// Errors: config.ErrInvalidConfig (joined with window.ErrWindowTooLarge when
// s > n), matrix.ErrNilMatrix, matrix.ErrNaNInf, embedding and evaluate
// errors.
func Detect(ctx context.Context, series *mat.Dense, params config.CustomParameters, optFns ...Option) ([]float64, error) {
	o := gatherOptions(optFns)

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("Detect: %w", err)
	}
	if err := matrix.ValidateFinite(series); err != nil {
		return nil, fmt.Errorf("Detect: series: %w", err)
	}
	n, p := series.Dims()
	if params.S > n {
		return nil, fmt.Errorf("Detect: s=%d, n=%d: %w: %w",
			params.S, n, config.ErrInvalidConfig, window.ErrWindowTooLarge)
	}
	o.logger.Debug("series loaded", slog.Int("timesteps", n), slog.Int("features", p))

	windows, err := window.Extract(series, params.S)
	if err != nil {
		return nil, fmt.Errorf("Detect: %w", err)
	}
	o.logger.Debug("windows extracted",
		slog.Int("count", len(windows)), slog.Int("length", params.S), slog.Int("features", p))

	h := embedding.ReducedDim(params.H, p, params.S)
	emb, err := embedding.Build(params.S, h, params.KernelOptions())
	if err != nil {
		return nil, fmt.Errorf("Detect: %w", err)
	}

	templates := drawTemplates(params.RandomState, p, h, params.S)
	zr, zc := emb.Dims()
	rr, rc := templates.R.Dims()
	o.logger.Debug("embedding built",
		slog.String("Z", fmt.Sprintf("%dx%d", zr, zc)),
		slog.String("Ri", fmt.Sprintf("%dx%d", rr, rc)))

	evalOpts := []evaluate.Option{
		evaluate.WithWorkers(o.workers),
		evaluate.WithTaskHook(func(i int) {
			o.logger.Debug("window started", slog.Int("window", i))
		}),
		evaluate.WithResultHook(func(i int, r *detector.Result) {
			o.logger.Debug("window solved",
				slog.Int("window", i),
				slog.Float64("loss", r.FinalLoss()),
				slog.Duration("elapsed", r.Elapsed))
		}),
	}
	scores, err := evaluate.Evaluate(ctx, windows, emb.Z, templates, params.SolverOptions(), evalOpts...)
	if err != nil {
		return nil, fmt.Errorf("Detect: %w", err)
	}

	return scores, nil
}

// drawTemplates fills P₀ then R₀ from one seeded source, row-major.
func drawTemplates(seed, p, h, s int) evaluate.Templates {
	rng := rand.New(rand.NewSource(int64(seed)))
	fill := func(r, c int) *mat.Dense {
		data := make([]float64, r*c)
		for i := range data {
			data[i] = rng.Float64()
		}

		return mat.NewDense(r, c, data)
	}
	pm := fill(p, h)
	rm := fill(h, s)

	return evaluate.Templates{P: pm, R: rm}
}

// Execute runs one invocation: "train" logs and returns, "execute" reads
// args.DataInput, detects, writes the scores to args.DataOutput and logs a
// summary (plus a plot with WithPlot).
//
// Errors: config.ErrUnknownExecutionType, config.ErrInvalidConfig, and any
// I/O or detection error.
func Execute(ctx context.Context, args config.AlgorithmArgs, optFns ...Option) error {
	o := gatherOptions(optFns)
	if err := args.Validate(); err != nil {
		return fmt.Errorf("Execute: %w", err)
	}
	if args.ExecutionType == config.ExecutionTrain {
		o.logger.Info("this algorithm does not need to be trained, skipping")

		return nil
	}

	start := time.Now()
	series, err := loadSeries(ctx, o.store, args.DataInput)
	if err != nil {
		return fmt.Errorf("Execute: %w", err)
	}

	scores, err := Detect(ctx, series, args.CustomParameters, optFns...)
	if err != nil {
		return fmt.Errorf("Execute: %w", err)
	}

	if err = storeScores(ctx, o.store, args.DataOutput, scores); err != nil {
		return fmt.Errorf("Execute: %w", err)
	}

	if o.plotPath != "" {
		if err = report.PlotScores(scores, o.plotPath, "TDP anomaly scores: "+args.DataInput); err != nil {
			return fmt.Errorf("Execute: %w", err)
		}
		o.logger.Info("score plot saved", slog.String("path", o.plotPath))
	}

	sum, err := report.Summarize(scores)
	if err != nil {
		return fmt.Errorf("Execute: %w", err)
	}
	o.logger.Info("detection finished",
		slog.String("input", args.DataInput),
		slog.String("output", args.DataOutput),
		slog.Any("scores", sum),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}

func loadSeries(ctx context.Context, st *dataio.Store, loc string) (*mat.Dense, error) {
	r, err := st.Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	series, err := dataio.ReadSeries(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}

	return series, nil
}

func storeScores(ctx context.Context, st *dataio.Store, loc string, scores []float64) (err error) {
	w, err := st.Create(ctx, loc)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return dataio.WriteScores(w, scores)
}
