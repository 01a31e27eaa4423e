// SPDX-License-Identifier: MIT

package tdpad_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tdpad"
	"github.com/katalvlaran/tdpad/config"
	"github.com/katalvlaran/tdpad/dataio"
	"github.com/katalvlaran/tdpad/matrix"
	"github.com/katalvlaran/tdpad/window"
)

func randomSeries(n, p int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	m := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}

	return m
}

func smallParams(s, maxIt int) config.CustomParameters {
	params := config.DefaultCustomParameters()
	params.S = s
	params.MaxIt = maxIt

	return params
}

func TestDetect_SmallSeries(t *testing.T) {
	scores, err := tdpad.Detect(context.Background(), randomSeries(7, 3, 1), smallParams(3, 5))
	require.NoError(t, err)
	require.Len(t, scores, 5)
	for i, v := range scores {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "score %d not finite", i)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestDetect_WindowBounds(t *testing.T) {
	ctx := context.Background()
	series := randomSeries(6, 2, 2)

	scores, err := tdpad.Detect(ctx, series, smallParams(6, 3))
	require.NoError(t, err)
	assert.Len(t, scores, 1)

	scores, err = tdpad.Detect(ctx, series, smallParams(1, 3))
	require.NoError(t, err)
	assert.Len(t, scores, 6)

	_, err = tdpad.Detect(ctx, series, smallParams(7, 3))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, window.ErrWindowTooLarge)
}

func TestDetect_Reproducible(t *testing.T) {
	ctx := context.Background()
	series := randomSeries(30, 4, 3)
	params := smallParams(8, 4)

	a, err := tdpad.Detect(ctx, series, params, tdpad.WithWorkers(1))
	require.NoError(t, err)
	b, err := tdpad.Detect(ctx, series, params, tdpad.WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	params.RandomState = 0
	c, err := tdpad.Detect(ctx, series, params)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "a different seed draws different templates")
}

func TestDetect_IdenticalWindowsScoreAlike(t *testing.T) {
	series := mat.NewDense(10, 2, nil)
	for i := 0; i < 10; i++ {
		series.Set(i, 0, 3)
		series.Set(i, 1, -1)
	}

	scores, err := tdpad.Detect(context.Background(), series, smallParams(4, 6))
	require.NoError(t, err)
	require.Len(t, scores, 7)
	for _, v := range scores[1:] {
		assert.InDelta(t, scores[0], v, 1e-9)
	}
}

func TestDetect_InvalidInput(t *testing.T) {
	ctx := context.Background()

	params := smallParams(3, 0)
	_, err := tdpad.Detect(ctx, randomSeries(5, 2, 1), params)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = tdpad.Detect(ctx, nil, smallParams(3, 2))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		series := randomSeries(5, 2, 1)
		series.Set(3, 1, bad)
		_, err = tdpad.Detect(ctx, series, smallParams(3, 2))
		require.ErrorIs(t, err, matrix.ErrNaNInf, "value %v", bad)
	}
}

func TestDetect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tdpad.Detect(ctx, randomSeries(12, 2, 1), smallParams(3, 2))
	require.ErrorIs(t, err, context.Canceled)
}

// writeCSV lays series out with an index column and a zero label column.
func writeCSV(t *testing.T, path string, series *mat.Dense) {
	t.Helper()
	n, p := series.Dims()
	var b strings.Builder
	b.WriteString("timestamp")
	for j := 0; j < p; j++ {
		fmt.Fprintf(&b, ",f%d", j)
	}
	b.WriteString(",is_anomaly\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d", i)
		for j := 0; j < p; j++ {
			fmt.Fprintf(&b, ",%v", series.At(i, j))
		}
		b.WriteString(",0\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func TestExecute_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	series := randomSeries(20, 3, 5)
	in := filepath.Join(dir, "data.csv")
	out := filepath.Join(dir, "out", "scores.txt")
	plotPath := filepath.Join(dir, "scores.png")
	writeCSV(t, in, series)

	args := config.AlgorithmArgs{
		DataInput:        in,
		DataOutput:       out,
		ExecutionType:    config.ExecutionExecute,
		CustomParameters: smallParams(5, 3),
	}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	require.NoError(t, tdpad.Execute(context.Background(), args, tdpad.WithLogger(logger), tdpad.WithPlot(plotPath)))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var got []float64
	for _, ln := range strings.Split(string(raw), "\n") {
		v, err := strconv.ParseFloat(ln, 64)
		require.NoError(t, err)
		got = append(got, v)
	}

	want, err := tdpad.Detect(context.Background(), series, args.CustomParameters)
	require.NoError(t, err)
	require.Len(t, got, 16)
	assert.Equal(t, want, got)

	_, err = os.Stat(plotPath)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "detection finished")
}

func TestExecute_Train(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	args := config.AlgorithmArgs{ExecutionType: config.ExecutionTrain}

	require.NoError(t, tdpad.Execute(context.Background(), args, tdpad.WithLogger(logger)))
	assert.Contains(t, logs.String(), "does not need to be trained")
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	err := tdpad.Execute(ctx, config.AlgorithmArgs{ExecutionType: "predict"})
	require.ErrorIs(t, err, config.ErrUnknownExecutionType)

	args := config.AlgorithmArgs{
		DataInput:        filepath.Join(t.TempDir(), "missing.csv"),
		DataOutput:       filepath.Join(t.TempDir(), "scores.txt"),
		ExecutionType:    config.ExecutionExecute,
		CustomParameters: config.DefaultCustomParameters(),
	}
	err = tdpad.Execute(ctx, args)
	require.ErrorIs(t, err, os.ErrNotExist)

	args.DataInput = "s3://bucket/data.csv"
	err = tdpad.Execute(ctx, args)
	require.ErrorIs(t, err, dataio.ErrNoObjectStore)
}
