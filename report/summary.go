// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/montanaflynn/stats"
)

// SummaryPercentile is the upper percentile reported in Summary.P99.
const SummaryPercentile = 99

// ErrNoScores indicates an empty score sequence.
var ErrNoScores = errors.New("report: no scores")

// Summary describes a score sequence.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // population
	Min    float64
	Max    float64
	P99    float64 // nearest-rank
	ArgMax int     // window with the highest score; first on ties
}

// Summarize computes a Summary of scores.
func Summarize(scores []float64) (Summary, error) {
	if len(scores) == 0 {
		return Summary{}, ErrNoScores
	}
	data := stats.Float64Data(scores)

	var (
		sum Summary
		err error
	)
	sum.Count = len(scores)
	if sum.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, fmt.Errorf("Summarize: mean: %w", err)
	}
	if sum.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, fmt.Errorf("Summarize: stddev: %w", err)
	}
	if sum.Min, err = stats.Min(data); err != nil {
		return Summary{}, fmt.Errorf("Summarize: min: %w", err)
	}
	if sum.Max, err = stats.Max(data); err != nil {
		return Summary{}, fmt.Errorf("Summarize: max: %w", err)
	}
	// stats sorts a copy; scores keeps its order.
	if sum.P99, err = stats.PercentileNearestRank(data, SummaryPercentile); err != nil {
		return Summary{}, fmt.Errorf("Summarize: p%d: %w", SummaryPercentile, err)
	}
	for i, v := range scores {
		if v == sum.Max {
			sum.ArgMax = i

			break
		}
	}

	return sum, nil
}

// LogValue renders the summary as a slog group.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("p99", s.P99),
		slog.Int("argmax", s.ArgMax),
	)
}
