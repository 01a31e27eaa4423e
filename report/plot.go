// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Plot canvas size.
const (
	PlotWidth  = 10 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// PlotScores draws scores against window start and saves the figure to
// path. The image format follows the extension (png, svg, pdf, ...).
func PlotScores(scores []float64, path, title string) error {
	if len(scores) == 0 {
		return fmt.Errorf("PlotScores: %w", ErrNoScores)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "window start"
	p.Y.Label.Text = "anomaly score"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(scores))
	for i, v := range scores {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("PlotScores: %w", err)
	}
	p.Add(line)

	if err = p.Save(PlotWidth, PlotHeight, path); err != nil {
		return fmt.Errorf("PlotScores: save %s: %w", path, err)
	}

	return nil
}
