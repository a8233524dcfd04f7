// Package report charts the progress of an optimization run.
package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/esimov/lowpoly"
)

// History accumulates the fitness of successive generations: the mean and best
// face fitness of each best population, and the average fitness its members
// had accumulated when they were selected.
type History struct {
	Generation []float64
	Mean       []float64
	Best       []float64
	Selected   []float64
}

// Add appends the figures of a finished generation.
func (h *History) Add(r lowpoly.Report) {
	best := 0.0
	if r.Population != nil {
		for _, f := range r.Population.Faces {
			best = lowpoly.Max(best, f.Fitness)
		}
	}
	h.Generation = append(h.Generation, float64(r.Index))
	h.Mean = append(h.Mean, r.MeanFitness)
	h.Best = append(h.Best, best)
	h.Selected = append(h.Selected, r.SelectedFitness)
}

// Len returns the number of recorded generations.
func (h *History) Len() int {
	return len(h.Generation)
}

// Plot draws the mean and best face fitness and the selected member fitness per generation and saves the chart to
// path; the image format follows the file extension (png, svg, pdf...).
func Plot(h *History, title, path string) error {
	if h.Len() == 0 {
		return errors.New("report: empty history")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	mean := make(plotter.XYs, h.Len())
	best := make(plotter.XYs, h.Len())
	selected := make(plotter.XYs, h.Len())
	for i := range h.Generation {
		mean[i].X, mean[i].Y = h.Generation[i], h.Mean[i]
		best[i].X, best[i].Y = h.Generation[i], h.Best[i]
		selected[i].X, selected[i].Y = h.Generation[i], h.Selected[i]
	}

	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return fmt.Errorf("report: mean line: %w", err)
	}
	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return fmt.Errorf("report: best line: %w", err)
	}
	bestLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	selectedLine, err := plotter.NewLine(selected)
	if err != nil {
		return fmt.Errorf("report: selected line: %w", err)
	}
	selectedLine.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}

	p.Add(meanLine, bestLine, selectedLine)
	p.Legend.Add("mean face", meanLine)
	p.Legend.Add("best face", bestLine)
	p.Legend.Add("selected members", selectedLine)
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
