// Public domain.

// Package predband plots bands of model predictions drawn from a
// Markov chain.
//
// Evaluate the model at each chain sample over a grid of the
// independent variable, Add each predicted curve, then draw the
// median with Line and quantile envelopes with Shade.  Line and Shade
// return the plotters they add so callers can restyle them.
package predband

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"tsfit/mcmc"
)

// A Band accumulates predicted curves over a fixed grid of the
// independent variable.
type Band struct {
	x  []float64
	ys [][]float64
}

// New returns a Band over the grid x.  The slice is retained.
func New(x []float64) *Band {
	return &Band{x: x}
}

// Add records one predicted curve.  It must have a value for every
// grid point.
func (b *Band) Add(y []float64) error {
	if len(y) != len(b.x) {
		return fmt.Errorf("predband: prediction has %d values, want %d",
			len(y), len(b.x))
	}
	b.ys = append(b.ys, y)
	return nil
}

// Quantile computes the pointwise quantile q of the added curves,
// with q in [0, 1].
func (b *Band) Quantile(q float64) ([]float64, error) {
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("predband: quantile %g outside [0, 1]", q)
	}
	if len(b.ys) == 0 {
		return nil, fmt.Errorf("predband: no predictions added")
	}
	line := make([]float64, len(b.x))
	col := make([]float64, len(b.ys))
	for i := range line {
		for k, y := range b.ys {
			col[k] = y[i]
		}
		line[i] = mcmc.Percentile(col, q*100)
	}
	return line, nil
}

// Median computes the pointwise median of the added curves.
func (b *Band) Median() ([]float64, error) {
	return b.Quantile(.5)
}

// Line adds the median curve to p.
func (b *Band) Line(p *plot.Plot) (*plotter.Line, error) {
	mid, err := b.Median()
	if err != nil {
		return nil, err
	}
	l, err := plotter.NewLine(xyPoints(b.x, mid))
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return l, nil
}

// Shade adds a filled region between the 0.5-q and 0.5+q quantile
// curves to p.  q is the quantile distance from the median, in
// [0, 0.5]: 0.341 shades one sigma, 0.48 a 96 percent range.
func (b *Band) Shade(p *plot.Plot, q float64) (*plotter.Polygon, error) {
	if q < 0 || q > .5 {
		return nil, fmt.Errorf("predband: quantile distance %g from the median outside [0, 0.5]", q)
	}
	lo, err := b.Quantile(.5 - q)
	if err != nil {
		return nil, err
	}
	hi, err := b.Quantile(.5 + q)
	if err != nil {
		return nil, err
	}
	// trace the lower curve left to right, then the upper one back
	xy := make(plotter.XYs, 0, 2*len(b.x))
	for i, x := range b.x {
		xy = append(xy, plotter.XY{X: x, Y: lo[i]})
	}
	for i := len(b.x) - 1; i >= 0; i-- {
		xy = append(xy, plotter.XY{X: b.x[i], Y: hi[i]})
	}
	poly, err := plotter.NewPolygon(xy)
	if err != nil {
		return nil, err
	}
	// translucent with no outline, so stacked shades read as density
	poly.Color = color.NRGBA{A: 64}
	poly.LineStyle.Color = color.NRGBA{}
	p.Add(poly)
	return poly, nil
}

func xyPoints(x, y []float64) plotter.XYs {
	xy := make(plotter.XYs, len(x))
	for i := range x {
		xy[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return xy
}
