// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aiog/figgen/rtl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Scatter draws a marker at each (X[i], Y[i]).
type Scatter struct {
	X, Y []float64

	Color color.Color

	// Colors, if set, colours each point individually.
	Colors []color.Color

	// Marker defaults to CircleMarker.
	Marker Marker

	// Radius is the marker radius in points. The default is 3.
	Radius float64

	// Edge outlines each marker.
	Edge color.Color

	Label rtl.Visual
}

func (l Scatter) add(p *plot.Plot, e *env) error {
	if err := checkPairs("scatter", l.X, l.Y); err != nil {
		return err
	}
	if l.Colors != nil && len(l.Colors) != len(l.X) {
		return renderErr("scatter: %d points and %d colours", len(l.X), len(l.Colors))
	}
	pts := make(plotter.XYs, len(l.X))
	for i := range l.X {
		if !finite(l.X[i]) || !finite(l.Y[i]) {
			return renderErr("scatter: point %d is (%v, %v)", i, l.X[i], l.Y[i])
		}
		pts[i] = plotter.XY{X: l.X[i], Y: l.Y[i]}
	}
	m := l.Marker
	if m == NoMarker {
		m = CircleMarker
	}
	r := l.Radius
	if r <= 0 {
		r = 3
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return renderErr("scatter: %v", err)
	}
	c := e.color(l.Color)
	sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(r), Shape: m.glyph()}
	if l.Colors != nil {
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			gs := sc.GlyphStyle
			gs.Color = l.Colors[i]
			return gs
		}
	}
	p.Add(sc)
	thumbs := []plot.Thumbnailer{sc}
	if shape := m.outline(); l.Edge != nil && shape != nil {
		edge, err := plotter.NewScatter(pts)
		if err != nil {
			return renderErr("scatter: %v", err)
		}
		edge.GlyphStyle = draw.GlyphStyle{Color: l.Edge, Radius: vg.Points(r), Shape: shape}
		p.Add(edge)
		thumbs = append(thumbs, edge)
	}
	e.legend(p, l.Label, thumbs...)
	return nil
}

// A HeatMap colours a matrix of cells. Z is indexed [row][col] with
// row 0 drawn at the top; cell (row, col) is centred on x = col and
// y = len(Z)-1-row.
type HeatMap struct {
	Z [][]float64

	// Min and Max are the values mapped to the ends of the gradient.
	// If they are equal the data range is used.
	Min, Max float64

	// Gradient defaults to Viridis.
	Gradient Gradient

	// Format, if set, writes each cell's formatted value in it.
	Format   string
	TextSize float64

	// RowLabels and ColLabels label the y and x axes.
	RowLabels, ColLabels []rtl.Visual
}

// matrix adapts a HeatMap's rows to plotter.GridXYZ, whose rows run
// bottom to top.
type matrix [][]float64

func (m matrix) Dims() (c, r int)   { return len(m[0]), len(m) }
func (m matrix) Z(c, r int) float64 { return m[len(m)-1-r][c] }
func (m matrix) X(c int) float64    { return float64(c) }
func (m matrix) Y(r int) float64    { return float64(r) }

func (l HeatMap) add(p *plot.Plot, e *env) error {
	if len(l.Z) == 0 || len(l.Z[0]) == 0 {
		return renderErr("heat map: no data")
	}
	rows, cols := len(l.Z), len(l.Z[0])
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, row := range l.Z {
		if len(row) != cols {
			return renderErr("heat map: row %d has %d cells, want %d", i, len(row), cols)
		}
		for _, z := range row {
			if finite(z) {
				lo, hi = math.Min(lo, z), math.Max(hi, z)
			}
		}
	}
	if l.Min != l.Max {
		if !finite(l.Min) || !finite(l.Max) || l.Min > l.Max {
			return renderErr("heat map: range [%v, %v]", l.Min, l.Max)
		}
		lo, hi = l.Min, l.Max
	}
	switch {
	case lo > hi:
		return renderErr("heat map: no finite cells")
	case lo == hi:
		// A constant map takes the middle of the gradient.
		lo, hi = lo-0.5, hi+0.5
	}
	if l.RowLabels != nil && len(l.RowLabels) != rows {
		return renderErr("heat map: %d rows and %d row labels", rows, len(l.RowLabels))
	}
	if l.ColLabels != nil && len(l.ColLabels) != cols {
		return renderErr("heat map: %d columns and %d column labels", cols, len(l.ColLabels))
	}
	g := l.Gradient
	if len(g.g.Colors) == 0 {
		g = Viridis
	}

	h := plotter.NewHeatMap(matrix(l.Z), g)
	h.Min, h.Max = lo, hi
	h.NaN = White
	p.Add(h)

	if l.Format != "" {
		var labels plotter.XYLabels
		var styles []text.Style
		for r, row := range l.Z {
			for c, z := range row {
				if !finite(z) {
					continue
				}
				labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(rows - 1 - r)})
				labels.Labels = append(labels.Labels, fmt.Sprintf(l.Format, z))
				ink := Black
				if hi > lo && luminance(g.At((z-lo)/(hi-lo))) < 0.45 {
					ink = White
				}
				sty := e.text(l.TextSize, ink)
				sty.XAlign, sty.YAlign = text.XCenter, text.YCenter
				styles = append(styles, sty)
			}
		}
		if len(styles) > 0 {
			lp, err := plotter.NewLabels(labels)
			if err != nil {
				return renderErr("heat map: %v", err)
			}
			lp.TextStyle = styles
			p.Add(lp)
		}
	}

	if l.ColLabels != nil {
		ts := make([]Tick, cols)
		for c, s := range l.ColLabels {
			ts[c] = Tick{float64(c), s}
		}
		p.X.Tick.Marker = constantTicks(ts)
	}
	if l.RowLabels != nil {
		ts := make([]Tick, rows)
		for r, s := range l.RowLabels {
			ts[r] = Tick{float64(rows - 1 - r), s}
		}
		p.Y.Tick.Marker = constantTicks(ts)
	}
	return nil
}
