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

// Bars draws one bar per value. Positions and widths are in data
// units, so grouped bars are separate Bars offset by a fraction of the
// spacing, and stacked bars set Bottom to the tops of the layer below.
type Bars struct {
	// At is the centre of each bar along the category axis.
	At []float64

	// Values are the bar lengths.
	Values []float64

	// Bottom is where each bar starts. Nil means zero.
	Bottom []float64

	// Width is the bar thickness in data units. The default is 0.8.
	Width float64

	// Horizontal draws bars along x, with At on the y axis.
	Horizontal bool

	Color color.Color

	// Colors, if set, colours each bar individually.
	Colors []color.Color

	// Edge outlines each bar.
	Edge color.Color

	// Format, if set, annotates each bar with its formatted value
	// just beyond its end.
	Format string

	// TextSize is the annotation size in points.
	TextSize float64

	Label rtl.Visual
}

func (l Bars) add(p *plot.Plot, e *env) error {
	if err := checkPairs("bars", l.At, l.Values); err != nil {
		return err
	}
	for i, v := range l.Values {
		if !finite(v) || !finite(l.At[i]) {
			return renderErr("bars: bar %d at %v has value %v", i, l.At[i], v)
		}
	}
	bottom := l.Bottom
	if bottom == nil {
		bottom = make([]float64, len(l.Values))
	} else if len(bottom) != len(l.Values) {
		return renderErr("bars: %d values and %d bottoms", len(l.Values), len(bottom))
	}
	if l.Colors != nil && len(l.Colors) != len(l.Values) {
		return renderErr("bars: %d values and %d colours", len(l.Values), len(l.Colors))
	}
	w := l.Width
	if w <= 0 {
		w = 0.8
	}
	b := &bars{
		at: l.At, values: l.Values, bottom: bottom,
		width: w, horizontal: l.Horizontal,
		color: e.color(l.Color), colors: l.Colors,
		format: l.Format,
		text:   e.text(l.TextSize, Black),
	}
	if l.Edge != nil {
		b.edge = &draw.LineStyle{Color: l.Edge, Width: vg.Points(0.75)}
	}
	p.Add(b)
	e.legend(p, l.Label, b)
	return nil
}

type bars struct {
	at, values, bottom []float64
	width              float64
	horizontal         bool
	color              color.Color
	colors             []color.Color
	edge               *draw.LineStyle
	format             string
	text               text.Style
}

// rect returns bar i's corners in data coordinates.
func (b *bars) rect(i int) (x0, y0, x1, y1 float64) {
	lo, hi := b.bottom[i], b.bottom[i]+b.values[i]
	c0, c1 := b.at[i]-b.width/2, b.at[i]+b.width/2
	if b.horizontal {
		return lo, c0, hi, c1
	}
	return c0, lo, c1, hi
}

func (b *bars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	pad := vg.Points(3)
	for i := range b.values {
		x0, y0, x1, y1 := b.rect(i)
		pts := []vg.Point{
			{X: trX(x0), Y: trY(y0)},
			{X: trX(x1), Y: trY(y0)},
			{X: trX(x1), Y: trY(y1)},
			{X: trX(x0), Y: trY(y1)},
		}
		col := b.color
		if b.colors != nil {
			col = b.colors[i]
		}
		c.FillPolygon(col, c.ClipPolygonXY(pts))
		if b.edge != nil {
			c.StrokeLines(*b.edge, c.ClipLinesXY(append(pts, pts[0]))...)
		}
		if b.format == "" {
			continue
		}
		sty := b.text
		label := fmt.Sprintf(b.format, b.values[i])
		var at vg.Point
		if b.horizontal {
			end := trX(x1)
			at = vg.Point{X: end + pad, Y: (pts[0].Y + pts[2].Y) / 2}
			sty.XAlign, sty.YAlign = text.XLeft, text.YCenter
			if b.values[i] < 0 {
				at.X = end - pad
				sty.XAlign = text.XRight
			}
		} else {
			end := trY(y1)
			at = vg.Point{X: (pts[0].X + pts[1].X) / 2, Y: end + pad}
			sty.XAlign, sty.YAlign = text.XCenter, text.YBottom
			if b.values[i] < 0 {
				at.Y = end - pad
				sty.YAlign = text.YTop
			}
		}
		c.FillText(sty, at, label)
	}
}

func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := range b.values {
		x0, y0, x1, y1 := b.rect(i)
		xmin, xmax = math.Min(xmin, math.Min(x0, x1)), math.Max(xmax, math.Max(x0, x1))
		ymin, ymax = math.Min(ymin, math.Min(y0, y1)), math.Max(ymax, math.Max(y0, y1))
	}
	return
}

func (b *bars) Thumbnail(c *draw.Canvas) {
	col := b.color
	if b.colors != nil {
		col = b.colors[0]
	}
	fillRect(c, col, c.Min, c.Max)
}

// A Histogram bins Values into Bins equal-width bins.
type Histogram struct {
	Values []float64
	Bins   int

	// Density scales the bars so their total area is 1.
	Density bool

	Color color.Color
	Edge  color.Color
	Label rtl.Visual
}

func (l Histogram) add(p *plot.Plot, e *env) error {
	if len(l.Values) == 0 {
		return renderErr("histogram: no data")
	}
	if l.Bins < 1 {
		return renderErr("histogram: %d bins", l.Bins)
	}
	h, err := plotter.NewHist(plotter.Values(l.Values), l.Bins)
	if err != nil {
		return renderErr("histogram: %v", err)
	}
	if l.Density {
		h.Normalize(1)
	}
	h.FillColor = e.color(l.Color)
	h.LineStyle.Width = 0
	if l.Edge != nil {
		h.LineStyle = draw.LineStyle{Color: l.Edge, Width: vg.Points(0.75)}
	}
	p.Add(h)
	e.legend(p, l.Label, h)
	return nil
}

// A BoxPlot summarizes Values as a box at Pos with whiskers reaching
// 1.5 IQR and the remaining points drawn individually.
type BoxPlot struct {
	Values []float64
	Pos    float64

	// Width is the box width in points. The default is 40.
	Width float64

	Horizontal bool
	Color      color.Color
	Label      rtl.Visual
}

func (l BoxPlot) add(p *plot.Plot, e *env) error {
	if len(l.Values) == 0 {
		return renderErr("box plot: no data")
	}
	w := l.Width
	if w <= 0 {
		w = 40
	}
	b, err := plotter.NewBoxPlot(vg.Points(w), l.Pos, plotter.Values(l.Values))
	if err != nil {
		return renderErr("box plot: %v", err)
	}
	b.FillColor = e.color(l.Color)
	b.Horizontal = l.Horizontal
	b.GlyphStyle.Shape = draw.RingGlyph{}
	p.Add(b)
	e.legend(p, l.Label, swatch{b.FillColor})
	return nil
}

// swatch is a legend entry that is a filled square.
type swatch struct{ color color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) { fillRect(c, s.color, c.Min, c.Max) }
