// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"image/color"
	"math"

	"github.com/aiog/figgen/rtl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Dash patterns in points.
var (
	Dashed = []float64{6, 3}
	Dotted = []float64{1.5, 2.5}
)

// Marker is the shape of a point glyph.
type Marker int

const (
	NoMarker Marker = iota
	CircleMarker
	SquareMarker
	TriangleMarker
	CrossMarker
)

func (m Marker) glyph() draw.GlyphDrawer {
	switch m {
	case SquareMarker:
		return draw.BoxGlyph{}
	case TriangleMarker:
		return draw.PyramidGlyph{}
	case CrossMarker:
		return draw.CrossGlyph{}
	}
	return draw.CircleGlyph{}
}

// outline is the unfilled glyph drawn around m for an edge colour.
func (m Marker) outline() draw.GlyphDrawer {
	switch m {
	case SquareMarker:
		return draw.SquareGlyph{}
	case TriangleMarker:
		return draw.TriangleGlyph{}
	case CrossMarker:
		return nil
	}
	return draw.RingGlyph{}
}

// An Axis names a panel axis.
type Axis int

const (
	XAxis Axis = iota
	YAxis
)

func lengths(xs []float64) []vg.Length {
	if xs == nil {
		return nil
	}
	ls := make([]vg.Length, len(xs))
	for i, x := range xs {
		ls[i] = vg.Points(x)
	}
	return ls
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func checkPairs(what string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return renderErr("%s: %d x values and %d y values", what, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return renderErr("%s: no data", what)
	}
	return nil
}

// runs splits (xs, ys) into maximal runs of finite points.
func runs(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := range xs {
		if finite(xs[i]) && finite(ys[i]) {
			cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
			continue
		}
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// A Curve is a polyline through (X[i], Y[i]). Non-finite points break
// the line.
type Curve struct {
	X, Y   []float64
	Color  color.Color
	Width  float64
	Dashes []float64

	Marker     Marker
	MarkerSize float64

	Label rtl.Visual
}

func (l Curve) add(p *plot.Plot, e *env) error {
	if err := checkPairs("curve", l.X, l.Y); err != nil {
		return err
	}
	rs := runs(l.X, l.Y)
	if len(rs) == 0 {
		return renderErr("curve: no defined points")
	}
	c := e.color(l.Color)
	var thumbs []plot.Thumbnailer
	for _, run := range rs {
		line, err := plotter.NewLine(run)
		if err != nil {
			return renderErr("curve: %v", err)
		}
		line.LineStyle = draw.LineStyle{Color: c, Width: e.width(l.Width), Dashes: lengths(l.Dashes)}
		p.Add(line)
		if thumbs == nil {
			thumbs = append(thumbs, line)
		}
	}
	if l.Marker != NoMarker {
		var pts plotter.XYs
		for _, run := range rs {
			pts = append(pts, run...)
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return renderErr("curve: %v", err)
		}
		r := l.MarkerSize
		if r <= 0 {
			r = 3
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(r), Shape: l.Marker.glyph()}
		p.Add(sc)
		thumbs = append(thumbs, sc)
	}
	e.legend(p, l.Label, thumbs...)
	return nil
}

// An Area fills between Y and Base over X. A nil Base is zero.
type Area struct {
	X, Y, Base []float64
	Color      color.Color
	Label      rtl.Visual
}

func (l Area) add(p *plot.Plot, e *env) error {
	if err := checkPairs("area", l.X, l.Y); err != nil {
		return err
	}
	base := l.Base
	if base == nil {
		base = make([]float64, len(l.X))
	} else if len(base) != len(l.X) {
		return renderErr("area: %d x values and %d base values", len(l.X), len(base))
	}
	a := &area{x: l.X, y: l.Y, base: base, color: e.color(l.Color)}
	p.Add(a)
	e.legend(p, l.Label, a)
	return nil
}

type area struct {
	x, y, base []float64
	color      color.Color
}

func (a *area) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	var top, bottom []vg.Point
	flush := func() {
		if len(top) > 1 {
			for i := len(bottom) - 1; i >= 0; i-- {
				top = append(top, bottom[i])
			}
			c.FillPolygon(a.color, c.ClipPolygonXY(top))
		}
		top, bottom = top[:0], bottom[:0]
	}
	for i := range a.x {
		if !finite(a.x[i]) || !finite(a.y[i]) || !finite(a.base[i]) {
			flush()
			continue
		}
		x := trX(a.x[i])
		top = append(top, vg.Point{X: x, Y: trY(a.y[i])})
		bottom = append(bottom, vg.Point{X: x, Y: trY(a.base[i])})
	}
	flush()
}

func (a *area) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := range a.x {
		if !finite(a.x[i]) || !finite(a.y[i]) || !finite(a.base[i]) {
			continue
		}
		xmin, xmax = math.Min(xmin, a.x[i]), math.Max(xmax, a.x[i])
		ymin = math.Min(ymin, math.Min(a.y[i], a.base[i]))
		ymax = math.Max(ymax, math.Max(a.y[i], a.base[i]))
	}
	return
}

func (a *area) Thumbnail(c *draw.Canvas) {
	fillRect(c, a.color, c.Min, c.Max)
}

func fillRect(c *draw.Canvas, col color.Color, lo, hi vg.Point) {
	c.FillPolygon(col, []vg.Point{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}})
}

// An HLine is a horizontal rule across the panel at Y.
type HLine struct {
	Y      float64
	Color  color.Color
	Width  float64
	Dashes []float64
	Label  rtl.Visual
}

func (l HLine) add(p *plot.Plot, e *env) error {
	return addRule(p, e, YAxis, l.Y, l.Color, l.Width, l.Dashes, l.Label)
}

// A VLine is a vertical rule across the panel at X.
type VLine struct {
	X      float64
	Color  color.Color
	Width  float64
	Dashes []float64
	Label  rtl.Visual
}

func (l VLine) add(p *plot.Plot, e *env) error {
	return addRule(p, e, XAxis, l.X, l.Color, l.Width, l.Dashes, l.Label)
}

func addRule(p *plot.Plot, e *env, axis Axis, v float64, c color.Color, w float64, dashes []float64, label rtl.Visual) error {
	if !finite(v) {
		return renderErr("rule at %v", v)
	}
	if c == nil {
		c = Black
	}
	r := &rule{axis: axis, v: v, style: draw.LineStyle{Color: c, Width: e.width(w), Dashes: lengths(dashes)}}
	p.Add(r)
	e.legend(p, label, r)
	return nil
}

// rule is a line at a fixed value of one axis spanning the other.
type rule struct {
	axis  Axis
	v     float64
	style draw.LineStyle
}

func (r *rule) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	var line []vg.Point
	if r.axis == YAxis {
		y := trY(r.v)
		line = []vg.Point{{X: c.Min.X, Y: y}, {X: c.Max.X, Y: y}}
	} else {
		x := trX(r.v)
		line = []vg.Point{{X: x, Y: c.Min.Y}, {X: x, Y: c.Max.Y}}
	}
	c.StrokeLines(r.style, c.ClipLinesXY(line)...)
}

// DataRange covers v on its own axis and nothing on the other.
func (r *rule) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	if r.axis == YAxis {
		ymin, ymax = r.v, r.v
	} else {
		xmin, xmax = r.v, r.v
	}
	return
}

func (r *rule) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(r.style, c.Min.X, y, c.Max.X, y)
}

// A Band shades the interval [Min, Max] of one axis across the whole
// panel.
type Band struct {
	Axis     Axis
	Min, Max float64
	Color    color.Color
	Label    rtl.Visual
}

func (l Band) add(p *plot.Plot, e *env) error {
	if !finite(l.Min) || !finite(l.Max) || l.Min > l.Max {
		return renderErr("band [%v, %v]", l.Min, l.Max)
	}
	c := l.Color
	if c == nil {
		c = Fade(Gray, 0.2)
	}
	b := &band{axis: l.Axis, min: l.Min, max: l.Max, color: c}
	p.Add(b)
	e.legend(p, l.Label, b)
	return nil
}

type band struct {
	axis     Axis
	min, max float64
	color    color.Color
}

func (b *band) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	lo, hi := c.Min, c.Max
	if b.axis == XAxis {
		lo.X, hi.X = trX(b.min), trX(b.max)
	} else {
		lo.Y, hi.Y = trY(b.min), trY(b.max)
	}
	pts := []vg.Point{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}}
	c.FillPolygon(b.color, c.ClipPolygonXY(pts))
}

func (b *band) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	if b.axis == XAxis {
		xmin, xmax = b.min, b.max
	} else {
		ymin, ymax = b.min, b.max
	}
	return
}

func (b *band) Thumbnail(c *draw.Canvas) {
	fillRect(c, b.color, c.Min, c.Max)
}

// Stems draws a vertical line from zero to each Y[i] at X[i], capped
// with a marker, over a zero baseline.
type Stems struct {
	X, Y  []float64
	Color color.Color
	Label rtl.Visual
}

func (l Stems) add(p *plot.Plot, e *env) error {
	if err := checkPairs("stems", l.X, l.Y); err != nil {
		return err
	}
	c := e.color(l.Color)
	s := &stems{
		x: l.X, y: l.Y,
		line:  draw.LineStyle{Color: c, Width: e.width(0)},
		glyph: draw.GlyphStyle{Color: c, Radius: vg.Points(3), Shape: draw.CircleGlyph{}},
	}
	p.Add(s)
	e.legend(p, l.Label, s)
	return nil
}

type stems struct {
	x, y  []float64
	line  draw.LineStyle
	glyph draw.GlyphStyle
}

func (s *stems) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	base := draw.LineStyle{Color: Gray, Width: s.line.Width / 2}
	c.StrokeLines(base, c.ClipLinesXY([]vg.Point{{X: c.Min.X, Y: trY(0)}, {X: c.Max.X, Y: trY(0)}})...)
	for i := range s.x {
		if !finite(s.x[i]) || !finite(s.y[i]) {
			continue
		}
		x, y := trX(s.x[i]), trY(s.y[i])
		c.StrokeLines(s.line, c.ClipLinesXY([]vg.Point{{X: x, Y: trY(0)}, {X: x, Y: y}})...)
		if pt := (vg.Point{X: x, Y: y}); c.Contains(pt) {
			c.DrawGlyph(s.glyph, pt)
		}
	}
}

func (s *stems) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = 0, 0
	for i := range s.x {
		if !finite(s.x[i]) || !finite(s.y[i]) {
			continue
		}
		xmin, xmax = math.Min(xmin, s.x[i]), math.Max(xmax, s.x[i])
		ymin, ymax = math.Min(ymin, s.y[i]), math.Max(ymax, s.y[i])
	}
	return
}

func (s *stems) Thumbnail(c *draw.Canvas) {
	x := c.Center().X
	c.StrokeLine2(s.line, x, c.Min.Y, x, c.Max.Y)
	c.DrawGlyph(s.glyph, vg.Point{X: x, Y: c.Max.Y})
}
