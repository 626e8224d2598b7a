// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"image/color"
	"math"

	"github.com/aiog/figgen/rtl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Coords selects how an annotation's position is interpreted.
type Coords int

const (
	// DataCoords positions are in the panel's data units.
	DataCoords Coords = iota

	// AxesCoords positions are fractions of the data area from its
	// bottom-left corner.
	AxesCoords
)

// Align is the horizontal alignment of annotation text on its
// position.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

func (a Align) x() text.XAlignment {
	switch a {
	case AlignLeft:
		return text.XLeft
	case AlignRight:
		return text.XRight
	}
	return text.XCenter
}

// A Point is a position in data coordinates.
type Point struct{ X, Y float64 }

// Text writes a string in the data area. It does not affect the axis
// ranges.
type Text struct {
	Text   rtl.Visual
	X, Y   float64
	Coords Coords
	Align  Align
	Size   float64
	Color  color.Color

	// Box, if set, fills a padded box behind the text.
	Box color.Color
}

func (l Text) add(p *plot.Plot, e *env) error {
	if l.Text == "" {
		return renderErr("text: empty")
	}
	if !finite(l.X) || !finite(l.Y) {
		return renderErr("text at (%v, %v)", l.X, l.Y)
	}
	sty := e.text(l.Size, l.Color)
	sty.XAlign, sty.YAlign = l.Align.x(), text.YCenter
	p.Add(&label{text: string(l.Text), at: Point{l.X, l.Y}, coords: l.Coords, style: sty, box: l.Box})
	return nil
}

type label struct {
	text   string
	at     Point
	coords Coords
	style  text.Style
	box    color.Color
}

func (l *label) pos(c *draw.Canvas, p *plot.Plot) vg.Point {
	if l.coords == AxesCoords {
		return vg.Point{
			X: c.Min.X + vg.Length(l.at.X)*(c.Max.X-c.Min.X),
			Y: c.Min.Y + vg.Length(l.at.Y)*(c.Max.Y-c.Min.Y),
		}
	}
	trX, trY := p.Transforms(c)
	return vg.Point{X: trX(l.at.X), Y: trY(l.at.Y)}
}

// bounds returns the padded box of the text drawn at pt.
func (l *label) bounds(pt vg.Point) vg.Rectangle {
	r := l.style.Rectangle(l.text)
	pad := l.style.Font.Size / 3
	return vg.Rectangle{
		Min: vg.Point{X: pt.X + r.Min.X - pad, Y: pt.Y + r.Min.Y - pad},
		Max: vg.Point{X: pt.X + r.Max.X + pad, Y: pt.Y + r.Max.Y + pad},
	}
}

func (l *label) draw(c *draw.Canvas, pt vg.Point) {
	if l.box != nil {
		b := l.bounds(pt)
		fillRect(c, l.box, b.Min, b.Max)
	}
	c.FillText(l.style, pt, l.text)
}

func (l *label) Plot(c draw.Canvas, p *plot.Plot) {
	l.draw(&c, l.pos(&c, p))
}

// An Arrow points from Tail to Head in data coordinates, with an
// optional label centred on Tail.
type Arrow struct {
	Tail, Head Point
	Text       rtl.Visual
	Size       float64
	Color      color.Color

	// Box, if set, fills a padded box behind the label.
	Box color.Color
}

func (l Arrow) add(p *plot.Plot, e *env) error {
	for _, pt := range []Point{l.Tail, l.Head} {
		if !finite(pt.X) || !finite(pt.Y) {
			return renderErr("arrow through (%v, %v)", pt.X, pt.Y)
		}
	}
	c := l.Color
	if c == nil {
		c = Black
	}
	sty := e.text(l.Size, Black)
	sty.XAlign, sty.YAlign = text.XCenter, text.YCenter
	a := &arrow{
		head:  l.Head,
		line:  draw.LineStyle{Color: c, Width: vg.Points(1.2)},
		label: label{text: string(l.Text), at: l.Tail, style: sty, box: l.Box},
	}
	p.Add(a)
	return nil
}

type arrow struct {
	head  Point
	line  draw.LineStyle
	label label
}

func (a *arrow) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	tail := a.label.pos(&c, p)
	head := vg.Point{X: trX(a.head.X), Y: trY(a.head.Y)}
	dx, dy := float64(head.X-tail.X), float64(head.Y-tail.Y)
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		a.label.draw(&c, tail)
		return
	}
	ux, uy := dx/dist, dy/dist

	// Start where the line leaves the label's box.
	start := 0.0
	if a.label.text != "" {
		b := a.label.bounds(tail)
		exit := math.Inf(1)
		if ux != 0 {
			edge := b.Max.X
			if ux < 0 {
				edge = b.Min.X
			}
			exit = math.Min(exit, float64(edge-tail.X)/ux)
		}
		if uy != 0 {
			edge := b.Max.Y
			if uy < 0 {
				edge = b.Min.Y
			}
			exit = math.Min(exit, float64(edge-tail.Y)/uy)
		}
		start = exit + float64(vg.Points(2))
	}
	const headLen, headHalf = 8.0, 3.5
	end := dist - headLen
	if start < end {
		from := vg.Point{X: tail.X + vg.Length(ux*start), Y: tail.Y + vg.Length(uy*start)}
		to := vg.Point{X: tail.X + vg.Length(ux*end), Y: tail.Y + vg.Length(uy*end)}
		c.StrokeLines(a.line, [][]vg.Point{{from, to}}...)
	}
	if start < dist {
		base := vg.Point{X: head.X - vg.Length(ux*headLen), Y: head.Y - vg.Length(uy*headLen)}
		px, py := vg.Length(-uy*headHalf), vg.Length(ux*headHalf)
		c.FillPolygon(a.line.Color, []vg.Point{
			head,
			{X: base.X + px, Y: base.Y + py},
			{X: base.X - px, Y: base.Y - py},
		})
	}
	if a.label.text != "" {
		a.label.draw(&c, tail)
	}
}
