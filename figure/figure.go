// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figure assembles multi-panel charts and rasterizes them.
//
// A Figure is a fixed grid of panels. Each panel collects layers
// (curves, bars, scatters and so on) bound to plain float64 slices,
// plus already-shaped rtl.Visual labels. Render lays the grid out on a
// gonum/plot raster canvas with aligned data areas and returns a
// Canvas, which can take overlays such as a watermark and is finally
// written out with Save.
package figure

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aiog/figgen/rtl"
	"github.com/disintegration/imaging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrRender is returned for layers with bad or empty data, references
// to cells outside the grid, and operations on a saved Canvas.
var ErrRender = errors.New("figure: cannot render")

func renderErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRender, fmt.Sprintf(format, args...))
}

const (
	maxRows   = 3
	maxCols   = 3
	maxPanels = 6
)

// A Figure is a rows×cols grid of panels.
type Figure struct {
	style      Style
	rows, cols int
	panels     [][]*Panel
	err        error
}

// New returns an empty figure. Grids range from 1×1 to 3×3 with at
// most six panels.
func New(style Style, rows, cols int) (*Figure, error) {
	if err := style.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if rows < 1 || cols < 1 || rows > maxRows || cols > maxCols || rows*cols > maxPanels {
		return nil, renderErr("unsupported grid %d×%d", rows, cols)
	}
	f := &Figure{style: style, rows: rows, cols: cols}
	f.panels = make([][]*Panel, rows)
	for r := range f.panels {
		f.panels[r] = make([]*Panel, cols)
		for c := range f.panels[r] {
			f.panels[r][c] = new(Panel)
		}
	}
	return f, nil
}

// Style returns the figure's style.
func (f *Figure) Style() Style { return f.style }

// Panel returns the panel at row r, column c. Rows count from the top.
// Asking for a cell outside the grid returns a detached panel and
// makes Render fail.
func (f *Figure) Panel(r, c int) *Panel {
	if r < 0 || c < 0 || r >= f.rows || c >= f.cols {
		if f.err == nil {
			f.err = renderErr("no cell (%d, %d) in %d×%d grid", r, c, f.rows, f.cols)
		}
		return new(Panel)
	}
	return f.panels[r][c]
}

// A Range is an axis interval. The zero Range fits the data.
type Range struct{ Min, Max float64 }

func (r Range) auto() bool { return r.Min == r.Max }

// LegendPos places a panel's legend inside its data area.
type LegendPos int

const (
	UpperRight LegendPos = iota
	UpperLeft
	LowerLeft
	LowerRight
	NoLegend
)

// A Panel is one cell of the grid.
type Panel struct {
	Title, XLabel, YLabel rtl.Visual

	XRange, YRange Range

	// XTicks and YTicks replace the automatic ticks when non-empty.
	XTicks, YTicks []Tick

	// XTickRotation rotates the x tick labels, in degrees
	// counterclockwise.
	XTickRotation float64

	// Grid draws grid lines at the major ticks.
	Grid bool

	Legend LegendPos

	layers []Layer
}

// Add appends layers to p. Layers are drawn in order.
func (p *Panel) Add(layers ...Layer) *Panel {
	p.layers = append(p.layers, layers...)
	return p
}

// A Layer is something drawn in a panel's data area.
type Layer interface {
	add(p *plot.Plot, env *env) error
}

// env is what layers need from the figure while binding.
type env struct {
	style *Style
	ts    *typesetter
	// next is the next Tab10 colour for layers without one.
	next     int
	noLegend bool
}

func (e *env) color(c color.Color) color.Color {
	if c != nil {
		return c
	}
	c = Tab10[e.next%len(Tab10)]
	e.next++
	return c
}

func (e *env) width(w float64) vg.Length {
	if w > 0 {
		return vg.Points(w)
	}
	return vg.Points(e.style.LineWidth)
}

func (e *env) text(size float64, c color.Color) text.Style {
	return e.ts.style(e.style.size(size), false, c)
}

func (e *env) legend(p *plot.Plot, label rtl.Visual, thumbs ...plot.Thumbnailer) {
	if label != "" && !e.noLegend {
		p.Legend.Add(string(label), thumbs...)
	}
}

// restyle changes the face of st, keeping its alignment and rotation.
func (e *env) restyle(st *text.Style, size float64, bold bool) {
	ns := e.ts.style(size, bold, st.Color)
	st.Font, st.Handler = ns.Font, ns.Handler
}

func (p *Panel) build(e *env) (*plot.Plot, error) {
	if len(p.layers) == 0 {
		return nil, renderErr("panel has no layers")
	}
	st := e.style
	pl := plot.New()
	pl.Title.Text = string(p.Title)
	pl.X.Label.Text = string(p.XLabel)
	pl.Y.Label.Text = string(p.YLabel)
	e.restyle(&pl.Title.TextStyle, st.size(st.TitleSize), st.BoldTitles)
	e.restyle(&pl.X.Label.TextStyle, st.size(st.LabelSize), false)
	e.restyle(&pl.Y.Label.TextStyle, st.size(st.LabelSize), false)
	e.restyle(&pl.X.Tick.Label, st.size(st.TickSize), false)
	e.restyle(&pl.Y.Tick.Label, st.size(st.TickSize), false)
	e.restyle(&pl.Legend.TextStyle, st.size(st.LegendSize), false)
	pl.Title.Padding = vg.Points(st.size(st.TitleSize) / 2)

	if p.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = Fade(Gray, 0.4)
		g.Horizontal.Color = Fade(Gray, 0.4)
		pl.Add(g)
	}
	e.next, e.noLegend = 0, p.Legend == NoLegend
	for i, l := range p.layers {
		if err := l.add(pl, e); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	if !p.XRange.auto() {
		pl.X.Min, pl.X.Max = p.XRange.Min, p.XRange.Max
	}
	if !p.YRange.auto() {
		pl.Y.Min, pl.Y.Max = p.YRange.Min, p.YRange.Max
	}
	if len(p.XTicks) > 0 {
		pl.X.Tick.Marker = constantTicks(p.XTicks)
	}
	if len(p.YTicks) > 0 {
		pl.Y.Tick.Marker = constantTicks(p.YTicks)
	}
	if st.UnicodeMinus {
		pl.X.Tick.Marker = minusTicks{pl.X.Tick.Marker}
		pl.Y.Tick.Marker = minusTicks{pl.Y.Tick.Marker}
	}
	if p.XTickRotation != 0 {
		pl.X.Tick.Label.Rotation = p.XTickRotation * math.Pi / 180
		pl.X.Tick.Label.XAlign = text.XRight
		pl.X.Tick.Label.YAlign = text.YCenter
	}

	switch p.Legend {
	case UpperRight:
		pl.Legend.Top = true
	case UpperLeft:
		pl.Legend.Top, pl.Legend.Left = true, true
	case LowerLeft:
		pl.Legend.Left = true
	case LowerRight:
	case NoLegend:
	default:
		return nil, renderErr("unknown legend position %d", p.Legend)
	}
	pad := vg.Points(st.size(st.LegendSize) / 2)
	pl.Legend.XOffs, pl.Legend.YOffs = -pad, -pad
	if pl.Legend.Left {
		pl.Legend.XOffs = pad
	}
	if !pl.Legend.Top {
		pl.Legend.YOffs = pad
	}
	return pl, nil
}

// Render lays out and rasterizes the figure.
func (f *Figure) Render() (*Canvas, error) {
	if f.err != nil {
		return nil, f.err
	}
	ts, err := newTypesetter()
	if err != nil {
		return nil, fmt.Errorf("%w: loading fonts: %v", ErrRender, err)
	}
	e := &env{style: &f.style, ts: ts}
	plots := make([][]*plot.Plot, f.rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, f.cols)
		for c := range plots[r] {
			pl, err := f.panels[r][c].build(e)
			if err != nil {
				return nil, fmt.Errorf("panel (%d, %d): %w", r, c, err)
			}
			plots[r][c] = pl
		}
	}

	st := f.style
	w, h := vg.Length(st.Width)*vg.Inch, vg.Length(st.Height)*vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(st.DPI), vgimg.UseBackgroundColor(color.White))
	dc := draw.New(img)
	margin := vg.Length(0.1) * vg.Inch
	tiles := draw.Tiles{
		Rows:      f.rows,
		Cols:      f.cols,
		PadX:      vg.Length(st.PadX) * vg.Inch,
		PadY:      vg.Length(st.PadY) * vg.Inch,
		PadTop:    margin,
		PadBottom: margin,
		PadLeft:   margin,
		PadRight:  margin,
	}
	canvases := plot.Align(plots, tiles, dc)

	scale := float64(st.DPI) / vg.Inch.Points()
	height := img.Image().Bounds().Dy()
	toPixels := func(r vg.Rectangle) image.Rectangle {
		return image.Rect(
			int(math.Round(r.Min.X.Points()*scale)),
			height-int(math.Round(r.Max.Y.Points()*scale)),
			int(math.Round(r.Max.X.Points()*scale)),
			height-int(math.Round(r.Min.Y.Points()*scale)),
		)
	}
	areas := make([][]image.Rectangle, f.rows)
	for r := range plots {
		areas[r] = make([]image.Rectangle, f.cols)
		for c, pl := range plots[r] {
			areas[r][c] = toPixels(pl.DataCanvas(canvases[r][c]).Rectangle)
			pl.Draw(canvases[r][c])
		}
	}
	return &Canvas{img: imaging.Clone(img.Image()), dpi: float64(st.DPI), areas: areas}, nil
}
