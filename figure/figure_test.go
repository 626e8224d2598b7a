// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/watermark"
	"github.com/disintegration/imaging"
	"gonum.org/v1/plot"
)

func smallStyle() Style {
	return DefaultStyle().WithDPI(72).WithSize(4, 3).WithFontSize(8)
}

func TestStyleParse(t *testing.T) {
	st, err := DefaultStyle().Parse([]byte("font_size: 18\ndpi: 150\nunicode_minus: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if st.FontSize != 18 || st.DPI != 150 || !st.UnicodeMinus {
		t.Errorf("got %+v", st)
	}
	if st.Width != DefaultStyle().Width {
		t.Errorf("width changed to %v", st.Width)
	}
	if st.size(st.TickSize) != 18 {
		t.Errorf("tick size falls back to %v, want 18", st.size(st.TickSize))
	}

	if st, err := DefaultStyle().Parse(nil); err != nil || st != DefaultStyle() {
		t.Errorf("empty document: %+v, %v", st, err)
	}
	for _, bad := range []string{
		"font_sise: 12\n",
		"dpi: 0\n",
		"width: -1\n",
		"dpi: [1]\n",
	} {
		if _, err := DefaultStyle().Parse([]byte(bad)); err == nil {
			t.Errorf("Parse(%q) succeeded", bad)
		}
	}
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	if err := os.WriteFile(path, []byte("width: 15\nheight: 14\nbold_titles: true\n"), 0666); err != nil {
		t.Fatal(err)
	}
	st, err := LoadStyle(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Width != 15 || st.Height != 14 || !st.BoldTitles || st.DPI != 300 {
		t.Errorf("got %+v", st)
	}
	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("loading a missing file succeeded")
	}
}

func TestNewGrid(t *testing.T) {
	for _, test := range []struct {
		rows, cols int
		ok         bool
	}{
		{1, 1, true},
		{2, 3, true},
		{3, 2, true},
		{3, 1, true},
		{0, 1, false},
		{1, 0, false},
		{3, 3, false},
		{1, 4, false},
		{4, 1, false},
	} {
		_, err := New(smallStyle(), test.rows, test.cols)
		if (err == nil) != test.ok {
			t.Errorf("New(%d×%d) = %v, want ok %v", test.rows, test.cols, err, test.ok)
		}
		if err != nil && !errors.Is(err, ErrRender) {
			t.Errorf("New(%d×%d) = %v, want ErrRender", test.rows, test.cols, err)
		}
	}
	if _, err := New(Style{}, 1, 1); !errors.Is(err, ErrRender) {
		t.Errorf("zero style: %v", err)
	}
}

func demoFigure(t *testing.T) *Figure {
	t.Helper()
	f, err := New(smallStyle(), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, math.NaN(), 2, 5}
	f.Panel(0, 0).Add(
		Curve{X: xs, Y: ys, Label: rtl.Shape("فشار")},
		HLine{Y: 2, Dashes: Dashed},
		Text{Text: "a", X: 0.1, Y: 0.9, Coords: AxesCoords, Box: Wheat},
	)
	f.Panel(0, 0).Title = rtl.Shape("نمودار فشار")
	f.Panel(0, 1).Add(
		Bars{At: []float64{0, 1, 2}, Values: []float64{0.5, -0.2, 0.8}, Width: 0.25, Format: "%.2f"},
		Bars{At: []float64{0.25, 1.25, 2.25}, Values: []float64{0.4, 0.3, 0.1}, Width: 0.25, Horizontal: false},
	)
	f.Panel(1, 0).Add(
		Scatter{X: xs, Y: []float64{2, 1, 3, 4, 1}, Colors: []color.Color{Red, Blue, Red, Blue, Red}, Edge: Black},
		Arrow{Tail: Point{1, 3}, Head: Point{3, 4}, Text: "b"},
		Band{Axis: XAxis, Min: 1, Max: 2},
	)
	f.Panel(1, 1).Add(
		HeatMap{Z: [][]float64{{1, -0.5}, {0.2, 0}}, Min: -1, Max: 1, Gradient: CoolWarm, Format: "%.2f",
			RowLabels: []rtl.Visual{"r0", "r1"}, ColLabels: []rtl.Visual{"c0", "c1"}},
	)
	f.Panel(1, 1).Legend = NoLegend
	return f
}

func TestRender(t *testing.T) {
	c, err := demoFigure(t).Render()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Bounds(), image.Rect(0, 0, 288, 216); got != want {
		t.Fatalf("bounds %v, want %v", got, want)
	}
	if c.DPI() != 72 {
		t.Errorf("DPI %v", c.DPI())
	}
	var areas [2][2]image.Rectangle
	for r := 0; r < 2; r++ {
		for col := 0; col < 2; col++ {
			a, err := c.DataArea(r, col)
			if err != nil {
				t.Fatal(err)
			}
			if a.Empty() || !a.In(c.Bounds()) {
				t.Errorf("data area (%d, %d) = %v", r, col, a)
			}
			areas[r][col] = a
		}
	}
	near := func(a, b int) bool { return a-b <= 1 && b-a <= 1 }
	for i := 0; i < 2; i++ {
		if !near(areas[0][i].Min.X, areas[1][i].Min.X) || !near(areas[i][0].Max.Y, areas[i][1].Max.Y) {
			t.Errorf("data areas not aligned: %v", areas)
		}
	}
	if areas[0][0].Max.X > areas[0][1].Min.X || areas[0][0].Max.Y > areas[1][0].Min.Y {
		t.Errorf("data areas overlap: %v", areas)
	}
	if _, err := c.DataArea(2, 0); !errors.Is(err, ErrRender) {
		t.Errorf("DataArea(2, 0) = %v, want ErrRender", err)
	}
	if ink(c.Image()).Empty() {
		t.Errorf("rendered figure is blank")
	}
}

func TestRenderErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		build func(f *Figure)
	}{
		{"empty panel", func(f *Figure) {}},
		{"bad cell", func(f *Figure) {
			f.Panel(0, 0).Add(HLine{Y: 1})
			f.Panel(1, 0).Add(HLine{Y: 1})
		}},
		{"mismatched curve", func(f *Figure) {
			f.Panel(0, 0).Add(Curve{X: []float64{1, 2}, Y: []float64{1}})
		}},
		{"undefined curve", func(f *Figure) {
			f.Panel(0, 0).Add(Curve{X: []float64{1, 2}, Y: []float64{math.NaN(), math.NaN()}})
		}},
		{"empty scatter", func(f *Figure) {
			f.Panel(0, 0).Add(Scatter{})
		}},
		{"NaN scatter", func(f *Figure) {
			f.Panel(0, 0).Add(Scatter{X: []float64{1}, Y: []float64{math.NaN()}})
		}},
		{"bar colours", func(f *Figure) {
			f.Panel(0, 0).Add(Bars{At: []float64{1, 2}, Values: []float64{1, 2}, Colors: []color.Color{Red}})
		}},
		{"ragged heat map", func(f *Figure) {
			f.Panel(0, 0).Add(HeatMap{Z: [][]float64{{1, 2}, {3}}})
		}},
		{"inverted heat map range", func(f *Figure) {
			f.Panel(0, 0).Add(HeatMap{Z: [][]float64{{1, 2}, {3, 4}}, Min: 1, Max: -1})
		}},
		{"infinite heat map range", func(f *Figure) {
			f.Panel(0, 0).Add(HeatMap{Z: [][]float64{{1, 2}}, Min: 0, Max: math.Inf(1)})
		}},
		{"undefined heat map", func(f *Figure) {
			f.Panel(0, 0).Add(HeatMap{Z: [][]float64{{math.NaN(), math.Inf(1)}, {math.NaN(), math.NaN()}}})
		}},
		{"zero bins", func(f *Figure) {
			f.Panel(0, 0).Add(Histogram{Values: []float64{1, 2}})
		}},
		{"empty box plot", func(f *Figure) {
			f.Panel(0, 0).Add(BoxPlot{})
		}},
		{"inverted band", func(f *Figure) {
			f.Panel(0, 0).Add(Band{Min: 2, Max: 1})
		}},
		{"legend", func(f *Figure) {
			f.Panel(0, 0).Add(HLine{Y: 1}).Legend = LegendPos(42)
		}},
	} {
		f, err := New(smallStyle(), 1, 1)
		if err != nil {
			t.Fatal(err)
		}
		test.build(f)
		if _, err := f.Render(); !errors.Is(err, ErrRender) {
			t.Errorf("%s: Render() = %v, want ErrRender", test.name, err)
		}
	}
}

func TestHeatMapConstant(t *testing.T) {
	f, err := New(smallStyle(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	f.Panel(0, 0).Add(HeatMap{Z: [][]float64{{2, 2}, {2, math.NaN()}}, Format: "%.0f"})
	if _, err := f.Render(); err != nil {
		t.Fatalf("constant heat map: %v", err)
	}
}

func TestOverlayGrows(t *testing.T) {
	c := &Canvas{
		img:   imaging.New(100, 80, color.White),
		dpi:   72,
		areas: [][]image.Rectangle{{image.Rect(10, 10, 90, 70)}},
	}
	dot := imaging.New(20, 20, color.Black)
	if err := c.Overlay(dot, image.Pt(-5, 70)); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Bounds(), image.Rect(0, 0, 105, 90); got != want {
		t.Errorf("bounds %v, want %v", got, want)
	}
	if a, _ := c.DataArea(0, 0); a != image.Rect(15, 10, 95, 70) {
		t.Errorf("data area %v after growth", a)
	}
	if got := c.img.NRGBAAt(0, 89); got != (color.NRGBA{0, 0, 0, 0xff}) {
		t.Errorf("overlay pixel %v", got)
	}
	if got := c.img.NRGBAAt(104, 0); got != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("grown background %v", got)
	}

	inside := imaging.New(10, 10, color.Black)
	if err := c.Overlay(inside, image.Pt(40, 40)); err != nil {
		t.Fatal(err)
	}
	if got, want := c.Bounds(), image.Rect(0, 0, 105, 90); got != want {
		t.Errorf("bounds changed to %v", got)
	}
}

func TestTight(t *testing.T) {
	img := imaging.New(400, 300, color.White)
	img = imaging.Paste(img, imaging.New(50, 40, color.Black), image.Pt(100, 120))
	c := &Canvas{img: img, dpi: 100}
	out := c.Tight()
	if got, want := out.Bounds().Size(), image.Pt(50+20, 40+20); got != want {
		t.Errorf("tight size %v, want %v", got, want)
	}
	if got := ink(out); got != image.Rect(10, 10, 60, 50) {
		t.Errorf("ink at %v", got)
	}

	blank := &Canvas{img: imaging.New(30, 20, color.White), dpi: 10}
	if got := blank.Tight().Bounds().Size(); got != image.Pt(32, 22) {
		t.Errorf("blank tight size %v", got)
	}
}

func TestSave(t *testing.T) {
	c, err := demoFigure(t).Render()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "fig.png")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[37:41]) != "pHYs" {
		t.Fatalf("chunk after IHDR is %q, want pHYs", data[37:41])
	}
	if ppm := binary.BigEndian.Uint32(data[41:]); ppm != 2835 {
		t.Errorf("pHYs %d pixels per metre, want 2835", ppm)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding saved PNG: %v", err)
	}
	if got, want := img.Bounds().Size(), c.Tight().Bounds().Size(); got != want {
		t.Errorf("saved size %v, want %v", got, want)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory holds %d files, want 1", len(entries))
	}

	if err := c.Save(path); !errors.Is(err, ErrRender) {
		t.Errorf("second Save = %v, want ErrRender", err)
	}
	if err := c.Overlay(imaging.New(1, 1, color.Black), image.Pt(0, 0)); !errors.Is(err, ErrRender) {
		t.Errorf("Overlay after Save = %v, want ErrRender", err)
	}
}

func TestSaveFailure(t *testing.T) {
	c := &Canvas{img: imaging.New(10, 10, color.White), dpi: 72}
	path := filepath.Join(t.TempDir(), "missing", "fig.png")
	if err := c.Save(path); err == nil {
		t.Fatal("saving into a missing directory succeeded")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed save left %s", path)
	}
	if c.saved {
		t.Errorf("failed save froze the canvas")
	}
}

func TestWatermark(t *testing.T) {
	c, err := demoFigure(t).Render()
	if err != nil {
		t.Fatal(err)
	}
	spec := watermark.Spec{
		URL:    "https://B2n.ir/xb5100",
		Panel:  watermark.Cell{Row: 1, Col: 1},
		Pos:    watermark.Point{X: 0.9, Y: 0.08},
		Space:  watermark.AxesFraction,
		Anchor: watermark.BottomRight,
	}
	if err := watermark.Compose(c, spec, watermark.Options{Zoom: 0.5}); err != nil {
		t.Fatal(err)
	}
	before := c.Bounds()
	// Compose past the top-left corner.
	spec.Space, spec.Pos = watermark.FigureFraction, watermark.Point{X: 0, Y: 1}
	if err := watermark.Compose(c, spec, watermark.Options{}); err != nil {
		t.Fatal(err)
	}
	side := (21 + 4) * 5
	if got, want := c.Bounds().Size(), before.Size().Add(image.Pt(side, side)); got != want {
		t.Errorf("size %v after composing outside, want %v", got, want)
	}
	if got := c.Image().NRGBAAt(side-1-2*5, 2*5); got != (color.NRGBA{0, 0, 0, 0xff}) {
		t.Errorf("top-right finder pixel is %v, want black", got)
	}
}

func TestMinusTicks(t *testing.T) {
	m := minusTicks{plot.ConstantTicks{{Value: -1, Label: "-1"}, {Value: 2, Label: "2"}}}
	ts := m.Ticks(-2, 2)
	if ts[0].Label != "−1" || ts[1].Label != "2" {
		t.Errorf("labels %q, %q", ts[0].Label, ts[1].Label)
	}
	if got := NumericTicks("%.1f", 0, 0.5); got[1].Label != "0.5" || got[1].Value != 0.5 {
		t.Errorf("NumericTicks = %v", got)
	}
}

func TestGradient(t *testing.T) {
	cs := CoolWarm.Colors()
	if len(cs) != 256 {
		t.Fatalf("%d colours", len(cs))
	}
	rgba := func(c color.Color) color.RGBA {
		return color.RGBAModel.Convert(c).(color.RGBA)
	}
	if got := rgba(CoolWarm.At(-3)); got != rgba(cs[0]) {
		t.Errorf("At(-3) = %v, want %v", got, cs[0])
	}
	if got := rgba(Viridis.At(1)); got != (color.RGBA{0xfd, 0xe7, 0x25, 0xff}) {
		t.Errorf("Viridis.At(1) = %v", got)
	}
	if luminance(Viridis.At(0)) >= luminance(Viridis.At(1)) {
		t.Errorf("Viridis does not brighten")
	}
	if got := Fade(Red, 0.5).(color.NRGBA); got != (color.NRGBA{0xff, 0, 0, 0x80}) {
		t.Errorf("Fade(Red, 0.5) = %v", got)
	}
}
