// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figcmd

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/watermark"
	"github.com/disintegration/imaging"
)

func TestLoadStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	if err := os.WriteFile(path, []byte("font_size: 9\ndpi: 150\n"), 0666); err != nil {
		t.Fatal(err)
	}

	f := &Flags{Style: path}
	st, err := f.LoadStyle(figure.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	if st.FontSize != 9 || st.DPI != 150 {
		t.Errorf("style file: got font %v dpi %d, want 9 150", st.FontSize, st.DPI)
	}

	f.DPI = 72
	if st, err = f.LoadStyle(figure.DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	if st.DPI != 72 {
		t.Errorf("-dpi override: got %d, want 72", st.DPI)
	}

	f = &Flags{Style: filepath.Join(dir, "missing.yaml")}
	if _, err := f.LoadStyle(figure.DefaultStyle()); err == nil {
		t.Error("missing style file: want error")
	}
}

func TestHalve(t *testing.T) {
	for _, tc := range []struct{ w, h, ww, wh int }{
		{100, 60, 50, 30},
		{101, 61, 50, 30},
		{1, 1, 1, 1},
	} {
		got := halve(image.NewNRGBA(image.Rect(0, 0, tc.w, tc.h))).Bounds()
		if got.Dx() != tc.ww || got.Dy() != tc.wh {
			t.Errorf("halve %dx%d: got %dx%d, want %dx%d", tc.w, tc.h, got.Dx(), got.Dy(), tc.ww, tc.wh)
		}
	}
}

func TestFinish(t *testing.T) {
	dir := t.TempDir()
	f := &Flags{
		Out:     filepath.Join(dir, "fig.png"),
		Preview: filepath.Join(dir, "preview.png"),
		URL:     "https://example.com/fig",
	}
	st := figure.DefaultStyle().WithDPI(72).WithSize(4, 3).WithFontSize(8)
	fig, err := figure.New(st, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := fig.Panel(0, 0)
	p.Title = rtl.Shape("آزمون")
	p.Add(figure.Curve{X: []float64{0, 1, 2}, Y: []float64{1, 3, 2}})

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 1, Y: 0},
		Space:  watermark.FigureFraction,
		Anchor: watermark.BottomRight,
	}
	if err := f.Finish(fig, mark, watermark.Options{Zoom: 0.5}); err != nil {
		t.Fatal(err)
	}

	full, err := imaging.Open(f.Out)
	if err != nil {
		t.Fatal(err)
	}
	preview, err := imaging.Open(f.Preview)
	if err != nil {
		t.Fatal(err)
	}
	fb, pb := full.Bounds(), preview.Bounds()
	if pb.Dx() != fb.Dx()/2 || pb.Dy() != fb.Dy()/2 {
		t.Errorf("preview is %v, want half of %v", pb.Size(), fb.Size())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d files in output directory, want 2", len(entries))
	}
}

func TestFinishSaveError(t *testing.T) {
	f := &Flags{Out: filepath.Join(t.TempDir(), "missing", "fig.png"), URL: "x"}
	fig, err := figure.New(figure.DefaultStyle().WithDPI(72).WithSize(3, 2), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	fig.Panel(0, 0).Add(figure.HLine{Y: 1})
	err = f.Finish(fig, watermark.Spec{Space: watermark.FigureFraction}, watermark.Options{Zoom: 0.5})
	if err == nil {
		t.Fatal("want error writing into a missing directory")
	}
}
