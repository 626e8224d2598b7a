// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figcmd holds the flags and output stage shared by the figure
// commands.
package figcmd

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/watermark"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Flags are the command-line settings common to every figure command.
type Flags struct {
	Out     string
	Preview string
	Seed    uint64
	DPI     int
	Style   string
	URL     string
	Verbose bool
}

// Register defines the common flags on the default flag set with the
// given defaults. The caller must call flag.Parse.
func Register(out, url string, seed uint64) *Flags {
	f := &Flags{}
	flag.StringVar(&f.Out, "o", out, "write the figure to `file`")
	flag.StringVar(&f.Preview, "preview", "", "also write a half-size preview to `file`")
	flag.Uint64Var(&f.Seed, "seed", seed, "random `seed` for the synthetic data")
	flag.IntVar(&f.DPI, "dpi", 0, "raster resolution in dots per inch (default from style)")
	flag.StringVar(&f.Style, "style", "", "read style overrides from YAML `file`")
	flag.StringVar(&f.URL, "url", url, "encode `url` in the QR watermark")
	flag.BoolVar(&f.Verbose, "v", false, "log progress")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	return f
}

// Logf logs a progress line if -v was given.
func (f *Flags) Logf(format string, args ...interface{}) {
	if f.Verbose {
		log.Printf(format, args...)
	}
}

// LoadStyle applies the -style file and -dpi flag to base.
func (f *Flags) LoadStyle(base figure.Style) (figure.Style, error) {
	st := base
	if f.Style != "" {
		var err error
		if st, err = base.Load(f.Style); err != nil {
			return figure.Style{}, err
		}
	}
	if f.DPI != 0 {
		st = st.WithDPI(f.DPI)
	}
	return st, nil
}

// Finish renders fig, stamps the watermark described by mark with
// its URL taken from the -url flag, and saves the result to the -o
// file. Errors are wrapped with the failing stage.
func (f *Flags) Finish(fig *figure.Figure, mark watermark.Spec, opts watermark.Options) error {
	f.Logf("rendering at %d DPI", fig.Style().DPI)
	c, err := fig.Render()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	mark.URL = f.URL
	if err := watermark.Compose(c, mark, opts); err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	var preview image.Image
	if f.Preview != "" {
		preview = halve(c.Tight())
	}
	if err := c.Save(f.Out); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	f.Logf("wrote %s", f.Out)
	if preview != nil {
		if err := imaging.Save(preview, f.Preview); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		f.Logf("wrote %s", f.Preview)
	}
	return nil
}

// halve scales img down by a factor of 2.
func halve(img image.Image) image.Image {
	sb := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(sb.Dx()/2, 1), max(sb.Dy()/2, 1)))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, sb, draw.Over, nil)
	return dst
}
