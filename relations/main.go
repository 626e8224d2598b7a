// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command relations draws four noisy feature relationships (positive
// and negative linear, exponential and sinusoidal) against their
// noise-free curves.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/synth"
	"github.com/aiog/figgen/transform"
	"github.com/aiog/figgen/watermark"
)

type relation struct {
	title   string
	formula string
	textX   float64
	color   color.Color
	linear  bool
	spec    synth.Relation
}

var relations = []relation{
	{
		"رابطه خطی مثبت", "Y = 2X + 3", 0.5, figure.Blue, true,
		synth.Relation{Name: "positive", F: func(x float64) float64 { return 2*x + 3 }, NoiseStd: 1},
	},
	{
		"رابطه خطی منفی", "Y = -1.5X + 15", 0.5, figure.Green, true,
		synth.Relation{Name: "negative", F: func(x float64) float64 { return -1.5*x + 15 }, NoiseStd: 1},
	},
	{
		"رابطه نمایی", "Y = 2 * e^{0.5X}", 0.5, figure.Purple, false,
		synth.Relation{Name: "exponential", F: func(x float64) float64 { return 2 * math.Exp(0.5*x) }, NoiseStd: 5},
	},
	{
		"رابطه سینوسی", "Y = 5 * sin(X) + 10", 0.4, figure.Orange, false,
		synth.Relation{Name: "sinusoidal", F: func(x float64) float64 { return 5*math.Sin(x) + 10 }, NoiseStd: 0.5},
	},
}

func main() {
	log.SetPrefix("relations: ")
	log.SetFlags(0)
	flags := figcmd.Register("fig2-12.png",
		"https://github.com/hojatollahgholami/AI-in-Oil-and-gas-industry/edit/main/figs/fig2_12.py", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(16, 12))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st.TitleSize, st.LabelSize = 21, 21
	st.UnicodeMinus = false
	fig, err := figure.New(st, 2, 2)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	for i, r := range relations {
		spec := r.spec
		spec.N, spec.XMin, spec.XMax = 100, 0, 10
		// Each panel draws its own noise.
		ds, err := synth.Generate(spec, flags.Seed+uint64(i))
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		xs, ys := ds.MustColumn("x"), ds.MustColumn("y")
		if r.linear {
			fit, err := transform.FitLine(xs, ys)
			if err != nil {
				return fmt.Errorf("transform: %w", err)
			}
			flags.Logf("%s: fitted Y = %.2fX + %.2f", spec.Name, fit.Slope, fit.Intercept)
		}

		p := fig.Panel(i/2, i%2)
		p.Title = rtl.Shape(r.title)
		p.XLabel = rtl.Shape("ویژگی X")
		p.YLabel = rtl.Shape("ویژگی Y")
		p.Grid = true
		p.Add(
			figure.Scatter{X: xs, Y: ys, Color: figure.Fade(r.color, 0.7)},
			figure.Curve{X: xs, Y: ds.MustColumn("truth"), Color: figure.Red, Width: 2},
			figure.Text{
				Text:   rtl.Shape(r.formula),
				X:      r.textX,
				Y:      0.9,
				Coords: figure.AxesCoords,
				Align:  figure.AlignLeft,
				Size:   21,
				Color:  figure.Red,
			},
		)
	}

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 0.2, Y: 0.2},
		Space:  watermark.FigureFraction,
		Anchor: watermark.BottomRight,
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.6})
}
