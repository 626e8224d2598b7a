// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command featimportance compares the importance that filter, wrapper
// and embedded feature-selection methods assign to five pipeline
// sensor readings, as grouped bars.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/watermark"
)

var features = []string{"دمای سیال", "فشار سیال", "لرزش", "جریان سیال", "رطوبت محیط"}

var methods = []struct {
	name   string
	color  color.Color
	scores []float64
}{
	{"روش فیلتر", figure.SkyBlue, []float64{0.72, 0.65, 0.82, 0.45, 0.33}},
	{"روش پوشش", figure.Salmon, []float64{0.25, 0.20, 0.30, 0.15, 0.10}},
	{"روش جاسازی", figure.LightGreen, []float64{0.28, 0.22, 0.25, 0.15, 0.10}},
}

const width = 0.25

func main() {
	log.SetPrefix("featimportance: ")
	log.SetFlags(0)
	flags := figcmd.Register("fig2-10.png",
		"https://github.com/hojatollahgholami/AI-in-Oil-and-gas-industry/edit/main/figs/fig2_9.py", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(14, 8).WithFontSize(21))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st.TickSize = 21
	fig, err := figure.New(st, 1, 1)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	p := fig.Panel(0, 0)
	p.XLabel = rtl.Shape("ویژگی‌ها")
	p.YLabel = rtl.Shape("اهمیت ویژگی")
	p.YRange = figure.Range{Min: 0, Max: 1}
	p.Grid = true
	for i, name := range rtl.Shapes(features...) {
		p.XTicks = append(p.XTicks, figure.Tick{Value: float64(i), Label: name})
	}
	for m, method := range methods {
		at := make([]float64, len(method.scores))
		for i := range at {
			at[i] = float64(i) + float64(m-1)*width
		}
		p.Add(figure.Bars{
			At:     at,
			Values: method.scores,
			Width:  width,
			Color:  figure.Fade(method.color, 0.9),
			Format: "%.2f",
			Label:  rtl.Shape(method.name),
		})
	}

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 0.92, Y: 0.5},
		Space:  watermark.FigureFraction,
		Anchor: watermark.BottomRight,
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.6})
}
