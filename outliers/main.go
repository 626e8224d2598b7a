// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command outliers draws four views of hourly distillation-column
// temperatures with injected hot and cold outliers: a box plot, a
// histogram with a density estimate, the series over time coloured by
// z-score, and the z-scores against their threshold.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/synth"
	"github.com/aiog/figgen/transform"
	"github.com/aiog/figgen/watermark"
)

var temperature = synth.Noise{
	Name:     "temperature",
	N:        200,
	Dist:     synth.Gaussian,
	Mean:     80,
	Variance: 5 * 5,
	RandomOutliers: []synth.OutlierBatch{
		{Count: 10, Min: 110, Max: 130},
		{Count: 8, Min: 40, Max: 50},
	},
}

const (
	threshold = 3.0
	bins      = 20
	low, high = 60.0, 100.0
)

func main() {
	log.SetPrefix("outliers: ")
	log.SetFlags(0)
	flags := figcmd.Register("fig2-8.png",
		"https://github.com/hojatollahgholami/AI-in-Oil-and-gas-industry/edit/main/figs/fig2_8.py", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	ds, err := synth.Generate(temperature, flags.Seed)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	temp := ds.MustColumn("temperature")
	hours := make([]float64, len(temp))
	for i := range hours {
		hours[i] = float64(i)
	}

	z, err := transform.ZScore(temp, threshold)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	flags.Logf("%d of %d samples exceed z=%g", len(z.Outliers), len(temp), threshold)
	kde, err := transform.KernelDensity(temp, 200)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	lo, hi := temp[0], temp[0]
	for _, t := range temp {
		lo, hi = min(lo, t), max(hi, t)
	}
	// Scale the density to the histogram's counts.
	scale := float64(len(temp)) * (hi - lo) / bins
	counts := make([]float64, len(kde.Y))
	for i, y := range kde.Y {
		counts[i] = y * scale
	}

	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(15, 12).WithFontSize(21))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fig, err := figure.New(st, 2, 2)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	label := rtl.Shape("دما")
	days := make([]figure.Tick, 0, len(temp)/24+1)
	for h := 0; h < len(temp); h += 24 {
		days = append(days, figure.Tick{Value: float64(h), Label: rtl.Visual(fmt.Sprintf("2024-01-%02d", h/24+1))})
	}

	box := fig.Panel(0, 0)
	box.Title = rtl.Shape("نمودار جعبه‌ای")
	box.YLabel = label
	box.Grid = true
	box.XTicks = []figure.Tick{{Value: 0}}
	box.Add(figure.BoxPlot{Values: temp, Color: figure.SkyBlue, Width: 120})

	hist := fig.Panel(0, 1)
	hist.Title = rtl.Shape("هیستوگرام توزیع دما")
	hist.XLabel = label
	hist.YLabel = rtl.Shape("تعداد نمونه‌ها")
	hist.Grid = true
	var ox, oy []float64
	for _, t := range temp {
		if t < low || t > high {
			ox, oy = append(ox, t), append(oy, 5)
		}
	}
	hist.Add(
		figure.Histogram{Values: temp, Bins: bins, Color: figure.Fade(figure.Green, 0.4), Edge: figure.Green},
		figure.Curve{X: kde.X, Y: counts, Color: figure.Green, Width: 2},
		figure.VLine{X: low, Color: figure.Fade(figure.Orange, 0.5), Dashes: figure.Dashed},
		figure.VLine{X: high, Color: figure.Fade(figure.Orange, 0.5), Dashes: figure.Dashed},
	)
	if len(ox) > 0 {
		hist.Add(figure.Scatter{X: ox, Y: oy, Color: figure.Fade(figure.Red, 0.7), Radius: 3.5, Label: rtl.Shape("نقاط پرت")})
	}

	pick := func(hot, cold color.Color) []color.Color {
		cs := make([]color.Color, len(temp))
		for i := range cs {
			cs[i] = figure.Fade(cold, 0.7)
			if z.Flagged(i) {
				cs[i] = figure.Fade(hot, 0.7)
			}
		}
		return cs
	}

	series := fig.Panel(1, 0)
	series.Title = rtl.Shape("نمودار پراکندگی دما بر اساس زمان")
	series.XLabel = rtl.Shape("زمان")
	series.YLabel = label
	series.XTicks = days
	series.XTickRotation = 30
	series.Grid = true
	series.Add(
		figure.Scatter{X: hours, Y: temp, Colors: pick(figure.Red, figure.Blue)},
		figure.HLine{Y: z.Mean, Color: figure.Fade(figure.Red, 0.5), Dashes: figure.Dashed},
		figure.HLine{Y: high, Color: figure.Fade(figure.Orange, 0.7), Dashes: figure.Dashed},
		figure.HLine{Y: low, Color: figure.Fade(figure.Orange, 0.7), Dashes: figure.Dashed},
	)

	zp := fig.Panel(1, 1)
	zp.Title = rtl.Shape("نمودار Z-Score برای تشخیص نقاط پرت")
	zp.XLabel = rtl.Shape("زمان")
	zp.YLabel = rtl.Shape("مقدار Z-Score")
	zp.XTicks = days
	zp.XTickRotation = 30
	zp.Grid = true
	zp.Add(
		figure.Scatter{X: hours, Y: z.Scores, Colors: pick(figure.Red, figure.Green)},
		figure.HLine{Y: threshold, Color: figure.Red, Dashes: figure.Dashed, Label: rtl.Shape("آستانه Z=3")},
	)

	mark := watermark.Spec{
		Panel:  watermark.Cell{Row: 0, Col: 1},
		Pos:    watermark.Point{X: 0.9, Y: 0.08},
		Space:  watermark.AxesFraction,
		Anchor: watermark.BottomLeft,
		Offset: watermark.Point{X: 7.75, Y: -1.7},
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.5})
}
