// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command seasonal draws three years of a plant's half-monthly power
// consumption with its seasonal pattern and the step and trend that
// follow new equipment, alongside the rolling variance and the
// autocorrelation of the series.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/aclements/go-moremath/stats"
	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/synth"
	"github.com/aiog/figgen/transform"
	"github.com/aiog/figgen/watermark"
)

const (
	perYear    = 24
	years      = 3
	trendStart = 2 * perYear
	window     = 4
	maxLag     = 24
)

var (
	summers = []synth.Season{{Start: 4, End: 8, Factor: 1.15}, {Start: 16, End: 20, Factor: 1.15}}
	winters = []synth.Season{{Start: 10, End: 14, Factor: 0.90}, {Start: 22, End: 26, Factor: 0.90}}
)

var consumption = synth.Seasonal{
	Name:       "consumption",
	Periods:    years,
	PeriodLen:  perYear,
	Base:       200,
	NoiseStd:   3,
	Seasons:    append(append([]synth.Season(nil), summers...), winters...),
	TrendStart: trendStart,
	TrendSlope: 1.8,
	JumpMin:    20,
	JumpMax:    30,
}

func main() {
	log.SetPrefix("seasonal: ")
	log.SetFlags(0)
	flags := figcmd.Register("electricity.png",
		"https://github.com/hojatollahgholami/AI-in-Oil-and-gas-industry/edit/main/figs/fig2_7.py", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	ds, err := synth.Generate(consumption, flags.Seed)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	ts, ys := ds.MustColumn("time"), ds.MustColumn("value")

	mean, err := transform.RollingMean(ys, window)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	variance, err := transform.RollingVariance(ys, window)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	acf, err := transform.Autocorrelation(ys, maxLag)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	before, after := stats.Mean(ys[:trendStart]), stats.Mean(ys[trendStart:])
	flags.Logf("mean %.1f kW before the change, %.1f kW after", before, after)

	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(15, 14).WithFontSize(18))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fig, err := figure.New(st, 3, 1)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	xlabel := rtl.Shape("زمان (نمونه‌های ۱۵ روزه)")
	change := figure.VLine{X: trendStart, Color: figure.Fade(figure.Red, 0.7), Dashes: figure.Dashed}

	series := fig.Panel(0, 0)
	series.Title = rtl.Shape("سری زمانی مصرف برق یک کارخانه")
	series.XLabel = xlabel
	series.YLabel = rtl.Shape("مصرف برق (کیلووات)")
	series.XRange = figure.Range{Min: 0, Max: 70}
	series.Grid = true
	series.Legend = figure.UpperLeft
	for year := 0; year < years; year++ {
		off := float64(year * perYear)
		for i, s := range summers {
			b := figure.Band{Axis: figure.XAxis, Min: off + float64(s.Start), Max: off + float64(s.End), Color: figure.Fade(figure.Red, 0.2)}
			if year == 0 && i == 0 {
				b.Label = rtl.Shape("تابستان")
			}
			series.Add(b)
		}
		for i, s := range winters {
			end := min(s.End, perYear)
			b := figure.Band{Axis: figure.XAxis, Min: off + float64(s.Start), Max: off + float64(end), Color: figure.Fade(figure.Blue, 0.2)}
			if year == 0 && i == 0 {
				b.Label = rtl.Shape("زمستان")
			}
			series.Add(b)
		}
	}
	series.Add(
		figure.Curve{X: ts, Y: ys, Color: figure.Fade(figure.RoyalBlue, 0.7), Width: 1, Label: rtl.Shape("داده‌های واقعی")},
		figure.Curve{X: ts, Y: mean.Floats(), Color: figure.Red, Width: 2.5, Label: rtl.Shape("روند مصرف (میانگین متحرک)")},
		change,
		figure.HLine{Y: before, Color: figure.Fade(figure.Green, 0.7), Label: rtl.Shape("میانگین قبل از تغییر")},
		figure.HLine{Y: after, Color: figure.Fade(figure.Purple, 0.7), Label: rtl.Shape("میانگین بعد از تغییر")},
		figure.Arrow{
			Tail:  figure.Point{X: trendStart - 10, Y: 240},
			Head:  figure.Point{X: trendStart, Y: 200},
			Text:  rtl.Shape("افزودن تجهیز جدید"),
			Color: figure.Red,
		},
	)

	vp := fig.Panel(1, 0)
	vp.Title = rtl.Shape("واریانس متحرک مصرف برق (پنجره ۲ ماهه)")
	vp.XLabel = xlabel
	vp.YLabel = rtl.Shape("واریانس")
	vp.XRange = figure.Range{Min: 0, Max: 70}
	vp.YRange = figure.Range{Min: 0, Max: 900}
	vp.Grid = true
	vp.Add(
		figure.Curve{X: ts, Y: variance.Floats(), Color: figure.Green, Width: 1.5},
		change,
	)

	ap := fig.Panel(2, 0)
	ap.Title = rtl.Shape("نمودار خودهمبستگی")
	ap.XLabel = rtl.Shape("لگ")
	ap.YLabel = rtl.Shape("ضریب خودهمبستگی")
	ap.Grid = true
	band := acf.Bartlett()
	lower := make([]float64, len(band))
	for i, b := range band {
		lower[i] = -b
	}
	ap.Add(
		figure.Area{X: acf.Lags(), Y: band, Base: lower, Color: figure.Fade(figure.Purple, 0.25)},
		figure.Stems{X: acf.Lags(), Y: acf.Coef, Color: figure.Purple},
		figure.HLine{Y: 0, Color: figure.Black, Width: 0.5},
	)

	mark := watermark.Spec{
		Panel:  watermark.Cell{Row: 1, Col: 0},
		Pos:    watermark.Point{X: 0.9, Y: 0.08},
		Space:  watermark.AxesFraction,
		Anchor: watermark.BottomLeft,
		Offset: watermark.Point{X: 8.5, Y: -1.2},
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.5})
}
