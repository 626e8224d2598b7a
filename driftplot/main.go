// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command driftplot draws a wellhead pressure series that moves
// through two steady regimes into a drifting one, with outliers
// detected by z-score within each steady regime.
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

var pressure = synth.Segments{
	Name:  "pressure",
	Total: 35,
	Segments: []synth.Segment{
		{Len: 15, Mean: 3.0, Variance: 0.05 * 0.05},
		{Len: 10, Mean: 4.0, Variance: 0.05 * 0.05},
		{Len: 10, Mean: 4.0, Variance: 0.015 * 0.015, Slope: 0.15},
	},
	Outliers: map[int]float64{5: 5.2, 18: 2.3},
}

// The drifting regime is not tested for outliers.
const (
	drift     = 2
	threshold = 2.5
)

// The legend sits in the top legendBand of yRange, clear of the
// samples.
var yRange = figure.Range{Min: 2, Max: 6.5}

const legendBand = 0.8

func main() {
	log.SetPrefix("driftplot: ")
	log.SetFlags(0)
	flags := figcmd.Register("pressure_time_scatter_with_qr.png",
		"https://github.com/hojatollahgholami/AI-in-Oil-and-gas-industry/edit/main/figs/fig6_2.py", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	ds, err := synth.Generate(pressure, flags.Seed)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	ys := ds.MustColumn("pressure")
	labels := ds.Labels()

	outlier := make([]bool, len(ys))
	for seg := 0; seg < drift; seg++ {
		var idx []int
		var xs []float64
		for i, l := range labels {
			if l == seg {
				idx = append(idx, i)
				xs = append(xs, ys[i])
			}
		}
		z, err := transform.ZScore(xs, threshold)
		if err != nil {
			return fmt.Errorf("transform: %w", err)
		}
		for _, j := range z.Outliers {
			outlier[idx[j]] = true
			flags.Logf("outlier at t=%d: %.2f bar (z=%.2f)", idx[j], ys[idx[j]], z.Scores[j])
		}
	}

	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(14, 8).WithFontSize(16))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st.TickSize = 12
	fig, err := figure.New(st, 1, 1)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	p := fig.Panel(0, 0)
	p.XLabel = rtl.Shape("زمان (ساعت)")
	p.YLabel = rtl.Shape("فشار (بار)")
	p.Grid = true
	p.Legend = figure.UpperLeft
	p.YRange = yRange

	p.Add(
		figure.HLine{Y: 3.0, Color: figure.Fade(figure.Blue, 0.3), Dashes: figure.Dashed},
		figure.HLine{Y: 4.0, Color: figure.Fade(figure.Green, 0.3), Dashes: figure.Dashed},
	)
	var tx, ty []float64
	for i, l := range labels {
		if l == drift {
			tx, ty = append(tx, float64(i)), append(ty, ys[i])
		}
	}
	p.Add(figure.Curve{X: tx, Y: ty, Color: figure.Fade(figure.Red, 0.5), Dashes: figure.Dashed})

	groups := []struct {
		name  string
		color color.Color
		match func(i int) bool
	}{
		{"فشار ثابت ۳ بار", figure.Blue, func(i int) bool { return labels[i] == 0 && !outlier[i] }},
		{"فشار ثابت ۴ بار", figure.Green, func(i int) bool { return labels[i] == 1 && !outlier[i] }},
		{"تغییر مفهومی", figure.Red, func(i int) bool { return labels[i] == drift }},
		{"داده پرت", figure.Orange, func(i int) bool { return outlier[i] }},
	}
	for _, g := range groups {
		var xs, vs []float64
		for i := range ys {
			if g.match(i) {
				xs, vs = append(xs, float64(i)), append(vs, ys[i])
			}
		}
		if len(xs) == 0 {
			continue
		}
		p.Add(figure.Scatter{
			X: xs, Y: vs,
			Color:  g.color,
			Marker: figure.SquareMarker,
			Radius: 5,
			Edge:   figure.Black,
			Label:  rtl.Shape(g.name),
		})
	}

	p.Add(
		figure.Arrow{Tail: figure.Point{X: 12, Y: 4.2}, Head: figure.Point{X: 15, Y: 4.05}, Text: rtl.Shape("تغییر داده")},
		figure.Arrow{Tail: figure.Point{X: 21, Y: 4.5}, Head: figure.Point{X: 25, Y: 4.05}, Text: rtl.Shape("تغییر مفهومی")},
		figure.Arrow{Tail: figure.Point{X: 7, Y: 5}, Head: figure.Point{X: 5, Y: 5.1}, Text: rtl.Shape("داده پرت"), Box: figure.Fade(figure.White, 0.8)},
	)

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 0.9, Y: 0.08},
		Space:  watermark.AxesFraction,
		Anchor: watermark.BottomRight,
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.5})
}
