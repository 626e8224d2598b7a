// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command factorplot runs a three-factor exploratory factor analysis
// on block-correlated plant measurements and draws the rotated
// loadings as an annotated heat map and as grouped bars.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/synth"
	"github.com/aiog/figgen/transform"
	"github.com/aiog/figgen/watermark"
	"gonum.org/v1/gonum/mat"
)

var variables = []string{
	"دمای راکتور", "فشار مخزن", "ارتعاش پمپ", "جریان خروجی",
	"غلظت کاتالیست", "اسیدیته محصول", "رسانایی سیال", "ناخالصی‌ها",
	"رطوبت گاز", "آلودگی محیطی",
}

var plant = synth.Correlated{
	Samples: 300,
	Groups:  []synth.Group{{Size: 4, Corr: 0.7}, {Size: 4, Corr: 0.6}, {Size: 2, Corr: 0.8}},
	Names:   variables,
}

var factors = []string{"عامل ۱: فرآیندی", "عامل ۲: کیفیتی", "عامل ۳: محیطی"}

var factorColors = []color.Color{figure.Tab10[0], figure.Tab10[1], figure.Tab10[2]}

// Loadings above this magnitude are considered salient.
const salient = 0.4

func main() {
	log.SetPrefix("factorplot: ")
	log.SetFlags(0)
	flags := figcmd.Register("fig2_14.png", "https://B2n.ir/jw8702", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	ds, err := synth.Generate(plant, flags.Seed)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	fa, err := transform.FactorAnalysis(ds.Matrix(variables...), len(factors), transform.FactorOptions{})
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	flags.Logf("converged after %d extraction and %d rotation iterations", fa.ExtractionIter, fa.RotationIter)
	for i, v := range fa.Variance {
		flags.Logf("factor %d: sum of squared loadings %.2f", i+1, v)
	}

	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(24, 8).WithFontSize(21))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st.TitleSize, st.LabelSize = 24, 24
	st.UnicodeMinus = false
	fig, err := figure.New(st, 1, 2)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	heatmap(fig.Panel(0, 0), fa.Loadings)
	bars(fig.Panel(0, 1), fa.Loadings)

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 0.65, Y: 0.63},
		Space:  watermark.FigureFraction,
		Anchor: watermark.BottomRight,
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.8})
}

func heatmap(p *figure.Panel, loadings *mat.Dense) {
	p.Title = rtl.Shape("بارهای عاملی")
	p.XLabel = rtl.Shape("عوامل")
	p.YLabel = rtl.Shape("متغیرها")
	p.Legend = figure.NoLegend

	rows, _ := loadings.Dims()
	z := make([][]float64, rows)
	for i := range z {
		z[i] = mat.Row(nil, i, loadings)
	}
	p.Add(figure.HeatMap{
		Z:         z,
		Min:       -1,
		Max:       1,
		Gradient:  figure.CoolWarm,
		Format:    "%.2f",
		TextSize:  18,
		RowLabels: rtl.Shapes(variables...),
		ColLabels: rtl.Shapes(factors...),
	})
}

// bars draws each variable's loadings as a group of horizontal bars.
// Variables are ordered by the factor they load on most, then by that
// loading, so each factor's block reads bottom to top.
func bars(p *figure.Panel, loadings *mat.Dense) {
	p.Title = rtl.Shape("بارهای عاملی به تفکیک متغیرها")
	p.XLabel = rtl.Shape("بار عاملی")
	p.YLabel = rtl.Shape("متغیرها")
	p.Grid = true
	p.Legend = figure.LowerRight

	rows, k := loadings.Dims()
	dominant := make([]int, rows)
	for i := range dominant {
		for j := 1; j < k; j++ {
			if math.Abs(loadings.At(i, j)) > math.Abs(loadings.At(i, dominant[i])) {
				dominant[i] = j
			}
		}
	}
	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if dominant[ia] != dominant[ib] {
			return dominant[ia] > dominant[ib]
		}
		return loadings.At(ia, dominant[ia]) < loadings.At(ib, dominant[ib])
	})

	names := rtl.Shapes(variables...)
	for row, i := range order {
		p.YTicks = append(p.YTicks, figure.Tick{Value: float64(row), Label: names[i]})
	}
	const height = 0.27
	for j := 0; j < k; j++ {
		at := make([]float64, rows)
		vals := make([]float64, rows)
		for row, i := range order {
			at[row] = float64(row) + float64(j-1)*height
			vals[row] = loadings.At(i, j)
		}
		p.Add(figure.Bars{
			At:         at,
			Values:     vals,
			Width:      height,
			Horizontal: true,
			Color:      figure.Fade(factorColors[j], 0.7),
			Format:     "%.2f",
			TextSize:   18,
			Label:      rtl.Shape(factors[j]),
		})
	}
	p.Add(
		figure.VLine{X: 0, Color: figure.Fade(figure.Gray, 0.7), Dashes: figure.Dashed},
		figure.VLine{X: salient, Color: figure.Fade(figure.Red, 0.5), Dashes: figure.Dotted},
		figure.VLine{X: -salient, Color: figure.Fade(figure.Red, 0.5), Dashes: figure.Dotted},
	)
}
