// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pcaplot draws a principal component analysis of labelled
// process measurements: a biplot of the first two components with
// feature loadings, and a scree chart of explained variance.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/synth"
	"github.com/aiog/figgen/transform"
	"github.com/aiog/figgen/watermark"
	"gonum.org/v1/gonum/mat"
)

var measurements = synth.Classification{
	Samples:     300,
	Features:    8,
	Informative: 5,
	Redundant:   2,
	Classes:     2,
	ClassSep:    1.5,
}

var features = []string{"دما", "فشار", "لرزش", "جریان", "رطوبت", "غلظت", "اسیدیته", "رسانایی"}

var standardize = flag.Bool("standardize", false, "scale features to unit variance before the decomposition")

func main() {
	log.SetPrefix("pcaplot: ")
	log.SetFlags(0)
	flags := figcmd.Register("fig2-13.png", "https://B2n.ir/xb5100", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	ds, err := synth.Generate(measurements, flags.Seed)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	var x mat.Matrix = ds.Matrix()
	if *standardize {
		if x, err = transform.Standardize(x); err != nil {
			return fmt.Errorf("transform: %w", err)
		}
	}
	pca, err := transform.PrincipalComponents(x)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	cum := transform.Cumulative(pca.Ratio)
	for i, r := range pca.Ratio {
		flags.Logf("PC%d: %.1f%% (cumulative %.1f%%)", i+1, 100*r, 100*cum[i])
	}

	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(18, 8).WithFontSize(21))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st.TitleSize, st.LabelSize = 24, 24
	st.UnicodeMinus = false
	fig, err := figure.New(st, 1, 2)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	biplot(fig.Panel(0, 0), pca, ds.Labels())
	scree(fig.Panel(0, 1), pca.Ratio, cum)

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 0.14, Y: 0.1},
		Space:  watermark.FigureFraction,
		Anchor: watermark.BottomRight,
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.8})
}

func biplot(p *figure.Panel, pca *transform.PCA, labels []int) {
	p.Title = rtl.Shape("نمودار پراکنش دو مؤلفه اصلی")
	p.XLabel = rtl.Shape("مؤلفه اصلی ۱ (PC1)")
	p.YLabel = rtl.Shape("مؤلفه اصلی ۲ (PC2)")
	p.Grid = true

	pc1, pc2 := mat.Col(nil, 0, pca.Scores), mat.Col(nil, 1, pca.Scores)
	classes := 0
	for _, l := range labels {
		classes = max(classes, l+1)
	}
	for c := 0; c < classes; c++ {
		var xs, ys []float64
		for i, l := range labels {
			if l == c {
				xs, ys = append(xs, pc1[i]), append(ys, pc2[i])
			}
		}
		p.Add(figure.Scatter{
			X:      xs,
			Y:      ys,
			Color:  figure.Fade(figure.Viridis.At(float64(c)/float64(max(classes-1, 1))), 0.8),
			Radius: 5,
			Edge:   figure.White,
			Label:  rtl.Shape(fmt.Sprintf("کلاس %d", c)),
		})
	}

	names := rtl.Shapes(features...)
	for j := 0; j < len(features); j++ {
		lx, ly := pca.Components.At(0, j), pca.Components.At(1, j)
		p.Add(
			figure.Arrow{Tail: figure.Point{}, Head: figure.Point{X: 3 * lx, Y: 3 * ly}, Color: figure.Red},
			figure.Text{Text: names[j], X: 3.2 * lx, Y: 3.2 * ly, Align: figure.AlignLeft, Color: figure.Red},
		)
	}
}

func scree(p *figure.Panel, ratio, cum []float64) {
	p.Title = rtl.Shape("نمودار اسکری واریانس توضیح داده شده توسط مؤلفه‌ها")
	p.XLabel = rtl.Shape("شماره مؤلفه اصلی")
	p.YLabel = rtl.Shape("درصد واریانس توضیح داده شده")
	p.Grid = true
	p.Legend = figure.LowerRight

	at := make([]float64, len(ratio))
	for i := range at {
		at[i] = float64(i + 1)
	}
	p.XTicks = figure.NumericTicks("%.0f", at...)
	p.Add(
		figure.Bars{At: at, Values: ratio, Color: figure.Fade(figure.SkyBlue, 0.8), Label: rtl.Shape("واریانس هر مؤلفه")},
		figure.Curve{X: at, Y: cum, Color: figure.Red, Width: 2, Marker: figure.CircleMarker, MarkerSize: 4, Label: rtl.Shape("واریانس تجمعی")},
	)
	for i := range ratio {
		p.Add(
			figure.Text{Text: rtl.Shape(fmt.Sprintf("%.1f%%", 100*ratio[i])), X: at[i], Y: ratio[i] + 0.01, Size: 18},
			figure.Text{Text: rtl.Shape(fmt.Sprintf("%.1f%%", 100*cum[i])), X: at[i], Y: cum[i] + 0.01, Size: 18},
		)
	}
	p.Add(
		figure.HLine{Y: 0.9, Color: figure.Fade(figure.Green, 0.7), Dashes: figure.Dashed},
		figure.Text{Text: rtl.Shape("آستانه ۹۰٪"), X: 1, Y: 0.91, Align: figure.AlignLeft, Size: 21, Color: figure.Green},
	)
}
