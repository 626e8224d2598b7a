// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command distributions draws a sheet of six reference probability
// distributions: four densities and two mass functions.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/aiog/figgen/figure"
	"github.com/aiog/figgen/internal/figcmd"
	"github.com/aiog/figgen/rtl"
	"github.com/aiog/figgen/transform"
	"github.com/aiog/figgen/watermark"
)

var densities = []struct {
	title string
	dist  transform.Dist
}{
	{"توزیع نرمال (mu=0, sigma=1)", transform.Normal{Mu: 0, Sigma: 1}},
	{"توزیع نمایی (lambda=0.5)", transform.Exponential{Rate: 0.5}},
	{"توزیع یکنواخت (a=0, b=10)", transform.Uniform{Min: 0, Max: 10}},
	{"توزیع گاما (alpha=2, beta=1.5)", transform.Gamma{Shape: 2, Rate: 1.5}},
}

var masses = []struct {
	title, xlabel string
	dist          transform.Discrete
	kmax          int
}{
	{"توزیع دوجمله‌ای (n=15, p=0.4)", "تعداد موفقیت‌ها", transform.Binomial{N: 15, P: 0.4}, 15},
	{"توزیع پواسون (lambda=4)", "رخدادها", transform.Poisson{Lambda: 4}, 14},
}

func main() {
	log.SetPrefix("distributions: ")
	log.SetFlags(0)
	flags := figcmd.Register("fig2-11.png",
		"https://github.com/hojatollahgholami/AI-in-Oil-and-gas-industry/edit/main/figs/fig2_11.py", 42)
	flag.Parse()
	if err := run(flags); err != nil {
		log.Fatal(err)
	}
}

func run(flags *figcmd.Flags) error {
	st, err := flags.LoadStyle(figure.DefaultStyle().WithSize(18, 12))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	st.TitleSize, st.LabelSize = 21, 21
	fig, err := figure.New(st, 2, 3)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	xs := transform.Linspace(-5, 15, 1000)
	for i, d := range densities {
		den, err := transform.Evaluate(d.dist, xs)
		if err != nil {
			return fmt.Errorf("transform: %w", err)
		}
		flags.Logf("%v: peak density %.3f", d.dist, peak(den.Y))
		p := fig.Panel(i/3, i%3)
		p.Title = rtl.Shape(d.title)
		p.XLabel = rtl.Shape("مقدار")
		p.YLabel = rtl.Shape("چگالی احتمال")
		p.Grid = true
		p.Add(
			figure.Curve{X: den.X, Y: den.Y, Color: figure.Tab10[i], Width: 2},
			figure.Area{X: den.X, Y: den.Y, Color: figure.Fade(figure.Tab10[i], 0.3)},
		)
	}

	for i, m := range masses {
		ks := make([]int, m.kmax+1)
		for k := range ks {
			ks[k] = k
		}
		pmf, err := transform.EvaluatePMF(m.dist, ks)
		if err != nil {
			return fmt.Errorf("transform: %w", err)
		}
		flags.Logf("%v: mode probability %.3f", m.dist, peak(pmf.P))
		c := figure.Tab10[4+i]
		p := fig.Panel(1, 1+i)
		p.Title = rtl.Shape(m.title)
		p.XLabel = rtl.Shape(m.xlabel)
		p.YLabel = rtl.Shape("احتمال")
		p.Grid = true
		p.Add(figure.Bars{At: pmf.Floats(), Values: pmf.P, Color: figure.Fade(c, 0.7)})
	}

	mark := watermark.Spec{
		Pos:    watermark.Point{X: 0.3, Y: 0.68},
		Space:  watermark.FigureFraction,
		Anchor: watermark.BottomRight,
	}
	return flags.Finish(fig, mark, watermark.Options{Zoom: 0.6})
}

func peak(ys []float64) float64 {
	m := 0.0
	for _, y := range ys {
		if y > m {
			m = y
		}
	}
	return m
}
