// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
)

// KDE is a Gaussian kernel density estimate sampled on a grid.
type KDE struct {
	Bandwidth float64
	X, Y      []float64
}

// KernelDensity estimates the density of xs with a Gaussian kernel and
// Scott's bandwidth, sampled at n points spanning the data widened by
// three bandwidths on each side.
func KernelDensity(xs []float64, n int) (*KDE, error) {
	if err := checkFinite("xs", xs); err != nil {
		return nil, err
	}
	if len(xs) < 2 {
		return nil, invalid("density estimate needs at least 2 samples")
	}
	if n < 2 {
		return nil, invalid("%d evaluation points", n)
	}
	bw := stats.BandwidthScott(stats.Sample{Xs: xs})
	if bw == 0 {
		return nil, invalid("samples are all equal")
	}

	tab := new(table.Builder).Add("x", append([]float64(nil), xs...)).Done()
	est := ggstat.Density{X: "x", N: n, Bandwidth: bw}.F(tab)
	out := est.Table(est.Tables()[0])
	return &KDE{
		Bandwidth: bw,
		X:         out.MustColumn("x").([]float64),
		Y:         out.MustColumn("probability density").([]float64),
	}, nil
}

// LinearFit is a least-squares line y = Intercept + Slope·x.
type LinearFit struct {
	Intercept, Slope float64
}

// At evaluates the line at x.
func (f LinearFit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// FitLine fits a least-squares line through the points (xs[i], ys[i]).
func FitLine(xs, ys []float64) (*LinearFit, error) {
	if len(xs) != len(ys) {
		return nil, invalid("%d x values for %d y values", len(xs), len(ys))
	}
	if err := checkFinite("xs", xs); err != nil {
		return nil, err
	}
	if err := checkFinite("ys", ys); err != nil {
		return nil, err
	}
	distinct := false
	for _, x := range xs[1:] {
		if x != xs[0] {
			distinct = true
			break
		}
	}
	if !distinct {
		return nil, invalid("x values are all equal")
	}
	r := fit.PolynomialRegression(xs, ys, nil, 1)
	return &LinearFit{Intercept: r.Coefficients[0], Slope: r.Coefficients[1]}, nil
}
