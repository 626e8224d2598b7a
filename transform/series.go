// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ZScores is the result of z-score outlier detection.
type ZScores struct {
	Mean, Std float64 // population mean and standard deviation
	Threshold float64
	Scores    []float64 // |x - Mean| / Std
	Outliers  []int     // indexes with Scores[i] > Threshold
}

// ZScore computes |x - mean| / σ for each sample, where σ is the
// population standard deviation, and flags samples whose score exceeds
// threshold. If σ is 0 every score is 0 and nothing is flagged.
func ZScore(xs []float64, threshold float64) (*ZScores, error) {
	if err := checkFinite("xs", xs); err != nil {
		return nil, err
	}
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, invalid("threshold %v", threshold)
	}
	mean, std := stat.PopMeanStdDev(xs, nil)
	z := &ZScores{Mean: mean, Std: std, Threshold: threshold, Scores: make([]float64, len(xs))}
	if std == 0 {
		return z, nil
	}
	for i, x := range xs {
		z.Scores[i] = math.Abs(x-mean) / std
		if z.Scores[i] > threshold {
			z.Outliers = append(z.Outliers, i)
		}
	}
	return z, nil
}

// Flagged reports whether sample i is an outlier.
func (z *ZScores) Flagged(i int) bool {
	return z.Scores[i] > z.Threshold
}

// Rolling is a trailing-window statistic. Values[i] covers samples
// i-Window+1 through i and is undefined for i < Window-1.
type Rolling struct {
	Window int
	Values []Value
}

// Floats returns the values with NaN in place of undefined entries.
func (r *Rolling) Floats() []float64 {
	out := make([]float64, len(r.Values))
	for i, v := range r.Values {
		if v.OK {
			out[i] = v.V
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// RollingMean returns the mean of each trailing window of w samples.
func RollingMean(xs []float64, w int) (*Rolling, error) {
	return rolling(xs, w, 1, func(win []float64) float64 { return stat.Mean(win, nil) })
}

// RollingVariance returns the sample variance (divisor w-1) of each
// trailing window of w samples. w must be at least 2.
func RollingVariance(xs []float64, w int) (*Rolling, error) {
	return rolling(xs, w, 2, func(win []float64) float64 { return stat.Variance(win, nil) })
}

func rolling(xs []float64, w, minW int, f func([]float64) float64) (*Rolling, error) {
	if err := checkFinite("xs", xs); err != nil {
		return nil, err
	}
	if w < minW {
		return nil, invalid("window %d is less than %d", w, minW)
	}
	r := &Rolling{Window: w, Values: make([]Value, len(xs))}
	for i := w - 1; i < len(xs); i++ {
		r.Values[i] = Value{f(xs[i-w+1 : i+1]), true}
	}
	return r, nil
}

// ACF holds autocorrelation coefficients for lags 0 through MaxLag.
type ACF struct {
	N      int // number of samples
	MaxLag int
	Coef   []float64
}

// Autocorrelation returns the sample autocorrelation of xs at lags 0
// through maxLag, normalized by the lag-0 autocovariance so that the
// lag-0 coefficient is 1. For a constant sequence the coefficients at
// lags ≥ 1 are NaN.
func Autocorrelation(xs []float64, maxLag int) (*ACF, error) {
	if err := checkFinite("xs", xs); err != nil {
		return nil, err
	}
	if maxLag < 0 || maxLag >= len(xs) {
		return nil, invalid("lag %d for %d samples", maxLag, len(xs))
	}
	mean := stat.Mean(xs, nil)
	var c0 float64
	for _, x := range xs {
		c0 += (x - mean) * (x - mean)
	}
	coef := make([]float64, maxLag+1)
	coef[0] = 1
	for k := 1; k <= maxLag; k++ {
		if c0 == 0 {
			coef[k] = math.NaN()
			continue
		}
		var ck float64
		for t := 0; t+k < len(xs); t++ {
			ck += (xs[t] - mean) * (xs[t+k] - mean)
		}
		coef[k] = ck / c0
	}
	return &ACF{N: len(xs), MaxLag: maxLag, Coef: coef}, nil
}

// Lags returns 0…MaxLag as float64 values, for plotting.
func (a *ACF) Lags() []float64 {
	lags := make([]float64, a.MaxLag+1)
	for i := range lags {
		lags[i] = float64(i)
	}
	return lags
}

// Bartlett returns the half-width of the 95% confidence band at each
// lag under Bartlett's formula, 1.96·√((1 + 2Σ_{j<k} r_j²)/n). The
// band at lag 0 is 0.
func (a *ACF) Bartlett() []float64 {
	band := make([]float64, len(a.Coef))
	sum := 0.0
	for k := 1; k < len(a.Coef); k++ {
		if k > 1 {
			sum += a.Coef[k-1] * a.Coef[k-1]
		}
		band[k] = 1.96 * math.Sqrt((1+2*sum)/float64(a.N))
	}
	return band
}

// ACFConfidence returns the half-width of the 95% confidence band for
// the autocorrelation of n samples of white noise, 1.96/√n.
func ACFConfidence(n int) float64 {
	return 1.96 / math.Sqrt(float64(n))
}
