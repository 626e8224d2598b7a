// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// A Dist is a continuous distribution family with fixed parameters.
// The implementations are Normal, Exponential, Uniform and Gamma.
type Dist interface {
	// String describes the distribution and its parameters.
	String() string

	check() error
	prob(x float64) float64
}

// Normal is the normal distribution N(Mu, Sigma²).
type Normal struct{ Mu, Sigma float64 }

// Exponential is the exponential distribution with rate Rate.
type Exponential struct{ Rate float64 }

// Uniform is the continuous uniform distribution on [Min, Max].
type Uniform struct{ Min, Max float64 }

// Gamma is the gamma distribution with shape Shape and rate Rate.
type Gamma struct{ Shape, Rate float64 }

func (d Normal) String() string      { return fmt.Sprintf("Normal(μ=%g, σ=%g)", d.Mu, d.Sigma) }
func (d Exponential) String() string { return fmt.Sprintf("Exponential(λ=%g)", d.Rate) }
func (d Uniform) String() string     { return fmt.Sprintf("Uniform(%g, %g)", d.Min, d.Max) }
func (d Gamma) String() string       { return fmt.Sprintf("Gamma(α=%g, β=%g)", d.Shape, d.Rate) }

func (d Normal) check() error {
	if !(d.Sigma > 0) || math.IsInf(d.Sigma, 0) || math.IsNaN(d.Mu) || math.IsInf(d.Mu, 0) {
		return invalid("%v: σ must be positive and finite", d)
	}
	return nil
}

func (d Exponential) check() error {
	if !(d.Rate > 0) || math.IsInf(d.Rate, 0) {
		return invalid("%v: λ must be positive and finite", d)
	}
	return nil
}

func (d Uniform) check() error {
	if !(d.Min < d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return invalid("%v: need finite min < max", d)
	}
	return nil
}

func (d Gamma) check() error {
	if !(d.Shape > 0) || !(d.Rate > 0) || math.IsInf(d.Shape, 0) || math.IsInf(d.Rate, 0) {
		return invalid("%v: α and β must be positive and finite", d)
	}
	return nil
}

func (d Normal) prob(x float64) float64 {
	return distuv.Normal{Mu: d.Mu, Sigma: d.Sigma}.Prob(x)
}

func (d Exponential) prob(x float64) float64 {
	if x < 0 {
		return 0
	}
	return distuv.Exponential{Rate: d.Rate}.Prob(x)
}

func (d Uniform) prob(x float64) float64 {
	return distuv.Uniform{Min: d.Min, Max: d.Max}.Prob(x)
}

func (d Gamma) prob(x float64) float64 {
	if x <= 0 {
		// The density at 0 is finite only for α ≥ 1.
		switch {
		case x < 0:
			return 0
		case d.Shape == 1:
			return d.Rate
		case d.Shape > 1:
			return 0
		}
		return math.Inf(1)
	}
	return distuv.Gamma{Alpha: d.Shape, Beta: d.Rate}.Prob(x)
}

// Density is a probability density function sampled at X.
type Density struct {
	Dist Dist
	X    []float64
	Y    []float64
}

// Evaluate samples the density of d at each point of xs.
func Evaluate(d Dist, xs []float64) (*Density, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := checkFinite("xs", xs); err != nil {
		return nil, err
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = d.prob(x)
	}
	return &Density{d, append([]float64(nil), xs...), ys}, nil
}

// A Discrete is a discrete distribution family over the non-negative
// integers. The implementations are Binomial and Poisson.
type Discrete interface {
	String() string

	check() error
	prob(k int) float64
}

// Binomial is the number of successes in N trials with success
// probability P.
type Binomial struct {
	N int
	P float64
}

// Poisson is the Poisson distribution with mean Lambda.
type Poisson struct{ Lambda float64 }

func (d Binomial) String() string { return fmt.Sprintf("Binomial(n=%d, p=%g)", d.N, d.P) }
func (d Poisson) String() string  { return fmt.Sprintf("Poisson(λ=%g)", d.Lambda) }

func (d Binomial) check() error {
	if d.N < 0 || !(d.P >= 0 && d.P <= 1) {
		return invalid("%v: need n ≥ 0 and 0 ≤ p ≤ 1", d)
	}
	return nil
}

func (d Poisson) check() error {
	if !(d.Lambda > 0) || math.IsInf(d.Lambda, 0) {
		return invalid("%v: λ must be positive and finite", d)
	}
	return nil
}

func (d Binomial) prob(k int) float64 {
	if k < 0 || k > d.N {
		return 0
	}
	return distuv.Binomial{N: float64(d.N), P: d.P}.Prob(float64(k))
}

func (d Poisson) prob(k int) float64 {
	if k < 0 {
		return 0
	}
	return distuv.Poisson{Lambda: d.Lambda}.Prob(float64(k))
}

// PMF is a probability mass function evaluated at K.
type PMF struct {
	Dist Discrete
	K    []int
	P    []float64
}

// EvaluatePMF evaluates the mass function of d at each of ks.
// Outcomes outside the support have probability 0.
func EvaluatePMF(d Discrete, ks []int) (*PMF, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if len(ks) == 0 {
		return nil, invalid("ks is empty")
	}
	ps := make([]float64, len(ks))
	for i, k := range ks {
		ps[i] = d.prob(k)
	}
	return &PMF{d, append([]int(nil), ks...), ps}, nil
}

// Floats returns K as float64 values, for plotting.
func (p *PMF) Floats() []float64 {
	xs := make([]float64, len(p.K))
	for i, k := range p.K {
		xs[i] = float64(k)
	}
	return xs
}
