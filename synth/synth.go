// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth generates small, reproducible synthetic datasets of
// the kind found in process-monitoring examples: sensor noise, regime
// changes with injected outliers, seasonal consumption, labelled
// feature matrices and block-correlated measurements.
//
// Every call to Generate seeds its own random source, so generating
// several datasets in one process never shares random state, and the
// same spec and seed always produce the same values.
package synth

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/vec"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidParameter is returned (wrapped in a *ParamError) when a
// generation request is malformed.
var ErrInvalidParameter = errors.New("synth: invalid parameter")

// A ParamError describes a rejected generation parameter.
type ParamError struct {
	Kind   string // dataset kind, e.g. "segments"
	Param  string // offending parameter
	Detail string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("synth: %s: invalid %s: %s", e.Kind, e.Param, e.Detail)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func paramError(kind, param, format string, args ...interface{}) error {
	return &ParamError{kind, param, fmt.Sprintf(format, args...)}
}

// A Spec describes one kind of dataset. The implementations in this
// package are Noise, Segments, Seasonal, Classification, Correlated
// and Relation.
type Spec interface {
	// Kind returns a short name for the dataset kind.
	Kind() string

	generate(g *gen) (*Dataset, error)
}

// gen is the random state of a single Generate call.
type gen struct {
	src rand.Source
	rnd *rand.Rand
}

func (g *gen) normal(mu, sigma float64) float64 {
	if sigma == 0 {
		return mu
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.src}.Rand()
}

func (g *gen) uniform(min, max float64) float64 {
	if min == max {
		return min
	}
	return distuv.Uniform{Min: min, Max: max, Src: g.src}.Rand()
}

// Generate produces the dataset described by spec using a random
// source seeded with seed.
func Generate(spec Spec, seed uint64) (*Dataset, error) {
	src := rand.NewSource(seed)
	g := &gen{src: src, rnd: rand.New(src)}
	return spec.generate(g)
}

// Dist selects a noise distribution.
type Dist int

const (
	Gaussian Dist = iota
	Uniform
)

func (d Dist) String() string {
	switch d {
	case Gaussian:
		return "gaussian"
	case Uniform:
		return "uniform"
	}
	return fmt.Sprintf("Dist(%d)", int(d))
}

// sample draws one value with the given mean and variance. A uniform
// variable with variance v spans mean ± √(3v).
func (g *gen) sample(d Dist, mean, variance float64) float64 {
	if d == Uniform {
		h := math.Sqrt(3 * variance)
		return g.uniform(mean-h, mean+h)
	}
	return g.normal(mean, math.Sqrt(variance))
}

// OutlierBatch replaces Count distinct, randomly chosen samples with
// values drawn uniformly from [Min, Max).
type OutlierBatch struct {
	Count    int
	Min, Max float64
}

// Noise is i.i.d. noise with the given mean and variance.
//
// RandomOutliers are applied in order after the noise is drawn; a
// later batch may overwrite an earlier one. Outliers, keyed by index,
// are applied last and are placed exactly.
type Noise struct {
	Name           string
	N              int
	Dist           Dist
	Mean, Variance float64
	RandomOutliers []OutlierBatch
	Outliers       map[int]float64
}

func (Noise) Kind() string { return "noise" }

func (s Noise) generate(g *gen) (*Dataset, error) {
	if s.N <= 0 {
		return nil, paramError(s.Kind(), "N", "%d is not positive", s.N)
	}
	if s.Variance < 0 {
		return nil, paramError(s.Kind(), "Variance", "%g is negative", s.Variance)
	}
	if s.Dist != Gaussian && s.Dist != Uniform {
		return nil, paramError(s.Kind(), "Dist", "unknown distribution %v", s.Dist)
	}
	if err := checkOutliers(s.Kind(), s.Outliers, s.N); err != nil {
		return nil, err
	}
	xs := make([]float64, s.N)
	for i := range xs {
		xs[i] = g.sample(s.Dist, s.Mean, s.Variance)
	}
	for _, b := range s.RandomOutliers {
		if b.Count < 0 || b.Count > s.N {
			return nil, paramError(s.Kind(), "RandomOutliers", "count %d outside [0, %d]", b.Count, s.N)
		}
		if b.Min > b.Max {
			return nil, paramError(s.Kind(), "RandomOutliers", "min %g > max %g", b.Min, b.Max)
		}
		idx := g.rnd.Perm(s.N)[:b.Count]
		for _, i := range idx {
			xs[i] = g.uniform(b.Min, b.Max)
		}
	}
	applyOutliers(xs, s.Outliers)
	return FromColumns(nameOr(s.Name, "value"), []string{nameOr(s.Name, "value")}, [][]float64{xs}, nil)
}

// A Segment is a run of Len samples with the given mean and variance.
// Sample k of the segment (counting from 0) is centred on
// Mean + Slope·k.
type Segment struct {
	Len            int
	Mean, Variance float64
	Slope          float64
}

// Segments concatenates Gaussian segments, simulating regime changes
// ("concept drift"), then places Outliers exactly.
//
// The dataset has a single column named "value" (or Name, if set).
// Its labels give the index of the segment each sample came from.
type Segments struct {
	Name     string
	Total    int
	Segments []Segment
	Outliers map[int]float64
}

func (Segments) Kind() string { return "segments" }

func (s Segments) generate(g *gen) (*Dataset, error) {
	if len(s.Segments) == 0 {
		return nil, paramError(s.Kind(), "Segments", "no segments")
	}
	sum := 0
	for i, seg := range s.Segments {
		if seg.Len <= 0 {
			return nil, paramError(s.Kind(), "Segments", "segment %d has length %d", i, seg.Len)
		}
		if seg.Variance < 0 {
			return nil, paramError(s.Kind(), "Segments", "segment %d has negative variance %g", i, seg.Variance)
		}
		sum += seg.Len
	}
	if sum != s.Total {
		return nil, paramError(s.Kind(), "Total", "segment lengths sum to %d, want %d", sum, s.Total)
	}
	if err := checkOutliers(s.Kind(), s.Outliers, s.Total); err != nil {
		return nil, err
	}

	xs := make([]float64, 0, s.Total)
	labels := make([]int, 0, s.Total)
	for i, seg := range s.Segments {
		sigma := math.Sqrt(seg.Variance)
		for k := 0; k < seg.Len; k++ {
			xs = append(xs, g.normal(seg.Mean+seg.Slope*float64(k), sigma))
			labels = append(labels, i)
		}
	}
	applyOutliers(xs, s.Outliers)
	name := nameOr(s.Name, "value")
	return FromColumns(name, []string{name}, [][]float64{xs}, labels)
}

// Relation samples y = F(x) + ε on N evenly spaced points of
// [XMin, XMax], with ε ~ N(0, NoiseStd²). The dataset has columns
// "x", "y" and "truth" (F(x) without noise).
type Relation struct {
	Name       string
	N          int
	XMin, XMax float64
	F          func(x float64) float64
	NoiseStd   float64
}

func (Relation) Kind() string { return "relation" }

func (s Relation) generate(g *gen) (*Dataset, error) {
	if s.N < 2 {
		return nil, paramError(s.Kind(), "N", "%d is less than 2", s.N)
	}
	if s.F == nil {
		return nil, paramError(s.Kind(), "F", "no function")
	}
	if s.NoiseStd < 0 {
		return nil, paramError(s.Kind(), "NoiseStd", "%g is negative", s.NoiseStd)
	}
	xs := vec.Linspace(s.XMin, s.XMax, s.N)
	ys := make([]float64, s.N)
	truth := make([]float64, s.N)
	for i, x := range xs {
		truth[i] = s.F(x)
		ys[i] = truth[i] + g.normal(0, s.NoiseStd)
	}
	return FromColumns(nameOr(s.Name, "relation"), []string{"x", "y", "truth"}, [][]float64{xs, ys, truth}, nil)
}

func checkOutliers(kind string, outliers map[int]float64, n int) error {
	for i := range outliers {
		if i < 0 || i >= n {
			return paramError(kind, "Outliers", "index %d outside [0, %d)", i, n)
		}
	}
	return nil
}

// applyOutliers places outliers in index order so the result does not
// depend on map iteration order.
func applyOutliers(xs []float64, outliers map[int]float64) {
	idx := make([]int, 0, len(outliers))
	for i := range outliers {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		xs[i] = outliers[i]
	}
}

func nameOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
