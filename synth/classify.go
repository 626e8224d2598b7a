// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Classification is a labelled feature matrix for class-separation
// examples. Each class is a Gaussian cluster centred on a distinct
// vertex of a hypercube of side 2·ClassSep in the informative
// subspace, so larger ClassSep makes the classes easier to separate.
//
// Features are laid out as Informative columns, then Redundant
// columns (random linear combinations of the informative ones), then
// noise columns, and are named f0, f1, …. Samples are spread as evenly
// as possible over the classes and then shuffled. Labels are class
// numbers 0…Classes-1.
type Classification struct {
	Samples     int
	Features    int
	Informative int
	Redundant   int
	Classes     int
	ClassSep    float64
}

func (Classification) Kind() string { return "classification" }

func (s Classification) validate() error {
	switch {
	case s.Samples <= 0:
		return paramError(s.Kind(), "Samples", "%d is not positive", s.Samples)
	case s.Features <= 0:
		return paramError(s.Kind(), "Features", "%d is not positive", s.Features)
	case s.Informative <= 0:
		return paramError(s.Kind(), "Informative", "%d is not positive", s.Informative)
	case s.Redundant < 0:
		return paramError(s.Kind(), "Redundant", "%d is negative", s.Redundant)
	case s.Informative+s.Redundant > s.Features:
		return paramError(s.Kind(), "Features", "%d informative + %d redundant > %d features", s.Informative, s.Redundant, s.Features)
	case s.Classes < 2:
		return paramError(s.Kind(), "Classes", "%d is less than 2", s.Classes)
	case s.Informative < 31 && s.Classes > 1<<uint(s.Informative):
		return paramError(s.Kind(), "Classes", "%d classes need more than %d informative features", s.Classes, s.Informative)
	case s.Samples < s.Classes:
		return paramError(s.Kind(), "Samples", "%d samples for %d classes", s.Samples, s.Classes)
	}
	return nil
}

func (s Classification) generate(g *gen) (*Dataset, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	ni, nr := s.Informative, s.Redundant

	// Pick a distinct hypercube vertex for each class.
	vertices := make([][]float64, s.Classes)
	var order []int
	if ni < 20 {
		order = g.rnd.Perm(1 << uint(ni))[:s.Classes]
	} else {
		// Too many vertices to permute; classes 0… are distinct
		// already.
		order = make([]int, s.Classes)
		for i := range order {
			order[i] = i
		}
	}
	for c, v := range order {
		vertices[c] = make([]float64, ni)
		for j := 0; j < ni; j++ {
			if v&(1<<uint(j)) != 0 {
				vertices[c][j] = s.ClassSep
			} else {
				vertices[c][j] = -s.ClassSep
			}
		}
	}

	x := mat.NewDense(s.Samples, s.Features, nil)
	labels := make([]int, s.Samples)

	// Informative features: standard normal, covariance-mixed by a
	// random matrix per class, then shifted to the class vertex.
	row := 0
	for c := 0; c < s.Classes; c++ {
		count := s.Samples / s.Classes
		if c < s.Samples%s.Classes {
			count++
		}
		a := mat.NewDense(ni, ni, nil)
		for i := 0; i < ni; i++ {
			for j := 0; j < ni; j++ {
				a.Set(i, j, g.uniform(-1, 1))
			}
		}
		z := mat.NewDense(count, ni, nil)
		for i := 0; i < count; i++ {
			for j := 0; j < ni; j++ {
				z.Set(i, j, g.normal(0, 1))
			}
		}
		var mixed mat.Dense
		mixed.Mul(z, a)
		for i := 0; i < count; i++ {
			for j := 0; j < ni; j++ {
				x.Set(row+i, j, mixed.At(i, j)+vertices[c][j])
			}
			labels[row+i] = c
		}
		row += count
	}

	// Redundant features.
	if nr > 0 {
		b := mat.NewDense(ni, nr, nil)
		for i := 0; i < ni; i++ {
			for j := 0; j < nr; j++ {
				b.Set(i, j, g.uniform(-1, 1))
			}
		}
		var red mat.Dense
		red.Mul(x.Slice(0, s.Samples, 0, ni), b)
		for i := 0; i < s.Samples; i++ {
			for j := 0; j < nr; j++ {
				x.Set(i, ni+j, red.At(i, j))
			}
		}
	}

	// Noise features.
	for i := 0; i < s.Samples; i++ {
		for j := ni + nr; j < s.Features; j++ {
			x.Set(i, j, g.normal(0, 1))
		}
	}

	// Shuffle samples.
	perm := g.rnd.Perm(s.Samples)
	names := make([]string, s.Features)
	cols := make([][]float64, s.Features)
	for j := range cols {
		names[j] = fmt.Sprintf("f%d", j)
		cols[j] = make([]float64, s.Samples)
		for i, p := range perm {
			cols[j][i] = x.At(p, j)
		}
	}
	shuffled := make([]int, s.Samples)
	for i, p := range perm {
		shuffled[i] = labels[p]
	}
	return FromColumns(s.Kind(), names, cols, shuffled)
}
