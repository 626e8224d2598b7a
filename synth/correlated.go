// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// A Group is a block of Size variables that share a common pairwise
// correlation Corr.
type Group struct {
	Size int
	Corr float64
}

// Correlated draws Samples rows from a zero-mean multivariate normal
// distribution with unit variances whose correlation matrix is block
// structured: variables in the same group have correlation Corr, and
// variables in different groups have correlation Cross. This gives
// data with a known latent factor per group.
//
// Columns are named by Names if it is set and f0, f1, … otherwise.
type Correlated struct {
	Samples int
	Groups  []Group
	Cross   float64
	Names   []string
}

func (Correlated) Kind() string { return "correlated" }

// Covariance returns the correlation matrix that s samples from.
func (s Correlated) Covariance() (*mat.SymDense, error) {
	n := 0
	for i, grp := range s.Groups {
		if grp.Size <= 0 {
			return nil, paramError(s.Kind(), "Groups", "group %d has size %d", i, grp.Size)
		}
		if grp.Corr <= -1 || grp.Corr >= 1 {
			return nil, paramError(s.Kind(), "Groups", "group %d correlation %g outside (-1, 1)", i, grp.Corr)
		}
		n += grp.Size
	}
	if n == 0 {
		return nil, paramError(s.Kind(), "Groups", "no variables")
	}
	group := make([]int, 0, n)
	for i, grp := range s.Groups {
		for k := 0; k < grp.Size; k++ {
			group = append(group, i)
		}
	}
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			switch {
			case i == j:
				cov.SetSym(i, j, 1)
			case group[i] == group[j]:
				cov.SetSym(i, j, s.Groups[group[i]].Corr)
			default:
				cov.SetSym(i, j, s.Cross)
			}
		}
	}
	return cov, nil
}

func (s Correlated) generate(g *gen) (*Dataset, error) {
	if s.Samples <= 0 {
		return nil, paramError(s.Kind(), "Samples", "%d is not positive", s.Samples)
	}
	cov, err := s.Covariance()
	if err != nil {
		return nil, err
	}
	n := cov.SymmetricDim()
	if s.Names != nil && len(s.Names) != n {
		return nil, paramError(s.Kind(), "Names", "%d names for %d variables", len(s.Names), n)
	}
	dist, ok := distmv.NewNormal(make([]float64, n), cov, g.src)
	if !ok {
		return nil, paramError(s.Kind(), "Cross", "correlation matrix is not positive definite")
	}

	names := s.Names
	if names == nil {
		names = make([]string, n)
		for j := range names {
			names[j] = fmt.Sprintf("f%d", j)
		}
	}
	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = make([]float64, s.Samples)
	}
	row := make([]float64, n)
	for i := 0; i < s.Samples; i++ {
		dist.Rand(row)
		for j, v := range row {
			cols[j][i] = v
		}
	}
	return FromColumns(s.Kind(), names, cols, nil)
}
