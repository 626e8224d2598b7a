// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA is the result of a principal component analysis.
type PCA struct {
	// Mean is the per-feature mean subtracted before the
	// decomposition.
	Mean []float64

	// Components holds one principal axis per row, ordered by
	// decreasing explained variance.
	Components *mat.Dense

	// Scores is the projection of the centred data on Components,
	// one row per sample.
	Scores *mat.Dense

	// Variance and Ratio give the variance explained by each
	// component and its share of the total. Ratio sums to 1.
	Variance []float64
	Ratio    []float64
}

// PrincipalComponents computes the principal components of x, whose
// rows are samples and whose columns are features, from the singular
// value decomposition of the centred data.
//
// With N samples and F features there are min(N, F) components. The
// sign of each component is chosen so that its largest-magnitude
// loading is positive.
func PrincipalComponents(x mat.Matrix) (*PCA, error) {
	n, f := x.Dims()
	if n < 2 || f < 1 {
		return nil, invalid("PCA needs at least 2 samples and 1 feature, have %d×%d", n, f)
	}
	centred := mat.DenseCopyOf(x)
	mean := make([]float64, f)
	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, centred)
		if err := checkFinite("column", col); err != nil {
			return nil, err
		}
		mean[j] = stat.Mean(col, nil)
		floats.AddConst(-mean[j], col)
		centred.SetCol(j, col)
	}

	var svd mat.SVD
	if !svd.Factorize(centred, mat.SVDThin) {
		return nil, invalid("SVD failed")
	}
	sv := svd.Values(nil)
	k := len(sv)
	var v mat.Dense
	svd.VTo(&v)

	total := 0.0
	for _, s := range sv {
		total += s * s
	}
	if total == 0 {
		return nil, invalid("data has zero variance")
	}

	comps := mat.NewDense(k, f, nil)
	variance := make([]float64, k)
	ratio := make([]float64, k)
	for c := 0; c < k; c++ {
		row := mat.Col(nil, c, &v)
		if row[argmaxAbs(row)] < 0 {
			floats.Scale(-1, row)
		}
		comps.SetRow(c, row)
		variance[c] = sv[c] * sv[c] / float64(n-1)
		ratio[c] = sv[c] * sv[c] / total
	}

	var scores mat.Dense
	scores.Mul(centred, comps.T())
	return &PCA{
		Mean:       mean,
		Components: comps,
		Scores:     &scores,
		Variance:   variance,
		Ratio:      ratio,
	}, nil
}

func argmaxAbs(xs []float64) int {
	best := 0
	for i, x := range xs {
		if math.Abs(x) > math.Abs(xs[best]) {
			best = i
		}
	}
	return best
}

// Standardize returns a copy of x with each column shifted to zero
// mean and scaled to unit population standard deviation. Constant
// columns are only centred.
func Standardize(x mat.Matrix) (*mat.Dense, error) {
	n, f := x.Dims()
	if n == 0 || f == 0 {
		return nil, invalid("empty matrix")
	}
	out := mat.DenseCopyOf(x)
	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, out)
		if err := checkFinite("column", col); err != nil {
			return nil, err
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := range col {
			col[i] = (col[i] - mean) / std
		}
		out.SetCol(j, col)
	}
	return out, nil
}
