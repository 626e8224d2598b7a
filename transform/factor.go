// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// FactorOptions controls FactorAnalysis. Zero fields take their
// defaults.
type FactorOptions struct {
	// MaxIter bounds the iterations of both the extraction and the
	// rotation. The default is 500.
	MaxIter int

	// Tol is the convergence tolerance: the gradient norm at which
	// extraction stops, and the relative change at which rotation
	// stops. The default is 1e-6.
	Tol float64

	// NoRotation skips the varimax rotation.
	NoRotation bool
}

// Factors is the result of an exploratory factor analysis.
type Factors struct {
	// Loadings is a features × factors matrix.
	Loadings *mat.Dense

	// Communalities is the share of each feature's variance
	// explained by the factors, and Uniquenesses is 1 minus that.
	Communalities []float64
	Uniquenesses  []float64

	// Variance is the sum of squared loadings of each factor.
	Variance []float64

	// ExtractionIter and RotationIter are the iterations used by
	// each stage.
	ExtractionIter, RotationIter int
}

// FactorAnalysis extracts k factors from x, whose rows are samples and
// whose columns are features, by minimum residual factoring of the
// correlation matrix, then applies a Kaiser-normalized varimax
// rotation. k may be as large as the number of features.
//
// Factors are ordered by decreasing Variance and the sign of each is
// chosen so that its largest-magnitude loading is positive. If either
// loop exceeds opts.MaxIter iterations, FactorAnalysis returns a
// *ConvergenceError.
func FactorAnalysis(x mat.Matrix, k int, opts FactorOptions) (*Factors, error) {
	n, p := x.Dims()
	if n < 2 || p < 2 {
		return nil, invalid("factor analysis needs at least 2 samples and 2 features, have %d×%d", n, p)
	}
	if k < 1 || k > p {
		return nil, invalid("%d factors for %d features", k, p)
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 500
	}
	if opts.Tol <= 0 {
		opts.Tol = 1e-6
	}
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		if err := checkFinite("column", col); err != nil {
			return nil, err
		}
		if stat.Variance(col, nil) == 0 {
			return nil, invalid("feature %d is constant", j)
		}
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, x, nil)

	loadings, iter, err := minres(&corr, k, opts)
	if err != nil {
		return nil, err
	}
	f := &Factors{ExtractionIter: iter}
	if k > 1 && !opts.NoRotation {
		loadings, f.RotationIter, err = varimax(loadings, opts)
		if err != nil {
			return nil, err
		}
	}

	// Order factors by explained variance and fix their signs.
	variance := make([]float64, k)
	for j := range variance {
		c := mat.Col(nil, j, loadings)
		variance[j] = floats.Dot(c, c)
	}
	order := make([]int, k)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return variance[order[a]] > variance[order[b]] })
	f.Loadings = mat.NewDense(p, k, nil)
	f.Variance = make([]float64, k)
	for j, src := range order {
		c := mat.Col(nil, src, loadings)
		if c[argmaxAbs(c)] < 0 {
			floats.Scale(-1, c)
		}
		f.Loadings.SetCol(j, c)
		f.Variance[j] = variance[src]
	}

	f.Communalities = make([]float64, p)
	f.Uniquenesses = make([]float64, p)
	for i := 0; i < p; i++ {
		r := f.Loadings.RawRowView(i)
		f.Communalities[i] = floats.Dot(r, r)
		f.Uniquenesses[i] = 1 - f.Communalities[i]
	}
	return f, nil
}

// minres fits k factors to corr by minimizing the sum of squared
// off-diagonal residuals over the uniquenesses, as in the minimum
// residual method. Each uniqueness is kept in [minUniqueness, 1]
// through a logistic change of variable, so a variable whose
// communality heads for 1 settles at the bound instead of stalling
// the fit. A line search that can make no further progress ends the
// fit at the best point found.
func minres(corr *mat.SymDense, k int, opts FactorOptions) (*mat.Dense, int, error) {
	p := corr.SymmetricDim()
	psi := make([]float64, p)
	toPsi := func(t []float64) []float64 {
		for i, ti := range t {
			psi[i] = minUniqueness + (1-minUniqueness)/(1+math.Exp(-ti))
		}
		return psi
	}
	fit := &residualFit{corr: corr, k: k, reduced: mat.NewSymDense(p, nil)}
	obj := func(t []float64) float64 { return fit.residual(toPsi(t)) }

	t0 := make([]float64, p)
	for i, h := range initialCommunalities(corr) {
		u := math.Max(1e-3, math.Min(1-1e-3, (1-h-minUniqueness)/(1-minUniqueness)))
		t0[i] = math.Log(u / (1 - u))
	}
	problem := optimize.Problem{
		Func: obj,
		Grad: func(grad, t []float64) {
			fd.Gradient(grad, obj, t, &fd.Settings{Formula: fd.Central})
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIter,
		GradientThreshold: opts.Tol,
		Converger: &optimize.FunctionConverge{
			Absolute:   opts.Tol * opts.Tol,
			Iterations: 10,
		},
	}
	res, err := optimize.Minimize(problem, t0, settings, &optimize.LBFGS{})
	switch {
	case res == nil:
		return nil, 0, invalid("factor extraction: %v", err)
	case res.Status == optimize.IterationLimit:
		return nil, opts.MaxIter, &ConvergenceError{"extraction", opts.MaxIter}
	case err != nil && !errors.Is(err, optimize.ErrLinesearcherFailure) && !errors.Is(err, optimize.ErrNoProgress):
		return nil, res.MajorIterations, invalid("factor extraction: %v", err)
	}
	fit.residual(toPsi(res.X))
	if fit.failed {
		return nil, res.MajorIterations, invalid("eigendecomposition failed")
	}
	return fit.loadings, res.MajorIterations, nil
}

// minUniqueness is the smallest uniqueness minres allows.
const minUniqueness = 0.005

// residualFit evaluates the minimum residual objective. After each
// call, loadings holds the k-factor solution for the given
// uniquenesses.
type residualFit struct {
	corr     *mat.SymDense
	k        int
	reduced  *mat.SymDense
	loadings *mat.Dense
	failed   bool

	eig  mat.EigenSym
	vecs mat.Dense
}

func (f *residualFit) residual(psi []float64) float64 {
	p := f.corr.SymmetricDim()
	f.reduced.CopySym(f.corr)
	for i := 0; i < p; i++ {
		f.reduced.SetSym(i, i, 1-psi[i])
	}
	if f.failed = !f.eig.Factorize(f.reduced, true); f.failed {
		return math.Inf(1)
	}
	vals := f.eig.Values(nil)
	f.eig.VectorsTo(&f.vecs)
	f.loadings = mat.NewDense(p, f.k, nil)
	// Eigenvalues are in ascending order.
	for j := 0; j < f.k; j++ {
		src := p - 1 - j
		scale := math.Sqrt(math.Max(vals[src], 0))
		for i := 0; i < p; i++ {
			f.loadings.Set(i, j, f.vecs.At(i, src)*scale)
		}
	}
	sum := 0.0
	for i := 0; i < p; i++ {
		ri := f.loadings.RawRowView(i)
		for l := i + 1; l < p; l++ {
			d := f.corr.At(i, l) - floats.Dot(ri, f.loadings.RawRowView(l))
			sum += 2 * d * d
		}
	}
	return sum
}

// initialCommunalities returns 1 - 1/diag(R⁻¹). If R is singular it
// falls back to each feature's largest absolute correlation.
func initialCommunalities(corr *mat.SymDense) []float64 {
	p := corr.SymmetricDim()
	h2 := make([]float64, p)
	var chol mat.Cholesky
	var inv mat.SymDense
	if chol.Factorize(corr) && chol.InverseTo(&inv) == nil {
		for i := range h2 {
			h2[i] = 1 - 1/inv.At(i, i)
		}
		return h2
	}
	for i := range h2 {
		for j := 0; j < p; j++ {
			if i != j {
				h2[i] = math.Max(h2[i], math.Abs(corr.At(i, j)))
			}
		}
	}
	return h2
}

// varimax rotates loadings to maximize the variance of the squared
// loadings within each factor. Rows are normalized by their
// communality before rotation and scaled back afterwards.
func varimax(loadings *mat.Dense, opts FactorOptions) (*mat.Dense, int, error) {
	p, k := loadings.Dims()
	norm := make([]float64, p)
	a := mat.DenseCopyOf(loadings)
	for i := 0; i < p; i++ {
		r := a.RawRowView(i)
		norm[i] = math.Sqrt(floats.Dot(r, r))
		if norm[i] > 0 {
			floats.Scale(1/norm[i], r)
		}
	}

	rot := mat.NewDense(k, k, nil)
	for j := 0; j < k; j++ {
		rot.Set(j, j, 1)
	}
	var (
		lambda, target, b, u, v mat.Dense
		svd                     mat.SVD
		d                       float64
	)
	colSq := make([]float64, k)
	converged := false
	iter := 0
	for iter = 1; iter <= opts.MaxIter; iter++ {
		dOld := d
		lambda.Mul(a, rot)
		for j := range colSq {
			colSq[j] = 0
			for i := 0; i < p; i++ {
				l := lambda.At(i, j)
				colSq[j] += l * l
			}
		}
		target.Apply(func(i, j int, v float64) float64 {
			return v*v*v - v*colSq[j]/float64(p)
		}, &lambda)
		b.Mul(a.T(), &target)
		if !svd.Factorize(&b, mat.SVDFull) {
			return nil, iter, invalid("SVD failed during rotation")
		}
		svd.UTo(&u)
		svd.VTo(&v)
		rot.Mul(&u, v.T())
		d = floats.Sum(svd.Values(nil))
		if dOld != 0 && d/dOld < 1+opts.Tol {
			converged = true
			break
		}
	}
	if !converged {
		return nil, opts.MaxIter, &ConvergenceError{"rotation", opts.MaxIter}
	}

	var out mat.Dense
	out.Mul(a, rot)
	for i := 0; i < p; i++ {
		floats.Scale(norm[i], out.RawRowView(i))
	}
	return &out, iter, nil
}
