// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aiog/figgen/synth"
)

func TestEvaluate(t *testing.T) {
	xs := []float64{-1, 0, 0.5, 1, 2.5, 4}
	for _, test := range []struct {
		dist Dist
		want func(x float64) float64
	}{
		{Normal{Mu: 1, Sigma: 2}, func(x float64) float64 {
			return math.Exp(-(x-1)*(x-1)/8) / (2 * math.Sqrt(2*math.Pi))
		}},
		{Exponential{Rate: 1.5}, func(x float64) float64 {
			if x < 0 {
				return 0
			}
			return 1.5 * math.Exp(-1.5*x)
		}},
		{Uniform{Min: 0, Max: 2.5}, func(x float64) float64 {
			if x < 0 || x > 2.5 {
				return 0
			}
			return 1 / 2.5
		}},
		{Gamma{Shape: 2, Rate: 3}, func(x float64) float64 {
			if x <= 0 {
				return 0
			}
			return 9 * x * math.Exp(-3*x) / math.Gamma(2)
		}},
	} {
		d, err := Evaluate(test.dist, xs)
		require.NoError(t, err, test.dist.String())
		require.Len(t, d.Y, len(xs))
		for i, x := range xs {
			assert.InDelta(t, test.want(x), d.Y[i], 1e-12, "%v at %v", test.dist, x)
		}
	}
}

func TestEvaluatePMF(t *testing.T) {
	ks := []int{-1, 0, 1, 3, 10, 11}
	binom := func(n, k int) float64 {
		return math.Round(math.Gamma(float64(n+1)) / (math.Gamma(float64(k+1)) * math.Gamma(float64(n-k+1))))
	}
	for _, test := range []struct {
		dist Discrete
		want func(k int) float64
	}{
		{Binomial{N: 10, P: 0.3}, func(k int) float64 {
			if k < 0 || k > 10 {
				return 0
			}
			return binom(10, k) * math.Pow(0.3, float64(k)) * math.Pow(0.7, float64(10-k))
		}},
		{Poisson{Lambda: 4}, func(k int) float64 {
			if k < 0 {
				return 0
			}
			return math.Pow(4, float64(k)) * math.Exp(-4) / math.Gamma(float64(k+1))
		}},
	} {
		p, err := EvaluatePMF(test.dist, ks)
		require.NoError(t, err)
		for i, k := range ks {
			assert.InDelta(t, test.want(k), p.P[i], 1e-12, "%v at %d", test.dist, k)
		}
	}
}

func TestEvaluateInvalid(t *testing.T) {
	for _, d := range []Dist{Normal{Sigma: 0}, Exponential{Rate: -1}, Uniform{Min: 1, Max: 1}, Gamma{Shape: 0, Rate: 1}} {
		_, err := Evaluate(d, []float64{1})
		assert.ErrorIs(t, err, ErrInvalidInput, d.String())
	}
	_, err := Evaluate(Normal{Sigma: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EvaluatePMF(Binomial{N: 3, P: 1.5}, []int{0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EvaluatePMF(Poisson{Lambda: 0}, []int{0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func classification(t *testing.T) *mat.Dense {
	ds, err := synth.Generate(synth.Classification{Samples: 300, Features: 8, Informative: 5, Redundant: 2, Classes: 2, ClassSep: 1.5}, 42)
	require.NoError(t, err)
	return ds.Matrix()
}

func TestPrincipalComponents(t *testing.T) {
	x := classification(t)
	p, err := PrincipalComponents(x)
	require.NoError(t, err)

	r, c := p.Components.Dims()
	assert.Equal(t, 8, r)
	assert.Equal(t, 8, c)
	assert.InDelta(t, 1, floats.Sum(p.Ratio), 1e-6)
	for i, v := range p.Ratio {
		assert.GreaterOrEqual(t, v, 0.0)
		if i > 0 {
			assert.LessOrEqual(t, v, p.Ratio[i-1])
		}
	}

	for i := 0; i < r; i++ {
		row := p.Components.RawRowView(i)
		assert.InDelta(t, 1, floats.Norm(row, 2), 1e-9, "component %d is not unit length", i)
		assert.Greater(t, row[argmaxAbs(row)], 0.0, "component %d sign", i)
		for j := 0; j < i; j++ {
			assert.InDelta(t, 0, floats.Dot(row, p.Components.RawRowView(j)), 1e-9, "components %d and %d", i, j)
		}
	}

	// The scores reconstruct the centred data.
	var back mat.Dense
	back.Mul(p.Scores, p.Components)
	n, f := x.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			assert.InDelta(t, x.At(i, j)-p.Mean[j], back.At(i, j), 1e-9)
		}
	}

	// Score variances match the explained variances.
	col := make([]float64, n)
	for k := range p.Variance {
		mat.Col(col, k, p.Scores)
		assert.InDelta(t, p.Variance[k], floats.Dot(col, col)/float64(n-1), 1e-9)
	}

	// Two redundant features make the last two components empty.
	assert.Less(t, p.Ratio[6]+p.Ratio[7], 1e-12)
}

func TestPrincipalComponentsInvalid(t *testing.T) {
	_, err := PrincipalComponents(mat.NewDense(1, 3, nil))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = PrincipalComponents(mat.NewDense(3, 2, []float64{1, 2, 1, 2, 1, 2}))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = PrincipalComponents(mat.NewDense(2, 2, []float64{1, math.NaN(), 1, 2}))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStandardize(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{1, 5, 2, 5, 3, 5, 4, 5})
	s, err := Standardize(x)
	require.NoError(t, err)
	col := mat.Col(nil, 0, s)
	assert.InDelta(t, 0, floats.Sum(col), 1e-12)
	assert.InDelta(t, 4, floats.Dot(col, col), 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0}, mat.Col(nil, 1, s))
	assert.Equal(t, 1.0, x.At(0, 0), "input was modified")
}

func correlated(t *testing.T) *mat.Dense {
	ds, err := synth.Generate(synth.Correlated{Samples: 500, Groups: []synth.Group{{Size: 4, Corr: 0.7}, {Size: 4, Corr: 0.6}, {Size: 2, Corr: 0.8}}}, 42)
	require.NoError(t, err)
	return ds.Matrix()
}

func TestFactorAnalysis(t *testing.T) {
	f, err := FactorAnalysis(correlated(t), 3, FactorOptions{})
	require.NoError(t, err)

	p, k := f.Loadings.Dims()
	require.Equal(t, 10, p)
	require.Equal(t, 3, k)
	for j := 1; j < k; j++ {
		assert.GreaterOrEqual(t, f.Variance[j-1], f.Variance[j])
	}

	// After rotation each feature loads mainly on the factor of its
	// own group, and every feature in a group picks the same factor.
	groups := [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9}}
	seen := map[int]bool{}
	for g, members := range groups {
		main := -1
		for _, i := range members {
			row := f.Loadings.RawRowView(i)
			best := argmaxAbs(row)
			if main < 0 {
				main = best
			}
			assert.Equal(t, main, best, "group %d feature %d", g, i)
			assert.Greater(t, math.Abs(row[best]), 0.6, "group %d feature %d", g, i)
			for j, l := range row {
				if j != best {
					assert.Less(t, math.Abs(l), 0.3, "group %d feature %d cross-loading on %d", g, i, j)
				}
			}
		}
		assert.False(t, seen[main], "groups share factor %d", main)
		seen[main] = true
	}

	for i := 0; i < p; i++ {
		assert.InDelta(t, 1, f.Communalities[i]+f.Uniquenesses[i], 1e-12)
		assert.True(t, f.Communalities[i] > 0 && f.Communalities[i] < 1, "communality %v", f.Communalities[i])
	}
}

func TestFactorAnalysisPlant(t *testing.T) {
	// The plant measurements of the factor figure: 300 samples, one
	// group of only two variables.
	ds, err := synth.Generate(synth.Correlated{
		Samples: 300,
		Groups:  []synth.Group{{Size: 4, Corr: 0.7}, {Size: 4, Corr: 0.6}, {Size: 2, Corr: 0.8}},
	}, 42)
	require.NoError(t, err)
	f, err := FactorAnalysis(ds.Matrix(), 3, FactorOptions{})
	require.NoError(t, err)
	assert.Less(t, f.ExtractionIter, 500)
	for i, h := range f.Communalities {
		assert.True(t, h > 0 && h <= 1, "communality %d is %v", i, h)
	}
	for j := 0; j < 3; j++ {
		c := mat.Col(nil, j, f.Loadings)
		assert.Greater(t, math.Abs(c[argmaxAbs(c)]), 0.6, "factor %d", j)
	}
}

func TestFactorAnalysisAllFactors(t *testing.T) {
	x := mat.NewDense(6, 3, []float64{
		1, 2, 0,
		2, 1, 1,
		3, 4, 0,
		4, 3, 2,
		5, 7, 1,
		6, 5, 3,
	})
	f, err := FactorAnalysis(x, 3, FactorOptions{})
	require.NoError(t, err)
	p, k := f.Loadings.Dims()
	assert.Equal(t, 3, p)
	assert.Equal(t, 3, k)
	for i := range f.Communalities {
		assert.InDelta(t, 1, f.Communalities[i]+f.Uniquenesses[i], 1e-12)
	}
}

func TestFactorAnalysisRotationPreservesCommunalities(t *testing.T) {
	x := correlated(t)
	rot, err := FactorAnalysis(x, 3, FactorOptions{})
	require.NoError(t, err)
	raw, err := FactorAnalysis(x, 3, FactorOptions{NoRotation: true})
	require.NoError(t, err)
	assert.Zero(t, raw.RotationIter)
	assert.InDeltaSlice(t, raw.Communalities, rot.Communalities, 1e-9)
}

func TestFactorAnalysisConvergence(t *testing.T) {
	_, err := FactorAnalysis(correlated(t), 3, FactorOptions{MaxIter: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConvergence))
	var ce *ConvergenceError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Iter)
}

func TestFactorAnalysisInvalid(t *testing.T) {
	x := correlated(t)
	_, err := FactorAnalysis(x, 0, FactorOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = FactorAnalysis(x, 11, FactorOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = FactorAnalysis(mat.NewDense(3, 2, []float64{1, 1, 2, 1, 3, 1}), 1, FactorOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestZScore(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 100}
	z, err := ZScore(xs, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 22, z.Mean, 1e-12)
	assert.Equal(t, []int{4}, z.Outliers)
	assert.True(t, z.Flagged(4))
	assert.False(t, z.Flagged(0))
	for i, x := range xs {
		assert.InDelta(t, math.Abs(x-22)/z.Std, z.Scores[i], 1e-12)
	}

	_, err = ZScore(xs, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ZScore(nil, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	c, err := ZScore([]float64{5, 5, 5}, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Outliers)
	assert.Equal(t, []float64{0, 0, 0}, c.Scores)
}

func TestZScoreMonotone(t *testing.T) {
	ds, err := synth.Generate(synth.Noise{N: 200, Mean: 80, Variance: 25, RandomOutliers: []synth.OutlierBatch{{Count: 10, Min: 110, Max: 130}, {Count: 8, Min: 40, Max: 50}}}, 42)
	require.NoError(t, err)
	xs := ds.MustColumn("value")
	prev := len(xs) + 1
	for _, th := range []float64{0, 0.5, 1, 2, 3, 4, 10} {
		z, err := ZScore(xs, th)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(z.Outliers), prev, "threshold %v", th)
		prev = len(z.Outliers)
	}
}

func TestRolling(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	m, err := RollingMean(xs, 4)
	require.NoError(t, err)
	assert.Equal(t, []Value{{}, {}, {}, {2.5, true}, {3.5, true}, {4.5, true}}, m.Values)
	f := m.Floats()
	assert.True(t, math.IsNaN(f[0]))
	assert.Equal(t, 4.5, f[5])

	v, err := RollingVariance(xs, 4)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.False(t, v.Values[i].OK)
	}
	for i := 3; i < 6; i++ {
		assert.True(t, v.Values[i].OK)
		assert.InDelta(t, 5.0/3, v.Values[i].V, 1e-12)
	}

	_, err = RollingMean(xs, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = RollingVariance(xs, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	long, err := RollingMean(xs, 10)
	require.NoError(t, err)
	for _, v := range long.Values {
		assert.False(t, v.OK)
	}
}

func TestAutocorrelation(t *testing.T) {
	a, err := Autocorrelation([]float64{1, 2, 3, 4, 5}, 2)
	require.NoError(t, err)
	// Deviations -2..2 sum of squares 10; lag 1: (-2)(-1)+(-1)(0)+0(1)+1(2) = 4;
	// lag 2: (-2)(0)+(-1)(1)+0(2) = -1.
	assert.InDeltaSlice(t, []float64{1, 0.4, -0.1}, a.Coef, 1e-12)
	assert.Equal(t, []float64{0, 1, 2}, a.Lags())

	c, err := Autocorrelation([]float64{3, 3, 3, 3}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Coef[0])
	for _, r := range c.Coef[1:] {
		assert.True(t, math.IsNaN(r))
	}

	_, err = Autocorrelation([]float64{1, 2}, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	band := a.Bartlett()
	assert.Equal(t, 0.0, band[0])
	assert.InDelta(t, ACFConfidence(5), band[1], 1e-12)
	assert.InDelta(t, 1.96*math.Sqrt((1+2*0.16)/5), band[2], 1e-12)
}

func TestKernelDensity(t *testing.T) {
	ds, err := synth.Generate(synth.Noise{N: 500, Mean: 10, Variance: 4}, 1)
	require.NoError(t, err)
	k, err := KernelDensity(ds.MustColumn("value"), 200)
	require.NoError(t, err)
	require.Len(t, k.X, 200)
	require.Len(t, k.Y, 200)
	assert.Greater(t, k.Bandwidth, 0.0)

	// The estimate integrates to about 1 and peaks near the mean.
	area := 0.0
	peak := 0
	for i := 1; i < len(k.X); i++ {
		area += (k.X[i] - k.X[i-1]) * (k.Y[i] + k.Y[i-1]) / 2
		if k.Y[i] > k.Y[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 1, area, 0.02)
	assert.InDelta(t, 10, k.X[peak], 1)

	_, err = KernelDensity([]float64{1, 1, 1}, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFitLine(t *testing.T) {
	f, err := FitLine([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	require.NoError(t, err)
	assert.InDelta(t, 1, f.Intercept, 1e-9)
	assert.InDelta(t, 2, f.Slope, 1e-9)
	assert.InDelta(t, 21, f.At(10), 1e-9)

	_, err = FitLine([]float64{1, 1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = FitLine([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCumulative(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0.5, 0.8, 1}, Cumulative([]float64{0.5, 0.3, 0.2}), 1e-15)
	assert.Nil(t, Cumulative(nil))
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
}
