// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform implements the statistical transforms behind the
// figures: closed-form densities, principal component and factor
// analysis, z-scores, rolling windows, autocorrelation, kernel
// density estimates and least-squares lines.
//
// Every function is pure. Results are returned as new values carrying
// the parameters they were computed with, and inputs are never
// modified.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidInput is returned when an input is malformed: empty,
	// mismatched in length, non-finite, or otherwise outside the
	// domain of the transform.
	ErrInvalidInput = errors.New("transform: invalid input")

	// ErrConvergence is returned (wrapped in a *ConvergenceError)
	// when an iterative algorithm exceeds its iteration bound.
	ErrConvergence = errors.New("transform: failed to converge")
)

// A ConvergenceError records which iterative stage failed to
// converge.
type ConvergenceError struct {
	Stage string // "extraction" or "rotation"
	Iter  int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("transform: %s did not converge in %d iterations", e.Stage, e.Iter)
}

func (e *ConvergenceError) Unwrap() error { return ErrConvergence }

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// checkFinite returns an error if xs is empty or contains NaN or ±Inf.
func checkFinite(what string, xs []float64) error {
	if len(xs) == 0 {
		return invalid("%s is empty", what)
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return invalid("%s[%d] is %v", what, i, x)
		}
	}
	return nil
}

// A Value is an entry of a windowed series. OK is false where the
// window does not yet cover enough samples.
type Value struct {
	V  float64
	OK bool
}

// Linspace returns n evenly spaced points over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	return vec.Linspace(lo, hi, n)
}

// Cumulative returns the running sums of xs.
func Cumulative(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	return floats.CumSum(make([]float64, len(xs)), xs)
}
