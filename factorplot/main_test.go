// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/aiog/figgen/synth"
	"github.com/aiog/figgen/transform"
)

func TestPlantFactors(t *testing.T) {
	ds, err := synth.Generate(plant, 42)
	if err != nil {
		t.Fatal(err)
	}
	fa, err := transform.FactorAnalysis(ds.Matrix(variables...), len(factors), transform.FactorOptions{})
	if err != nil {
		t.Fatalf("FactorAnalysis: %v", err)
	}
	if r, c := fa.Loadings.Dims(); r != len(variables) || c != len(factors) {
		t.Errorf("loadings are %d×%d, want %d×%d", r, c, len(variables), len(factors))
	}
}
