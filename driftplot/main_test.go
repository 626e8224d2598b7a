// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/aiog/figgen/synth"
)

func TestLegendClear(t *testing.T) {
	for _, seed := range []uint64{1, 42, 1234} {
		ds, err := synth.Generate(pressure, seed)
		if err != nil {
			t.Fatal(err)
		}
		for i, y := range ds.MustColumn("pressure") {
			if y <= yRange.Min || y >= yRange.Max-legendBand {
				t.Errorf("seed %d: sample %d = %.2f outside (%v, %v)", seed, i, y, yRange.Min, yRange.Max-legendBand)
			}
		}
	}
}
