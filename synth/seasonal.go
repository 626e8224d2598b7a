// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

// A Season scales samples [Start, End) of every period by Factor.
// Offsets are relative to the start of the period; End may run past
// the end of the period, in which case it is clipped.
type Season struct {
	Start, End int
	Factor     float64
}

// Seasonal is a multiplicative seasonal pattern over a base level with
// Gaussian noise. From sample TrendStart on, the base level also jumps
// by a single amount drawn uniformly from [JumpMin, JumpMax] and rises
// by TrendSlope per sample. A TrendStart of 0 disables the trend.
//
// The dataset has columns "time", "value" and "season", the last
// being the seasonal factor applied to each sample.
type Seasonal struct {
	Name             string
	Periods          int
	PeriodLen        int
	Base             float64
	NoiseStd         float64
	Seasons          []Season
	TrendStart       int
	TrendSlope       float64
	JumpMin, JumpMax float64
}

func (Seasonal) Kind() string { return "seasonal" }

// Len returns the number of samples s generates.
func (s Seasonal) Len() int { return s.Periods * s.PeriodLen }

func (s Seasonal) generate(g *gen) (*Dataset, error) {
	if s.Periods <= 0 || s.PeriodLen <= 0 {
		return nil, paramError(s.Kind(), "Periods", "%d periods of %d samples", s.Periods, s.PeriodLen)
	}
	if s.NoiseStd < 0 {
		return nil, paramError(s.Kind(), "NoiseStd", "%g is negative", s.NoiseStd)
	}
	n := s.Len()
	if s.TrendStart < 0 || s.TrendStart >= n {
		return nil, paramError(s.Kind(), "TrendStart", "%d outside [0, %d)", s.TrendStart, n)
	}
	if s.JumpMin > s.JumpMax {
		return nil, paramError(s.Kind(), "JumpMin", "%g > JumpMax %g", s.JumpMin, s.JumpMax)
	}

	pattern := make([]float64, n)
	for i := range pattern {
		pattern[i] = 1
	}
	for i, season := range s.Seasons {
		if season.Start < 0 || season.Start >= season.End || season.Start >= s.PeriodLen {
			return nil, paramError(s.Kind(), "Seasons", "season %d spans [%d, %d) in a period of %d", i, season.Start, season.End, s.PeriodLen)
		}
		for p := 0; p < s.Periods; p++ {
			base := p * s.PeriodLen
			end := season.End
			if end > s.PeriodLen {
				end = s.PeriodLen
			}
			for k := season.Start; k < end; k++ {
				pattern[base+k] = season.Factor
			}
		}
	}

	time := make([]float64, n)
	values := make([]float64, n)
	trendEnd := n
	if s.TrendStart > 0 {
		trendEnd = s.TrendStart
	}
	for i := 0; i < trendEnd; i++ {
		values[i] = s.Base + g.normal(0, s.NoiseStd)
	}
	if s.TrendStart > 0 {
		// Noise for the whole trend segment is drawn before the
		// jump so the jump does not shift the noise sequence.
		for i := s.TrendStart; i < n; i++ {
			values[i] = g.normal(0, s.NoiseStd)
		}
		jump := g.uniform(s.JumpMin, s.JumpMax)
		for i := s.TrendStart; i < n; i++ {
			values[i] += s.Base + s.TrendSlope*float64(i-s.TrendStart) + jump
		}
	}
	for i := range values {
		time[i] = float64(i)
		values[i] *= pattern[i]
	}
	return FromColumns(nameOr(s.Name, "seasonal"), []string{"time", "value", "season"}, [][]float64{time, values, pattern}, nil)
}
