// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"fmt"
	"strings"

	"github.com/aiog/figgen/rtl"
	"gonum.org/v1/plot"
)

// A Tick is a labelled position on an axis.
type Tick struct {
	Value float64
	Label rtl.Visual
}

// NumericTicks returns ticks at each value labelled with its formatted
// number.
func NumericTicks(format string, values ...float64) []Tick {
	ts := make([]Tick, len(values))
	for i, v := range values {
		ts[i] = Tick{v, rtl.Visual(fmt.Sprintf(format, v))}
	}
	return ts
}

func constantTicks(ts []Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ts))
	for i, t := range ts {
		out[i] = plot.Tick{Value: t.Value, Label: string(t.Label)}
	}
	return out
}

// minusTicks replaces the hyphen-minus of negative labels with the
// Unicode minus sign.
type minusTicks struct {
	plot.Ticker
}

func (m minusTicks) Ticks(min, max float64) []plot.Tick {
	ts := m.Ticker.Ticks(min, max)
	for i := range ts {
		if strings.HasPrefix(ts[i].Label, "-") {
			ts[i].Label = "−" + ts[i].Label[1:]
		}
	}
	return ts
}
