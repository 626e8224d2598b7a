// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

import (
	"golang.org/x/text/unicode/bidi"
)

// mirrors holds the Bidi_Mirroring_Glyph pairs that occur in chart
// labels.
var mirrors = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'«': '»', '»': '«',
}

// classify returns the bidi class of each rune.
func classify(rs []rune) []bidi.Class {
	cs := make([]bidi.Class, len(rs))
	for i, r := range rs {
		p, _ := bidi.LookupRune(r)
		cs[i] = p.Class()
	}
	return cs
}

// paragraphLevel is rule P2/P3: the level of the first strong
// character, or 0.
func paragraphLevel(cs []bidi.Class) int {
	for _, c := range cs {
		switch c {
		case bidi.L:
			return 0
		case bidi.R, bidi.AL:
			return 1
		}
	}
	return 0
}

func hasRTL(cs []bidi.Class) bool {
	for _, c := range cs {
		if c == bidi.R || c == bidi.AL || c == bidi.AN {
			return true
		}
	}
	return false
}

// resolveWeak applies rules W1 through W7 in place. sos is the class
// of the start of the sequence (L or R).
func resolveWeak(cs []bidi.Class, sos bidi.Class) {
	// W1.
	prev := sos
	for i, c := range cs {
		if c == bidi.NSM {
			cs[i] = prev
		}
		prev = cs[i]
	}

	// W2 and W3.
	strong := sos
	for i, c := range cs {
		switch c {
		case bidi.L, bidi.R, bidi.AL:
			strong = c
		case bidi.EN:
			if strong == bidi.AL {
				cs[i] = bidi.AN
			}
		}
	}
	for i, c := range cs {
		if c == bidi.AL {
			cs[i] = bidi.R
		}
	}

	// W4.
	for i := 1; i+1 < len(cs); i++ {
		a, c, b := cs[i-1], cs[i], cs[i+1]
		switch {
		case c == bidi.ES && a == bidi.EN && b == bidi.EN:
			cs[i] = bidi.EN
		case c == bidi.CS && a == b && (a == bidi.EN || a == bidi.AN):
			cs[i] = a
		}
	}

	// W5.
	for i := 0; i < len(cs); {
		if cs[i] != bidi.ET {
			i++
			continue
		}
		j := i
		for j < len(cs) && cs[j] == bidi.ET {
			j++
		}
		if (i > 0 && cs[i-1] == bidi.EN) || (j < len(cs) && cs[j] == bidi.EN) {
			for k := i; k < j; k++ {
				cs[k] = bidi.EN
			}
		}
		i = j
	}

	// W6.
	for i, c := range cs {
		switch c {
		case bidi.ES, bidi.ET, bidi.CS, bidi.BN:
			cs[i] = bidi.ON
		}
	}

	// W7.
	strong = sos
	for i, c := range cs {
		switch c {
		case bidi.L, bidi.R:
			strong = c
		case bidi.EN:
			if strong == bidi.L {
				cs[i] = bidi.L
			}
		}
	}
}

// resolveNeutral applies rules N1 and N2 in place. Classes other than
// L, R, EN and AN are treated as neutral.
func resolveNeutral(cs []bidi.Class, e bidi.Class) {
	dir := func(c bidi.Class) bidi.Class {
		if c == bidi.L {
			return bidi.L
		}
		return bidi.R
	}
	strongish := func(c bidi.Class) bool {
		return c == bidi.L || c == bidi.R || c == bidi.EN || c == bidi.AN
	}
	for i := 0; i < len(cs); {
		if strongish(cs[i]) {
			i++
			continue
		}
		j := i
		for j < len(cs) && !strongish(cs[j]) {
			j++
		}
		before, after := e, e
		if i > 0 {
			before = dir(cs[i-1])
		}
		if j < len(cs) {
			after = dir(cs[j])
		}
		res := e
		if before == after {
			res = before
		}
		for k := i; k < j; k++ {
			cs[k] = res
		}
		i = j
	}
}

// Reorder converts a single paragraph from logical to visual order
// for a left-to-right renderer, following the implicit part of the
// Unicode Bidirectional Algorithm. Explicit embedding controls are
// treated as neutrals. Strings without right-to-left characters are
// returned unchanged.
func Reorder(s string) string {
	rs := []rune(s)
	orig := classify(rs)
	if !hasRTL(orig) {
		return s
	}
	base := paragraphLevel(orig)
	e := bidi.L
	if base == 1 {
		e = bidi.R
	}

	cs := make([]bidi.Class, len(orig))
	for i, c := range orig {
		switch c {
		case bidi.L, bidi.R, bidi.AL, bidi.EN, bidi.ES, bidi.ET,
			bidi.AN, bidi.CS, bidi.NSM, bidi.BN, bidi.B, bidi.S, bidi.WS:
			cs[i] = c
		default:
			cs[i] = bidi.ON
		}
	}
	resolveWeak(cs, e)
	resolveNeutral(cs, e)

	// I1 and I2.
	levels := make([]int, len(cs))
	for i, c := range cs {
		switch {
		case base == 0 && c == bidi.R:
			levels[i] = 1
		case base == 0 && (c == bidi.EN || c == bidi.AN):
			levels[i] = 2
		case base == 1 && (c == bidi.L || c == bidi.EN || c == bidi.AN):
			levels[i] = 2
		default:
			levels[i] = base
		}
	}

	// L1: segment separators and trailing whitespace return to the
	// paragraph level.
	trailing := true
	for i := len(orig) - 1; i >= 0; i-- {
		switch orig[i] {
		case bidi.S, bidi.B:
			levels[i] = base
			trailing = true
		case bidi.WS:
			if trailing {
				levels[i] = base
			}
		default:
			trailing = false
		}
	}

	// L4 is applied before reversal so mirrored glyphs move with
	// their runes.
	for i, r := range rs {
		if levels[i]%2 == 1 {
			if m, ok := mirrors[r]; ok {
				rs[i] = m
			}
		}
	}

	// L2.
	hi, lo := 0, 1<<30
	for _, l := range levels {
		if l > hi {
			hi = l
		}
		if l%2 == 1 && l < lo {
			lo = l
		}
	}
	for l := hi; l >= lo && l > 0; l-- {
		for i := 0; i < len(rs); {
			if levels[i] < l {
				i++
				continue
			}
			j := i
			for j < len(rs) && levels[j] >= l {
				j++
			}
			reverse(rs[i:j])
			reverseInts(levels[i:j])
			i = j
		}
	}
	return string(rs)
}

func reverse(rs []rune) {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
}

func reverseInts(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
