// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rtl prepares Persian and Arabic text for rendering on a
// surface that lays glyphs out strictly left to right.
//
// Shaping happens in two passes. Reshape picks the contextual
// presentation form of every Arabic-script letter, and Reorder moves
// the result from logical (reading) order to visual order, keeping
// numbers and Latin fragments as left-to-right islands. The output of
// Shape is a Visual string, which is only good for drawing: it must
// not be concatenated, compared or shaped again.
package rtl

import "golang.org/x/text/unicode/bidi"

// Direction is the base writing direction of a label.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Label is a piece of text in logical order.
type Label struct {
	Text string
	Dir  Direction
}

// NewLabel returns a Label whose direction is taken from the first
// strong character of s.
func NewLabel(s string) Label {
	return Label{Text: s, Dir: DirectionOf(s)}
}

// Visual shapes l for drawing.
func (l Label) Visual() Visual {
	return Shape(l.Text)
}

// Visual is text in visual order, ready to be drawn left to right.
type Visual string

// DirectionOf returns RTL if the first strong character of s is
// right-to-left.
func DirectionOf(s string) Direction {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return LTR
		case bidi.R, bidi.AL:
			return RTL
		}
	}
	return LTR
}

// Shape converts logical text to visual text. It never fails: runes it
// does not know are passed through and left for the font's fallback
// glyph.
func Shape(s string) Visual {
	if s == "" {
		return ""
	}
	return Visual(Reorder(Reshape(s)))
}

// Shapes shapes each element of ss.
func Shapes(ss ...string) []Visual {
	vs := make([]Visual, len(ss))
	for i, s := range ss {
		vs[i] = Shape(s)
	}
	return vs
}
