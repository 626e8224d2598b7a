// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

import (
	"testing"
)

func runes(rs ...rune) string { return string(rs) }

func TestReshape(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		// Dual-joining pair: initial, final.
		{"بب", runes(0xFE91, 0xFE90)},
		// Lam-alef ligature, isolated and final.
		{"لا", runes(0xFEFB)},
		{"سلام", runes(0xFEB3, 0xFEFC, 0xFEE1)},
		// Right-joining letters never join forward; ZWNJ breaks
		// joining and is dropped.
		{"داده‌ها", runes(0xFEA9, 0xFE8D, 0xFEA9, 0xFEE9, 0xFEEB, 0xFE8E)},
		// Persian letters.
		{"گچ", runes(0xFB94, 0xFB7B)},
		{"ی", runes(0xFBFC)},
		// A harakah between letters does not break joining.
		{"بَب", runes(0xFE91, 0x064E, 0xFE90)},
		// Unknown runes pass through.
		{"ب☃", runes(0xFE8F, '☃')},
	} {
		if got := Reshape(test.in); got != test.want {
			t.Errorf("Reshape(%q) = %q (%U), want %q (%U)", test.in, got, []rune(got), test.want, []rune(test.want))
		}
	}
}

func TestShapeEmptyAndLTR(t *testing.T) {
	if got := Shape(""); got != "" {
		t.Errorf("Shape(\"\") = %q, want empty", got)
	}
	for _, s := range []string{"PC1", "Y = 2X + 3", "lambda=0.5 (x)"} {
		if got := Shape(s); string(got) != s {
			t.Errorf("Shape(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestReorderPureRTL(t *testing.T) {
	for _, s := range []string{"سلام", "فشار ثابت", "دمای سیال", "بارهای عاملی"} {
		shaped := []rune(Reshape(s))
		got := []rune(string(Shape(s)))
		if len(got) != len(shaped) {
			t.Fatalf("Shape(%q) has %d runes, want %d", s, len(got), len(shaped))
		}
		for i := range got {
			if got[i] != shaped[len(shaped)-1-i] {
				t.Errorf("Shape(%q) = %U, want reverse of %U", s, got, shaped)
				break
			}
		}
	}
}

func TestReorderIslands(t *testing.T) {
	farsi := runes(0xFEAD, 0xFE8E, 0xFEB8, 0xFED3) // "فشار" shaped, visual order
	for _, test := range []struct {
		in, want string
	}{
		{"فشار 300 bar", "bar 300 " + farsi},
		{"فشار 3.5", "3.5 " + farsi},
		{"فشار (PC1)", "(PC1) " + farsi},
		{"فشار ۳۰", "۳۰ " + farsi},
	} {
		if got := Shape(test.in); string(got) != test.want {
			t.Errorf("Shape(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestDirectionOf(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Direction
	}{
		{"", LTR},
		{"123", LTR},
		{"abc دما", LTR},
		{"دما abc", RTL},
		{"  (۳) دما", RTL},
	} {
		if got := DirectionOf(test.in); got != test.want {
			t.Errorf("DirectionOf(%q) = %v, want %v", test.in, got, test.want)
		}
		if l := NewLabel(test.in); l.Dir != test.want {
			t.Errorf("NewLabel(%q).Dir = %v, want %v", test.in, l.Dir, test.want)
		}
	}
}
