// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

// joining is the Unicode joining type of an Arabic-script rune.
type joining uint8

const (
	joinNone        joining = iota // U: does not join
	joinRight                      // R: joins only to the preceding letter
	joinDual                       // D: joins on both sides
	joinCausing                    // C: tatweel
	joinTransparent                // T: combining marks
)

// forms holds the presentation forms of a letter. A zero entry means
// the letter has no such form.
type forms struct {
	isolated, final, initial, medial rune
}

const (
	lam     = '\u0644'
	tatweel = '\u0640'
	zwnj    = '\u200c'
	zwj     = '\u200d'
	hamza   = '\u0621'
)

var letterForms = map[rune]forms{
	'ء': {0xFE80, 0, 0, 0},
	'آ': {0xFE81, 0xFE82, 0, 0},
	'أ': {0xFE83, 0xFE84, 0, 0},
	'ؤ': {0xFE85, 0xFE86, 0, 0},
	'إ': {0xFE87, 0xFE88, 0, 0},
	'ئ': {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C},
	'ا': {0xFE8D, 0xFE8E, 0, 0},
	'ب': {0xFE8F, 0xFE90, 0xFE91, 0xFE92},
	'ة': {0xFE93, 0xFE94, 0, 0},
	'ت': {0xFE95, 0xFE96, 0xFE97, 0xFE98},
	'ث': {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C},
	'ج': {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0},
	'ح': {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4},
	'خ': {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8},
	'د': {0xFEA9, 0xFEAA, 0, 0},
	'ذ': {0xFEAB, 0xFEAC, 0, 0},
	'ر': {0xFEAD, 0xFEAE, 0, 0},
	'ز': {0xFEAF, 0xFEB0, 0, 0},
	'س': {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4},
	'ش': {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8},
	'ص': {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC},
	'ض': {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0},
	'ط': {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4},
	'ظ': {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8},
	'ع': {0xFEC9, 0xFECA, 0xFECB, 0xFECC},
	'غ': {0xFECD, 0xFECE, 0xFECF, 0xFED0},
	'ف': {0xFED1, 0xFED2, 0xFED3, 0xFED4},
	'ق': {0xFED5, 0xFED6, 0xFED7, 0xFED8},
	'ك': {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC},
	'ل': {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	'م': {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4},
	'ن': {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8},
	'ه': {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC},
	'و': {0xFEED, 0xFEEE, 0, 0},
	'ى': {0xFEEF, 0xFEF0, 0xFBE8, 0xFBE9},
	'ي': {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4},

	// Persian letters.
	'پ': {0xFB56, 0xFB57, 0xFB58, 0xFB59},
	'چ': {0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D},
	'ژ': {0xFB8A, 0xFB8B, 0, 0},
	'ک': {0xFB8E, 0xFB8F, 0xFB90, 0xFB91},
	'گ': {0xFB92, 0xFB93, 0xFB94, 0xFB95},
	'ی': {0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF},
}

// lamAlef maps the alef that follows a lam to the isolated and final
// forms of the mandatory ligature.
var lamAlef = map[rune][2]rune{
	'آ': {0xFEF5, 0xFEF6},
	'أ': {0xFEF7, 0xFEF8},
	'إ': {0xFEF9, 0xFEFA},
	'ا': {0xFEFB, 0xFEFC},
}

func joiningType(r rune) joining {
	switch {
	case r == tatweel || r == zwj:
		return joinCausing
	case r >= '\u064b' && r <= '\u065f', r == '\u0670':
		return joinTransparent
	case r == hamza:
		return joinNone
	}
	f, ok := letterForms[r]
	if !ok {
		return joinNone
	}
	if f.initial != 0 {
		return joinDual
	}
	return joinRight
}

// joinsForward reports whether r connects to the letter after it.
func joinsForward(r rune) bool {
	t := joiningType(r)
	return t == joinDual || t == joinCausing
}

// joinsBackward reports whether r connects to the letter before it.
func joinsBackward(r rune) bool {
	t := joiningType(r)
	return t == joinDual || t == joinRight || t == joinCausing
}

// Reshape replaces each Arabic-script letter in s with the
// presentation form selected by its neighbours, forms lam-alef
// ligatures and drops ZWNJ. The result is still in logical order.
// Runes without presentation forms are copied unchanged.
func Reshape(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in))

	// neighbour returns the index of the closest non-transparent rune
	// in direction dir from i, or -1.
	neighbour := func(i, dir int) int {
		for j := i + dir; j >= 0 && j < len(in); j += dir {
			if joiningType(in[j]) != joinTransparent {
				return j
			}
		}
		return -1
	}

	for i := 0; i < len(in); i++ {
		r := in[i]
		if r == zwnj {
			continue
		}
		f, ok := letterForms[r]
		if !ok {
			out = append(out, r)
			continue
		}

		prev := neighbour(i, -1)
		linkPrev := prev >= 0 && joinsForward(in[prev]) && joinsBackward(r)

		if r == lam {
			if next := neighbour(i, +1); next >= 0 {
				if lig, ok := lamAlef[in[next]]; ok {
					if linkPrev {
						out = append(out, lig[1])
					} else {
						out = append(out, lig[0])
					}
					// Keep any marks between lam and alef.
					out = append(out, in[i+1:next]...)
					i = next
					continue
				}
			}
		}

		next := neighbour(i, +1)
		linkNext := next >= 0 && joinsForward(r) && joinsBackward(in[next])

		var form rune
		switch {
		case linkPrev && linkNext:
			form = f.medial
		case linkPrev:
			form = f.final
		case linkNext:
			form = f.initial
		}
		if form == 0 {
			form = f.isolated
		}
		out = append(out, form)
	}
	return string(out)
}
