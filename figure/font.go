// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"image/color"
	"sync"

	"github.com/go-fonts/dejavu/dejavusans"
	"github.com/go-fonts/dejavu/dejavusansbold"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// DejaVu Sans carries the Arabic presentation forms that shaped
// labels are made of.
var (
	regularFont = font.Font{Typeface: "DejaVu", Variant: "Sans"}
	boldFont    = font.Font{Typeface: "DejaVu", Variant: "Sans", Weight: xfont.WeightBold}
)

var (
	fontsOnce sync.Once
	fonts     *font.Cache
	fontsErr  error
)

func loadFonts() (*font.Cache, error) {
	fontsOnce.Do(func() {
		var coll font.Collection
		for _, f := range []struct {
			font font.Font
			ttf  []byte
		}{
			{regularFont, dejavusans.TTF},
			{boldFont, dejavusansbold.TTF},
		} {
			face, err := opentype.Parse(f.ttf)
			if err != nil {
				fontsErr = err
				return
			}
			coll = append(coll, font.Face{Font: f.font, Face: face})
		}
		fonts = font.NewCache(coll)
	})
	return fonts, fontsErr
}

// typesetter builds text styles for one render.
type typesetter struct {
	handler text.Handler
}

func newTypesetter() (*typesetter, error) {
	cache, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &typesetter{handler: text.Plain{Fonts: cache}}, nil
}

func (t *typesetter) style(size float64, bold bool, c color.Color) text.Style {
	f := regularFont
	if bold {
		f = boldFont
	}
	f.Size = vg.Points(size)
	if c == nil {
		c = color.Black
	}
	return text.Style{
		Color:   c,
		Font:    f,
		XAlign:  text.XLeft,
		YAlign:  text.YBottom,
		Handler: t.handler,
	}
}
