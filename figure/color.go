// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"image/color"
	"math"

	ggpalette "github.com/aclements/go-gg/palette"
)

// Tab10 is the ten-colour qualitative cycle used for series that have
// no colour of their own.
var Tab10 = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
	{0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

// Named colours.
var (
	Black      = color.RGBA{0x00, 0x00, 0x00, 0xff}
	White      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Gray       = color.RGBA{0x80, 0x80, 0x80, 0xff}
	Red        = color.RGBA{0xff, 0x00, 0x00, 0xff}
	Green      = color.RGBA{0x00, 0x80, 0x00, 0xff}
	Blue       = color.RGBA{0x00, 0x00, 0xff, 0xff}
	RoyalBlue  = color.RGBA{0x41, 0x69, 0xe1, 0xff}
	Orange     = color.RGBA{0xff, 0xa5, 0x00, 0xff}
	Purple     = color.RGBA{0x80, 0x00, 0x80, 0xff}
	SkyBlue    = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	Salmon     = color.RGBA{0xfa, 0x80, 0x72, 0xff}
	LightGreen = color.RGBA{0x90, 0xee, 0x90, 0xff}
	Wheat      = color.RGBA{0xf5, 0xde, 0xb3, 0xff}
)

// Fade returns c with its opacity multiplied by alpha, which is
// clamped to [0, 1].
func Fade(c color.Color, alpha float64) color.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

// A Gradient is a continuous colour map over [0, 1].
type Gradient struct {
	g ggpalette.RGBGradient
}

// NewGradient returns a gradient through evenly spaced colours.
func NewGradient(colors ...color.RGBA) Gradient {
	return Gradient{ggpalette.RGBGradient{Colors: colors}}
}

// At returns the colour at x, clamped to [0, 1].
func (g Gradient) At(x float64) color.Color {
	if math.IsNaN(x) {
		return Gray
	}
	return g.g.Map(math.Max(0, math.Min(1, x)))
}

// Colors samples g at 256 points. With it a Gradient is a gonum/plot
// palette.Palette.
func (g Gradient) Colors() []color.Color {
	const n = 256
	cs := make([]color.Color, n)
	for i := range cs {
		cs[i] = g.At(float64(i) / (n - 1))
	}
	return cs
}

var (
	// Viridis is the perceptually uniform blue-green-yellow map.
	Viridis = NewGradient(
		color.RGBA{0x44, 0x01, 0x54, 0xff},
		color.RGBA{0x48, 0x28, 0x78, 0xff},
		color.RGBA{0x3e, 0x4a, 0x89, 0xff},
		color.RGBA{0x31, 0x68, 0x8e, 0xff},
		color.RGBA{0x26, 0x82, 0x8e, 0xff},
		color.RGBA{0x1f, 0x9e, 0x89, 0xff},
		color.RGBA{0x35, 0xb7, 0x79, 0xff},
		color.RGBA{0x6d, 0xcd, 0x59, 0xff},
		color.RGBA{0xb4, 0xde, 0x2c, 0xff},
		color.RGBA{0xfd, 0xe7, 0x25, 0xff},
	)

	// CoolWarm is the diverging blue-white-red map.
	CoolWarm = NewGradient(
		color.RGBA{0x3b, 0x4c, 0xc0, 0xff},
		color.RGBA{0x62, 0x82, 0xea, 0xff},
		color.RGBA{0x8d, 0xb0, 0xfe, 0xff},
		color.RGBA{0xb8, 0xd0, 0xf9, 0xff},
		color.RGBA{0xdd, 0xdc, 0xdc, 0xff},
		color.RGBA{0xf5, 0xc4, 0xac, 0xff},
		color.RGBA{0xf4, 0x9a, 0x7b, 0xff},
		color.RGBA{0xde, 0x60, 0x4d, 0xff},
		color.RGBA{0xb4, 0x04, 0x26, 0xff},
	)
)

// luminance returns the relative brightness of c in [0, 1].
func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
}
