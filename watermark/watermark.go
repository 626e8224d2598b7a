// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watermark stamps a QR code linking to a figure's source onto
// a rendered figure.
//
// The code is encoded at the lowest error-correction level, in the
// smallest version that holds the payload, and rasterized with
// transparent light modules so that whatever is underneath shows
// through. It is placed by a fractional position in either the whole
// figure or the data area of one panel, measured from the bottom-left
// corner as on the plotting surface.
package watermark

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

var (
	// ErrPayloadTooLarge is returned when the URL does not fit in a
	// QR code of the permitted version.
	ErrPayloadTooLarge = errors.New("watermark: payload too large")

	// ErrInvalidSpec is returned for an empty URL or an unknown
	// coordinate space or anchor.
	ErrInvalidSpec = errors.New("watermark: invalid spec")
)

// Space selects what a Spec's position is relative to.
type Space int

const (
	// FigureFraction positions are fractions of the whole figure.
	FigureFraction Space = iota

	// AxesFraction positions are fractions of the data area of
	// one panel.
	AxesFraction
)

func (s Space) String() string {
	switch s {
	case FigureFraction:
		return "figure fraction"
	case AxesFraction:
		return "axes fraction"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// Anchor names the point of the QR image that is placed on a Spec's
// position.
type Anchor int

const (
	BottomLeft Anchor = iota
	BottomRight
	TopLeft
	TopRight
	Center
)

var anchorNames = [...]string{"bottom left", "bottom right", "top left", "top right", "center"}

func (a Anchor) String() string {
	if a >= 0 && int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// frac returns the anchor as a fraction of the image size, measured
// from its bottom-left corner.
func (a Anchor) frac() (x, y float64, ok bool) {
	switch a {
	case BottomLeft:
		return 0, 0, true
	case BottomRight:
		return 1, 0, true
	case TopLeft:
		return 0, 1, true
	case TopRight:
		return 1, 1, true
	case Center:
		return 0.5, 0.5, true
	}
	return 0, 0, false
}

// A Point is a pair of fractions.
type Point struct{ X, Y float64 }

// A Cell identifies a panel of a figure grid.
type Cell struct{ Row, Col int }

// Spec describes one watermark.
type Spec struct {
	URL string

	// Panel is the panel whose data area an AxesFraction position
	// refers to. It is ignored for FigureFraction.
	Panel Cell

	// Pos is the position in Space, each coordinate in [0, 1].
	Pos    Point
	Space  Space
	Anchor Anchor

	// Offset moves the anchor point by multiples of the QR image's
	// own width and height. With Anchor BottomLeft, an Offset of
	// {8.5, -1.2} places the point 8.5 widths to the right of and
	// 1.2 heights below the image's bottom-left corner on Pos.
	Offset Point
}

// Options controls encoding and rasterization. Zero fields take their
// defaults.
type Options struct {
	// MaxVersion is the largest QR version (1–40) permitted. The
	// default is 40.
	MaxVersion int

	// ModuleSize is the side of one module in points (1/72 inch)
	// before Zoom is applied. The default is 5.
	ModuleSize float64

	// Zoom scales the module size. The default is 1.
	Zoom float64

	// Border is the width of the quiet zone in modules. The default
	// is 2; a negative Border means no quiet zone.
	Border int
}

func (o Options) withDefaults() Options {
	if o.MaxVersion <= 0 || o.MaxVersion > 40 {
		o.MaxVersion = 40
	}
	if o.ModuleSize <= 0 {
		o.ModuleSize = 5
	}
	if o.Zoom <= 0 {
		o.Zoom = 1
	}
	if o.Border == 0 {
		o.Border = 2
	} else if o.Border < 0 {
		o.Border = 0
	}
	return o
}

// A Target is a raster figure a watermark can be composed onto.
type Target interface {
	// Bounds returns the figure area in pixels.
	Bounds() image.Rectangle

	// DPI returns the raster resolution.
	DPI() float64

	// DataArea returns the data area of panel (row, col) in pixels.
	DataArea(row, col int) (image.Rectangle, error)

	// Overlay draws img with its top-left corner at the given pixel,
	// blending over what is already there.
	Overlay(img image.Image, at image.Point) error
}

// Bitmap encodes url and returns its modules, including a quiet zone
// of border modules on each side, with true for dark modules.
func Bitmap(url string, maxVersion, border int) ([][]bool, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidSpec)
	}
	q, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrPayloadTooLarge, len(url), err)
	}
	if q.VersionNumber > maxVersion {
		return nil, fmt.Errorf("%w: %d bytes need version %d, limit is %d", ErrPayloadTooLarge, len(url), q.VersionNumber, maxVersion)
	}
	q.DisableBorder = true
	inner := q.Bitmap()
	n := len(inner) + 2*border
	bits := make([][]bool, n)
	for y := range bits {
		bits[y] = make([]bool, n)
		if y < border || y >= n-border {
			continue
		}
		copy(bits[y][border:], inner[y-border])
	}
	return bits, nil
}

// Render rasterizes the QR code for url at the given resolution. Dark
// modules are opaque black and light modules are fully transparent.
func Render(url string, dpi float64, opts Options) (*image.NRGBA, error) {
	opts = opts.withDefaults()
	bits, err := Bitmap(url, opts.MaxVersion, opts.Border)
	if err != nil {
		return nil, err
	}
	n := len(bits)
	small := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y, row := range bits {
		for x, dark := range row {
			if dark {
				small.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 0xff})
			}
		}
	}
	px := ModulePixels(dpi, opts)
	out := image.NewNRGBA(image.Rect(0, 0, n*px, n*px))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out, nil
}

// ModulePixels returns the side of one module in pixels at dpi.
func ModulePixels(dpi float64, opts Options) int {
	opts = opts.withDefaults()
	px := int(math.Round(opts.ModuleSize * opts.Zoom * dpi / 72))
	if px < 1 {
		px = 1
	}
	return px
}

// Compose renders the watermark described by s and draws it onto t.
// The watermark may extend past the figure; no attempt is made to
// avoid other content.
func Compose(t Target, s Spec, opts Options) error {
	if !(s.Pos.X >= 0 && s.Pos.X <= 1 && s.Pos.Y >= 0 && s.Pos.Y <= 1) {
		return fmt.Errorf("%w: position (%v, %v) outside the unit square", ErrInvalidSpec, s.Pos.X, s.Pos.Y)
	}
	ax, ay, ok := s.Anchor.frac()
	if !ok {
		return fmt.Errorf("%w: anchor %v", ErrInvalidSpec, s.Anchor)
	}
	var area image.Rectangle
	switch s.Space {
	case FigureFraction:
		area = t.Bounds()
	case AxesFraction:
		var err error
		area, err = t.DataArea(s.Panel.Row, s.Panel.Col)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: space %v", ErrInvalidSpec, s.Space)
	}
	img, err := Render(s.URL, t.DPI(), opts)
	if err != nil {
		return err
	}
	return t.Overlay(img, Place(area, img.Bounds().Size(), s.Pos, ax+s.Offset.X, ay+s.Offset.Y))
}

// Place returns the top-left pixel of an image of the given size whose
// point (ax, ay), in fractions of its size from its bottom-left
// corner, lies at pos, in fractions of area from its bottom-left
// corner.
func Place(area image.Rectangle, size image.Point, pos Point, ax, ay float64) image.Point {
	px := float64(area.Min.X) + pos.X*float64(area.Dx())
	py := float64(area.Max.Y) - pos.Y*float64(area.Dy())
	left := px - ax*float64(size.X)
	bottom := py + ay*float64(size.Y)
	return image.Pt(int(math.Round(left)), int(math.Round(bottom))-size.Y)
}
