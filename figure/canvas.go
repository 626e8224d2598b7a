// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/disintegration/imaging"
)

// A Canvas is a rendered figure. It accepts overlays until it is
// saved.
type Canvas struct {
	img   *image.NRGBA
	dpi   float64
	areas [][]image.Rectangle
	saved bool
}

// Bounds returns the canvas area in pixels. Its origin is always
// (0, 0).
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// DPI returns the raster resolution.
func (c *Canvas) DPI() float64 { return c.dpi }

// DataArea returns the pixel rectangle of the data area of panel
// (row, col).
func (c *Canvas) DataArea(row, col int) (image.Rectangle, error) {
	if row < 0 || row >= len(c.areas) || col < 0 || col >= len(c.areas[row]) {
		return image.Rectangle{}, renderErr("no cell (%d, %d)", row, col)
	}
	return c.areas[row][col], nil
}

// Image returns the rendered pixels. The caller must not modify them.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Overlay blends img over the canvas with its top-left corner at the
// pixel at. If img extends past the canvas, the canvas grows with a
// white background to include it, and existing content and data areas
// shift accordingly.
func (c *Canvas) Overlay(img image.Image, at image.Point) error {
	if c.saved {
		return renderErr("canvas already saved")
	}
	r := img.Bounds().Sub(img.Bounds().Min).Add(at)
	if u := c.img.Bounds().Union(r); u != c.img.Bounds() {
		shift := u.Min.Mul(-1)
		grown := imaging.New(u.Dx(), u.Dy(), color.White)
		c.img = imaging.Paste(grown, c.img, shift)
		for _, row := range c.areas {
			for i := range row {
				row[i] = row[i].Add(shift)
			}
		}
		at = at.Add(shift)
	}
	c.img = imaging.Overlay(c.img, img, at, 1)
	return nil
}

// ink returns the smallest rectangle holding every pixel that is not
// opaque white, or the empty rectangle.
func ink(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	box := image.Rectangle{Min: b.Max, Max: b.Min}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if row[i] == 0xff && row[i+1] == 0xff && row[i+2] == 0xff && row[i+3] == 0xff {
				continue
			}
			x := b.Min.X + i/4
			if x < box.Min.X {
				box.Min.X = x
			}
			if x >= box.Max.X {
				box.Max.X = x + 1
			}
			if y < box.Min.Y {
				box.Min.Y = y
			}
			box.Max.Y = y + 1
		}
	}
	if box.Empty() {
		return image.Rectangle{}
	}
	return box
}

// Tight returns the canvas cropped to the bounding box of its content
// plus a 0.1 inch white margin.
func (c *Canvas) Tight() *image.NRGBA {
	box := ink(c.img)
	if box.Empty() {
		box = c.img.Bounds()
	}
	pad := int(math.Round(0.1 * c.dpi))
	out := imaging.New(box.Dx()+2*pad, box.Dy()+2*pad, color.White)
	return imaging.Paste(out, imaging.Crop(c.img, box), image.Pt(pad, pad))
}

// Save writes the tightly cropped canvas to path as a PNG recording
// the DPI. The file is written under a temporary name and renamed into
// place, so a failed save leaves no partial file. A saved canvas
// accepts no further overlays or saves.
func (c *Canvas) Save(path string) error {
	if c.saved {
		return renderErr("canvas already saved")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.Tight(), imaging.PNG); err != nil {
		return err
	}
	data, err := withPhys(buf.Bytes(), c.dpi)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	c.saved = true
	return nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// withPhys inserts a pHYs chunk giving dpi after the IHDR chunk of an
// encoded PNG.
func withPhys(png []byte, dpi float64) ([]byte, error) {
	// Signature, then IHDR: length, type, 13 bytes of data, CRC.
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	if len(png) < ihdrEnd || !bytes.Equal(png[:8], pngSignature) || string(png[12:16]) != "IHDR" {
		return nil, fmt.Errorf("malformed PNG")
	}
	ppm := uint32(math.Round(dpi / 0.0254))
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(png)+len(chunk))
	out = append(out, png[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, png[ihdrEnd:]...), nil
}
