// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Style holds the typographic and raster settings of a figure. It is a
// plain value: the With methods return modified copies, and a Figure
// keeps its own copy.
//
// Font sizes are in points. A size of 0 falls back to FontSize.
type Style struct {
	FontSize   float64
	TitleSize  float64
	LabelSize  float64
	TickSize   float64
	LegendSize float64

	// BoldTitles draws panel titles in the bold face.
	BoldTitles bool

	// UnicodeMinus renders negative tick labels with U+2212 rather
	// than a hyphen-minus.
	UnicodeMinus bool

	// DPI is the raster resolution.
	DPI int

	// Width and Height are the figure size in inches.
	Width, Height float64

	// PadX and PadY are the gaps between panels in inches.
	PadX, PadY float64

	// LineWidth is the default line width in points.
	LineWidth float64
}

// DefaultStyle returns the style used when no overrides are given:
// 12pt DejaVu Sans at 300 DPI on a 10×6 inch figure.
func DefaultStyle() Style {
	return Style{
		FontSize:  12,
		DPI:       300,
		Width:     10,
		Height:    6,
		PadX:      0.6,
		PadY:      0.6,
		LineWidth: 1.5,
	}
}

// WithSize returns s with the figure size set to w×h inches.
func (s Style) WithSize(w, h float64) Style {
	s.Width, s.Height = w, h
	return s
}

// WithFontSize returns s with every font size set to pt.
func (s Style) WithFontSize(pt float64) Style {
	s.FontSize = pt
	s.TitleSize, s.LabelSize, s.TickSize, s.LegendSize = 0, 0, 0, 0
	return s
}

// WithDPI returns s with the raster resolution set to dpi.
func (s Style) WithDPI(dpi int) Style {
	s.DPI = dpi
	return s
}

func (s Style) size(pt float64) float64 {
	if pt > 0 {
		return pt
	}
	return s.FontSize
}

func (s Style) check() error {
	switch {
	case s.FontSize <= 0:
		return fmt.Errorf("font size %v is not positive", s.FontSize)
	case s.DPI <= 0:
		return fmt.Errorf("DPI %d is not positive", s.DPI)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("figure size %v×%v is not positive", s.Width, s.Height)
	case s.PadX < 0 || s.PadY < 0:
		return fmt.Errorf("negative panel padding")
	}
	return nil
}

// styleFile is the YAML form of Style. Absent keys leave the base
// style unchanged.
type styleFile struct {
	FontSize     *float64 `yaml:"font_size"`
	TitleSize    *float64 `yaml:"title_size"`
	LabelSize    *float64 `yaml:"label_size"`
	TickSize     *float64 `yaml:"tick_size"`
	LegendSize   *float64 `yaml:"legend_size"`
	BoldTitles   *bool    `yaml:"bold_titles"`
	UnicodeMinus *bool    `yaml:"unicode_minus"`
	DPI          *int     `yaml:"dpi"`
	Width        *float64 `yaml:"width"`
	Height       *float64 `yaml:"height"`
	PadX         *float64 `yaml:"pad_x"`
	PadY         *float64 `yaml:"pad_y"`
	LineWidth    *float64 `yaml:"line_width"`
}

// Parse returns s with the overrides in the YAML document data
// applied. Unknown keys are an error.
func (s Style) Parse(data []byte) (Style, error) {
	var f styleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Style{}, fmt.Errorf("style: %w", err)
	}
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setB := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&s.FontSize, f.FontSize)
	setF(&s.TitleSize, f.TitleSize)
	setF(&s.LabelSize, f.LabelSize)
	setF(&s.TickSize, f.TickSize)
	setF(&s.LegendSize, f.LegendSize)
	setB(&s.BoldTitles, f.BoldTitles)
	setB(&s.UnicodeMinus, f.UnicodeMinus)
	if f.DPI != nil {
		s.DPI = *f.DPI
	}
	setF(&s.Width, f.Width)
	setF(&s.Height, f.Height)
	setF(&s.PadX, f.PadX)
	setF(&s.PadY, f.PadY)
	setF(&s.LineWidth, f.LineWidth)
	if err := s.check(); err != nil {
		return Style{}, fmt.Errorf("style: %w", err)
	}
	return s, nil
}

// Load is like Parse but reads the overrides from the named file.
func (s Style) Load(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, err
	}
	st, err := s.Parse(data)
	if err != nil {
		return Style{}, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// LoadStyle reads a YAML style file and applies it to DefaultStyle.
func LoadStyle(path string) (Style, error) {
	return DefaultStyle().Load(path)
}
