// Copyright 2025 The figgen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/gonum/mat"
)

// A Dataset is a set of uniquely named numeric columns that all have
// the same length, plus an optional integer label per row.
//
// A Dataset is immutable. Accessors return copies.
type Dataset struct {
	name   string
	tab    *table.Table
	labels []int
}

// FromColumns builds a Dataset from parallel slices of column names
// and column data. labels may be nil.
func FromColumns(name string, names []string, cols [][]float64, labels []int) (*Dataset, error) {
	if len(names) != len(cols) {
		return nil, paramError("dataset", "columns", "%d names for %d columns", len(names), len(cols))
	}
	n := -1
	seen := make(map[string]bool)
	var b table.Builder
	for i, name := range names {
		if name == "" {
			return nil, paramError("dataset", "columns", "column %d has no name", i)
		}
		if seen[name] {
			return nil, paramError("dataset", "columns", "duplicate column %q", name)
		}
		seen[name] = true
		if n < 0 {
			n = len(cols[i])
		} else if len(cols[i]) != n {
			return nil, paramError("dataset", "columns", "column %q has length %d, want %d", name, len(cols[i]), n)
		}
		b.Add(name, append([]float64(nil), cols[i]...))
	}
	if labels != nil && n >= 0 && len(labels) != n {
		return nil, paramError("dataset", "labels", "%d labels for %d rows", len(labels), n)
	}
	return &Dataset{
		name:   name,
		tab:    b.Done(),
		labels: append([]int(nil), labels...),
	}, nil
}

// Name returns the dataset's name.
func (d *Dataset) Name() string { return d.name }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.tab.Len() }

// Columns returns the column names in insertion order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.tab.Columns()...)
}

// Column returns a copy of the named column, or nil if there is no
// such column.
func (d *Dataset) Column(name string) []float64 {
	col := d.tab.Column(name)
	if col == nil {
		return nil
	}
	return append([]float64(nil), col.([]float64)...)
}

// MustColumn is like Column but panics if the column does not exist.
func (d *Dataset) MustColumn(name string) []float64 {
	col := d.Column(name)
	if col == nil {
		panic(fmt.Sprintf("synth: dataset %q has no column %q", d.name, name))
	}
	return col
}

// Labels returns a copy of the row labels, or nil.
func (d *Dataset) Labels() []int {
	if len(d.labels) == 0 {
		return nil
	}
	return append([]int(nil), d.labels...)
}

// Table returns the underlying go-gg table.
func (d *Dataset) Table() *table.Table { return d.tab }

// Matrix returns the named columns as an N×len(names) matrix. With no
// names, it uses every column.
func (d *Dataset) Matrix(names ...string) *mat.Dense {
	if len(names) == 0 {
		names = d.tab.Columns()
	}
	n := d.Len()
	m := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		m.SetCol(j, d.MustColumn(name))
	}
	return m
}
