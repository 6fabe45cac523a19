// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// AxisRecord is the serialization form of one coordinate [Axis]:
// either numeric samples or categorical labels.
type AxisRecord struct {
	Values []float64 `yaml:"values,omitempty,flow"`
	Labels []string  `yaml:"labels,omitempty,flow"`
}

// LUTRecord is the serialization form of one [LUT]: shape, flat
// row-major data, axis names in dimension order, coordinate axes
// keyed by name, desc and attrs. Within an [MLUTRecord], axes held in
// the set's shared registry are omitted here and reconnected by name
// on read.
type LUTRecord struct {
	Desc  string                 `yaml:"desc,omitempty"`
	Shape []int                  `yaml:"shape,flow"`
	Names []string               `yaml:"names,flow"`
	Axes  map[string]*AxisRecord `yaml:"axes,omitempty"`
	Data  []float64              `yaml:"data,flow"`
	Attrs map[string]any         `yaml:"attrs,omitempty"`
}

// MLUTRecord is the serialization form of one [MLUT]: the shared axis
// registry, the datasets in insertion order, and the set attrs.
type MLUTRecord struct {
	Axes     map[string]*AxisRecord `yaml:"axes,omitempty"`
	Datasets []*LUTRecord           `yaml:"datasets"`
	Attrs    map[string]any         `yaml:"attrs,omitempty"`
}

func axisRecord(ax *Axis) *AxisRecord {
	if ax.IsNumeric() {
		return &AxisRecord{Values: ax.Values}
	}
	return &AxisRecord{Labels: ax.Labels}
}

func axisFromRecord(r *AxisRecord) *Axis {
	if r.Labels != nil {
		return NewLabelAxis(r.Labels...)
	}
	return NewAxis(r.Values...)
}

// Record converts this table to its serialization form.
func (l *LUT) Record() *LUTRecord {
	r := &LUTRecord{
		Desc:  l.Desc,
		Shape: l.Sizes(),
		Names: l.Names,
		Data:  l.Data,
		Attrs: l.Attrs,
	}
	for d, ax := range l.Axes {
		if ax == nil {
			continue
		}
		if r.Axes == nil {
			r.Axes = map[string]*AxisRecord{}
		}
		r.Axes[l.Names[d]] = axisRecord(ax)
	}
	return r
}

// FromRecord converts a serialization record back to a table,
// validating shape and axis lengths.
func FromRecord(r *LUTRecord) (*LUT, error) {
	sh := NewShape(r.Shape...)
	if len(r.Data) != sh.Len() {
		return nil, fmt.Errorf("%w: %d values do not fill shape %s", ErrShape, len(r.Data), sh)
	}
	l := NewFromValues(r.Data, r.Shape...)
	if r.Names != nil {
		if err := l.SetNames(r.Names...); err != nil {
			return nil, err
		}
	}
	for name, ar := range r.Axes {
		d, err := l.Dim(name)
		if err != nil {
			return nil, err
		}
		ax := axisFromRecord(ar)
		if ax.Len() != l.DimSize(d) {
			return nil, fmt.Errorf("%w: axis %q has %d samples for dimension size %d", ErrShape, name, ax.Len(), l.DimSize(d))
		}
		l.Axes[d] = ax
	}
	l.Desc = r.Desc
	l.SetAttrs(r.Attrs)
	return l, nil
}

// Record converts this table set to its serialization form. Shared
// axes serialize once in the registry; each dataset record keeps only
// its unshared axes.
func (m *MLUT) Record() *MLUTRecord {
	r := &MLUTRecord{Attrs: m.Attrs}
	for name, ax := range m.Axes {
		if r.Axes == nil {
			r.Axes = map[string]*AxisRecord{}
		}
		r.Axes[name] = axisRecord(ax)
	}
	for _, name := range m.names {
		lr := m.datasets[name].Record()
		lr.Desc = name
		for axname := range lr.Axes {
			if _, shared := m.Axes[axname]; shared {
				delete(lr.Axes, axname)
			}
		}
		if len(lr.Axes) == 0 {
			lr.Axes = nil
		}
		r.Datasets = append(r.Datasets, lr)
	}
	return r
}

// MLUTFromRecord converts a serialization record back to a table set,
// reconnecting shared axes by name.
func MLUTFromRecord(r *MLUTRecord) (*MLUT, error) {
	m := NewMLUT()
	m.SetAttrs(r.Attrs)
	for name, ar := range r.Axes {
		if err := m.AddAxis(name, axisFromRecord(ar)); err != nil {
			return nil, err
		}
	}
	for _, lr := range r.Datasets {
		l, err := FromRecord(lr)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", lr.Desc, err)
		}
		for d, nm := range l.Names {
			ax, shared := m.Axes[nm]
			if !shared || l.Axes[d] != nil {
				continue
			}
			if ax.Len() != l.DimSize(d) {
				return nil, fmt.Errorf("%w: axis %q has %d samples for dimension size %d of dataset %q", ErrShape, nm, ax.Len(), l.DimSize(d), lr.Desc)
			}
			l.Axes[d] = ax
		}
		m.names = append(m.names, l.Desc)
		m.datasets[l.Desc] = l
	}
	return m, nil
}

// WriteYAML writes the table in YAML form.
func (l *LUT) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(l.Record()); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML reads one table in YAML form.
func ReadYAML(r io.Reader) (*LUT, error) {
	var rec LUTRecord
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return FromRecord(&rec)
}

// SaveYAML writes the table to a YAML file.
func (l *LUT) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return l.WriteYAML(f)
}

// OpenYAML reads one table from a YAML file.
func OpenYAML(path string) (*LUT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadYAML(f)
}

// WriteYAML writes the table set in YAML form.
func (m *MLUT) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(m.Record()); err != nil {
		return err
	}
	return enc.Close()
}

// ReadMLUTYAML reads one table set in YAML form.
func ReadMLUTYAML(r io.Reader) (*MLUT, error) {
	var rec MLUTRecord
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return MLUTFromRecord(&rec)
}

// SaveYAML writes the table set to a YAML file.
func (m *MLUT) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.WriteYAML(f)
}

// OpenMLUTYAML reads one table set from a YAML file.
func OpenMLUTYAML(path string) (*MLUT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMLUTYAML(f)
}
