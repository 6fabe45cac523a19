// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lutshdf5 stores table sets in HDF5 files using the pure-Go
// go-hdf5 library, so files interoperate with h5py and friends.
//
// Layout: every table is one flat float64 dataset under /datasets,
// carrying its shape, axis names and desc as attributes; coordinate
// axes live under /axes keyed by name (categorical labels as a
// string attribute); set-level attributes hang off the /_attrs
// placeholder dataset, since the format library only writes
// attributes on datasets.
package lutshdf5

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/lutsgo/luts"
)

// reserved attribute keys; user attrs must not start with "_".
const (
	attrShape  = "_shape"
	attrNames  = "_names"
	attrDesc   = "_desc"
	attrLabels = "_labels"
	attrShared = "_shared"
)

// Save writes the table set to a new HDF5 file at path.
func Save(path string, m *luts.MLUT) error {
	f, err := hdf5.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rootAttrs, err := attrOptions(m.Attrs)
	if err != nil {
		return err
	}
	shared := slices.Sorted(maps.Keys(m.Axes))
	if len(shared) > 0 {
		rootAttrs = append(rootAttrs, hdf5.WithAttribute(attrShared, shared))
	}
	if _, err := f.Root().CreateDataset("_attrs", []int8{0}, rootAttrs...); err != nil {
		return fmt.Errorf("writing set attrs: %w", err)
	}

	axg, err := f.Root().CreateGroup("axes")
	if err != nil {
		return err
	}
	written := map[string]bool{}
	for _, name := range shared {
		if err := saveAxis(axg, name, m.Axes[name]); err != nil {
			return err
		}
		written[name] = true
	}

	dsg, err := f.Root().CreateGroup("datasets")
	if err != nil {
		return err
	}
	for _, name := range m.Datasets() {
		l, _ := m.Dataset(name)
		opts := []hdf5.DatasetOption{
			hdf5.WithAttribute(attrDesc, l.Desc),
		}
		if l.NumDims() > 0 {
			sizes := make([]int64, l.NumDims())
			for d, sz := range l.Sizes() {
				sizes[d] = int64(sz)
			}
			opts = append(opts,
				hdf5.WithAttribute(attrShape, sizes),
				hdf5.WithAttribute(attrNames, l.Names))
		}
		userAttrs, err := attrOptions(l.Attrs)
		if err != nil {
			return fmt.Errorf("dataset %q: %w", name, err)
		}
		opts = append(opts, userAttrs...)
		if _, err := dsg.CreateDataset(name, l.Data, opts...); err != nil {
			return fmt.Errorf("writing dataset %q: %w", name, err)
		}
		// per-table axes outside the shared registry go in the same
		// group; names are unique across a well-formed set
		for d, ax := range l.Axes {
			if ax == nil || written[l.Names[d]] {
				continue
			}
			if err := saveAxis(axg, l.Names[d], ax); err != nil {
				return err
			}
			written[l.Names[d]] = true
		}
	}
	return nil
}

func saveAxis(g *hdf5.Group, name string, ax *luts.Axis) error {
	vals := ax.Values
	var opts []hdf5.DatasetOption
	if !ax.IsNumeric() {
		// categorical: positions as data, labels as attribute
		vals = make([]float64, ax.Len())
		for i := range vals {
			vals[i] = float64(i)
		}
		opts = append(opts, hdf5.WithAttribute(attrLabels, ax.Labels))
	}
	if _, err := g.CreateDataset(name, vals, opts...); err != nil {
		return fmt.Errorf("writing axis %q: %w", name, err)
	}
	return nil
}

// attrOptions converts an attribute mapping to dataset options,
// sorted by key for deterministic files.
func attrOptions(attrs map[string]any) ([]hdf5.DatasetOption, error) {
	var opts []hdf5.DatasetOption
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if strings.HasPrefix(k, "_") {
			return nil, fmt.Errorf("attribute name %q: leading underscore is reserved", k)
		}
		opts = append(opts, hdf5.WithAttribute(k, attrs[k]))
	}
	return opts, nil
}

// Datasets returns the dataset names stored in an HDF5 file, without
// reading any data.
func Datasets(path string) ([]string, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dsg, err := f.OpenGroup("/datasets")
	if err != nil {
		return nil, err
	}
	return dsg.Members()
}

// Open reads a table set from an HDF5 file. With dataset names given,
// only those tables are read (plus the shared axes); without, the
// whole set is read.
func Open(path string, datasets ...string) (*luts.MLUT, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := luts.NewMLUT()
	var shared []string
	if meta, err := f.OpenDataset("/_attrs"); err == nil {
		for _, k := range meta.Attrs() {
			if k == attrShared {
				shared, err = meta.Attr(k).ReadString()
				if err != nil {
					return nil, fmt.Errorf("reading shared axis names: %w", err)
				}
				continue
			}
			if strings.HasPrefix(k, "_") {
				continue
			}
			v, err := meta.Attr(k).Value()
			if err != nil {
				return nil, fmt.Errorf("reading set attr %q: %w", k, err)
			}
			m.SetAttr(k, v)
		}
	}

	axes := map[string]*luts.Axis{}
	if axg, err := f.OpenGroup("/axes"); err == nil {
		names, err := axg.Members()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			ax, err := openAxis(axg, name)
			if err != nil {
				return nil, err
			}
			axes[name] = ax
		}
	}
	for _, name := range shared {
		ax, ok := axes[name]
		if !ok {
			return nil, fmt.Errorf("%w: shared axis %q has no samples", luts.ErrNotFound, name)
		}
		if err := m.AddAxis(name, ax); err != nil {
			return nil, err
		}
	}

	dsg, err := f.OpenGroup("/datasets")
	if err != nil {
		return nil, err
	}
	names, err := dsg.Members()
	if err != nil {
		return nil, err
	}
	if datasets != nil {
		for _, want := range datasets {
			if !slices.Contains(names, want) {
				return nil, fmt.Errorf("%w: dataset %q", luts.ErrNotFound, want)
			}
		}
		names = datasets
	}
	for _, name := range names {
		l, err := openTable(dsg, name, axes)
		if err != nil {
			return nil, err
		}
		if err := m.AddLUT(l); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func openAxis(g *hdf5.Group, name string) (*luts.Axis, error) {
	ds, err := g.OpenDataset(name)
	if err != nil {
		return nil, err
	}
	if ds.HasAttr(attrLabels) {
		labels, err := ds.Attr(attrLabels).ReadString()
		if err != nil {
			return nil, fmt.Errorf("axis %q labels: %w", name, err)
		}
		return luts.NewLabelAxis(labels...), nil
	}
	vals, err := ds.ReadFloat64()
	if err != nil {
		return nil, fmt.Errorf("axis %q: %w", name, err)
	}
	return luts.NewAxis(vals...), nil
}

func openTable(g *hdf5.Group, name string, axes map[string]*luts.Axis) (*luts.LUT, error) {
	ds, err := g.OpenDataset(name)
	if err != nil {
		return nil, err
	}
	data, err := ds.ReadFloat64()
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}

	var sizes []int
	var names []string
	if ds.HasAttr(attrShape) {
		raw, err := ds.Attr(attrShape).ReadInt64()
		if err != nil {
			return nil, fmt.Errorf("dataset %q shape: %w", name, err)
		}
		sizes = make([]int, len(raw))
		for d, sz := range raw {
			sizes[d] = int(sz)
		}
		names, err = ds.Attr(attrNames).ReadString()
		if err != nil {
			return nil, fmt.Errorf("dataset %q axis names: %w", name, err)
		}
	}

	want := 1
	for _, sz := range sizes {
		want *= sz
	}
	if len(data) != want {
		return nil, fmt.Errorf("%w: dataset %q has %d values for shape %v", luts.ErrShape, name, len(data), sizes)
	}
	l := luts.NewFromValues(data, sizes...)
	if names != nil {
		if err := l.SetNames(names...); err != nil {
			return nil, err
		}
	}
	for d, nm := range l.Names {
		ax, ok := axes[nm]
		if !ok {
			continue
		}
		if ax.Len() != l.DimSize(d) {
			return nil, fmt.Errorf("%w: axis %q has %d samples for dimension size %d of dataset %q", luts.ErrShape, nm, ax.Len(), l.DimSize(d), name)
		}
		l.Axes[d] = ax
	}
	l.Desc = name
	for _, k := range ds.Attrs() {
		if k == attrDesc {
			desc, err := ds.Attr(k).ReadScalarString()
			if err != nil {
				return nil, fmt.Errorf("dataset %q desc: %w", name, err)
			}
			if desc != "" {
				l.Desc = desc
			}
			continue
		}
		if strings.HasPrefix(k, "_") {
			continue
		}
		v, err := ds.Attr(k).Value()
		if err != nil {
			return nil, fmt.Errorf("dataset %q attr %q: %w", name, k, err)
		}
		l.SetAttr(k, v)
	}
	return l, nil
}
