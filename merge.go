// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"math"
	"slices"
)

// Merge combines table sets produced under different conditions into
// one set, promoting each named varying attribute to a new leading
// coordinate axis. Every input set must carry a numeric value for
// each varying attribute and hold the same dataset names; each
// dataset gains one leading dimension per varying attribute, sized by
// the sorted distinct attribute values across the inputs, and cells
// of the cross product not covered by any input are filled with NaN.
//
// The promoted attributes are removed from the result attrs; other
// attributes are kept where they are present with equal values in
// every input. A varying attribute name colliding with an existing
// axis name fails with [ErrNameCollision].
func Merge(ms []*MLUT, varying []string) (*MLUT, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: no table sets to merge", ErrShape)
	}
	if len(varying) == 0 {
		return nil, fmt.Errorf("%w: no varying attributes named", ErrShape)
	}

	// one sorted distinct-value axis per varying attribute
	vaxes := make([]*Axis, len(varying))
	coords := make([][]int, len(ms)) // grid cell per input set
	for i := range coords {
		coords[i] = make([]int, len(varying))
	}
	for vi, attr := range varying {
		var vals []float64
		for _, m := range ms {
			av, ok := m.Attrs[attr]
			if !ok {
				return nil, fmt.Errorf("%w: varying attribute %q", ErrNotFound, attr)
			}
			f, ok := toFloat(av)
			if !ok {
				return nil, fmt.Errorf("%w: varying attribute %q has non-numeric value %v", ErrShape, attr, av)
			}
			vals = append(vals, f)
		}
		labels := slices.Clone(vals)
		slices.Sort(labels)
		labels = slices.Compact(labels)
		vaxes[vi] = NewAxis(labels...)
		for i, f := range vals {
			coords[i][vi], _ = slices.BinarySearch(labels, f)
		}
	}

	names := ms[0].Datasets()
	sorted := slices.Sorted(slices.Values(names))
	for _, m := range ms[1:] {
		if !slices.Equal(sorted, slices.Sorted(slices.Values(m.names))) {
			return nil, fmt.Errorf("%w: dataset names %v != %v", ErrShape, sorted, slices.Sorted(slices.Values(m.names)))
		}
	}

	out := NewMLUT()
	out.Attrs = mergedAttrs(ms, varying)
	for name, ax := range ms[0].Axes {
		if slices.Contains(varying, name) {
			return nil, fmt.Errorf("%w: varying attribute %q is already an axis name", ErrNameCollision, name)
		}
		out.Axes[name] = ax
	}
	for vi, attr := range varying {
		if err := out.AddAxis(attr, vaxes[vi]); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		base := ms[0].datasets[name]
		if slices.ContainsFunc(base.Names, func(n string) bool { return slices.Contains(varying, n) }) {
			return nil, fmt.Errorf("%w: dataset %q already has a dimension named after a varying attribute", ErrNameCollision, name)
		}

		outSizes := make([]int, 0, len(varying)+base.NumDims())
		for _, ax := range vaxes {
			outSizes = append(outSizes, ax.Len())
		}
		outSizes = append(outSizes, base.Sizes()...)
		nl := New(outSizes...)
		for i := range nl.Data {
			nl.Data[i] = math.NaN()
		}
		copy(nl.Names, varying)
		copy(nl.Names[len(varying):], base.Names)
		for vi, attr := range varying {
			nl.Axes[vi] = out.Axes[attr]
		}
		copy(nl.Axes[len(varying):], base.Axes)
		nl.Desc = base.Desc

		attrs := base.Attrs
		slab := base.Len()
		for i, m := range ms {
			l := m.datasets[name]
			if !l.shape.IsEqual(&base.shape) || !slices.Equal(l.Names, base.Names) {
				return nil, fmt.Errorf("%w: dataset %q has shape %s %v vs %s %v", ErrShape, name, l.shape.String(), l.Names, base.shape.String(), base.Names)
			}
			for d := range base.Axes {
				if !l.Axes[d].Equal(base.Axes[d]) {
					return nil, fmt.Errorf("%w: dataset %q axis %q has different coordinates across the inputs", ErrShape, name, base.Names[d])
				}
			}
			off := 0
			for vi, c := range coords[i] {
				off += c * nl.shape.Strides[vi]
			}
			copy(nl.Data[off:off+slab], l.Data)
			if i > 0 {
				attrs = IntersectEqualAttrs(attrs, l.Attrs)
			}
		}
		nl.Attrs = cloneAttrs(attrs)
		for _, attr := range varying {
			delete(nl.Attrs, attr)
		}

		out.names = append(out.names, name)
		out.datasets[name] = nl
	}
	return out, nil
}

// mergedAttrs keeps the set-level attributes equal in every input,
// minus the promoted varying ones.
func mergedAttrs(ms []*MLUT, varying []string) map[string]any {
	attrs := ms[0].Attrs
	for _, m := range ms[1:] {
		attrs = IntersectEqualAttrs(attrs, m.Attrs)
	}
	attrs = cloneAttrs(attrs)
	for _, attr := range varying {
		delete(attrs, attr)
	}
	return attrs
}
