// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ReduceFunc reduces a vector of values along one axis to one value.
type ReduceFunc func(xs []float64) float64

// Standard reductions for [LUT.Reduce], built on gonum floats.
func Sum(xs []float64) float64  { return floats.Sum(xs) }
func Mean(xs []float64) float64 { return floats.Sum(xs) / float64(len(xs)) }
func Min(xs []float64) float64  { return floats.Min(xs) }
func Max(xs []float64) float64  { return floats.Max(xs) }

// Reduce applies fn along the named or positional axis and removes
// that dimension; the corresponding coordinate axis and name are
// dropped from the result. Desc and attrs carry over.
func (l *LUT) Reduce(fn ReduceFunc, axis any) (*LUT, error) {
	d, err := l.Dim(axis)
	if err != nil {
		return nil, err
	}
	outSizes := slices.Delete(l.Sizes(), d, d+1)
	nl := New(outSizes...)
	nl.Names = slices.Delete(slices.Clone(l.Names), d, d+1)
	nl.Axes = slices.Delete(slices.Clone(l.Axes), d, d+1)
	nl.Desc = l.Desc
	nl.Attrs = cloneAttrs(l.Attrs)

	n := l.DimSize(d)
	st := l.shape.Strides[d]
	osh := nl.Shape()
	vec := make([]float64, n)
	for oi := range nl.Len() {
		oc := osh.IndexFrom1D(oi)
		base := l.flatWithout(d, oc)
		for i := range n {
			vec[i] = l.Data[base+i*st]
		}
		nl.Data[oi] = fn(vec)
	}
	return nl, nil
}

// ReduceGroups applies fn along the named or positional axis once per
// distinct group label, replacing the dimension with one position per
// label. The grouping array must have one label per axis position;
// distinct labels are ordered ascending, and become the coordinate
// values of the new axis (which keeps the reduced axis name).
func (l *LUT) ReduceGroups(fn ReduceFunc, axis any, grouping []float64) (*LUT, error) {
	d, err := l.Dim(axis)
	if err != nil {
		return nil, err
	}
	n := l.DimSize(d)
	if len(grouping) != n {
		return nil, fmt.Errorf("%w: %d group labels for axis %q of size %d", ErrShape, len(grouping), l.Names[d], n)
	}
	labels := slices.Clone(grouping)
	slices.Sort(labels)
	labels = slices.Compact(labels)

	outSizes := l.Sizes()
	outSizes[d] = len(labels)
	nl := New(outSizes...)
	nl.Names = slices.Clone(l.Names)
	nl.Axes = slices.Clone(l.Axes)
	nl.Axes[d] = NewAxis(labels...)
	nl.Desc = l.Desc
	nl.Attrs = cloneAttrs(l.Attrs)

	// member positions per group, in axis order
	members := make([][]int, len(labels))
	for i, g := range grouping {
		gi, _ := slices.BinarySearch(labels, g)
		members[gi] = append(members[gi], i)
	}

	st := l.shape.Strides[d]
	osh := nl.Shape()
	for oi := range nl.Len() {
		oc := osh.IndexFrom1D(oi)
		gi := oc[d]
		oc[d] = 0
		base := l.flatWithout(-1, oc) // oc already has axis coord zeroed
		vec := make([]float64, len(members[gi]))
		for i, p := range members[gi] {
			vec[i] = l.Data[base+p*st]
		}
		nl.Data[oi] = fn(vec)
	}
	return nl, nil
}

// GroupBool converts a boolean partition (for example axis < 1000)
// into group labels 0 and 1 for [LUT.ReduceGroups].
func GroupBool(mask []bool) []float64 {
	g := make([]float64, len(mask))
	for i, on := range mask {
		if on {
			g[i] = 1
		}
	}
	return g
}

// flatWithout returns the flat index into l for coordinates oc that
// omit dimension skip (pass -1 if oc already covers all dimensions,
// with the reduced coordinate zeroed).
func (l *LUT) flatWithout(skip int, oc []int) int {
	idx := 0
	oi := 0
	for d := range l.NumDims() {
		if d == skip {
			continue
		}
		idx += oc[oi] * l.shape.Strides[d]
		oi++
	}
	return idx
}
