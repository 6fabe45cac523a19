// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"slices"
)

// Apply returns a new LUT with fn applied elementwise, keeping axes,
// names and attrs. An optional desc replaces the description.
func (l *LUT) Apply(fn func(float64) float64, desc ...string) *LUT {
	nl := l.derived()
	for i, v := range l.Data {
		nl.Data[i] = fn(v)
	}
	if len(desc) > 0 {
		nl.Desc = desc[0]
	}
	return nl
}

// AddScalar returns l + v elementwise.
func (l *LUT) AddScalar(v float64) *LUT {
	return l.Apply(func(x float64) float64 { return x + v })
}

// SubScalar returns l - v elementwise.
func (l *LUT) SubScalar(v float64) *LUT {
	return l.Apply(func(x float64) float64 { return x - v })
}

// ScalarSub returns v - l elementwise (the reflected subtraction).
func (l *LUT) ScalarSub(v float64) *LUT {
	return l.Apply(func(x float64) float64 { return v - x })
}

// MulScalar returns l * v elementwise.
func (l *LUT) MulScalar(v float64) *LUT {
	return l.Apply(func(x float64) float64 { return x * v })
}

// DivScalar returns l / v elementwise.
func (l *LUT) DivScalar(v float64) *LUT {
	return l.Apply(func(x float64) float64 { return x / v })
}

// ScalarDiv returns v / l elementwise (the reflected division).
func (l *LUT) ScalarDiv(v float64) *LUT {
	return l.Apply(func(x float64) float64 { return v / x })
}

// derived returns a new LUT with the same shape, axes (shared by
// pointer), names, desc and attrs as l, and a fresh value array.
func (l *LUT) derived() *LUT {
	nl := New(l.shape.Sizes...)
	copy(nl.Axes, l.Axes)
	nl.Names = slices.Clone(l.Names)
	nl.Desc = l.Desc
	nl.Attrs = cloneAttrs(l.Attrs)
	return nl
}

// Add returns l + other with name-based axis alignment.
func (l *LUT) Add(other *LUT) (*LUT, error) {
	return Combine(l, other, func(a, b float64) float64 { return a + b })
}

// Subtract returns l - other with name-based axis alignment.
// (Sub is the subsetting operation.)
func (l *LUT) Subtract(other *LUT) (*LUT, error) {
	return Combine(l, other, func(a, b float64) float64 { return a - b })
}

// Mul returns l * other with name-based axis alignment.
func (l *LUT) Mul(other *LUT) (*LUT, error) {
	return Combine(l, other, func(a, b float64) float64 { return a * b })
}

// Div returns l / other with name-based axis alignment.
func (l *LUT) Div(other *LUT) (*LUT, error) {
	return Combine(l, other, func(a, b float64) float64 { return a / b })
}

// AttrPolicy combines the attribute mappings of the two operands of a
// binary operation into the result's attributes.
type AttrPolicy func(a, b map[string]any) map[string]any

// IntersectEqualAttrs is the default [AttrPolicy]: it keeps only the
// attributes present with equal values in both operands, so arithmetic
// results do not inherit provenance-specific metadata.
func IntersectEqualAttrs(a, b map[string]any) map[string]any {
	out := map[string]any{}
	for k, av := range a {
		if bv, ok := b[k]; ok && attrValueEqual(av, bv) {
			out[k] = av
		}
	}
	return out
}

// Combine applies fn elementwise to two tables after aligning their
// dimensions by axis name:
//
//  1. The result names are the order-preserving union of both name
//     lists: left names keep their positions, and a name unique to
//     the right operand is inserted before the first following name
//     it shares with the result (appended when there is none).
//  2. Each operand is conceptually expanded with length-1 placeholder
//     dimensions for the names it lacks, then standard elementwise
//     broadcasting applies.
//  3. A name present in both operands must have the same length
//     ([ErrShape] otherwise), and equal coordinate axes when both
//     carry them; order differences are resolved by name matching.
//
// The result desc is the left operand's when non-empty, else the
// right's; attrs follow [IntersectEqualAttrs] (see [CombineWith]).
func Combine(a, b *LUT, fn func(av, bv float64) float64) (*LUT, error) {
	return CombineWith(a, b, fn, IntersectEqualAttrs)
}

// CombineWith is [Combine] with an explicit attribute policy.
func CombineWith(a, b *LUT, fn func(av, bv float64) float64, attrs AttrPolicy) (*LUT, error) {
	names := unionNames(a.Names, b.Names)
	nd := len(names)
	adims := dimsOf(names, a)
	bdims := dimsOf(names, b)

	sizes := make([]int, nd)
	axes := make([]*Axis, nd)
	for u, nm := range names {
		ad, bd := adims[u], bdims[u]
		switch {
		case ad >= 0 && bd >= 0:
			if a.DimSize(ad) != b.DimSize(bd) {
				return nil, fmt.Errorf("%w: axis %q has size %d vs %d", ErrShape, nm, a.DimSize(ad), b.DimSize(bd))
			}
			if a.Axes[ad] != nil && b.Axes[bd] != nil && !a.Axes[ad].Equal(b.Axes[bd]) {
				return nil, fmt.Errorf("%w: axis %q has different coordinates in the two operands", ErrShape, nm)
			}
			sizes[u] = a.DimSize(ad)
			axes[u] = a.Axes[ad]
			if axes[u] == nil {
				axes[u] = b.Axes[bd]
			}
		case ad >= 0:
			sizes[u] = a.DimSize(ad)
			axes[u] = a.Axes[ad]
		default:
			sizes[u] = b.DimSize(bd)
			axes[u] = b.Axes[bd]
		}
	}

	nl := New(sizes...)
	nl.Axes = axes
	nl.Names = names
	nl.Desc = a.Desc
	if nl.Desc == "" {
		nl.Desc = b.Desc
	}
	nl.Attrs = attrs(a.Attrs, b.Attrs)

	osh := nl.Shape()
	for oi := range nl.Len() {
		oc := osh.IndexFrom1D(oi)
		nl.Data[oi] = fn(a.Data[flatFor(a, adims, oc)], b.Data[flatFor(b, bdims, oc)])
	}
	return nl, nil
}

// unionNames merges two axis-name lists preserving the relative order
// of both: left names keep their positions; a right-only name is
// inserted before the first name after it (in right order) that is
// already in the result, or appended when no such name exists.
func unionNames(left, right []string) []string {
	res := slices.Clone(left)
	for ri, nm := range right {
		if slices.Contains(res, nm) {
			continue
		}
		at := len(res)
		for _, later := range right[ri+1:] {
			if p := slices.Index(res, later); p >= 0 {
				at = p
				break
			}
		}
		res = slices.Insert(res, at, nm)
	}
	return res
}

// dimsOf maps each union dimension to the operand's dimension of the
// same name, or -1 where the operand lacks it.
func dimsOf(names []string, l *LUT) []int {
	dims := make([]int, len(names))
	for u, nm := range names {
		dims[u] = slices.Index(l.Names, nm)
	}
	return dims
}

// flatFor returns the operand's flat index for union coordinates,
// skipping union dimensions the operand lacks (its length-1
// placeholders wrap to 0).
func flatFor(l *LUT, dims []int, oc []int) int {
	idx := 0
	for u, d := range dims {
		if d >= 0 {
			idx += oc[u] * l.shape.Strides[d]
		}
	}
	return idx
}
