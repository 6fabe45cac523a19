// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import "slices"

// Indexer is one per-dimension entry of a [LUT] index expression, as
// accepted by [LUT.Index], [LUT.Sub] and [LUT.SubNamed]. The concrete
// variants are produced by the constructors in this file, plus [Idx]
// for coordinate-value lookup with a fill policy. Mixing variants in
// one call follows the mixed-mode lookup algorithm: exact positions
// remove their dimension, ranges retain it, array selections are
// broadcast together, and fractional positions interpolate.
type Indexer interface {
	indexer()
}

// At returns an exact integer position index. The dimension is removed
// from the result. Negative positions are not allowed.
func At(i int) Indexer { return atIndex(i) }

// Pos returns a fractional position index: the result is linearly
// interpolated between the bracketing samples. The dimension is
// removed from the result.
func Pos(p float64) Indexer { return posIndex(p) }

// Val returns a coordinate-value index resolved against the
// dimension's axis, equivalent to NewIdx(v) with the raising
// out-of-bounds policy. The dimension must have a coordinate axis.
func Val(v float64) Indexer { return valIndex(v) }

// IntArray returns a fancy integer-position selection. The optional
// sizes give the index array shape (default 1D); array-valued indexes
// on multiple dimensions broadcast together.
func IntArray(vals []int, sizes ...int) Indexer {
	ps := make([]float64, len(vals))
	for i, v := range vals {
		ps[i] = float64(v)
	}
	return arrayIndex{vals: ps, sizes: payloadSizes(len(ps), sizes)}
}

// PosArray returns a fancy fractional-position selection, interpolated
// elementwise. The optional sizes give the index array shape.
func PosArray(vals []float64, sizes ...int) Indexer {
	return arrayIndex{vals: slices.Clone(vals), sizes: payloadSizes(len(vals), sizes)}
}

// Mask returns a boolean selection: positions where the mask is true.
// The mask length must equal the dimension size.
func Mask(m []bool) Indexer { return maskIndex(slices.Clone(m)) }

// Where returns a predicate selection over the dimension's coordinate
// axis: positions whose coordinate value satisfies pred.
func Where(pred func(float64) bool) Indexer { return whereIndex{pred} }

// All returns a full-range index retaining the whole dimension.
// Trailing dimensions without an Indexer default to All.
func All() Indexer { return Range{} }

// Rng returns a contiguous sub-range index [start, end), retaining
// the dimension. An end of 0 means the dimension size.
func Rng(start, end int) Indexer { return Range{Start: start, End: end} }

// Range represents a strided sub-range of one dimension, using
// standard for-loop logic with a Start and exclusive End value and an
// increment: for i := Start; i < End; i += Step.
// The zero value means all values in the dimension.
type Range struct {
	// Starting position.
	Start int

	// End position, exclusive. 0 default = size of the dimension.
	End int

	// Step increment, 1 or greater. 0 default = 1.
	Step int
}

// EndActual is the actual end value given the size of the dimension.
func (rn Range) EndActual(size int) int {
	if rn.End == 0 {
		return size
	}
	return min(rn.End, size)
}

// StepActual is the actual increment value.
func (rn Range) StepActual() int { return max(1, rn.Step) }

// Size is the number of positions in the range given the size of the
// dimension.
func (rn Range) Size(size int) int {
	e := rn.EndActual(size)
	if e <= rn.Start {
		return 0
	}
	return 1 + (e-1-rn.Start)/rn.StepActual()
}

// Positions returns the selected integer positions given the size of
// the dimension.
func (rn Range) Positions(size int) []int {
	n := rn.Size(size)
	ps := make([]int, n)
	st := rn.StepActual()
	for i := range ps {
		ps[i] = rn.Start + i*st
	}
	return ps
}

type atIndex int
type posIndex float64
type valIndex float64
type maskIndex []bool
type whereIndex struct{ pred func(float64) bool }
type arrayIndex struct {
	vals  []float64
	sizes []int
}

func (atIndex) indexer()    {}
func (posIndex) indexer()   {}
func (valIndex) indexer()   {}
func (Range) indexer()      {}
func (maskIndex) indexer()  {}
func (whereIndex) indexer() {}
func (arrayIndex) indexer() {}
func (*Idx) indexer()       {}
