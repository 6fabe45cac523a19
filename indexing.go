// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"log"
	"math"
)

// selKind tags one classified per-dimension selection.
type selKind int

const (
	selRange  selKind = iota // strided sub-range, dimension retained
	selScalar                // exact or fractional point, dimension removed
	selArray                 // fancy selection, broadcast with other arrays
)

// dimSel is the classified form of one per-dimension [Indexer], the
// normalization step that runs before the broadcast algorithm.
type dimSel struct {
	kind     selKind
	rng      Range
	pos      float64   // selScalar: position, fractional allowed, NaN = fill marker
	arr      []float64 // selArray: positions, NaN = fill marker
	arrSizes []int     // selArray: index array shape
	fill     float64   // value substituted for NaN markers
	coords   []float64 // selArray: requested coordinate values, for Sub axes
}

// classify normalizes one index expression per dimension into tagged
// selections, resolving coordinate values through the dimension axes.
// Fewer entries than dimensions implies trailing full ranges.
func (l *LUT) classify(ixs []Indexer) ([]dimSel, error) {
	nd := l.NumDims()
	if len(ixs) > nd {
		return nil, fmt.Errorf("%w: %d index entries for %d dimensions", ErrShape, len(ixs), nd)
	}
	sels := make([]dimSel, nd)
	for d := range nd {
		var ix Indexer = Range{}
		if d < len(ixs) && ixs[d] != nil {
			ix = ixs[d]
		}
		sel, err := l.classifyDim(d, ix)
		if err != nil {
			return nil, err
		}
		sels[d] = sel
	}
	return sels, nil
}

func (l *LUT) classifyDim(d int, ix Indexer) (dimSel, error) {
	sz := l.DimSize(d)
	ax := l.Axes[d]
	nan := math.NaN()
	switch v := ix.(type) {
	case atIndex:
		if int(v) < 0 || int(v) >= sz {
			return dimSel{}, fmt.Errorf("%w: position %d on dimension %q of size %d", ErrOutOfRange, int(v), l.Names[d], sz)
		}
		return dimSel{kind: selScalar, pos: float64(v), fill: nan}, nil

	case posIndex:
		if err := checkPos(float64(v), sz, l.Names[d]); err != nil {
			return dimSel{}, err
		}
		return dimSel{kind: selScalar, pos: float64(v), fill: nan}, nil

	case valIndex:
		if ax == nil {
			return dimSel{}, fmt.Errorf("%w: value index on dimension %q without coordinates", ErrMissingAxis, l.Names[d])
		}
		p, err := ax.Lookup(float64(v))
		if err != nil {
			return dimSel{}, err
		}
		return dimSel{kind: selScalar, pos: p, fill: nan}, nil

	case Range:
		if v.Start < 0 || v.Size(sz) == 0 {
			return dimSel{}, fmt.Errorf("%w: empty range %+v on dimension %q of size %d", ErrShape, v, l.Names[d], sz)
		}
		return dimSel{kind: selRange, rng: v, fill: nan}, nil

	case maskIndex:
		if len(v) != sz {
			return dimSel{}, fmt.Errorf("%w: mask length %d on dimension %q of size %d", ErrShape, len(v), l.Names[d], sz)
		}
		var arr []float64
		for i, on := range v {
			if on {
				arr = append(arr, float64(i))
			}
		}
		return dimSel{kind: selArray, arr: arr, arrSizes: []int{len(arr)}, fill: nan}, nil

	case whereIndex:
		if ax == nil {
			return dimSel{}, fmt.Errorf("%w: predicate index on dimension %q without coordinates", ErrMissingAxis, l.Names[d])
		}
		pos, err := NewIdxWhere(v.pred).Index(ax)
		if err != nil {
			return dimSel{}, err
		}
		return dimSel{kind: selArray, arr: pos.Values, arrSizes: pos.Sizes(), fill: nan}, nil

	case arrayIndex:
		for _, p := range v.vals {
			if err := checkPos(p, sz, l.Names[d]); err != nil {
				return dimSel{}, err
			}
		}
		return dimSel{kind: selArray, arr: v.vals, arrSizes: v.sizes, fill: nan}, nil

	case *Idx:
		pos, err := v.Index(ax)
		if err != nil {
			return dimSel{}, err
		}
		if v.kind == idxPosition {
			for _, p := range pos.Values {
				if err := checkPos(p, sz, l.Names[d]); err != nil {
					return dimSel{}, err
				}
			}
		}
		if v.IsScalar() {
			return dimSel{kind: selScalar, pos: pos.Values[0], fill: v.fill}, nil
		}
		sel := dimSel{kind: selArray, arr: pos.Values, arrSizes: pos.Sizes(), fill: v.fill}
		if v.kind == idxValue {
			sel.coords = v.vals
		}
		return sel, nil

	default:
		return dimSel{}, fmt.Errorf("%w: unsupported index type %T", ErrShape, ix)
	}
}

// checkPos validates a fractional position against a dimension size.
// Negative wrap-around is not allowed.
func checkPos(p float64, sz int, name string) error {
	if math.IsNaN(p) || p < 0 || p > float64(sz-1) {
		return fmt.Errorf("%w: position %g on dimension %q of size %d", ErrOutOfRange, p, name, sz)
	}
	return nil
}

// Index performs the mixed-mode multi-dimensional lookup, one index
// expression per dimension (trailing dimensions default to [All]),
// and returns the raw extracted values; axis metadata is discarded
// (use [LUT.Sub] to keep it).
//
// Exact and interpolated points consume their dimension; ranges keep
// theirs; array-valued indexes on several dimensions broadcast
// together following advanced-indexing rules: their shapes combine
// into one result block that keeps the position of a contiguous run
// of array indexes and otherwise moves to the front of the result
// shape. Dimensions resolved to fractional positions contribute by
// multilinear interpolation across all such dimensions simultaneously:
// the weighted average over the 2^k bracketing corner samples.
func (l *LUT) Index(ixs ...Indexer) (*Array, error) {
	sels, err := l.classify(ixs)
	if err != nil {
		return nil, err
	}
	return l.eval(sels)
}

// Float is a convenience for lookups that consume every dimension: it
// returns the scalar result, logging any error and returning NaN.
func (l *LUT) Float(ixs ...Indexer) float64 {
	a, err := l.Index(ixs...)
	if err != nil {
		log.Println("luts.LUT.Float:", err)
		return math.NaN()
	}
	if a.Len() != 1 {
		log.Printf("luts.LUT.Float: result %s is not a scalar", a)
		return math.NaN()
	}
	return a.Values[0]
}

func (l *LUT) eval(sels []dimSel) (*Array, error) {
	nd := l.NumDims()

	// advanced block: array selections broadcast together; scalar
	// points join the block for placement but contribute no shape.
	var arrShapes [][]int
	var advDims []int
	for d, sel := range sels {
		if sel.kind != selRange {
			advDims = append(advDims, d)
		}
		if sel.kind == selArray {
			arrShapes = append(arrShapes, sel.arrSizes)
		}
	}
	hasBlock := len(arrShapes) > 0
	var bsizes []int
	if hasBlock {
		var err error
		bsizes, err = broadcastSizes(arrShapes...)
		if err != nil {
			return nil, err
		}
	}

	// result layout: range dimensions in order, with the block
	// inserted at the position of a contiguous advanced run, or at
	// the front otherwise.
	blockAt := 0
	if hasBlock {
		contiguous := advDims[len(advDims)-1]-advDims[0] == len(advDims)-1
		if contiguous {
			for d := range advDims[0] {
				if sels[d].kind == selRange {
					blockAt++
				}
			}
		}
	}

	var rangeDims []int // input dim per range output dim
	for d, sel := range sels {
		if sel.kind == selRange {
			rangeDims = append(rangeDims, d)
		}
	}
	var outSizes []int
	rpos := make([]int, len(rangeDims)) // output coord slot per range dim
	blockStart := 0
	for i := 0; i <= len(rangeDims); i++ {
		if hasBlock && i == blockAt {
			blockStart = len(outSizes)
			outSizes = append(outSizes, bsizes...)
		}
		if i < len(rangeDims) {
			rpos[i] = len(outSizes)
			outSizes = append(outSizes, sels[rangeDims[i]].rng.Size(l.DimSize(rangeDims[i])))
		}
	}

	out := NewArrayZeros(outSizes...)
	osh := out.Shape()
	n := out.Len()
	pos := make([]float64, nd)
	bcoords := make([]int, len(bsizes))
	for oi := range n {
		oc := osh.IndexFrom1D(oi)
		copy(bcoords, oc[blockStart:blockStart+len(bsizes)])
		ri := 0
		fill := math.NaN()
		filled := false
		for d, sel := range sels {
			switch sel.kind {
			case selRange:
				c := oc[rpos[ri]]
				pos[d] = float64(sel.rng.Start + c*sel.rng.StepActual())
				ri++
			case selScalar:
				pos[d] = sel.pos
			case selArray:
				pos[d] = sel.arr[wrapIndex1D(sel.arrSizes, bcoords)]
			}
			if math.IsNaN(pos[d]) && !filled {
				fill = sel.fill
				filled = true
			}
		}
		if filled {
			out.Values[oi] = fill
			continue
		}
		out.Values[oi] = l.blend(pos)
	}
	return out, nil
}

// blend returns the multilinear interpolation of the value array at
// the given per-dimension fractional positions: the weighted average
// over the 2^k corner samples bracketing the k fractional dimensions.
func (l *LUT) blend(pos []float64) float64 {
	base := 0
	var fracDims []int
	var fracs []float64
	for d, p := range pos {
		i := int(math.Floor(p))
		f := p - float64(i)
		base += i * l.shape.Strides[d]
		if f > 0 {
			fracDims = append(fracDims, d)
			fracs = append(fracs, f)
		}
	}
	if len(fracDims) == 0 {
		return l.Data[base]
	}
	total := 0.0
	for corner := range 1 << len(fracDims) {
		w := 1.0
		off := base
		for b, d := range fracDims {
			if corner>>b&1 == 1 {
				w *= fracs[b]
				off += l.shape.Strides[d]
			} else {
				w *= 1 - fracs[b]
			}
		}
		total += w * l.Data[off]
	}
	return total
}
