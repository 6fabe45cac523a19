// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"math"
)

// Sub returns a subsetted LUT using the same per-dimension index
// language as [LUT.Index], but always producing a new table that
// preserves axis metadata: ranges and fancy selections keep their
// dimension with the coordinate axis re-derived to match, while exact
// and interpolated points drop theirs. Desc and Attrs carry over
// unchanged. Index arrays must be 1D here, so every kept dimension
// still has a 1D coordinate axis.
//
// Sub(ix, All()) is equivalent to SubNamed with the first axis name
// (or its ordinal) mapped to ix.
func (l *LUT) Sub(ixs ...Indexer) (*LUT, error) {
	sels, err := l.classify(ixs)
	if err != nil {
		return nil, err
	}
	for d, sel := range sels {
		if sel.kind == selArray && len(sel.arrSizes) > 1 {
			return nil, fmt.Errorf("%w: %dD index array on dimension %q: subsetting requires 1D selections", ErrShape, len(sel.arrSizes), l.Names[d])
		}
	}

	// kept dimensions, in input order
	var keep []int
	var outSizes []int
	for d, sel := range sels {
		switch sel.kind {
		case selRange:
			keep = append(keep, d)
			outSizes = append(outSizes, sel.rng.Size(l.DimSize(d)))
		case selArray:
			keep = append(keep, d)
			outSizes = append(outSizes, len(sel.arr))
		}
	}

	nl := New(outSizes...)
	nl.Desc = l.Desc
	nl.Attrs = cloneAttrs(l.Attrs)
	for i, d := range keep {
		nl.Names[i] = l.Names[d]
		nl.Axes[i] = l.subAxis(d, sels[d])
	}

	osh := nl.Shape()
	pos := make([]float64, l.NumDims())
	for oi := range nl.Len() {
		oc := osh.IndexFrom1D(oi)
		ki := 0
		fill := math.NaN()
		filled := false
		for d, sel := range sels {
			switch sel.kind {
			case selScalar:
				pos[d] = sel.pos
			case selRange:
				pos[d] = float64(sel.rng.Start + oc[ki]*sel.rng.StepActual())
				ki++
			case selArray:
				pos[d] = sel.arr[oc[ki]]
				ki++
			}
			if math.IsNaN(pos[d]) && !filled {
				fill = sel.fill
				filled = true
			}
		}
		if filled {
			nl.Data[oi] = fill
			continue
		}
		nl.Data[oi] = l.blend(pos)
	}
	return nl, nil
}

// subAxis derives the coordinate axis of a kept dimension.
func (l *LUT) subAxis(d int, sel dimSel) *Axis {
	ax := l.Axes[d]
	if ax == nil {
		return nil
	}
	switch sel.kind {
	case selRange:
		return ax.Take(sel.rng.Positions(l.DimSize(d)))
	default: // selArray
		if sel.coords != nil {
			// value selections keep the requested coordinates
			return NewAxis(append([]float64{}, sel.coords...)...)
		}
		if !ax.IsNumeric() {
			labels := make([]string, len(sel.arr))
			for i, p := range sel.arr {
				labels[i] = ax.Labels[int(p)]
			}
			return NewLabelAxis(labels...)
		}
		vals := make([]float64, len(sel.arr))
		for i, p := range sel.arr {
			vals[i] = ax.Interp(p)
		}
		return NewAxis(vals...)
	}
}

// SubNamed is [LUT.Sub] keyed by axis name (or positional ordinal)
// instead of dimension order; unnamed dimensions default to All.
func (l *LUT) SubNamed(sel map[string]Indexer) (*LUT, error) {
	ixs := make([]Indexer, l.NumDims())
	for name, ix := range sel {
		d, err := l.Dim(name)
		if err != nil {
			return nil, err
		}
		if ixs[d] != nil {
			return nil, fmt.Errorf("%w: dimension %q selected twice", ErrShape, l.Names[d])
		}
		ixs[d] = ix
	}
	return l.Sub(ixs...)
}
