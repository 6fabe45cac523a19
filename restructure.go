// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"slices"
)

// SwapAxes returns a new LUT with the two named or positional axes
// exchanged, together with their coordinate axes and names. The
// operation is its own inverse: swapping twice with the same
// arguments restores the original table.
func (l *LUT) SwapAxes(a, b any) (*LUT, error) {
	da, err := l.Dim(a)
	if err != nil {
		return nil, err
	}
	db, err := l.Dim(b)
	if err != nil {
		return nil, err
	}
	perm := make([]int, l.NumDims())
	for d := range perm {
		perm[d] = d
	}
	perm[da], perm[db] = db, da
	return l.transpose(perm), nil
}

// transpose returns a new LUT whose dimension d is the receiver's
// dimension perm[d].
func (l *LUT) transpose(perm []int) *LUT {
	sizes := make([]int, len(perm))
	for d, p := range perm {
		sizes[d] = l.DimSize(p)
	}
	nl := New(sizes...)
	for d, p := range perm {
		nl.Names[d] = l.Names[p]
		nl.Axes[d] = l.Axes[p]
	}
	nl.Desc = l.Desc
	nl.Attrs = cloneAttrs(l.Attrs)

	osh := nl.Shape()
	ic := make([]int, len(perm))
	for oi := range nl.Len() {
		oc := osh.IndexFrom1D(oi)
		for d, p := range perm {
			ic[p] = oc[d]
		}
		nl.Data[oi] = l.Data[l.shape.IndexTo1D(ic...)]
	}
	return nl
}

// RenameAxis renames an axis in place. It fails with
// [ErrNameCollision] if the new name is already used by another
// dimension, and [ErrMissingAxis] if the old name is unknown.
func (l *LUT) RenameAxis(old, new string) error {
	d, err := l.Dim(old)
	if err != nil {
		return err
	}
	if p := slices.Index(l.Names, new); p >= 0 && p != d {
		return fmt.Errorf("%w: axis name %q", ErrNameCollision, new)
	}
	l.Names[d] = new
	return nil
}

// DropAxis removes the named dimensions entirely by taking position 0
// along each. This is deliberately lossy: dropping an axis of length
// greater than one keeps only the first position's data. Attrs and
// desc are preserved.
func (l *LUT) DropAxis(names ...string) (*LUT, error) {
	ixs := make([]Indexer, l.NumDims())
	for i := range ixs {
		ixs[i] = All()
	}
	for _, nm := range names {
		d, err := l.Dim(nm)
		if err != nil {
			return nil, err
		}
		ixs[d] = At(0)
	}
	return l.Sub(ixs...)
}
