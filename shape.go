// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"slices"
	"strings"
)

// Shape manages a row-major n-dimensional shape with sizes per
// dimension and precomputed strides. Indexes are ordered from outer to
// inner left-to-right, so the inner-most is right-most.
// A zero-dimensional Shape represents a scalar and has Len 1.
type Shape struct {
	Sizes   []int
	Strides []int
}

// NewShape returns a new row-major shape with given sizes.
func NewShape(sizes ...int) *Shape {
	sh := &Shape{}
	sh.SetSizes(sizes...)
	return sh
}

// SetSizes sets the sizes and recomputes the strides.
func (sh *Shape) SetSizes(sizes ...int) {
	sh.Sizes = slices.Clone(sizes)
	sh.Strides = RowMajorStrides(sizes...)
}

// RowMajorStrides returns the row-major strides for given sizes.
func RowMajorStrides(sizes ...int) []int {
	n := len(sizes)
	strides := make([]int, n)
	st := 1
	for d := n - 1; d >= 0; d-- {
		strides[d] = st
		st *= sizes[d]
	}
	return strides
}

// Len returns the total number of elements (product of sizes).
// A zero-dimensional shape has Len 1.
func (sh *Shape) Len() int {
	n := 1
	for _, s := range sh.Sizes {
		n *= s
	}
	return n
}

// NumDims returns the total number of dimensions.
func (sh *Shape) NumDims() int { return len(sh.Sizes) }

// DimSize returns the size of given dimension.
func (sh *Shape) DimSize(dim int) int { return sh.Sizes[dim] }

// IndexTo1D returns the flat 1D index from given n-dimensional index.
func (sh *Shape) IndexTo1D(i ...int) int {
	off := 0
	for d, ix := range i {
		off += ix * sh.Strides[d]
	}
	return off
}

// IndexFrom1D returns the n-dimensional index from given flat 1D index.
func (sh *Shape) IndexFrom1D(idx int) []int {
	nd := len(sh.Sizes)
	ix := make([]int, nd)
	for d := range nd {
		st := sh.Strides[d]
		ix[d] = idx / st
		idx -= ix[d] * st
	}
	return ix
}

// IsEqual returns true if this shape has the same sizes as the other.
func (sh *Shape) IsEqual(other *Shape) bool {
	return slices.Equal(sh.Sizes, other.Sizes)
}

// Clone returns a copy of this shape.
func (sh *Shape) Clone() *Shape {
	return NewShape(sh.Sizes...)
}

// String satisfies the fmt.Stringer interface.
func (sh *Shape) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for d, s := range sh.Sizes {
		if d > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", s)
	}
	b.WriteByte(')')
	return b.String()
}

// broadcastSizes returns the broadcast combination of the given shape
// size lists, aligned from the innermost dimension out, with 1s
// provided beyond the number of dimensions of shorter shapes.
// Each dimension size must be either the same, or one of them equal
// to 1, corresponding to the NumPy broadcasting logic.
func broadcastSizes(shapes ...[]int) ([]int, error) {
	n := 0
	for _, sz := range shapes {
		n = max(n, len(sz))
	}
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	for _, sz := range shapes {
		off := n - len(sz)
		for d, s := range sz {
			od := off + d
			switch {
			case s == out[od] || s == 1:
			case out[od] == 1:
				out[od] = s
			default:
				return nil, fmt.Errorf("%w: cannot broadcast size %d into %d at dimension %d", ErrShape, s, out[od], od)
			}
		}
	}
	return out, nil
}

// wrapIndex1D returns the flat 1D index into a shape of given sizes for
// the trailing coordinates of an index in broadcast space: singleton
// dimensions wrap to 0, while the other operand presumably uses the
// full range along that dimension.
func wrapIndex1D(sizes []int, i []int) int {
	nd := len(sizes)
	off := len(i) - nd
	idx := 0
	st := 1
	for d := nd - 1; d >= 0; d-- {
		c := i[off+d]
		if sizes[d] == 1 {
			c = 0
		}
		idx += c * st
		st *= sizes[d]
	}
	return idx
}
