// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Array is a raw n-dimensional float64 result: the values extracted by
// a [LUT] lookup once every dimension has been consumed, with no axis
// metadata attached. A zero-dimensional Array is a scalar; use
// [Array.Float].
type Array struct {
	Values []float64
	shape  Shape
}

// NewArray returns a new array wrapping the given values (not copied)
// with the given shape sizes. No sizes means a scalar (the values
// slice must then hold exactly one element).
func NewArray(values []float64, sizes ...int) *Array {
	a := &Array{Values: values}
	a.shape.SetSizes(sizes...)
	return a
}

// NewArrayZeros returns a new zero-filled array of the given shape.
func NewArrayZeros(sizes ...int) *Array {
	sh := NewShape(sizes...)
	return &Array{Values: make([]float64, sh.Len()), shape: *sh}
}

// Shape returns a pointer to the shape that parametrizes the array.
func (a *Array) Shape() *Shape { return &a.shape }

// Sizes returns a copy of the dimension sizes.
func (a *Array) Sizes() []int { return slices.Clone(a.shape.Sizes) }

// NumDims returns the total number of dimensions.
func (a *Array) NumDims() int { return a.shape.NumDims() }

// Len returns the number of elements.
func (a *Array) Len() int { return a.shape.Len() }

// Float returns the scalar value of a zero-dimensional (or
// single-element) array.
func (a *Array) Float() float64 { return a.Values[0] }

// Value returns the value at the given n-dimensional index.
func (a *Array) Value(i ...int) float64 {
	return a.Values[a.shape.IndexTo1D(i...)]
}

// Set sets the value at the given n-dimensional index.
func (a *Array) Set(val float64, i ...int) {
	a.Values[a.shape.IndexTo1D(i...)] = val
}

// Equal returns true if both arrays have the same shape and values,
// with NaN comparing equal to NaN.
func (a *Array) Equal(other *Array) bool {
	return a.shape.IsEqual(&other.shape) && floatsEqual(a.Values, other.Values)
}

// String satisfies the fmt.Stringer interface.
func (a *Array) String() string {
	return fmt.Sprintf("Array %s", a.shape.String())
}

// Dims is the gonum mat.Matrix interface method returning the
// dimensionality of a 2D array. It panics if NumDims != 2.
func (a *Array) Dims() (r, c int) {
	if a.NumDims() != 2 {
		panic("luts.Array: gonum Matrix interface requires a 2D array")
	}
	return a.shape.DimSize(0), a.shape.DimSize(1)
}

// At is the gonum mat.Matrix interface method returning the value at
// row i, column j of a 2D array.
func (a *Array) At(i, j int) float64 { return a.Value(i, j) }

// T is the gonum mat.Matrix interface method returning the transpose.
func (a *Array) T() mat.Matrix { return mat.Transpose{Matrix: a} }

// ToDense returns a gonum dense matrix copy of a 2D array.
func (a *Array) ToDense() *mat.Dense {
	r, c := a.Dims()
	dm := mat.NewDense(r, c, nil)
	dm.Copy(a)
	return dm
}

// FromDense returns a new 2D array copied from a gonum matrix.
func FromDense(dm mat.Matrix) *Array {
	r, c := dm.Dims()
	a := NewArrayZeros(r, c)
	for i := range r {
		for j := range c {
			a.Set(dm.At(i, j), i, j)
		}
	}
	return a
}
