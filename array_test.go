// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestArray(t *testing.T) {
	a := NewArray([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, 6, a.Len())
	assert.Equal(t, []int{2, 3}, a.Sizes())
	assert.Equal(t, 6.0, a.Value(1, 2))

	a.Set(9, 0, 1)
	assert.Equal(t, 9.0, a.Value(0, 1))

	s := NewArray([]float64{7})
	assert.Equal(t, 0, s.NumDims())
	assert.Equal(t, 7.0, s.Float())

	assert.True(t, a.Equal(NewArray([]float64{1, 9, 3, 4, 5, 6}, 2, 3)))
	assert.False(t, a.Equal(NewArrayZeros(2, 3)))
	assert.False(t, a.Equal(NewArrayZeros(3, 2)))
}

func TestArrayMatrix(t *testing.T) {
	a := NewArray([]float64{1, 2, 3, 4, 5, 6}, 2, 3)

	r, c := a.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 5.0, a.At(1, 1))

	dm := a.ToDense()
	assert.Equal(t, 6.0, dm.At(1, 2))

	var tr mat.Matrix = a.T()
	assert.Equal(t, 6.0, tr.At(2, 1))

	back := FromDense(dm)
	assert.True(t, a.Equal(back))

	assert.Panics(t, func() { NewArrayZeros(2).Dims() })
}
