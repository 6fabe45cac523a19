// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexExact(t *testing.T) {
	l := pressureLUT()

	a, err := l.Index(At(0), At(0))
	assert.NoError(t, err)
	assert.Equal(t, 0, a.NumDims())
	assert.Equal(t, l.Value(0, 0), a.Float())

	a, err = l.Index(At(3), At(2))
	assert.NoError(t, err)
	assert.Equal(t, l.Value(3, 2), a.Float())

	_, err = l.Index(At(80), At(0))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = l.Index(At(0), At(0), At(0))
	assert.ErrorIs(t, err, ErrShape)
}

func TestIndexInterpolate(t *testing.T) {
	l := NewFromValues([]float64{1, 2, 3, 4}, 2, 2)

	a, err := l.Index(Pos(0.5), At(0))
	assert.NoError(t, err)
	assert.Equal(t, 2.0, a.Float())

	a, err = l.Index(Pos(0.5), Pos(0.5))
	assert.NoError(t, err)
	assert.Equal(t, 2.5, a.Float())

	a, err = l.Index(At(1), Pos(0.25))
	assert.NoError(t, err)
	assert.Equal(t, 3.25, a.Float())
}

func TestIndexRange(t *testing.T) {
	l := pressureLUT()

	a, err := l.Index(All(), At(0))
	assert.NoError(t, err)
	assert.Equal(t, []int{80}, a.Sizes())
	assert.Equal(t, l.Value(5, 0), a.Value(5))

	a, err = l.Index(Rng(2, 6), All())
	assert.NoError(t, err)
	assert.Equal(t, []int{4, 6}, a.Sizes())
	assert.Equal(t, l.Value(3, 1), a.Value(1, 1))

	a, err = l.Index(Range{Step: 2}, At(0))
	assert.NoError(t, err)
	assert.Equal(t, []int{40}, a.Sizes())
	assert.Equal(t, l.Value(6, 0), a.Value(3))
}

func TestIndexValues(t *testing.T) {
	l := pressureLUT()

	// exact coordinate hit
	v := l.Float(Val(0), Val(980))
	assert.InDelta(t, 980, v, 1e-9)

	// interpolated coordinate lookup between P0 samples
	v = l.Float(Val(0), Val(985))
	assert.InDelta(t, 985, v, 1e-9)

	_, err := l.Index(Val(-10), Val(980))
	assert.ErrorIs(t, err, ErrOutOfRange)

	bare := New(4)
	_, err = bare.Index(Val(1))
	assert.ErrorIs(t, err, ErrMissingAxis)
}

func TestIndexIdxFill(t *testing.T) {
	l := pressureLUT()

	a, err := l.Index(NewIdx(1e6).WithFill(-999), At(0))
	assert.NoError(t, err)
	assert.Equal(t, -999.0, a.Float())

	a, err = l.Index(NewIdxValues([]float64{0, 1e6}).WithFill(math.NaN()), At(0))
	assert.NoError(t, err)
	assert.Equal(t, l.Value(0, 0), a.Value(0))
	assert.True(t, math.IsNaN(a.Value(1)))

	// extrema clamps to the top of the axis
	a, err = l.Index(NewIdx(1e6).WithExtrema(false), At(0))
	assert.NoError(t, err)
	assert.Equal(t, l.Value(79, 0), a.Float())
}

func TestIndexMaskWhere(t *testing.T) {
	l := pressureLUT()

	mask := make([]bool, 80)
	mask[3] = true
	mask[7] = true
	a, err := l.Index(Mask(mask), At(0))
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, a.Sizes())
	assert.Equal(t, l.Value(3, 0), a.Value(0))
	assert.Equal(t, l.Value(7, 0), a.Value(1))

	a, err = l.Index(Where(func(z float64) bool { return z < 10 }), At(0))
	assert.NoError(t, err)
	assert.Equal(t, []int{7}, a.Sizes())
}

// mirrors the reference shape behavior of mixed array indexing
func TestIndexDimensions(t *testing.T) {
	l2 := New(2, 3, 4, 5)
	i1 := IntArray(make([]int, 10))
	eye := make([]int, 100)
	for i := range 10 {
		eye[i*10+i] = 1
	}
	i2 := IntArray(eye, 10, 10)

	a, err := l2.Index(i1, At(0), All(), All())
	assert.NoError(t, err)
	assert.Equal(t, []int{10, 4, 5}, a.Sizes())

	a, err = l2.Index(i2, At(0), All(), All())
	assert.NoError(t, err)
	assert.Equal(t, []int{10, 10, 4, 5}, a.Sizes())

	a, err = l2.Index(All(), i2, At(0), All())
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 10, 10, 5}, a.Sizes())

	a, err = l2.Index(All(), i2, At(0), i2)
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 10, 10}, a.Sizes())
}

// array indexes on non-adjacent dimensions move the broadcast block to
// the front of the result
func TestIndexSplitBlock(t *testing.T) {
	l2 := New(2, 3, 4, 5)
	ix := IntArray([]int{0, 1, 0})

	a, err := l2.Index(ix, All(), All(), ix)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 3, 4}, a.Sizes())
}

func TestIndexArrayValues(t *testing.T) {
	l := NewFromValues([]float64{0, 1, 2, 3, 4, 5}, 2, 3)

	a, err := l.Index(IntArray([]int{0, 1}), IntArray([]int{0, 2}))
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, a.Sizes())
	assert.Equal(t, l.Value(0, 0), a.Value(0))
	assert.Equal(t, l.Value(1, 2), a.Value(1))

	// fractional position arrays interpolate elementwise
	a, err = l.Index(At(0), PosArray([]float64{0.5, 1.5}))
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5}, a.Values)
}

func TestFloat(t *testing.T) {
	l := pressureLUT()
	assert.InDelta(t, l.Value(0, 0), l.Float(At(0), At(0)), 1e-12)

	// non-scalar result logs and yields NaN
	assert.True(t, math.IsNaN(l.Float(All(), At(0))))
	// errors log and yield NaN
	assert.True(t, math.IsNaN(l.Float(At(100), At(0))))
}
