// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLUT(t *testing.T) {
	l := New(3, 4)
	assert.Equal(t, 12, l.Len())
	assert.Equal(t, 2, l.NumDims())
	assert.Equal(t, []int{3, 4}, l.Sizes())
	assert.Equal(t, []string{"0", "1"}, l.Names)

	l.Set(7, 1, 2)
	assert.Equal(t, 7.0, l.Value(1, 2))

	s := NewScalar(3)
	assert.Equal(t, 0, s.NumDims())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 3.0, s.Data[0])
}

func TestSetNames(t *testing.T) {
	l := New(3, 4)
	assert.NoError(t, l.SetNames("z", "P0"))
	assert.Equal(t, []string{"z", "P0"}, l.Names)

	assert.ErrorIs(t, l.SetNames("z"), ErrShape)
	assert.ErrorIs(t, l.SetNames("z", "z"), ErrNameCollision)

	// empty entries keep the positional fallback
	assert.NoError(t, l.SetNames("", "P0"))
	assert.Equal(t, []string{"0", "P0"}, l.Names)
}

func TestSetAxes(t *testing.T) {
	l := New(3, 4)
	assert.NoError(t, l.SetAxes(NewAxis(1, 2, 3), nil))
	assert.ErrorIs(t, l.SetAxes(NewAxis(1, 2), nil), ErrShape)
	assert.ErrorIs(t, l.SetAxes(NewAxis(1, 2, 3)), ErrShape)
}

func TestDim(t *testing.T) {
	l := pressureLUT()

	d, err := l.Dim("z")
	assert.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = l.Dim("P0")
	assert.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = l.Dim(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, d)

	// ordinal strings double as positional specifiers
	d, err = l.Dim("0")
	assert.NoError(t, err)
	assert.Equal(t, 0, d)

	_, err = l.Dim("nope")
	assert.ErrorIs(t, err, ErrMissingAxis)
	_, err = l.Dim(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAxisLookupOnLUT(t *testing.T) {
	l := pressureLUT()

	ax, err := l.Axis("z")
	assert.NoError(t, err)
	assert.Equal(t, 80, ax.Len())

	ax2, err := l.Axis(0)
	assert.NoError(t, err)
	assert.Same(t, ax, ax2)
}

func TestAxisLUT(t *testing.T) {
	l := pressureLUT()

	zl, err := l.AxisLUT("z")
	assert.NoError(t, err)
	assert.Equal(t, 1, zl.NumDims())
	assert.Equal(t, l.Axes[0].Values, zl.Data)
	assert.Equal(t, "z", zl.Names[0])
	assert.Same(t, l.Axes[0], zl.Axes[0])

	bare := New(4)
	_, err = bare.AxisLUT(0)
	assert.ErrorIs(t, err, ErrMissingAxis)

	lab := New(2)
	lab.SetAxes(NewLabelAxis("x", "y"))
	_, err = lab.AxisLUT(0)
	assert.ErrorIs(t, err, ErrMonotonic)
}

func TestCloneEqual(t *testing.T) {
	l := pressureLUT()
	cp := l.Clone()
	assert.True(t, l.Equal(cp))

	cp.Data[0] = -1
	assert.False(t, l.Equal(cp))
	ok, diffs := l.EqualReport(cp)
	assert.False(t, ok)
	assert.NotEmpty(t, diffs)

	// clone does not alias axes
	cp = l.Clone()
	cp.Axes[0].Values[0] = 99
	assert.Equal(t, 0.0, l.Axes[0].Values[0])
}

func TestAttrsEqual(t *testing.T) {
	a := map[string]any{"x": 12}
	b := map[string]any{"x": 12.0}
	assert.True(t, attrsEqual(a, b)) // numeric across int and float
	assert.False(t, attrsEqual(a, map[string]any{"x": 13}))
	assert.False(t, attrsEqual(a, map[string]any{}))
	assert.True(t, attrsEqual(
		map[string]any{"s": "HPa"},
		map[string]any{"s": "HPa"}))
}
