// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	l := NewFromValues([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	l.SetNames("z", "P0")
	l.SetAxes(NewAxis(0, 1), NewAxis(10, 20, 30))
	l.SetDesc("d")
	l.SetAttr("unit", "HPa")

	s, err := l.Reduce(Sum, "P0")
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, s.Sizes())
	assert.Equal(t, []string{"z"}, s.Names)
	assert.Equal(t, []float64{6, 15}, s.Data)
	assert.Equal(t, "d", s.Desc)
	assert.Equal(t, map[string]any{"unit": "HPa"}, s.Attrs)

	s, err = l.Reduce(Sum, 0)
	assert.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, s.Data)
	assert.True(t, s.Axes[0].Equal(NewAxis(10, 20, 30)))

	s, err = l.Reduce(Mean, "z")
	assert.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3.5, 4.5}, s.Data)

	s, err = l.Reduce(Min, "P0")
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, s.Data)
	s, err = l.Reduce(Max, "P0")
	assert.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, s.Data)

	_, err = l.Reduce(Sum, "nope")
	assert.ErrorIs(t, err, ErrMissingAxis)
}

func TestReduceToScalar(t *testing.T) {
	l := NewFromValues([]float64{1, 2, 3}, 3)
	s, err := l.Reduce(Sum, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, s.NumDims())
	assert.Equal(t, 6.0, s.Data[0])
}

func TestReduceGroups(t *testing.T) {
	l := pressureLUT()
	p0 := l.Axes[1].Values

	mask := make([]bool, len(p0))
	for i, p := range p0 {
		mask[i] = p < 1000
	}
	s, err := l.ReduceGroups(Sum, "P0", GroupBool(mask))
	assert.NoError(t, err)
	assert.Equal(t, []int{80, 2}, s.Sizes())
	assert.Equal(t, []string{"z", "P0"}, s.Names)
	assert.True(t, s.Axes[1].Equal(NewAxis(0, 1)))

	// group 1 sums P0 < 1000, group 0 the rest
	var lo, hi float64
	for j, p := range p0 {
		if p < 1000 {
			lo += l.Value(0, j)
		} else {
			hi += l.Value(0, j)
		}
	}
	assert.InDelta(t, hi, s.Value(0, 0), 1e-9)
	assert.InDelta(t, lo, s.Value(0, 1), 1e-9)

	_, err = l.ReduceGroups(Sum, "P0", []float64{1, 2})
	assert.ErrorIs(t, err, ErrShape)
}
