// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeGrid(t *testing.T) {
	var ms []*MLUT
	for p1 := range 5 {
		for p2 := range 3 {
			m := sampleMLUT()
			m.SetAttr("p1", p1)
			m.SetAttr("p2", p2)
			ms = append(ms, m)
		}
	}
	m, err := Merge(ms, []string{"p1", "p2"})
	assert.NoError(t, err)

	assert.Equal(t, 3, m.NumDatasets())
	d1, err := m.Dataset("data1")
	assert.NoError(t, err)
	assert.Equal(t, []int{5, 3, 5, 6}, d1.Sizes())
	assert.Equal(t, []string{"p1", "p2", "a", "b"}, d1.Names)

	// the full grid is covered, so there are no gaps
	for _, name := range m.Datasets() {
		l, _ := m.Dataset(name)
		for _, v := range l.Data {
			assert.False(t, math.IsNaN(v))
		}
	}

	// equal attrs survive, promoted ones become axes
	assert.Contains(t, m.Attrs, "x")
	assert.NotContains(t, m.Attrs, "p1")
	p1ax, err := m.Axis("p1")
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, p1ax.Values)

	// merged values land at their grid cell
	src, _ := ms[7].Dataset("data1") // p1=2, p2=1
	assert.Equal(t, src.Value(4, 5), d1.Value(2, 1, 4, 5))
}

func TestMergeTwoInputs(t *testing.T) {
	m1 := sampleMLUT()
	m1.SetAttr("p", 1)
	m2 := sampleMLUT()
	m2.SetAttr("p", 3)

	m, err := Merge([]*MLUT{m1, m2}, []string{"p"})
	assert.NoError(t, err)
	pax, err := m.Axis("p")
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, pax.Values)

	d1, _ := m.Dataset("data1")
	assert.Equal(t, []int{2, 5, 6}, d1.Sizes())
	assert.False(t, math.IsNaN(d1.Value(0, 0, 0)))
	assert.False(t, math.IsNaN(d1.Value(1, 0, 0)))
}

func TestMergeGaps(t *testing.T) {
	mk := func(p1, p2 int) *MLUT {
		m := sampleMLUT()
		m.SetAttr("p1", p1)
		m.SetAttr("p2", p2)
		return m
	}
	// only the (0,0) and (1,1) cells of the 2x2 grid are covered
	m, err := Merge([]*MLUT{mk(0, 0), mk(1, 1)}, []string{"p1", "p2"})
	assert.NoError(t, err)

	for _, name := range m.Datasets() {
		l, _ := m.Dataset(name)
		assert.Equal(t, []int{2, 2}, l.Sizes()[:2])
		src, _ := mk(0, 0).Dataset(name)
		for i, v := range src.Data {
			oc := src.Shape().IndexFrom1D(i)
			assert.Equal(t, v, l.Value(append([]int{0, 0}, oc...)...))
			assert.Equal(t, v, l.Value(append([]int{1, 1}, oc...)...))
			assert.True(t, math.IsNaN(l.Value(append([]int{0, 1}, oc...)...)))
			assert.True(t, math.IsNaN(l.Value(append([]int{1, 0}, oc...)...)))
		}
	}
}

func TestMergeErrors(t *testing.T) {
	_, err := Merge(nil, []string{"p"})
	assert.ErrorIs(t, err, ErrShape)

	m1 := sampleMLUT()
	_, err = Merge([]*MLUT{m1}, nil)
	assert.ErrorIs(t, err, ErrShape)

	// missing varying attribute
	_, err = Merge([]*MLUT{m1}, []string{"p"})
	assert.ErrorIs(t, err, ErrNotFound)

	// varying attribute colliding with an axis name
	m1.SetAttr("a", 1)
	_, err = Merge([]*MLUT{m1}, []string{"a"})
	assert.ErrorIs(t, err, ErrNameCollision)

	// mismatched dataset names
	m2 := sampleMLUT()
	m2.SetAttr("p", 1)
	m3 := sampleMLUT()
	m3.SetAttr("p", 2)
	m3.RmLUT("data3")
	_, err = Merge([]*MLUT{m2, m3}, []string{"p"})
	assert.ErrorIs(t, err, ErrShape)
}
