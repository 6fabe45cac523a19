// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarOps(t *testing.T) {
	m := sampleMLUT()
	d1, err := m.Dataset("data1")
	assert.NoError(t, err)
	// data1[1,1] == 7
	assert.Equal(t, 7.0, d1.Value(1, 1))

	assert.Equal(t, 9.0, d1.AddScalar(2).Value(1, 1))
	assert.Equal(t, 5.0, d1.SubScalar(2).Value(1, 1))
	assert.Equal(t, -5.0, d1.ScalarSub(2).Value(1, 1))
	assert.Equal(t, 14.0, d1.MulScalar(2).Value(1, 1))
	assert.Equal(t, 3.5, d1.DivScalar(2).Value(1, 1))
	assert.Equal(t, 0.25, d1.AddScalar(1).ScalarDiv(2).Value(1, 1))

	// derived tables keep axes, names and attrs
	nl := d1.AddScalar(2)
	assert.Equal(t, d1.Names, nl.Names)
	assert.Same(t, d1.Axes[0], nl.Axes[0])
	assert.Equal(t, d1.Attrs, nl.Attrs)
}

func TestApply(t *testing.T) {
	l := NewFromValues([]float64{1, 4, 9, 16}, 4)
	s := l.Apply(math.Sqrt, "roots")
	assert.Equal(t, []float64{1, 2, 3, 4}, s.Data)
	assert.Equal(t, "roots", s.Desc)
	assert.Equal(t, []float64{1, 4, 9, 16}, l.Data)
}

func TestCombineAligned(t *testing.T) {
	m0 := sampleMLUT()
	m1 := sampleMLUT()
	d0, _ := m0.Dataset("data1")
	d1, _ := m1.Dataset("data1")
	for i := range d1.Data {
		d1.Data[i] = 2
	}

	sum, err := d0.Add(d1)
	assert.NoError(t, err)
	assert.Equal(t, 9.0, sum.Value(1, 1))
	diff, err := d0.Subtract(d1)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, diff.Value(1, 1))
	rdiff, err := d1.Subtract(d0)
	assert.NoError(t, err)
	assert.Equal(t, -5.0, rdiff.Value(1, 1))
	prod, err := d0.Mul(d1)
	assert.NoError(t, err)
	assert.Equal(t, 14.0, prod.Value(1, 1))
	quot, err := d0.Div(d1)
	assert.NoError(t, err)
	assert.Equal(t, 3.5, quot.Value(1, 1))
}

func TestCombineAttrs(t *testing.T) {
	a := pressureLUT()
	b := pressureLUT()
	a.SetAttr("run", 1)
	b.SetAttr("run", 2)

	sum, err := a.Add(b)
	assert.NoError(t, err)
	// only attributes equal on both sides survive
	assert.Equal(t, map[string]any{"unit": "HPa"}, sum.Attrs)
	assert.Equal(t, "Pdata", sum.Desc)

	b.Desc = ""
	a.Desc = ""
	b.SetDesc("right")
	sum, err = a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, "right", sum.Desc)
}

func TestCombineBroadcast(t *testing.T) {
	// [zz, P0] + [z, P0] -> [z, zz, P0]
	l := pressureLUT()
	l.Names[0] = "zz"
	p := pressureLUT()

	sum, err := p.Add(l)
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "zz", "P0"}, sum.Names)
	assert.Equal(t, []int{80, 80, 6}, sum.Sizes())
	assert.Equal(t, p.Value(2, 4)+l.Value(3, 4), sum.Value(2, 3, 4))
}

func TestCombineDisjoint(t *testing.T) {
	l := pressureLUT()
	z, err := l.Sub(All(), At(0))
	assert.NoError(t, err)
	p, err := l.Sub(At(0), All())
	assert.NoError(t, err)

	sum, err := z.Add(p)
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "P0"}, sum.Names)
	assert.Equal(t, z.Value(4)+p.Value(5), sum.Value(4, 5))
}

func TestCombineTransposed(t *testing.T) {
	// shared names in different orders align by name
	a := New(2, 3)
	a.SetNames("a", "b")
	b := New(3, 2)
	b.SetNames("b", "a")
	a.Set(5, 1, 2)
	b.Set(7, 2, 1)

	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sum.Names)
	assert.Equal(t, 12.0, sum.Value(1, 2))
}

func TestCombineErrors(t *testing.T) {
	a := New(5)
	b := New(10)
	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrShape)

	// equal sizes but different coordinates
	c := New(5)
	c.SetNames("x")
	c.SetAxes(NewAxis(1, 2, 3, 4, 5))
	d := New(5)
	d.SetNames("x")
	d.SetAxes(NewAxis(2, 3, 4, 5, 6))
	_, err = c.Add(d)
	assert.ErrorIs(t, err, ErrShape)
}
