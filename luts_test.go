// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"math"
	"math/rand"
)

// pressureLUT returns a 2D pressure profile table: P0 scaled by an
// exponential decay over altitude z, dimensions (z, P0).
func pressureLUT() *LUT {
	z := Linspace(0, 120, 80)
	p0 := Linspace(980, 1030, 6)
	l := New(80, 6)
	for i, zv := range z.Values {
		for j, pv := range p0.Values {
			l.Set(pv*math.Exp(-zv/8), i, j)
		}
	}
	l.SetNames("z", "P0")
	l.SetAxes(z, p0)
	l.SetDesc("Pdata")
	l.SetAttr("unit", "HPa")
	return l
}

// sampleMLUT returns a set with three shared axes and three datasets:
// one with coordinates and attrs, one 3D, one without axis names.
func sampleMLUT() *MLUT {
	rng := rand.New(rand.NewSource(0))
	m := NewMLUT()
	m.AddAxis("a", Linspace(100, 150, 5))
	m.AddAxis("b", Linspace(5, 8, 6))
	m.AddAxis("c", Linspace(0, 1, 7))

	d1 := make([]float64, 5*6)
	for i := range d1 {
		d1[i] = float64(i)
	}
	m.AddDataset("data1", d1, []int{5, 6}, []string{"a", "b"}, map[string]any{"a1": 12})

	d2 := make([]float64, 5*6*7)
	for i := range d2 {
		d2[i] = rng.NormFloat64()
	}
	m.AddDataset("data2", d2, []int{5, 6, 7}, []string{"a", "b", "c"}, nil)

	d3 := make([]float64, 10*12)
	for i := range d3 {
		d3[i] = rng.NormFloat64()
	}
	m.AddDataset("data3", d3, []int{10, 12}, nil, nil)

	m.SetAttr("x", 12)
	m.SetAttrs(map[string]any{"y": 15, "z": 8})
	return m
}
