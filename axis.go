// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"math"
	"slices"
)

// Axis is the ordered 1D coordinate array labeling one dimension of a
// [LUT]. It holds either numeric samples (Values) or categorical
// string labels (Labels), never both. Numeric axes that are strictly
// monotonic (ascending or descending) support interpolated [Idx]
// lookup; categorical and non-monotonic axes support exact, boolean
// and array selection only.
//
// An Axis is shared by pointer: registering the same Axis in an
// [MLUT] and in its member LUTs aliases one coordinate array, so
// in-place edits of Values are visible to every referencing table.
type Axis struct {
	// Values are the numeric coordinate samples. nil for label axes.
	Values []float64

	// Labels are the categorical values. nil for numeric axes.
	Labels []string
}

// NewAxis returns a new numeric coordinate axis with given samples.
func NewAxis(values ...float64) *Axis {
	return &Axis{Values: values}
}

// NewLabelAxis returns a new categorical axis with given labels.
func NewLabelAxis(labels ...string) *Axis {
	return &Axis{Labels: labels}
}

// Linspace returns a new numeric axis with n evenly spaced samples
// from start to stop inclusive.
func Linspace(start, stop float64, n int) *Axis {
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = start
	} else {
		step := (stop - start) / float64(n-1)
		for i := range vals {
			vals[i] = start + float64(i)*step
		}
	}
	return NewAxis(vals...)
}

// Len returns the number of coordinate samples.
func (ax *Axis) Len() int {
	if ax.Labels != nil {
		return len(ax.Labels)
	}
	return len(ax.Values)
}

// IsNumeric returns true for numeric axes, false for label axes.
func (ax *Axis) IsNumeric() bool { return ax.Labels == nil }

// Clone returns a copy of this axis with its own backing arrays.
func (ax *Axis) Clone() *Axis {
	return &Axis{Values: slices.Clone(ax.Values), Labels: slices.Clone(ax.Labels)}
}

// Equal returns true if both axes have the same kind, length and
// coordinate values. NaN samples compare equal to NaN.
func (ax *Axis) Equal(other *Axis) bool {
	if ax == nil || other == nil {
		return ax == other
	}
	if ax.IsNumeric() != other.IsNumeric() {
		return false
	}
	if !ax.IsNumeric() {
		return slices.Equal(ax.Labels, other.Labels)
	}
	return floatsEqual(ax.Values, other.Values)
}

// Monotonic returns the strict ordering direction of a numeric axis:
// +1 for strictly ascending, -1 for strictly descending, and 0 for
// non-monotonic or label axes. A single-sample axis is ascending.
func (ax *Axis) Monotonic() int {
	if !ax.IsNumeric() || len(ax.Values) == 0 {
		return 0
	}
	if len(ax.Values) == 1 {
		return 1
	}
	dir := 0
	for i := 1; i < len(ax.Values); i++ {
		d := ax.Values[i] - ax.Values[i-1]
		switch {
		case d > 0:
			if dir < 0 {
				return 0
			}
			dir = 1
		case d < 0:
			if dir > 0 {
				return 0
			}
			dir = -1
		default:
			return 0
		}
	}
	return dir
}

// Lookup resolves coordinate value v to a fractional position p such
// that linear interpolation between the bracketing samples at
// floor(p) and ceil(p) reproduces v. The axis must be strictly
// monotonic ([ErrMonotonic] otherwise). Values outside the axis range
// return [ErrOutOfRange]; out-of-range handling under the non-raising
// fill policies is applied by [Idx], not here.
func (ax *Axis) Lookup(v float64) (float64, error) {
	dir := ax.Monotonic()
	if dir == 0 {
		return 0, fmt.Errorf("%w: cannot interpolate value %g", ErrMonotonic, v)
	}
	vals := ax.Values
	n := len(vals)
	at := func(i int) float64 { // ascending view
		if dir < 0 {
			return -vals[i]
		}
		return vals[i]
	}
	x := v
	if dir < 0 {
		x = -v
	}
	if x < at(0) || x > at(n-1) {
		return 0, fmt.Errorf("%w: value %g outside axis range [%g, %g]", ErrOutOfRange, v, min(vals[0], vals[n-1]), max(vals[0], vals[n-1]))
	}
	// binary search for the bracketing interval
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if at(mid) <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	if n == 1 || x == at(lo) {
		return float64(lo), nil
	}
	frac := (x - at(lo)) / (at(hi) - at(lo))
	return float64(lo) + frac, nil
}

// Interp returns the linear interpolation of the axis samples at
// fractional position p. NaN positions yield NaN.
func (ax *Axis) Interp(p float64) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}
	i := int(math.Floor(p))
	f := p - float64(i)
	if f == 0 || i+1 >= len(ax.Values) {
		return ax.Values[i]
	}
	return (1-f)*ax.Values[i] + f*ax.Values[i+1]
}

// Take returns a new axis with the samples at given integer positions,
// for fancy selection.
func (ax *Axis) Take(positions []int) *Axis {
	nx := &Axis{}
	if ax.IsNumeric() {
		nx.Values = make([]float64, len(positions))
		for i, p := range positions {
			nx.Values[i] = ax.Values[p]
		}
	} else {
		nx.Labels = make([]string, len(positions))
		for i, p := range positions {
			nx.Labels[i] = ax.Labels[p]
		}
	}
	return nx
}

// String satisfies the fmt.Stringer interface with a compact summary.
func (ax *Axis) String() string {
	if ax == nil {
		return "<no axis>"
	}
	if !ax.IsNumeric() {
		return fmt.Sprintf("labels[%d]", len(ax.Labels))
	}
	n := len(ax.Values)
	if n == 0 {
		return "values[0]"
	}
	return fmt.Sprintf("values[%d] in [%g, %g]", n, ax.Values[0], ax.Values[n-1])
}

// floatsEqual compares two float64 slices for exact equality, with
// NaN comparing equal to NaN so gap sentinels and round-trips match.
func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, av := range a {
		bv := b[i]
		if av != bv && !(math.IsNaN(av) && math.IsNaN(bv)) {
			return false
		}
	}
	return true
}
