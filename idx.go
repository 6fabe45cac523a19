// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"log"
	"math"
	"slices"
)

// FillPolicy selects the out-of-bounds behavior of an [Idx] value
// lookup on a coordinate axis.
type FillPolicy int32

const (
	// FillRaise fails with [ErrOutOfRange] on any out-of-range value.
	// This is the default policy.
	FillRaise FillPolicy = iota

	// FillValue substitutes the configured fill value (NaN unless set
	// otherwise) for out-of-range values instead of interpolating.
	FillValue

	// FillExtrema silently clamps out-of-range values to the nearest
	// valid axis endpoint.
	FillExtrema

	// FillExtremaWarn clamps like [FillExtrema] and emits one warning
	// per out-of-range element.
	FillExtremaWarn
)

// Idx is an index specification for one dimension of a [LUT]: where to
// look along one axis. It is a tagged variant resolved by an explicit
// classification step before the lookup algorithm runs:
//
//   - value: coordinate value(s) located on the axis by interpolation,
//     requiring a strictly monotonic numeric axis.
//   - position: precomputed fractional position(s), passed through
//     unchanged.
//   - predicate: a unary boolean function applied elementwise to the
//     axis samples; true positions are selected.
//
// The zero Idx is not valid; use the constructors.
type Idx struct {
	kind   idxKind
	vals   []float64 // value or position payload
	sizes  []int     // payload shape; nil for scalars
	pred   func(float64) bool
	policy FillPolicy
	fill   float64
}

type idxKind int32

const (
	idxValue idxKind = iota
	idxPosition
	idxPredicate
)

// NewIdx returns a value-variant Idx locating the scalar coordinate
// value v on an axis by interpolation.
func NewIdx(v float64) *Idx {
	return &Idx{kind: idxValue, vals: []float64{v}, fill: math.NaN()}
}

// NewIdxValues returns a value-variant Idx locating an array of
// coordinate values on an axis. The optional sizes give the array
// shape; the default is 1D.
func NewIdxValues(vals []float64, sizes ...int) *Idx {
	return &Idx{kind: idxValue, vals: slices.Clone(vals), sizes: payloadSizes(len(vals), sizes), fill: math.NaN()}
}

// NewIdxPos returns a position-variant Idx holding an already resolved
// fractional position, bypassing coordinate lookup.
func NewIdxPos(p float64) *Idx {
	return &Idx{kind: idxPosition, vals: []float64{p}, fill: math.NaN()}
}

// NewIdxPositions returns a position-variant Idx holding an array of
// already resolved fractional positions.
func NewIdxPositions(ps []float64, sizes ...int) *Idx {
	return &Idx{kind: idxPosition, vals: slices.Clone(ps), sizes: payloadSizes(len(ps), sizes), fill: math.NaN()}
}

// NewIdxWhere returns a predicate-variant Idx selecting the positions
// where pred is true of the axis coordinate value.
func NewIdxWhere(pred func(float64) bool) *Idx {
	return &Idx{kind: idxPredicate, pred: pred, fill: math.NaN()}
}

func payloadSizes(n int, sizes []int) []int {
	if len(sizes) == 0 {
		return []int{n}
	}
	sh := NewShape(sizes...)
	if sh.Len() != n {
		panic(fmt.Sprintf("luts.Idx: payload length %d does not match shape %s", n, sh))
	}
	return slices.Clone(sizes)
}

// WithFill sets the out-of-bounds policy to [FillValue] with the given
// fill value, returning the Idx for chaining.
func (ix *Idx) WithFill(fill float64) *Idx {
	ix.policy = FillValue
	ix.fill = fill
	return ix
}

// WithExtrema sets the out-of-bounds policy to clamp to the nearest
// axis endpoint, with a warning per out-of-range element if warn is
// set. Returns the Idx for chaining.
func (ix *Idx) WithExtrema(warn bool) *Idx {
	if warn {
		ix.policy = FillExtremaWarn
	} else {
		ix.policy = FillExtrema
	}
	return ix
}

// Fill returns the configured fill value (NaN unless set).
func (ix *Idx) Fill() float64 { return ix.fill }

// Policy returns the configured out-of-bounds policy.
func (ix *Idx) Policy() FillPolicy { return ix.policy }

// IsScalar returns true if this Idx resolves to a single position.
func (ix *Idx) IsScalar() bool {
	return ix.kind != idxPredicate && ix.sizes == nil
}

// Index resolves this index specification against the given coordinate
// axis, returning the fractional position(s) as an [Array] of the
// payload shape (predicates return a 1D array whose length is the
// number of matching samples). Out-of-range values follow the fill
// policy: [FillRaise] fails, [FillValue] yields a NaN position marker
// that [Idx.Apply] and the LUT lookup replace with the fill value, and
// the extrema policies clamp to the nearest endpoint.
func (ix *Idx) Index(ax *Axis) (*Array, error) {
	if ax == nil {
		return nil, fmt.Errorf("%w: Idx requires a coordinate axis", ErrMissingAxis)
	}
	switch ix.kind {
	case idxPosition:
		return NewArray(slices.Clone(ix.vals), ix.payloadShape()...), nil

	case idxPredicate:
		if !ax.IsNumeric() {
			return nil, fmt.Errorf("%w: predicate selection requires a numeric axis", ErrMonotonic)
		}
		var pos []float64
		for i, v := range ax.Values {
			if ix.pred(v) {
				pos = append(pos, float64(i))
			}
		}
		return NewArray(pos, len(pos)), nil

	default: // idxValue
		if ax.Monotonic() == 0 {
			return nil, fmt.Errorf("%w: cannot locate values on axis %s", ErrMonotonic, ax)
		}
		pos := make([]float64, len(ix.vals))
		for i, v := range ix.vals {
			p, err := ax.Lookup(v)
			if err == nil {
				pos[i] = p
				continue
			}
			switch ix.policy {
			case FillValue:
				pos[i] = math.NaN()
			case FillExtrema, FillExtremaWarn:
				if ix.policy == FillExtremaWarn {
					log.Printf("luts.Idx: value %g out of range on axis %s, clamped", v, ax)
				}
				pos[i] = clampPos(v, ax)
			default:
				return nil, err
			}
		}
		return NewArray(pos, ix.payloadShape()...), nil
	}
}

// clampPos returns the endpoint position nearest to out-of-range
// value v on a strictly monotonic axis.
func clampPos(v float64, ax *Axis) float64 {
	n := len(ax.Values)
	lo, hi := ax.Values[0], ax.Values[n-1]
	below := v < lo
	if lo > hi { // descending
		below = v > lo
	}
	if below {
		return 0
	}
	return float64(n - 1)
}

// Apply selects value(s) from the given sample array: positions are
// resolved against the samples treated as their own coordinate axis,
// then values are produced by linear interpolation between adjacent
// samples for fractional positions and nearest-neighbor for integer
// ones. NaN position markers from the fill policy yield the fill
// value, and positions outside the sample range follow the fill
// policy like out-of-range values do. For a value-variant Idx on
// in-range inputs this reproduces the inputs (the interpolation
// round trip).
func (ix *Idx) Apply(samples []float64) (*Array, error) {
	ax := NewAxis(samples...)
	pos, err := ix.Index(ax)
	if err != nil {
		return nil, err
	}
	top := float64(len(samples) - 1)
	out := make([]float64, len(pos.Values))
	for i, p := range pos.Values {
		if math.IsNaN(p) {
			out[i] = ix.fill
			continue
		}
		if p < 0 || p > top {
			switch ix.policy {
			case FillValue:
				out[i] = ix.fill
				continue
			case FillExtrema, FillExtremaWarn:
				if ix.policy == FillExtremaWarn {
					log.Printf("luts.Idx: position %g outside [0, %g], clamped", p, top)
				}
				p = min(max(p, 0), top)
			default:
				return nil, fmt.Errorf("%w: position %g outside [0, %g]", ErrOutOfRange, p, top)
			}
		}
		out[i] = ax.Interp(p)
	}
	return NewArray(out, pos.Sizes()...), nil
}

func (ix *Idx) payloadShape() []int {
	if ix.sizes == nil {
		return nil
	}
	return slices.Clone(ix.sizes)
}
