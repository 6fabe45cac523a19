// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// LUT is an n-dimensional lookup table: one float64 value array with
// one optional coordinate [Axis] and one name per dimension, a
// description, and a string-keyed attribute mapping.
//
// Invariants: len(Axes) == len(Names) == NumDims, each non-nil axis
// length matches the corresponding data dimension, and names are
// unique within one table. Dimensions without an explicit name carry
// their positional ordinal ("0", "1", ...) as a fallback name.
//
// A LUT produced by indexing, arithmetic, subsetting or reduction is a
// new LUT with freshly derived axes, names, attrs and desc; it never
// aliases the parent's value array.
type LUT struct {
	// Data is the flat row-major value array.
	Data []float64

	// Axes holds one coordinate axis per dimension; nil entries mark
	// unnamed positional dimensions without coordinates.
	Axes []*Axis

	// Names holds one unique axis name per dimension.
	Names []string

	// Desc is a free-form description of the table.
	Desc string

	// Attrs is the attribute mapping. Values are arbitrary but should
	// be scalars or strings for I/O round trips.
	Attrs map[string]any

	shape Shape
}

// New returns a new zero-filled LUT of the given shape, with no
// coordinate axes and fallback positional names. No sizes means a
// zero-dimensional (scalar) table.
func New(sizes ...int) *LUT {
	l := &LUT{}
	l.shape.SetSizes(sizes...)
	l.Data = make([]float64, l.shape.Len())
	l.Axes = make([]*Axis, len(sizes))
	l.Names = fallbackNames(len(sizes))
	l.Attrs = map[string]any{}
	return l
}

// NewFromValues returns a new LUT wrapping the given flat row-major
// values (not copied) with the given shape sizes.
func NewFromValues(values []float64, sizes ...int) *LUT {
	l := New()
	l.shape.SetSizes(sizes...)
	if len(values) != l.shape.Len() {
		panic(fmt.Sprintf("luts.NewFromValues: %d values do not fill shape %s", len(values), l.shape.String()))
	}
	l.Data = values
	l.Axes = make([]*Axis, len(sizes))
	l.Names = fallbackNames(len(sizes))
	return l
}

// NewScalar returns a new zero-dimensional LUT holding one value.
func NewScalar(val float64) *LUT {
	l := New()
	l.Data[0] = val
	return l
}

func fallbackNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

// SetNames sets the per-dimension axis names, which must be unique and
// match the number of dimensions. Empty entries keep the positional
// fallback name.
func (l *LUT) SetNames(names ...string) error {
	if len(names) != l.NumDims() {
		return fmt.Errorf("%w: %d names for %d dimensions", ErrShape, len(names), l.NumDims())
	}
	nn := make([]string, len(names))
	for i, nm := range names {
		if nm == "" {
			nm = strconv.Itoa(i)
		}
		if slices.Contains(nn[:i], nm) {
			return fmt.Errorf("%w: duplicate axis name %q", ErrNameCollision, nm)
		}
		nn[i] = nm
	}
	l.Names = nn
	return nil
}

// SetAxes sets the per-dimension coordinate axes. nil entries leave a
// dimension without coordinates. Each non-nil axis length must match
// the corresponding data dimension.
func (l *LUT) SetAxes(axes ...*Axis) error {
	if len(axes) != l.NumDims() {
		return fmt.Errorf("%w: %d axes for %d dimensions", ErrShape, len(axes), l.NumDims())
	}
	for d, ax := range axes {
		if ax != nil && ax.Len() != l.shape.DimSize(d) {
			return fmt.Errorf("%w: axis %d has %d samples for dimension size %d", ErrShape, d, ax.Len(), l.shape.DimSize(d))
		}
	}
	l.Axes = slices.Clone(axes)
	return nil
}

// SetDesc sets the description, returning the LUT for chaining.
func (l *LUT) SetDesc(desc string) *LUT {
	l.Desc = desc
	return l
}

// SetAttr sets one attribute value.
func (l *LUT) SetAttr(key string, val any) {
	if l.Attrs == nil {
		l.Attrs = map[string]any{}
	}
	l.Attrs[key] = val
}

// SetAttrs sets multiple attribute values.
func (l *LUT) SetAttrs(attrs map[string]any) {
	for k, v := range attrs {
		l.SetAttr(k, v)
	}
}

// Shape returns a pointer to the shape that parametrizes the table.
func (l *LUT) Shape() *Shape { return &l.shape }

// Sizes returns a copy of the dimension sizes.
func (l *LUT) Sizes() []int { return slices.Clone(l.shape.Sizes) }

// NumDims returns the total number of dimensions.
func (l *LUT) NumDims() int { return l.shape.NumDims() }

// DimSize returns the size of the given dimension.
func (l *LUT) DimSize(dim int) int { return l.shape.DimSize(dim) }

// Len returns the total number of values.
func (l *LUT) Len() int { return l.shape.Len() }

// Value returns the value at the given exact n-dimensional position.
func (l *LUT) Value(i ...int) float64 {
	return l.Data[l.shape.IndexTo1D(i...)]
}

// Set sets the value at the given exact n-dimensional position.
func (l *LUT) Set(val float64, i ...int) {
	l.Data[l.shape.IndexTo1D(i...)] = val
}

// Dim resolves an axis specifier to a dimension: a string axis name or
// an int position.
func (l *LUT) Dim(axis any) (int, error) {
	switch a := axis.(type) {
	case int:
		if a < 0 || a >= l.NumDims() {
			return 0, fmt.Errorf("%w: dimension %d of %d", ErrOutOfRange, a, l.NumDims())
		}
		return a, nil
	case string:
		if d := slices.Index(l.Names, a); d >= 0 {
			return d, nil
		}
		// fallback ordinal names double as positional specifiers
		if d, err := strconv.Atoi(a); err == nil && d >= 0 && d < l.NumDims() {
			return d, nil
		}
		return 0, fmt.Errorf("%w: axis %q in %v", ErrMissingAxis, a, l.Names)
	default:
		return 0, fmt.Errorf("%w: axis specifier %T", ErrMissingAxis, axis)
	}
}

// Axis returns the coordinate axis for the given name or position;
// nil with no error for a dimension that has no coordinates.
func (l *LUT) Axis(axis any) (*Axis, error) {
	d, err := l.Dim(axis)
	if err != nil {
		return nil, err
	}
	return l.Axes[d], nil
}

// AxisLUT returns a 1D LUT view of the named coordinate axis: the
// axis samples as data, labeled by the axis itself.
func (l *LUT) AxisLUT(axis any) (*LUT, error) {
	d, err := l.Dim(axis)
	if err != nil {
		return nil, err
	}
	ax := l.Axes[d]
	if ax == nil {
		return nil, fmt.Errorf("%w: dimension %q has no coordinates", ErrMissingAxis, l.Names[d])
	}
	if !ax.IsNumeric() {
		return nil, fmt.Errorf("%w: dimension %q is categorical", ErrMonotonic, l.Names[d])
	}
	nl := NewFromValues(slices.Clone(ax.Values), ax.Len())
	nl.Axes[0] = ax
	nl.Names[0] = l.Names[d]
	nl.Desc = l.Names[d]
	return nl, nil
}

// Clone returns a complete copy of this table, including its own copy
// of the value array, axes, names and attributes.
func (l *LUT) Clone() *LUT {
	cp := &LUT{
		Data:  slices.Clone(l.Data),
		Axes:  make([]*Axis, len(l.Axes)),
		Names: slices.Clone(l.Names),
		Desc:  l.Desc,
		Attrs: cloneAttrs(l.Attrs),
		shape: *l.shape.Clone(),
	}
	for d, ax := range l.Axes {
		if ax != nil {
			cp.Axes[d] = ax.Clone()
		}
	}
	return cp
}

// Equal performs a deep structural comparison: same shape, values,
// axes, names, desc and attrs. Value comparison is exact, except that
// NaN compares equal to NaN.
func (l *LUT) Equal(other *LUT) bool {
	ok, _ := l.equal(other, false)
	return ok
}

// EqualReport is a diff-reporting [LUT.Equal] for test diagnostics:
// it returns whether the tables are equal and a line per difference.
func (l *LUT) EqualReport(other *LUT) (bool, []string) {
	return l.equal(other, true)
}

func (l *LUT) equal(other *LUT, report bool) (bool, []string) {
	var diffs []string
	note := func(format string, args ...any) {
		if report {
			diffs = append(diffs, fmt.Sprintf(format, args...))
		}
	}
	ok := true
	if !l.shape.IsEqual(&other.shape) {
		note("shape: %s != %s", l.shape.String(), other.shape.String())
		return false, diffs
	}
	if !floatsEqual(l.Data, other.Data) {
		note("data values differ")
		ok = false
	}
	if !slices.Equal(l.Names, other.Names) {
		note("names: %v != %v", l.Names, other.Names)
		ok = false
	}
	for d := range l.Axes {
		if !l.Axes[d].Equal(other.Axes[d]) {
			note("axis %q differs: %s != %s", l.Names[d], l.Axes[d], other.Axes[d])
			ok = false
		}
	}
	if l.Desc != other.Desc {
		note("desc: %q != %q", l.Desc, other.Desc)
		ok = false
	}
	if !attrsEqual(l.Attrs, other.Attrs) {
		note("attrs: %v != %v", l.Attrs, other.Attrs)
		ok = false
	}
	return ok, diffs
}

// Label satisfies the core Labeler convention with a one-line summary.
func (l *LUT) Label() string {
	desc := l.Desc
	if desc == "" {
		desc = "LUT"
	}
	return fmt.Sprintf("%s %s [%s]", desc, l.shape.String(), strings.Join(l.Names, ", "))
}

// String satisfies the fmt.Stringer interface with a multi-line
// description of the table: shape, per-dimension axes, attributes.
func (l *LUT) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", l.Label())
	for d := range l.Axes {
		fmt.Fprintf(&b, "  dim %d %q: %s\n", d, l.Names[d], l.Axes[d])
	}
	for _, k := range slices.Sorted(maps.Keys(l.Attrs)) {
		fmt.Fprintf(&b, "  attr %s = %v\n", k, l.Attrs[k])
	}
	return b.String()
}

// cloneAttrs returns a shallow copy of an attribute mapping,
// never nil.
func cloneAttrs(attrs map[string]any) map[string]any {
	cp := map[string]any{}
	maps.Copy(cp, attrs)
	return cp
}

// attrsEqual compares two attribute mappings for equality. Numeric
// values compare by value across int and float types, so attributes
// survive serialization round trips that widen or narrow numbers.
func attrsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !attrValueEqual(av, bv) {
			return false
		}
	}
	return true
}

func attrValueEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && (af == bf || (af != af && bf != bf))
	}
	return reflect.DeepEqual(a, b)
}

// toFloat converts any numeric scalar to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
