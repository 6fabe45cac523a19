// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// MLUT is a set of [LUT] datasets sharing one named-axis registry and
// a set-level attribute mapping. Datasets keep their insertion order
// for ordinal indexing. A member table's named axis that is present in
// the registry references the same [Axis] pointer, so in-place
// coordinate edits propagate to every table using that axis.
type MLUT struct {
	// Axes is the registry of shared coordinate axes by name.
	Axes map[string]*Axis

	// Attrs is the set-level attribute mapping.
	Attrs map[string]any

	names    []string
	datasets map[string]*LUT
}

// NewMLUT returns a new empty table set.
func NewMLUT() *MLUT {
	return &MLUT{
		Axes:     map[string]*Axis{},
		Attrs:    map[string]any{},
		datasets: map[string]*LUT{},
	}
}

// AddAxis registers a shared coordinate axis under the given name.
// It fails with [ErrNameCollision] if the name is already registered
// with different coordinates (re-registering an equal axis is a
// no-op keeping the first pointer).
func (m *MLUT) AddAxis(name string, ax *Axis) error {
	if ex, ok := m.Axes[name]; ok {
		if ex.Equal(ax) {
			return nil
		}
		return fmt.Errorf("%w: axis %q", ErrNameCollision, name)
	}
	m.Axes[name] = ax
	return nil
}

// AddAxisValues registers a shared numeric axis with given samples.
func (m *MLUT) AddAxisValues(name string, values ...float64) error {
	return m.AddAxis(name, NewAxis(values...))
}

// Axis returns the registered shared axis of the given name.
func (m *MLUT) Axis(name string) (*Axis, error) {
	ax, ok := m.Axes[name]
	if !ok {
		return nil, fmt.Errorf("%w: axis %q", ErrNotFound, name)
	}
	return ax, nil
}

// AxisLUT returns a 1D LUT wrapping the registered axis of the given
// name: the axis samples as data, labeled by the shared axis itself.
func (m *MLUT) AxisLUT(name string) (*LUT, error) {
	ax, err := m.Axis(name)
	if err != nil {
		return nil, err
	}
	if !ax.IsNumeric() {
		return nil, fmt.Errorf("%w: axis %q is categorical", ErrMonotonic, name)
	}
	nl := axisView(name, ax)
	nl.Desc = name
	return nl, nil
}

// axisView wraps an axis as a 1D LUT labeled by the axis itself. For
// categorical axes the data holds the positions, which is enough to
// derive subsetted axes.
func axisView(name string, ax *Axis) *LUT {
	vals := slices.Clone(ax.Values)
	if !ax.IsNumeric() {
		vals = make([]float64, ax.Len())
		for i := range vals {
			vals[i] = float64(i)
		}
	}
	nl := NewFromValues(vals, ax.Len())
	nl.Axes[0] = ax
	nl.Names[0] = name
	return nl
}

// AddDataset wraps the given flat row-major data as a [LUT] and adds
// it under the given name. Axis names, when given, must cover every
// dimension; names found in the shared registry attach the registered
// axis (length-checked), other names leave the dimension without
// coordinates. With axnames nil, per-dataset placeholder names
// "<name>_dim<i>" are synthesized and no shared axis is attached.
func (m *MLUT) AddDataset(name string, data []float64, sizes []int, axnames []string, attrs map[string]any) error {
	if m.datasets[name] != nil {
		return fmt.Errorf("%w: dataset %q", ErrNameCollision, name)
	}
	sh := NewShape(sizes...)
	if len(data) != sh.Len() {
		return fmt.Errorf("%w: %d values do not fill shape %s", ErrShape, len(data), sh)
	}
	l := NewFromValues(data, sizes...)
	l.Desc = name
	l.SetAttrs(attrs)
	if axnames == nil {
		for d := range l.Names {
			l.Names[d] = fmt.Sprintf("%s_dim%d", name, d)
		}
	} else {
		if err := l.SetNames(axnames...); err != nil {
			return err
		}
		for d, nm := range l.Names {
			ax, ok := m.Axes[nm]
			if !ok {
				continue
			}
			if ax.Len() != l.DimSize(d) {
				return fmt.Errorf("%w: axis %q has %d samples for dimension size %d of dataset %q", ErrShape, nm, ax.Len(), l.DimSize(d), name)
			}
			l.Axes[d] = ax
		}
	}
	m.names = append(m.names, name)
	m.datasets[name] = l
	return nil
}

// AddLUT adds an existing table under its Desc as dataset name,
// registering its named coordinate axes as shared axes. An axis name
// already registered with different coordinates fails with
// [ErrNameCollision]; an equal one is re-pointed at the registry
// axis so the shared-ownership invariant holds. A failed add leaves
// the set unchanged.
func (m *MLUT) AddLUT(l *LUT) error {
	if l.Desc == "" {
		return fmt.Errorf("%w: cannot add a LUT without a desc as dataset name", ErrNotFound)
	}
	if m.datasets[l.Desc] != nil {
		return fmt.Errorf("%w: dataset %q", ErrNameCollision, l.Desc)
	}
	nl := *l
	nl.Axes = slices.Clone(l.Axes)
	// check every axis against the registry before registering any
	for d, ax := range nl.Axes {
		if ax == nil {
			continue
		}
		if ex, ok := m.Axes[nl.Names[d]]; ok && !ex.Equal(ax) {
			return fmt.Errorf("%w: axis %q", ErrNameCollision, nl.Names[d])
		}
	}
	for d, ax := range nl.Axes {
		if ax == nil {
			continue
		}
		if err := m.AddAxis(nl.Names[d], ax); err != nil {
			return err
		}
		nl.Axes[d] = m.Axes[nl.Names[d]]
	}
	m.names = append(m.names, nl.Desc)
	m.datasets[nl.Desc] = &nl
	return nil
}

// RmLUT removes the dataset of the given name.
func (m *MLUT) RmLUT(name string) error {
	if m.datasets[name] == nil {
		return fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	delete(m.datasets, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
	return nil
}

// Dataset returns the table of the given name.
func (m *MLUT) Dataset(name string) (*LUT, error) {
	l, ok := m.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: dataset %q", ErrNotFound, name)
	}
	return l, nil
}

// DatasetAt returns the table at the given ordinal position, in
// insertion order.
func (m *MLUT) DatasetAt(i int) *LUT {
	return m.datasets[m.names[i]]
}

// Datasets returns the dataset names in insertion order.
func (m *MLUT) Datasets() []string {
	return slices.Clone(m.names)
}

// NumDatasets returns the number of datasets.
func (m *MLUT) NumDatasets() int { return len(m.names) }

// SetAttr sets one set-level attribute.
func (m *MLUT) SetAttr(key string, val any) {
	m.Attrs[key] = val
}

// SetAttrs sets multiple set-level attributes.
func (m *MLUT) SetAttrs(attrs map[string]any) {
	maps.Copy(m.Attrs, attrs)
}

// Equal performs a deep structural comparison of two table sets: same
// dataset names, same per-dataset tables, same shared axes, same
// attrs. Value comparison is exact, except NaN == NaN.
func (m *MLUT) Equal(other *MLUT) bool {
	ok, _ := m.equal(other, true, false)
	return ok
}

// EqualDatasets is [MLUT.Equal] ignoring set-level attributes, for
// comparisons across conversions that cannot carry them.
func (m *MLUT) EqualDatasets(other *MLUT) bool {
	ok, _ := m.equal(other, false, false)
	return ok
}

// EqualReport is a diff-reporting [MLUT.Equal] for test diagnostics.
func (m *MLUT) EqualReport(other *MLUT) (bool, []string) {
	return m.equal(other, true, true)
}

func (m *MLUT) equal(other *MLUT, checkAttrs, report bool) (bool, []string) {
	var diffs []string
	note := func(format string, args ...any) {
		if report {
			diffs = append(diffs, fmt.Sprintf(format, args...))
		}
	}
	ok := true
	ans := slices.Sorted(slices.Values(m.names))
	bns := slices.Sorted(slices.Values(other.names))
	if !slices.Equal(ans, bns) {
		note("datasets: %v != %v", ans, bns)
		return false, diffs
	}
	for _, nm := range ans {
		dok, dd := m.datasets[nm].equal(other.datasets[nm], report)
		if !dok {
			note("dataset %q differs", nm)
			for _, d := range dd {
				note("  %s", d)
			}
			ok = false
		}
	}
	axns := slices.Sorted(maps.Keys(m.Axes))
	bxns := slices.Sorted(maps.Keys(other.Axes))
	if !slices.Equal(axns, bxns) {
		note("axes: %v != %v", axns, bxns)
		ok = false
	} else {
		for _, nm := range axns {
			if !m.Axes[nm].Equal(other.Axes[nm]) {
				note("axis %q differs: %s != %s", nm, m.Axes[nm], other.Axes[nm])
				ok = false
			}
		}
	}
	if checkAttrs && !attrsEqual(m.Attrs, other.Attrs) {
		note("attrs: %v != %v", m.Attrs, other.Attrs)
		ok = false
	}
	return ok, diffs
}

// SubNamed subsets every member table along the named shared axes,
// returning a new table set whose registry holds the restructured
// axes: ranges and fancy selections slice the shared axis, exact and
// interpolated points remove it. Datasets without a selected axis are
// carried over unchanged (cloned).
func (m *MLUT) SubNamed(sel map[string]Indexer) (*MLUT, error) {
	nm := NewMLUT()
	nm.Attrs = cloneAttrs(m.Attrs)

	// restructure the registry through 1D views of each axis
	for name, ax := range m.Axes {
		ix, picked := sel[name]
		if !picked {
			nm.Axes[name] = ax
			continue
		}
		view := axisView(name, ax)
		sub, err := view.Sub(ix)
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", name, err)
		}
		if sub.NumDims() == 1 {
			nm.Axes[name] = sub.Axes[0]
		}
		// a point selection drops the axis from the registry
	}

	for _, name := range m.names {
		l := m.datasets[name]
		dsel := map[string]Indexer{}
		for axname, ix := range sel {
			if slices.Contains(l.Names, axname) {
				dsel[axname] = ix
			}
		}
		nl, err := l.SubNamed(dsel)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		// keep the shared-ownership invariant in the new set
		for d, axname := range nl.Names {
			if ax, ok := nm.Axes[axname]; ok && nl.Axes[d] != nil {
				nl.Axes[d] = ax
			}
		}
		nm.names = append(nm.names, name)
		nm.datasets[name] = nl
	}
	return nm, nil
}

// DropAxis removes the named axes from the registry and from every
// member table, taking position 0 along each (the same documented
// lossy behavior as [LUT.DropAxis]). Attrs are preserved.
func (m *MLUT) DropAxis(names ...string) (*MLUT, error) {
	nm := NewMLUT()
	nm.Attrs = cloneAttrs(m.Attrs)
	for axname, ax := range m.Axes {
		if !slices.Contains(names, axname) {
			nm.Axes[axname] = ax
		}
	}
	for _, dsname := range m.names {
		l := m.datasets[dsname]
		var drop []string
		for _, axname := range names {
			if slices.Contains(l.Names, axname) {
				drop = append(drop, axname)
			}
		}
		nl, err := l.DropAxis(drop...)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", dsname, err)
		}
		for d, axname := range nl.Names {
			if ax, ok := nm.Axes[axname]; ok && nl.Axes[d] != nil {
				nl.Axes[d] = ax
			}
		}
		nm.names = append(nm.names, dsname)
		nm.datasets[dsname] = nl
	}
	return nm, nil
}

// RenameAxis renames a shared axis in the registry and in every
// member table using it. It fails with [ErrNameCollision] if the new
// name is already registered, or if a member using the axis already
// has a dimension named new. A failed rename leaves the set
// unchanged.
func (m *MLUT) RenameAxis(old, new string) error {
	ax, ok := m.Axes[old]
	if !ok {
		return fmt.Errorf("%w: axis %q", ErrNotFound, old)
	}
	if _, ok := m.Axes[new]; ok {
		return fmt.Errorf("%w: axis %q", ErrNameCollision, new)
	}
	// check every member before renaming anything
	for _, name := range m.names {
		l := m.datasets[name]
		if slices.Contains(l.Names, old) && slices.Contains(l.Names, new) {
			return fmt.Errorf("%w: dataset %q already has an axis %q", ErrNameCollision, name, new)
		}
	}
	for _, name := range m.names {
		l := m.datasets[name]
		if d := slices.Index(l.Names, old); d >= 0 {
			l.Names[d] = new
		}
	}
	delete(m.Axes, old)
	m.Axes[new] = ax
	return nil
}

// String satisfies the fmt.Stringer interface with a multi-line
// description of the set: datasets, shared axes, attributes.
func (m *MLUT) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MLUT with %d datasets\n", len(m.names))
	for _, name := range m.names {
		fmt.Fprintf(&b, " %s\n", m.datasets[name].Label())
	}
	for _, name := range slices.Sorted(maps.Keys(m.Axes)) {
		fmt.Fprintf(&b, " axis %q: %s\n", name, m.Axes[name])
	}
	for _, k := range slices.Sorted(maps.Keys(m.Attrs)) {
		fmt.Fprintf(&b, " attr %s = %v\n", k, m.Attrs[k])
	}
	return b.String()
}

// ToMLUT returns a new table set holding this table as its only
// dataset (named by its desc, or "data" when empty), with its named
// coordinate axes registered as shared axes.
func (l *LUT) ToMLUT() *MLUT {
	m := NewMLUT()
	nl := l
	if l.Desc == "" {
		nl = l.Clone().SetDesc("data")
	}
	if err := m.AddLUT(nl); err != nil {
		// names within one LUT are unique, so this cannot collide
		panic(err)
	}
	return m
}
