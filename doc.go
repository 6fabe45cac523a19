// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package luts provides n-dimensional look-up tables with named,
// coordinate-labeled axes, interpolated indexing, and grouping of
// tables into sets sharing common axes.
//
// The core type is [LUT]: a flat row-major float64 array plus one
// optional coordinate [Axis] and one name per dimension, a desc and
// an attribute mapping. Lookups take one [Indexer] per dimension and
// mix freely between exact positions, interpolated coordinate values
// ([Idx], [Val]), strided ranges, boolean masks and broadcast index
// arrays:
//
//	v := l.Float(luts.NewIdx(35.0), luts.At(2))
//	sub, err := l.SubNamed(map[string]luts.Indexer{"z": luts.Rng(0, 10)})
//
// Arithmetic between tables aligns dimensions by axis name, inserting
// length-1 placeholders for names one operand lacks, so tables with
// different but compatible dimensions combine naturally.
//
// [MLUT] groups tables into a set with a shared axis registry: axes
// are shared by pointer, so subsetting or editing a shared axis is
// consistent across every member. [Merge] combines sets produced
// under different conditions, promoting varying attributes to new
// coordinate axes.
//
// Sets serialize to YAML (this package) and to HDF5 (package
// lutshdf5).
package luts
