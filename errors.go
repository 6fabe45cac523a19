// Copyright (c) 2025, The luts Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package luts

import "errors"

// Sentinel errors returned by the lookup, alignment and container
// operations. Wrapped errors carry context; test with [errors.Is].
var (
	// ErrMissingAxis indicates an interpolating index on a dimension
	// that has no coordinate axis, or a lookup of an unregistered
	// axis name.
	ErrMissingAxis = errors.New("luts: missing axis")

	// ErrOutOfRange indicates a coordinate value or position outside
	// the valid range of an axis, under the raising fill policy.
	ErrOutOfRange = errors.New("luts: out of range")

	// ErrShape indicates a broadcasting, alignment or merge
	// dimensionality or length mismatch.
	ErrShape = errors.New("luts: incompatible shapes")

	// ErrMonotonic indicates value interpolation attempted against a
	// non-monotonic or non-numeric coordinate axis.
	ErrMonotonic = errors.New("luts: axis not strictly monotonic")

	// ErrNameCollision indicates a rename or add onto an already
	// existing name.
	ErrNameCollision = errors.New("luts: name already exists")

	// ErrNotFound indicates a lookup of an unknown dataset or axis.
	ErrNotFound = errors.New("luts: not found")
)
