// errors.go: construction-time and modeling error classes for setcache
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

import "errors"

// Construction-time faults (spec.md §7 "Construction-time invalidity").
var (
	errWaysNotPositive      = errors.New("setcache: ways must be a positive integer")
	errLinesNotPositive     = errors.New("setcache: lines must be a positive integer")
	errAddrWidthTooSmall    = errors.New("setcache: addr_width is smaller than the bits needed to index lines")
	errWaysNotPowerOfTwo    = errors.New("setcache: PseudoLRU requires ways to be a power of two")
	errUnknownPolicy        = errors.New("setcache: unknown replacement policy")
	errFillPortsNotPositive = errors.New("setcache: fill port count must be a positive integer")
	errReadPortsNegative    = errors.New("setcache: read port count must not be negative")
)

// Snapshot/import faults.
var (
	errSnapshotStateTooShort = errors.New("setcache: encoded policy state is shorter than expected")
	errSnapshotLineCount     = errors.New("setcache: snapshot line count does not match cache shape")
	errSnapshotWayCount      = errors.New("setcache: snapshot way count does not match cache shape")
)
