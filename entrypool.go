// entrypool.go: pooled per-line scratch slices
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

import "sync"

// accessSlicePool reuses the []access scratch slices that plru and
// availInv buffer hits/invalidates into, so constructing or resetting a
// cache with many lines does not allocate one fresh slice per line when a
// previously-released one is available.
var accessSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]access, 0, 4)
		return &s
	},
}

// getAccessSlice retrieves a zero-length []access scratch slice from the
// pool.
func getAccessSlice() []access {
	p := accessSlicePool.Get().(*[]access)
	return (*p)[:0]
}

// putAccessSlice returns s to the pool for reuse. s must not be referenced
// again by the caller.
func putAccessSlice(s []access) {
	s = s[:0]
	accessSlicePool.Put(&s)
}
