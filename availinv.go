// availinv.go: Available-Invalidated replacement policy (spec.md §4.4)
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// availInv implements Policy for one cache line with a per-line shadow
// bitmap: true means the way is currently claimed/valid from the policy's
// point of view, false means it is available for allocation (spec.md §4.4.1).
//
// Unlike plru, this policy ignores RecordHit entirely (spec.md §4.4.2: hits
// never change availability — only allocation and invalidation do).
type availInv struct {
	ways     int
	shadow   []bool // registered availability, true = claimed
	claimed  []bool // scratch: ways claimed by an alloc port so far this cycle
	freed    []bool // scratch: ways invalidated this cycle (available early)
	issued   []int  // latched way issued per fill port this cycle (spec.md §4.4.3)

	invalidates []access
}

// newAvailInv constructs a per-line Available-Invalidated policy.
func newAvailInv(ways int) *availInv {
	return &availInv{
		ways:        ways,
		shadow:      make([]bool, ways),
		claimed:     make([]bool, ways),
		freed:       make([]bool, ways),
		invalidates: getAccessSlice(),
	}
}

// Alloc greedily assigns the lowest-indexed way that is available after
// folding in this cycle's invalidates (which free a way immediately, within
// the same cycle — spec.md §4.4.2) and excluding ways already claimed by an
// earlier alloc port this cycle (spec.md §4.4.1's "greedy lowest-index"
// allocation across simultaneous allocators).
//
// ok is false only when every way is already claimed/valid: the policy then
// pins the issued way to 0, leaving the eviction decision to the fill
// handler's own read of storage (spec.md §4.4.2, the ways=1-already-valid
// edge case resolved as a forced eviction, see SPEC_FULL.md §5).
func (a *availInv) Alloc(port int) (way int, ok bool) {
	for w := 0; w < a.ways; w++ {
		if a.claimed[w] {
			continue
		}
		available := !a.shadow[w] || a.freed[w]
		if available {
			a.claimed[w] = true
			a.issued = append(a.issued, w)
			return w, true
		}
	}
	a.issued = append(a.issued, 0)
	return 0, false
}

// IssuedWays returns the ways latched by Alloc calls so far this cycle, in
// call order, for inspection tooling (spec.md §4.4.3's "latched issued way").
func (a *availInv) IssuedWays() []int {
	return a.issued
}

// RecordHit is intentionally a no-op: spec.md §4.4.2 excludes hits from
// ever affecting the availability bitmap.
func (a *availInv) RecordHit(port, way int) {}

func (a *availInv) RecordInvalidate(port, way int) {
	a.freed[way] = true
	a.invalidates = append(a.invalidates, access{kind: accessInvalidate, port: port, way: way})
}

// Commit registers this cycle's claims and invalidates into the shadow
// bitmap: claimed ways become unavailable, invalidated ways become
// available, and an invalidate issued in the same cycle as a claim on the
// same way loses to the claim (the way was reallocated before the
// invalidate could free it for a later port).
func (a *availInv) Commit() {
	for w := 0; w < a.ways; w++ {
		if a.claimed[w] {
			a.shadow[w] = true
		} else if a.freed[w] {
			a.shadow[w] = false
		}
	}
	for i := range a.claimed {
		a.claimed[i] = false
		a.freed[i] = false
	}
	a.invalidates = a.invalidates[:0]
	a.issued = a.issued[:0]
}

func (a *availInv) Reset() {
	for w := 0; w < a.ways; w++ {
		a.shadow[w] = false
		a.claimed[w] = false
		a.freed[w] = false
	}
	putAccessSlice(a.invalidates)
	a.invalidates = getAccessSlice()
	a.issued = a.issued[:0]
}

// ExportState packs the committed availability shadow bitmap, one bit per
// way.
func (a *availInv) ExportState() []byte {
	return packBits(a.shadow)
}

// ImportState restores the shadow bitmap.
func (a *availInv) ImportState(data []byte) error {
	bits, err := unpackBits(data, a.ways)
	if err != nil {
		return err
	}
	copy(a.shadow, bits)
	return nil
}
