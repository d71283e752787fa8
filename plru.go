// plru.go: tree-based Pseudo-LRU replacement policy (spec.md §4.3)
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// plruBitMeansLeftIsLRU fixes the meaning of a tree bit, per spec.md §4.3.1 and the
// open question in §9: "the source alternates between variants ... do not
// guess intent; pick one polarity and document it". This repository fixes:
// a set bit at an internal node means "the LRU path is in that node's left
// subtree"; a clear bit means the right subtree.
const plruBitMeansLeftIsLRU = true

// plru implements Policy for one cache line using a ways-1 bit tree,
// breadth-first indexed (node i's children are 2i+1, 2i+2), as specified in
// spec.md §4.3.1.
type plru struct {
	ways      int
	committed []bool // registered tree state, length ways-1
	scratch   []bool // working state for the current cycle

	hits        []access
	invalidates []access
}

// newPLRU constructs a per-line Pseudo-LRU policy. ways must be a power of
// two (validated by the cache constructor per spec.md §3).
func newPLRU(ways int) *plru {
	return &plru{
		ways:        ways,
		committed:   make([]bool, ways-1),
		scratch:     make([]bool, ways-1),
		hits:        getAccessSlice(),
		invalidates: getAccessSlice(),
	}
}

func (p *plru) Alloc(port int) (way int, ok bool) {
	way = plruWalkCurrent(p.scratch, p.ways)
	// Combinational chaining (spec.md §4.3.2): immediately fold this
	// allocation into the scratch tree so the next Alloc call this cycle
	// (another simultaneous allocator on the same line) sees it and is
	// guaranteed a distinct way.
	plruTouch(p.scratch, p.ways, way, false)
	return way, true
}

func (p *plru) RecordHit(port, way int) {
	p.hits = append(p.hits, access{kind: accessHit, port: port, way: way})
}

func (p *plru) RecordInvalidate(port, way int) {
	p.invalidates = append(p.invalidates, access{kind: accessInvalidate, port: port, way: way})
}

// Commit applies, in order, all hits then all invalidates on top of the
// alloc-chained scratch tree (spec.md §4.3.3), then registers the result.
func (p *plru) Commit() {
	for _, a := range p.hits {
		plruTouch(p.scratch, p.ways, a.way, false)
	}
	for _, a := range p.invalidates {
		plruTouch(p.scratch, p.ways, a.way, true)
	}
	copy(p.committed, p.scratch)
	p.hits = p.hits[:0]
	p.invalidates = p.invalidates[:0]
}

func (p *plru) Reset() {
	for i := range p.committed {
		p.committed[i] = false
		p.scratch[i] = false
	}
	putAccessSlice(p.hits)
	putAccessSlice(p.invalidates)
	p.hits = getAccessSlice()
	p.invalidates = getAccessSlice()
}

// ExportState packs the committed tree bits, one per bit.
func (p *plru) ExportState() []byte {
	return packBits(p.committed)
}

// ImportState restores the committed tree bits and resets scratch to match.
func (p *plru) ImportState(data []byte) error {
	bits, err := unpackBits(data, p.ways-1)
	if err != nil {
		return err
	}
	copy(p.committed, bits)
	copy(p.scratch, bits)
	return nil
}

// plruWalkCurrent implements alloc(v) of spec.md §4.3.2: walk from the root
// following the LRU-indicated side at every node, with no mutation.
func plruWalkCurrent(v []bool, ways int) int {
	node, base, length := 0, 0, ways
	for length > 1 {
		mid := length / 2
		if v[node] == plruBitMeansLeftIsLRU {
			node = 2*node + 1
			length = mid
		} else {
			node = 2*node + 2
			base += mid
			length -= mid
		}
	}
	return base
}

// plruTouch implements hit(v, way, invalidate) of spec.md §4.3.2: walk the
// path to way (determined purely by way's position, not by v's content),
// setting every mid-bit on the path.
//
// With invalidate=false, each bit is set to point at the *other* subtree
// (the one we didn't touch), since we just made this side MRU.
// With invalidate=true, the polarity flips: the bit instead points *at* the
// touched side, marking it as the new LRU victim.
func plruTouch(v []bool, ways, way int, invalidate bool) {
	node, base, length := 0, 0, ways
	for length > 1 {
		mid := length / 2
		wentLeft := way < base+mid
		bit := wentLeft
		if !invalidate {
			bit = !wentLeft
		}
		v[node] = bit == plruBitMeansLeftIsLRU

		if wentLeft {
			node = 2*node + 1
			length = mid
		} else {
			node = 2*node + 2
			base += mid
			length -= mid
		}
	}
}
