// storage.go: indexed storage array (spec.md §2 "Indexed Storage Array")
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// Storage is a per-way storage bank indexed by line address. Reads are
// combinational against the currently-committed state; writes are staged by
// ScheduleInstall/ScheduleInvalidate and only take effect on Commit, modeling the "write ports
// commit on the next tick" contract of spec.md §6.
//
// Multiple ports may read the same (line, way) concurrently within a cycle
// (they all observe the same committed snapshot); multiple writes to the
// same (line, way) in the same cycle are a caller error (spec.md §5
// "conflicting writes ... are disallowed by construction") and the later
// Schedule* call simply overwrites the earlier one, since the cache top
// never issues more than one write per (line, way) per cycle.
type Storage[D any] struct {
	ways  int
	lines int

	entries [][]Entry[D] // entries[way][line]

	pending []pendingWrite[D]
}

type pendingWrite[D any] struct {
	line      int
	way       int
	entry     Entry[D]
	writeData bool // false for invalidate-only writes that must not clobber tag/data
}

// NewStorage allocates a ways x lines storage array, all entries invalid.
func NewStorage[D any](ways, lines int) *Storage[D] {
	entries := make([][]Entry[D], ways)
	for w := range entries {
		entries[w] = make([]Entry[D], lines)
	}
	return &Storage[D]{ways: ways, lines: lines, entries: entries}
}

// Read returns the combinational (tag, valid, data) at (line, way).
func (s *Storage[D]) Read(line, way int) Entry[D] {
	return s.entries[way][line]
}

// ScheduleInstall stages a fill write: tag, valid=true, data, committed on
// Commit (spec.md §4.5.3 allocate/refill paths).
func (s *Storage[D]) ScheduleInstall(line, way int, tag uint64, data D) {
	s.pending = append(s.pending, pendingWrite[D]{
		line: line, way: way,
		entry:     Entry[D]{Valid: true, Tag: tag, Data: data},
		writeData: true,
	})
}

// ScheduleInvalidate stages a valid-bit clear at (line, way), leaving tag and
// data untouched-but-meaningless (spec.md §4.5.3 invalidate path, §4.6 RWI).
func (s *Storage[D]) ScheduleInvalidate(line, way int) {
	s.pending = append(s.pending, pendingWrite[D]{
		line: line, way: way,
		writeData: false,
	})
}

// Commit applies all writes staged this cycle and clears the pending queue.
func (s *Storage[D]) Commit() {
	for _, w := range s.pending {
		if w.writeData {
			s.entries[w.way][w.line] = w.entry
		} else {
			e := s.entries[w.way][w.line]
			e.Valid = false
			s.entries[w.way][w.line] = e
		}
	}
	s.pending = s.pending[:0]
}

// Reset clears every entry to invalid and drops any staged writes
// (spec.md §3 "Entity lifecycle", reset case).
func (s *Storage[D]) Reset() {
	var zero D
	for w := 0; w < s.ways; w++ {
		for l := 0; l < s.lines; l++ {
			s.entries[w][l] = Entry[D]{Data: zero}
		}
	}
	s.pending = s.pending[:0]
}
