// match.go: match engine (spec.md §4.1)
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// matchResult is the per-line, per-port output of the match engine: the
// one-hot hit vector, the priority-encoded hit way, and the miss flag.
type matchResult struct {
	hitOneHot []bool
	hitWay    int
	miss      bool
}

// matchLine compares tag against every way's stored (valid, tag) at a line
// and produces the hit vector, the first-set-bit hit way, and the miss flag
// (spec.md §4.1). It has no side effects: it reads Storage combinationally
// and mutates nothing.
func matchLine[D any](storage *Storage[D], line int, ways int, tag uint64) matchResult {
	hitOneHot := make([]bool, ways)
	for w := 0; w < ways; w++ {
		e := storage.Read(line, w)
		if e.Valid && e.Tag == tag {
			hitOneHot[w] = true
		}
	}
	hitWay := priorityEncode(hitOneHot)
	return matchResult{
		hitOneHot: hitOneHot,
		hitWay:    hitWay,
		miss:      hitWay < 0,
	}
}

// priorityEncode returns the index of the first (lowest-indexed) set bit in
// bits, or -1 if none are set. Behavior on all-zero input is the documented
// deterministic "-1" (spec.md §6 "Priority encoder").
func priorityEncode(bits []bool) int {
	for i, b := range bits {
		if b {
			return i
		}
	}
	return -1
}
