// readhandler.go: per-read-port orchestration for one cycle (spec.md §4.6)
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// pendingRWI is a read-with-invalidate awaiting its deferred write. spec.md
// §4.6's invariant 5 requires the invalidate to become visible no sooner
// than cycle t+2 when the read happened at cycle t: the read's combinational
// hit is reported this cycle, the Storage invalidate is only *scheduled* one
// cycle later, so it commits on the tick after that.
type pendingRWI struct {
	line int
	way  int
}

// readOutcome is the fully-resolved result of driving one read port for one
// line during a cycle.
type readOutcome[D any] struct {
	result ReadResult[D]
	hit    bool
	way    int
}

// driveRead resolves one read port against one line for the current cycle
// (spec.md §4.6). Plain reads update the policy as a hit in the same cycle;
// read-with-invalidate also updates the policy as a hit this cycle (the
// access pattern is still an LRU touch), but the Storage invalidate itself
// is handed back to the caller as a pendingRWI to be scheduled next cycle,
// not this one.
func driveRead[D any](storage *Storage[D], policy Policy, layout AddressLayout, line, port int, req ReadRequest) (readOutcome[D], *pendingRWI) {
	if !req.En {
		return readOutcome[D]{}, nil
	}

	tag, _ := layout.Decompose(req.Addr)
	m := matchLine(storage, line, layout.Ways, tag)
	if m.miss {
		return readOutcome[D]{}, nil
	}

	entry := storage.Read(line, m.hitWay)
	policy.RecordHit(port, m.hitWay)

	out := readOutcome[D]{
		result: ReadResult[D]{Valid: true, Data: entry.Data},
		hit:    true,
		way:    m.hitWay,
	}

	if !req.ReadWithInvalidate {
		return out, nil
	}
	return out, &pendingRWI{line: line, way: m.hitWay}
}

// armRWI schedules the deferred invalidate for a read-with-invalidate that
// was issued last cycle: this is the first write-side-effect of that read,
// landing on Storage.Commit at the end of *this* cycle and therefore
// observable starting next cycle (t+2 relative to the originating read at
// cycle t, per spec.md §4.6 invariant 5). The replacement policy is also
// told about the invalidate one cycle late, to stay consistent with when
// the way actually becomes invalid.
func armRWI[D any](storage *Storage[D], policy Policy, port int, pending pendingRWI) {
	storage.ScheduleInvalidate(pending.line, pending.way)
	policy.RecordInvalidate(port, pending.way)
}
