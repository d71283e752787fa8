// cache.go: top-level set-associative cache control logic (spec.md §4.7)
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// Cache is a functional reference model of a set-associative cache's
// control logic: address decomposition, match engine, replacement policy,
// and fill/read port orchestration, as a synchronous, single-clock,
// discrete-cycle machine (spec.md §5). One Tick call is one cycle.
//
// D is the data payload type carried per entry; the cache never interprets
// it, only stores and returns it.
type Cache[D any] struct {
	config  CacheConfig
	layout  AddressLayout
	storage *Storage[D]
	lines   []Policy

	pendingRWI []*pendingRWI // one slot per read port, carried across Tick calls

	stats  CacheStats
	logger Logger
}

// NewCache constructs a Cache from config, backfilling zero-valued fields
// with defaults and validating the result (spec.md §7). A non-nil error is
// always one of the sentinel errors in errors.go.
func NewCache[D any](config CacheConfig) (*Cache[D], error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	layout, err := NewAddressLayout(config.AddrWidth, config.Lines, config.Ways)
	if err != nil {
		return nil, err
	}

	c := &Cache[D]{
		config:     config,
		layout:     layout,
		storage:    NewStorage[D](config.Ways, config.Lines),
		lines:      make([]Policy, config.Lines),
		pendingRWI: make([]*pendingRWI, config.ReadPorts),
		logger:     config.Logger,
	}
	for i := range c.lines {
		c.lines[i] = newPolicy(config.Policy, config.Ways)
	}

	c.log(func(l Logger) {
		l.Info("cache constructed",
			"lines", config.Lines, "ways", config.Ways,
			"addr_width", config.AddrWidth, "policy", config.Policy.String())
	})
	return c, nil
}

// newPolicy constructs one line's replacement policy for kind.
func newPolicy(kind PolicyKind, ways int) Policy {
	switch kind {
	case AvailableInvalidated:
		return newAvailInv(ways)
	default:
		return newPLRU(ways)
	}
}

// Tick drives every fill and read port for one cycle and returns their
// combinational outputs (spec.md §4.7, §6). fills and reads must each have
// exactly config.FillPorts / config.ReadPorts elements; a port with En=false
// contributes no effect and an empty result.
//
// Tick both computes this cycle's outputs and commits the writes staged
// during computation (including any read-with-invalidate armed from the
// previous cycle), so the next Tick call observes a fully updated state —
// there is no separate explicit commit step.
func (c *Cache[D]) Tick(fills []FillRequest[D], reads []ReadRequest) ([]FillResult[D], []ReadResult[D]) {
	c.stats.CyclesTicked++

	// Arm read-with-invalidate writes deferred from last cycle, before this
	// cycle's own accesses are resolved (spec.md §4.6 invariant 5).
	for port, pending := range c.pendingRWI {
		if pending == nil {
			continue
		}
		armRWI(c.storage, c.lines[pending.line], port, *pending)
		c.pendingRWI[port] = nil
	}

	fillResults := make([]FillResult[D], len(fills))
	type scheduledInstall struct {
		line    int
		outcome fillOutcome[D]
		tag     uint64
		data    D
	}
	var scheduled []scheduledInstall

	for port, req := range fills {
		if !req.En {
			continue
		}
		tag, line := c.layout.Decompose(req.Addr)
		outcome := driveFill(c.storage, c.lines[line], c.layout, line, port, req)
		fillResults[port] = outcome.result
		if req.Valid && outcome.install {
			c.stats.recordFill(outcome.hit)
		}
		if outcome.result.Evicted {
			c.stats.Evictions++
		}
		if outcome.invalidate {
			c.stats.Invalidates++
		}
		if outcome.install || outcome.invalidate {
			scheduled = append(scheduled, scheduledInstall{line: line, outcome: outcome, tag: tag, data: req.Data})
		}
	}

	readResults := make([]ReadResult[D], len(reads))
	newPendingRWI := make([]*pendingRWI, len(c.pendingRWI))
	for port, req := range reads {
		if !req.En {
			continue
		}
		_, line := c.layout.Decompose(req.Addr)
		outcome, pending := driveRead[D](c.storage, c.lines[line], c.layout, line, port, req)
		readResults[port] = outcome.result
		c.stats.recordRead(outcome.hit)
		if port < len(newPendingRWI) {
			newPendingRWI[port] = pending
		}
	}
	c.pendingRWI = newPendingRWI

	for _, s := range scheduled {
		applyFill(c.storage, s.line, s.outcome, s.tag, s.data)
	}

	c.storage.Commit()
	for _, p := range c.lines {
		p.Commit()
	}

	return fillResults, readResults
}

// Reset returns the cache to its deterministic construction-time state:
// every entry invalid, every replacement policy reset, no pending
// read-with-invalidate writes (spec.md §3 "Entity lifecycle").
func (c *Cache[D]) Reset() {
	c.storage.Reset()
	for _, p := range c.lines {
		p.Reset()
	}
	for i := range c.pendingRWI {
		c.pendingRWI[i] = nil
	}
	c.stats = CacheStats{}
	c.log(func(l Logger) { l.Debug("cache reset") })
}

// Stats returns a snapshot of cumulative access statistics.
func (c *Cache[D]) Stats() CacheStats {
	return c.stats
}

// Layout returns the cache's address decomposition, for tooling that needs
// to compose/decompose addresses outside of a Tick call.
func (c *Cache[D]) Layout() AddressLayout {
	return c.layout
}

// Config returns the (defaulted, validated) configuration the cache was
// constructed with.
func (c *Cache[D]) Config() CacheConfig {
	return c.config
}

func (c *Cache[D]) log(fn func(Logger)) {
	if c.logger != nil {
		fn(c.logger)
	}
}

// LineState is one line's serializable state, used by internal/snapshot to
// persist and restore a cache without depending on its unexported fields.
type LineState[D any] struct {
	Entries     []Entry[D]
	PolicyState []byte
}

// ExportLines returns the current committed state of every line, in line
// order. Any read-with-invalidate armed but not yet committed is already
// reflected, since Tick always commits before returning.
func (c *Cache[D]) ExportLines() []LineState[D] {
	lines := make([]LineState[D], len(c.lines))
	for i, p := range c.lines {
		entries := make([]Entry[D], c.config.Ways)
		for w := 0; w < c.config.Ways; w++ {
			entries[w] = c.storage.Read(i, w)
		}
		lines[i] = LineState[D]{Entries: entries, PolicyState: p.ExportState()}
	}
	return lines
}

// ImportLines restores every line's state from a prior ExportLines call
// against a cache of the same shape (lines/ways). It also clears any
// pending read-with-invalidate and resets cumulative stats, matching the
// semantics of loading a fresh snapshot rather than splicing into a
// running cache.
func (c *Cache[D]) ImportLines(lines []LineState[D]) error {
	if len(lines) != len(c.lines) {
		return errSnapshotLineCount
	}
	for i, ls := range lines {
		if len(ls.Entries) != c.config.Ways {
			return errSnapshotWayCount
		}
		for w, e := range ls.Entries {
			if e.Valid {
				c.storage.ScheduleInstall(i, w, e.Tag, e.Data)
			} else {
				c.storage.ScheduleInvalidate(i, w)
			}
		}
		if err := c.lines[i].ImportState(ls.PolicyState); err != nil {
			return err
		}
	}
	c.storage.Commit()
	for i := range c.pendingRWI {
		c.pendingRWI[i] = nil
	}
	c.stats = CacheStats{}
	return nil
}
