// config.go: cache shape configuration and defaults
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// CacheConfig describes the shape and policy of a set-associative cache
// (spec.md §3). Zero-valued fields are backfilled with conservative
// defaults by NewCache, in the defaults-filling-constructor style this
// package's design is grounded on.
//
// File-backed config loading (JSON/HuJSON from an explicit path) lives in
// cmd/cachesim rather than here: the core model never touches disk — it is
// wired together entirely by its caller.
type CacheConfig struct {
	// AddrWidth is the address bit width (spec.md §3). Default: 32.
	AddrWidth int
	// Lines is the number of sets. Default: 64.
	Lines int
	// Ways is the associativity. Default: 4.
	Ways int

	// Policy selects the replacement policy. Default: PseudoLRU.
	Policy PolicyKind

	// FillPorts is the number of fill ports driven per cycle. Default: 1.
	FillPorts int
	// ReadPorts is the number of read ports driven per cycle. Default: 0.
	ReadPorts int

	// Logger receives debug/info/warn/error events from the cache. Nil
	// silences logging entirely.
	Logger Logger
}

// WithDefaults returns a copy of c with zero-valued fields backfilled,
// without validating it. Tooling that wants to inspect or display a
// config's effective shape before constructing a Cache can call this
// directly; NewCache calls it internally either way.
func (c CacheConfig) WithDefaults() CacheConfig {
	return c.withDefaults()
}

// withDefaults returns a copy of c with zero-valued fields backfilled.
func (c CacheConfig) withDefaults() CacheConfig {
	if c.AddrWidth <= 0 {
		c.AddrWidth = 32
	}
	if c.Lines <= 0 {
		c.Lines = 64
	}
	if c.Ways <= 0 {
		c.Ways = 4
	}
	if c.FillPorts <= 0 {
		c.FillPorts = 1
	}
	if c.ReadPorts < 0 {
		c.ReadPorts = 0
	}
	return c
}

// validate reports the first construction-time fault in c, if any
// (spec.md §7 "Construction-time invalidity").
func (c CacheConfig) validate() error {
	if c.Ways <= 0 {
		return errWaysNotPositive
	}
	if c.Lines <= 0 {
		return errLinesNotPositive
	}
	if c.FillPorts <= 0 {
		return errFillPortsNotPositive
	}
	if c.ReadPorts < 0 {
		return errReadPortsNegative
	}
	if c.Policy == PseudoLRU && c.Ways&(c.Ways-1) != 0 {
		return errWaysNotPowerOfTwo
	}
	if c.Policy != PseudoLRU && c.Policy != AvailableInvalidated {
		return errUnknownPolicy
	}
	if _, err := NewAddressLayout(c.AddrWidth, c.Lines, c.Ways); err != nil {
		return err
	}
	return nil
}
