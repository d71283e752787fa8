// stats.go: cumulative cache access statistics
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0

package setcache

// CacheStats accumulates read/fill outcomes across every Tick call, for
// reporting and for the CLI's replay/repl subcommands.
type CacheStats struct {
	ReadHits     int64
	ReadMisses   int64
	FillHits     int64
	FillMisses   int64
	Evictions    int64
	Invalidates  int64
	CyclesTicked int64
}

func (s *CacheStats) recordRead(hit bool) {
	if hit {
		s.ReadHits++
	} else {
		s.ReadMisses++
	}
}

func (s *CacheStats) recordFill(hit bool) {
	if hit {
		s.FillHits++
	} else {
		s.FillMisses++
	}
}
