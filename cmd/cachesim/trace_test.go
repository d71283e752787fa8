// trace_test.go: tests for trace file parsing and per-cycle grouping
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agilira/setcache"
)

func TestParseTraceLine_Fill(t *testing.T) {
	a, err := parseTraceLine("F 0 0x10 1 42")
	if err != nil {
		t.Fatalf("parseTraceLine: %v", err)
	}
	if a.kind != accessFill || a.port != 0 || a.addr != 0x10 || !a.valid || a.data != 42 {
		t.Fatalf("unexpected access: %+v", a)
	}
}

func TestParseTraceLine_FillInvalidateOmitsData(t *testing.T) {
	a, err := parseTraceLine("F 1 0x20 0")
	if err != nil {
		t.Fatalf("parseTraceLine: %v", err)
	}
	if a.kind != accessFill || a.valid {
		t.Fatalf("expected invalidate access, got %+v", a)
	}
}

func TestParseTraceLine_Read(t *testing.T) {
	a, err := parseTraceLine("R 0 0x30 1")
	if err != nil {
		t.Fatalf("parseTraceLine: %v", err)
	}
	if a.kind != accessRead || a.addr != 0x30 || !a.rwi {
		t.Fatalf("unexpected access: %+v", a)
	}
}

func TestParseTraceLine_RejectsUnknownKind(t *testing.T) {
	if _, err := parseTraceLine("Z 0 0x1"); err == nil {
		t.Fatalf("expected error for unknown access kind")
	}
}

func TestParseTraceLine_RejectsTooFewFields(t *testing.T) {
	if _, err := parseTraceLine("F 0"); err == nil {
		t.Fatalf("expected error for too few fields")
	}
}

func TestParseTraceFile_SkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.txt")
	content := "# a comment\n\nF 0 0x1 1 5\nR 0 0x1 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	accesses, err := parseTraceFile(path)
	if err != nil {
		t.Fatalf("parseTraceFile: %v", err)
	}
	if len(accesses) != 2 {
		t.Fatalf("expected 2 accesses, got %d: %+v", len(accesses), accesses)
	}
}

func TestLoadTrace_MemoizesByPathSizeAndMtime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.txt")
	if err := os.WriteFile(path, []byte("F 0 0x1 1 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := loadTrace(path)
	if err != nil {
		t.Fatalf("loadTrace: %v", err)
	}
	second, err := loadTrace(path)
	if err != nil {
		t.Fatalf("loadTrace (cached): %v", err)
	}
	if len(first) != len(second) || len(first) != 1 {
		t.Fatalf("expected memoized parse to match, got %+v vs %+v", first, second)
	}
}

func TestGroupByCycle_SamePortReuseStartsNewCycle(t *testing.T) {
	cfg := setcache.CacheConfig{FillPorts: 1, ReadPorts: 1}
	accesses := []access{
		{kind: accessFill, port: 0, addr: 0x1, valid: true, data: 1},
		{kind: accessFill, port: 0, addr: 0x2, valid: true, data: 2},
	}
	fillCycles, _ := groupByCycle(accesses, cfg)
	if len(fillCycles) != 2 {
		t.Fatalf("expected 2 cycles from reusing fill port 0 twice, got %d", len(fillCycles))
	}
	if fillCycles[0][0].Addr != 0x1 || fillCycles[1][0].Addr != 0x2 {
		t.Fatalf("cycle contents out of order: %+v", fillCycles)
	}
}

func TestGroupByCycle_DistinctPortsShareACycle(t *testing.T) {
	cfg := setcache.CacheConfig{FillPorts: 2, ReadPorts: 0}
	accesses := []access{
		{kind: accessFill, port: 0, addr: 0x1, valid: true, data: 1},
		{kind: accessFill, port: 1, addr: 0x2, valid: true, data: 2},
	}
	fillCycles, _ := groupByCycle(accesses, cfg)
	if len(fillCycles) != 1 {
		t.Fatalf("expected both accesses to share one cycle, got %d cycles", len(fillCycles))
	}
	if fillCycles[0][0].Addr != 0x1 || fillCycles[0][1].Addr != 0x2 {
		t.Fatalf("unexpected cycle contents: %+v", fillCycles[0])
	}
}

func TestGroupByCycle_OutOfRangePortIsIgnored(t *testing.T) {
	cfg := setcache.CacheConfig{FillPorts: 1, ReadPorts: 0}
	accesses := []access{
		{kind: accessFill, port: 5, addr: 0x1, valid: true, data: 1},
	}
	fillCycles, _ := groupByCycle(accesses, cfg)
	if len(fillCycles) != 0 {
		t.Fatalf("expected out-of-range port access to be dropped, got %+v", fillCycles)
	}
}
