// inspect_test.go: tests for the inspect subcommand
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

func TestInspectConfig_AppliesDefaultsBeforeComputingLayout(t *testing.T) {
	if err := inspectConfig(setcache.CacheConfig{}); err != nil {
		t.Fatalf("inspectConfig(zero value): %v", err)
	}
}

func TestInspectConfig_RejectsInvalidConfig(t *testing.T) {
	err := inspectConfig(setcache.CacheConfig{Lines: 1, Ways: 3, Policy: setcache.PseudoLRU})
	if err == nil {
		t.Fatalf("expected error for PLRU with ways=3")
	}
}

func TestInspectSnapshot_PrintsHeaderAndCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.bin")

	cache, err := setcache.NewCache[uint64](setcache.CacheConfig{Lines: 1, Ways: 1, FillPorts: 1, ReadPorts: 1})
	if err != nil {
		t.Fatal(err)
	}
	cache.Tick([]setcache.FillRequest[uint64]{{En: true, Valid: true, Addr: 0x1, Data: 1}}, nil)
	if err := saveSnapshot(path, cache); err != nil {
		t.Fatal(err)
	}

	if err := inspectSnapshot(path); err != nil {
		t.Fatalf("inspectSnapshot: %v", err)
	}
}

func TestCmdInspect_RequiresConfigOrSnapshot(t *testing.T) {
	if err := cmdInspect(nil); err == nil {
		t.Fatalf("expected error when neither --config nor --snapshot is given")
	}
}

func TestCmdConfig_WritesPresetFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "preset.jsonc")

	if err := cmdConfig([]string{"--tier", "l2", "--out", out}); err != nil {
		t.Fatalf("cmdConfig: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected preset file to exist: %v", err)
	}

	cfg, err := loadSimConfig(out)
	if err != nil {
		t.Fatalf("loadSimConfig(preset): %v", err)
	}
	if cfg.Lines != 512 || cfg.Ways != 8 {
		t.Fatalf("unexpected l2 preset config: %+v", cfg)
	}
}
