// config_test.go: tests for simulator JSONC config loading and writing
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

func TestLoadSimConfig_ParsesJSONC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.jsonc")
	content := `{
		// a comment hujson must strip
		"addr_width": 32,
		"lines": 64,
		"ways": 4,
		"policy": "available-invalidated",
		"fill_ports": 2,
		"read_ports": 1,
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadSimConfig(path)
	if err != nil {
		t.Fatalf("loadSimConfig: %v", err)
	}
	if cfg.AddrWidth != 32 || cfg.Lines != 64 || cfg.Ways != 4 || cfg.FillPorts != 2 || cfg.ReadPorts != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Policy != setcache.AvailableInvalidated {
		t.Fatalf("expected AvailableInvalidated policy, got %v", cfg.Policy)
	}
}

func TestLoadSimConfig_DefaultPolicyIsPLRU(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.jsonc")
	if err := os.WriteFile(path, []byte(`{"lines": 8, "ways": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadSimConfig(path)
	if err != nil {
		t.Fatalf("loadSimConfig: %v", err)
	}
	if cfg.Policy != setcache.PseudoLRU {
		t.Fatalf("expected default PseudoLRU policy, got %v", cfg.Policy)
	}
}

func TestLoadSimConfig_RejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.jsonc")
	if err := os.WriteFile(path, []byte(`{"policy": "bogus"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSimConfig(path); err == nil {
		t.Fatalf("expected error for unknown policy string")
	}
}

func TestWriteThenLoadSimConfig_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonc")
	original := setcache.CacheConfig{
		AddrWidth: 40, Lines: 128, Ways: 8, Policy: setcache.PseudoLRU, FillPorts: 1, ReadPorts: 2,
	}
	if err := writeSimConfig(path, original); err != nil {
		t.Fatalf("writeSimConfig: %v", err)
	}

	loaded, err := loadSimConfig(path)
	if err != nil {
		t.Fatalf("loadSimConfig: %v", err)
	}
	if loaded != original {
		t.Fatalf("round trip mismatch: got %+v, want %+v", loaded, original)
	}
}
