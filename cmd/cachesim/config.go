// config.go: simulator config file loading (JSONC via hujson)
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/agilira/setcache"
)

// simConfig is the on-disk shape of a cachesim config file: JSON-with-
// comments, standardized to plain JSON before unmarshaling, following the
// teacher's own config pipeline.
type simConfig struct {
	AddrWidth int    `json:"addr_width,omitempty"`
	Lines     int    `json:"lines,omitempty"`
	Ways      int    `json:"ways,omitempty"`
	Policy    string `json:"policy,omitempty"` // "plru" or "available-invalidated"
	FillPorts int    `json:"fill_ports,omitempty"`
	ReadPorts int    `json:"read_ports,omitempty"`
}

func loadSimConfig(path string) (setcache.CacheConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return setcache.CacheConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return setcache.CacheConfig{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var sc simConfig
	if err := json.Unmarshal(standardized, &sc); err != nil {
		return setcache.CacheConfig{}, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	cfg := setcache.CacheConfig{
		AddrWidth: sc.AddrWidth,
		Lines:     sc.Lines,
		Ways:      sc.Ways,
		FillPorts: sc.FillPorts,
		ReadPorts: sc.ReadPorts,
	}
	switch sc.Policy {
	case "available-invalidated":
		cfg.Policy = setcache.AvailableInvalidated
	case "", "plru":
		cfg.Policy = setcache.PseudoLRU
	default:
		return setcache.CacheConfig{}, fmt.Errorf("%s: unknown policy %q", path, sc.Policy)
	}

	return cfg, nil
}

func writeSimConfig(path string, cfg setcache.CacheConfig) error {
	sc := simConfig{
		AddrWidth: cfg.AddrWidth,
		Lines:     cfg.Lines,
		Ways:      cfg.Ways,
		Policy:    cfg.Policy.String(),
		FillPorts: cfg.FillPorts,
		ReadPorts: cfg.ReadPorts,
	}
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644) //nolint:gosec // config file, not a secret
}
