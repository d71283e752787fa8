// inspect.go: print a cache config's derived shape, or a snapshot's header
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/agilira/setcache"
	"github.com/agilira/setcache/internal/snapshot"
)

func cmdInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "cache config file to inspect")
	snapshotPath := fs.StringP("snapshot", "s", "", "snapshot file to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *configPath != "":
		cfg, err := loadSimConfig(*configPath)
		if err != nil {
			return err
		}
		return inspectConfig(cfg)
	case *snapshotPath != "":
		return inspectSnapshot(*snapshotPath)
	default:
		return fmt.Errorf("inspect requires --config or --snapshot")
	}
}

func inspectConfig(cfg setcache.CacheConfig) error {
	result := setcache.ValidateConfig(cfg)
	if !result.Valid {
		return fmt.Errorf("invalid config: %w", result.Error)
	}
	cfg = cfg.WithDefaults()

	layout, err := setcache.NewAddressLayout(cfg.AddrWidth, cfg.Lines, cfg.Ways)
	if err != nil {
		return err
	}
	fmt.Printf("addr_width=%d lines=%d ways=%d policy=%s fill_ports=%d read_ports=%d\n",
		cfg.AddrWidth, cfg.Lines, cfg.Ways, cfg.Policy, cfg.FillPorts, cfg.ReadPorts)
	fmt.Printf("line_bits=%d tag_bits=%d way_bits=%d\n", layout.LineBits(), layout.TagBits(), layout.WayBits())
	for _, s := range result.Suggestions {
		fmt.Printf("suggestion: %s\n", s)
	}
	return nil
}

func inspectSnapshot(path string) error {
	h, lines, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("policy_kind=%d addr_width=%d lines=%d ways=%d\n", h.PolicyKind, h.AddrWidth, h.Lines, h.Ways)

	valid := 0
	for _, l := range lines {
		for _, w := range l.Ways {
			if w.Valid {
				valid++
			}
		}
	}
	fmt.Printf("valid entries: %d / %d\n", valid, int(h.Lines)*int(h.Ways))
	return nil
}
