// genconfig.go: "config" subcommand — write a hierarchy-tier preset file
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/agilira/setcache"
)

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	tier := fs.StringP("tier", "t", "l1", "hierarchy tier preset: l1, l2, l3")
	addrWidth := fs.IntP("addr-width", "a", 32, "address bit width")
	out := fs.StringP("out", "o", "cachesim.jsonc", "output config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := setcache.Recommend(setcache.HierarchyTier(*tier), *addrWidth)
	if result := setcache.ValidateConfig(cfg); !result.Valid {
		return fmt.Errorf("generated preset is invalid: %w", result.Error)
	}

	if err := writeSimConfig(*out, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s preset to %s\n", *tier, *out)
	return nil
}
