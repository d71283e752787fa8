// replay.go: non-interactive trace replay subcommand
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/agilira/setcache"
)

func cmdReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "cache config file (JSONC)")
	tracePath := fs.StringP("trace", "t", "", "trace file to replay")
	savePath := fs.StringP("save", "s", "", "write a snapshot of final state to this path")
	verbose := fs.BoolP("verbose", "v", false, "print per-cycle results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" || *tracePath == "" {
		return fmt.Errorf("replay requires --config and --trace")
	}

	cfg, err := loadSimConfig(*configPath)
	if err != nil {
		return err
	}
	cache, err := setcache.NewCache[uint64](cfg)
	if err != nil {
		return fmt.Errorf("constructing cache: %w", err)
	}

	accesses, err := loadTrace(*tracePath)
	if err != nil {
		return err
	}
	fillCycles, readCycles := groupByCycle(accesses, cache.Config())

	for i := range fillCycles {
		fillResults, readResults := cache.Tick(fillCycles[i], readCycles[i])
		if *verbose {
			printCycle(i, fillResults, readResults)
		}
	}

	stats := cache.Stats()
	fmt.Printf("cycles=%d read_hits=%d read_misses=%d fill_hits=%d fill_misses=%d evictions=%d invalidates=%d\n",
		stats.CyclesTicked, stats.ReadHits, stats.ReadMisses, stats.FillHits, stats.FillMisses, stats.Evictions, stats.Invalidates)

	if *savePath != "" {
		if err := saveSnapshot(*savePath, cache); err != nil {
			return err
		}
		fmt.Printf("snapshot written to %s\n", *savePath)
	}
	return nil
}

func printCycle[D any](cycle int, fills []setcache.FillResult[D], reads []setcache.ReadResult[D]) {
	fmt.Fprintf(os.Stdout, "cycle %d:\n", cycle)
	for i, fr := range fills {
		if fr.Evicted {
			fmt.Printf("  fill[%d] evicted addr=0x%x\n", i, fr.EvictAddr)
		}
	}
	for i, rr := range reads {
		fmt.Printf("  read[%d] valid=%v data=%v\n", i, rr.Valid, rr.Data)
	}
}
