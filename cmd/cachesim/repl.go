// repl.go: interactive cycle-by-cycle session
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/agilira/setcache"
)

// replSession holds the cache and port shapes an interactive run drives one
// cycle at a time.
type replSession struct {
	cache *setcache.Cache[uint64]
	liner *liner.State
}

func cmdRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "cache config file (JSONC)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg setcache.CacheConfig
	if *configPath != "" {
		loaded, err := loadSimConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = setcache.Recommend(setcache.TierL1, 32)
	}

	cache, err := setcache.NewCache[uint64](cfg)
	if err != nil {
		return fmt.Errorf("constructing cache: %w", err)
	}

	r := &replSession{cache: cache}
	return r.run()
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cachesim_history")
}

func (r *replSession) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(replHistoryPath()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	cfg := r.cache.Config()
	fmt.Printf("cachesim repl (lines=%d ways=%d policy=%s fill_ports=%d read_ports=%d)\n",
		cfg.Lines, cfg.Ways, cfg.Policy, cfg.FillPorts, cfg.ReadPorts)
	fmt.Println("type 'help' for commands")

	for {
		line, err := r.liner.Prompt("cachesim> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nbye")
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.liner.AppendHistory(line)

		fields := strings.Fields(line)
		cmd, rest := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "exit", "quit", "q":
			r.saveHistory()
			return nil
		case "help", "?":
			r.printHelp()
		case "fill":
			r.cmdFill(rest)
		case "read":
			r.cmdRead(rest)
		case "tick":
			r.cmdTick()
		case "reset":
			r.cache.Reset()
			fmt.Println("cache reset")
		case "stats":
			r.printStats()
		case "save":
			r.cmdSave(rest)
		case "load":
			r.cmdLoad(rest)
		default:
			fmt.Printf("unknown command: %s (type 'help')\n", cmd)
		}
	}

	r.saveHistory()
	return nil
}

func (r *replSession) saveHistory() {
	if path := replHistoryPath(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *replSession) completer(line string) []string {
	commands := []string{"fill", "read", "tick", "reset", "stats", "save", "load", "help", "exit"}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

func (r *replSession) printHelp() {
	fmt.Println("commands:")
	fmt.Println("  fill <port> <addr> <valid> [data]   stage a fill port access for the next tick")
	fmt.Println("  read <port> <addr> [rwi]             stage a read port access for the next tick")
	fmt.Println("  tick                                 advance one cycle, applying staged accesses")
	fmt.Println("  reset                                clear the cache to its construction-time state")
	fmt.Println("  stats                                print cumulative statistics")
	fmt.Println("  save <path>                           write a snapshot to disk")
	fmt.Println("  load <path>                           restore a snapshot from disk")
	fmt.Println("  exit                                  leave the session")
}

// staged holds one cycle's worth of port accesses accumulated by fill/read
// commands, applied and cleared on the next "tick".
var stagedFills []setcache.FillRequest[uint64]
var stagedReads []setcache.ReadRequest

func (r *replSession) ensureStaged() {
	cfg := r.cache.Config()
	if stagedFills == nil {
		stagedFills = make([]setcache.FillRequest[uint64], cfg.FillPorts)
	}
	if stagedReads == nil {
		stagedReads = make([]setcache.ReadRequest, cfg.ReadPorts)
	}
}

func (r *replSession) cmdFill(args []string) {
	r.ensureStaged()
	if len(args) < 3 {
		fmt.Println("usage: fill <port> <addr> <valid> [data]")
		return
	}
	port, err1 := strconv.Atoi(args[0])
	addr, err2 := strconv.ParseUint(args[1], 0, 64)
	valid := args[2] == "1"
	var data uint64
	var err3 error
	if valid && len(args) > 3 {
		data, err3 = strconv.ParseUint(args[3], 0, 64)
	}
	if err1 != nil || err2 != nil || err3 != nil || port < 0 || port >= len(stagedFills) {
		fmt.Println("invalid fill arguments")
		return
	}
	stagedFills[port] = setcache.FillRequest[uint64]{En: true, Valid: valid, Addr: addr, Data: data}
	fmt.Printf("staged fill[%d]\n", port)
}

func (r *replSession) cmdRead(args []string) {
	r.ensureStaged()
	if len(args) < 2 {
		fmt.Println("usage: read <port> <addr> [rwi]")
		return
	}
	port, err1 := strconv.Atoi(args[0])
	addr, err2 := strconv.ParseUint(args[1], 0, 64)
	rwi := len(args) > 2 && args[2] == "1"
	if err1 != nil || err2 != nil || port < 0 || port >= len(stagedReads) {
		fmt.Println("invalid read arguments")
		return
	}
	stagedReads[port] = setcache.ReadRequest{En: true, Addr: addr, ReadWithInvalidate: rwi}
	fmt.Printf("staged read[%d]\n", port)
}

func (r *replSession) cmdTick() {
	r.ensureStaged()
	fillResults, readResults := r.cache.Tick(stagedFills, stagedReads)
	for i, fr := range fillResults {
		if fr.Evicted {
			fmt.Printf("fill[%d] evicted addr=0x%x data=%v\n", i, fr.EvictAddr, fr.EvictData)
		}
	}
	for i, rr := range readResults {
		if rr.Valid {
			fmt.Printf("read[%d] hit data=%v\n", i, rr.Data)
		}
	}
	stagedFills = nil
	stagedReads = nil
}

func (r *replSession) printStats() {
	s := r.cache.Stats()
	fmt.Printf("cycles=%d read_hits=%d read_misses=%d fill_hits=%d fill_misses=%d evictions=%d invalidates=%d\n",
		s.CyclesTicked, s.ReadHits, s.ReadMisses, s.FillHits, s.FillMisses, s.Evictions, s.Invalidates)
}

func (r *replSession) cmdSave(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: save <path>")
		return
	}
	if err := saveSnapshot(args[0], r.cache); err != nil {
		fmt.Printf("save failed: %v\n", err)
		return
	}
	fmt.Printf("saved to %s\n", args[0])
}

func (r *replSession) cmdLoad(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: load <path>")
		return
	}
	if err := loadSnapshotInto(args[0], r.cache); err != nil {
		fmt.Printf("load failed: %v\n", err)
		return
	}
	fmt.Printf("loaded from %s\n", args[0])
}
