// trace.go: trace file parsing, memoized by path/size/mtime
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maypok86/otter"

	"github.com/agilira/setcache"
)

// access is one line of a trace file: either a fill port access ("F") or a
// read port access ("R"), on a fixed port index.
//
//	F <port> <addr> <valid> <data>   fill: valid=1 installs data, valid=0 invalidates
//	R <port> <addr> <rwi>            read: rwi=1 requests read-with-invalidate
type access struct {
	kind accessKind
	port int
	addr uint64
	// fill fields
	valid bool
	data  uint64
	// read fields
	rwi bool
}

type accessKind int

const (
	accessFill accessKind = iota
	accessRead
)

// traceCacheCapacity bounds how many distinct parsed trace files are kept
// in memory at once; the teacher's only third-party dependency besides its
// own domain logic (maypok86/otter) is repurposed here as a bounded
// memoization cache for this pure, outside-the-cycle-accurate-core parse
// step, rather than dropped for having no role.
const traceCacheCapacity = 64

var traceCache = mustBuildTraceCache()

func mustBuildTraceCache() otter.Cache[string, []access] {
	c, err := otter.MustBuilder[string, []access](traceCacheCapacity).Build()
	if err != nil {
		panic(fmt.Sprintf("cachesim: building trace memoization cache: %v", err))
	}
	return c
}

// loadTrace parses a trace file, memoized by path+size+mtime so loading the
// same unchanged file again within one process doesn't re-parse.
func loadTrace(path string) ([]access, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	key := fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano())

	if cached, ok := traceCache.Get(key); ok {
		return cached, nil
	}

	parsed, err := parseTraceFile(path)
	if err != nil {
		return nil, err
	}
	traceCache.Set(key, parsed)
	return parsed, nil
}

func parseTraceFile(path string) ([]access, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied trace path
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var accesses []access
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		a, err := parseTraceLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		accesses = append(accesses, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return accesses, nil
}

func parseTraceLine(line string) (access, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return access{}, fmt.Errorf("too few fields in %q", line)
	}

	port, err := strconv.Atoi(fields[1])
	if err != nil {
		return access{}, fmt.Errorf("invalid port %q: %w", fields[1], err)
	}
	addr, err := strconv.ParseUint(fields[2], 0, 64)
	if err != nil {
		return access{}, fmt.Errorf("invalid address %q: %w", fields[2], err)
	}

	switch strings.ToUpper(fields[0]) {
	case "F":
		if len(fields) < 4 {
			return access{}, fmt.Errorf("fill access missing valid flag in %q", line)
		}
		valid := fields[3] == "1"
		var data uint64
		if valid {
			if len(fields) < 5 {
				return access{}, fmt.Errorf("fill install missing data in %q", line)
			}
			data, err = strconv.ParseUint(fields[4], 0, 64)
			if err != nil {
				return access{}, fmt.Errorf("invalid data %q: %w", fields[4], err)
			}
		}
		return access{kind: accessFill, port: port, addr: addr, valid: valid, data: data}, nil
	case "R":
		rwi := len(fields) >= 4 && fields[3] == "1"
		return access{kind: accessRead, port: port, addr: addr, rwi: rwi}, nil
	default:
		return access{}, fmt.Errorf("unknown access kind %q", fields[0])
	}
}

// groupByCycle packs a flat access list into per-cycle fill/read request
// slices sized to cfg's port counts. Two accesses to the same port of the
// same kind start a new cycle.
func groupByCycle(accesses []access, cfg setcache.CacheConfig) ([][]setcache.FillRequest[uint64], [][]setcache.ReadRequest) {
	var fillCycles [][]setcache.FillRequest[uint64]
	var readCycles [][]setcache.ReadRequest

	fills := make([]setcache.FillRequest[uint64], cfg.FillPorts)
	reads := make([]setcache.ReadRequest, cfg.ReadPorts)
	fillUsed := make([]bool, cfg.FillPorts)
	readUsed := make([]bool, cfg.ReadPorts)

	flush := func() {
		fillCycles = append(fillCycles, fills)
		readCycles = append(readCycles, reads)
		fills = make([]setcache.FillRequest[uint64], cfg.FillPorts)
		reads = make([]setcache.ReadRequest, cfg.ReadPorts)
		fillUsed = make([]bool, cfg.FillPorts)
		readUsed = make([]bool, cfg.ReadPorts)
	}

	any := func() bool {
		for _, u := range fillUsed {
			if u {
				return true
			}
		}
		for _, u := range readUsed {
			if u {
				return true
			}
		}
		return false
	}

	for _, a := range accesses {
		switch a.kind {
		case accessFill:
			if a.port < 0 || a.port >= cfg.FillPorts {
				continue
			}
			if fillUsed[a.port] {
				flush()
			}
			fills[a.port] = setcache.FillRequest[uint64]{En: true, Valid: a.valid, Addr: a.addr, Data: a.data}
			fillUsed[a.port] = true
		case accessRead:
			if a.port < 0 || a.port >= cfg.ReadPorts {
				continue
			}
			if readUsed[a.port] {
				flush()
			}
			reads[a.port] = setcache.ReadRequest{En: true, Addr: a.addr, ReadWithInvalidate: a.rwi}
			readUsed[a.port] = true
		}
	}
	if any() {
		flush()
	}
	return fillCycles, readCycles
}
