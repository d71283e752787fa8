// cachesim is a CLI harness for driving the setcache control-logic model:
// replaying access traces, stepping cycles interactively, inspecting cache
// shape, and generating config files.
//
// Copyright (c) 2025 AGILira
// Series: an AGLIra fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "replay":
		err = cmdReplay(args)
	case "repl":
		err = cmdRepl(args)
	case "inspect":
		err = cmdInspect(args)
	case "config":
		err = cmdConfig(args)
	case "version":
		fmt.Printf("cachesim version %s\n", version)
	case "help", "-h", "--help":
		showHelp()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "cachesim: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("cachesim - set-associative cache control logic simulator")
	fmt.Println()
	fmt.Println("USAGE: cachesim <command> [flags]")
	fmt.Println()
	fmt.Println("COMMANDS:")
	fmt.Println("  replay    Replay a trace file of fill/read accesses against a cache")
	fmt.Println("  repl      Interactive cycle-by-cycle session")
	fmt.Println("  inspect   Print a cache shape or a saved snapshot's header")
	fmt.Println("  config    Generate a cache config file for a hierarchy tier preset")
	fmt.Println("  version   Show version information")
	fmt.Println("  help      Show this help")
}
