// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alictl/alictl/internal/command"
	"github.com/alictl/alictl/internal/config"
	"github.com/alictl/alictl/internal/log"
	"github.com/alictl/alictl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)

		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. A command with no explicit @set still gets
// its "defaults" set injected when the config file defines one.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	insertIdx := idx
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		insertIdx = removeIdx
	}
	if len(args) < 2 {
		return args
	}
	return injectConfigSet(args, args[1]+"."+set, insertIdx)
}

// injectConfigSet expands the named config set into args at insertIdx. Each
// entry may hold several whitespace-separated tokens.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, _ := config.GetStringSlice(key)
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, splitFields(entry)...)
	}

	return append(args[:insertIdx], append(expanded, args[insertIdx:]...)...)
}

// deduplicateFlags removes earlier occurrences of a repeated flag so the last
// one wins. Config-injected defaults come first in args, so an explicit flag
// on the command line always overrides its default. Positional arguments are
// preserved in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		tokens []string
		flag   string
	}

	var units []unit
	tokens := args[2:]
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if !strings.HasPrefix(t, "-") {
			units = append(units, unit{tokens: []string{t}})
			continue
		}
		name := t
		if eq := strings.Index(t, "="); eq >= 0 {
			name = t[:eq]
			units = append(units, unit{tokens: []string{t}, flag: name})
			continue
		}
		// A flag followed by a non-flag token consumes it as its value.
		if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
			units = append(units, unit{tokens: []string{t, tokens[i+1]}, flag: name})
			i++
			continue
		}
		units = append(units, unit{tokens: []string{t}, flag: name})
	}

	last := make(map[string]int)
	for i, u := range units {
		if u.flag != "" {
			last[u.flag] = i
		}
	}

	result := args[:2]
	for i, u := range units {
		if u.flag != "" && last[u.flag] != i {
			continue
		}
		result = append(result, u.tokens...)
	}
	return result
}

// splitFields splits a string by whitespace, matching strings.Fields behavior.
func splitFields(s string) []string {
	var result []string
	start := -1

	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if start >= 0 {
				result = append(result, s[start:i])
				start = -1
			}
		} else {
			if start < 0 {
				start = i
			}
		}
	}

	if start >= 0 {
		result = append(result, s[start:])
	}

	return result
}
