// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for alictl. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
