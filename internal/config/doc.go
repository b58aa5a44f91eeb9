// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for alictl's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/alictl.yaml or $HOME/.config/alictl.yaml
//   - Windows: %APPDATA%/alictl/alictl.yaml
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions. Note this file carries CLI defaults only; API credentials
// live in the separate ini-style ~/.aliyun.cfg handled by the aliyun
// package.
package config
