// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the huffseal
// command.
//
// Configuration is loaded from a single file specified by either the
// HUFFSEAL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. [Resolve] applies that precedence and falls back to
// [Default] only when neither is given.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value; command-line flags do, in the
// command itself.
//
// The insecure bypass unpack mode cannot be configured. It must be
// requested on the command line for each invocation.
//
// Key exports:
//
//   - [Config] -- master struct with Keys, Pack, Unpack, Output, Log
//   - [Default] -- returns a Config with built-in defaults
//   - [Load], [LoadFile] and [Resolve] -- the entry points for loading
package config
