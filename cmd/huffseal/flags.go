// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/huffseal/lib/config"
)

// commonFlags are accepted by every subcommand that reads
// configuration.
type commonFlags struct {
	configPath string
	verbose    bool
}

func (c *commonFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.configPath, "config", "", "path to huffseal.yaml (default: $HUFFSEAL_CONFIG, else built-in defaults)")
	flagSet.BoolVarP(&c.verbose, "verbose", "v", false, "log debug detail to stderr")
}

// load resolves and validates configuration and builds the logger.
func (c *commonFlags) load(command string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	if c.verbose {
		level = slog.LevelDebug
	}
	return cfg, newCommandLogger(level).With("command", command), nil
}

// newCommandLogger writes text records when stderr is a terminal and
// JSON records otherwise.
func newCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// newFlagSet returns a flag set whose usage output lists the
// subcommand's synopsis followed by its flags.
func newFlagSet(name, synopsis string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: huffseal %s\n\nFlags:\n%s", synopsis, flagSet.FlagUsages())
	}
	return flagSet
}

// parseFlags parses args. It returns done=true when --help was
// requested and usage has been printed.
func parseFlags(flagSet *pflag.FlagSet, args []string) (done bool, err error) {
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return false, fmt.Errorf("unexpected argument: %s", extra[0])
	}
	return false, nil
}
