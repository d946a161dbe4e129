// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/huffseal/lib/huffstats"
)

func runStats(args []string) error {
	var inputPath string

	flagSet := newFlagSet("stats", "stats --in FILE")
	flagSet.StringVar(&inputPath, "in", "", "file to analyze (required)")
	if done, err := parseFlags(flagSet, args); done || err != nil {
		return err
	}
	if inputPath == "" {
		flagSet.Usage()
		return fmt.Errorf("--in is required")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	report, err := huffstats.Analyze(data)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", inputPath, err)
	}
	return report.Write(os.Stdout)
}
