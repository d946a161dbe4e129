// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/huffseal/lib/sealpack"
	"github.com/bureau-foundation/huffseal/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := args[0]
	switch subcommand {
	case "pack":
		return runPack(args[1:])
	case "unpack":
		return runUnpack(args[1:])
	case "inspect":
		return runInspect(args[1:])
	case "keygen":
		return runKeygen(args[1:])
	case "stats":
		return runStats(args[1:])
	case "version":
		fmt.Printf("huffseal %s\n", version.Full())
		return nil
	case "--version":
		fmt.Println(version.Short())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

// errorMessage prefers the classified reason for pipeline failures so
// users never see internal detail from the failing stage.
func errorMessage(err error) string {
	var failure *sealpack.Error
	if errors.As(err, &failure) {
		return failure.Reason()
	}
	return err.Error()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: huffseal <subcommand> [flags]

Subcommands:
  pack        Compress, sign and encrypt a file
  unpack      Decrypt, verify and decompress a container
  inspect     Show a container's metadata without verifying it
  keygen      Generate a signing key pair
  stats       Report compression statistics for a file
  version     Print version information

Run 'huffseal <subcommand> --help' for subcommand flags.
`)
}
