// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/huffseal/lib/sealpack"
	"github.com/bureau-foundation/huffseal/lib/signature"
)

const restoredSuffix = ".restored"

const bypassWarning = `WARNING: bypass-insecure skips the content hash and signature checks.
The output is a best-effort recovery and may be corrupted or attacker-controlled.
`

func runUnpack(args []string) error {
	var (
		common       commonFlags
		inputPath    string
		outputPath   string
		modeName     string
		passwordFile string
		keyPath      string
	)

	flagSet := newFlagSet("unpack", "unpack --in FILE [flags]")
	common.add(flagSet)
	flagSet.StringVar(&inputPath, "in", "", "container to unpack (required)")
	flagSet.StringVar(&outputPath, "out", "", "output path (default: unique name next to the input)")
	flagSet.StringVar(&modeName, "mode", "", "strict, signature-only, or bypass-insecure (default: unpack.mode)")
	flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file, or - for stdin")
	flagSet.StringVar(&keyPath, "key", "", "public key PEM file (default: keys.public_key)")
	if done, err := parseFlags(flagSet, args); done || err != nil {
		return err
	}
	if inputPath == "" {
		flagSet.Usage()
		return fmt.Errorf("--in is required")
	}

	cfg, logger, err := common.load("unpack")
	if err != nil {
		return err
	}

	mode, err := cfg.UnpackMode()
	if modeName != "" {
		mode, err = sealpack.ParseMode(modeName)
	}
	if err != nil {
		return err
	}

	var verifier signature.Verifier
	if mode.Insecure() {
		fmt.Fprint(os.Stderr, bypassWarning)
	} else {
		if keyPath == "" {
			keyPath = cfg.Keys.PublicKey
		}
		verifier, err = signature.LoadVerifier(keyPath)
		if err != nil {
			return err
		}
	}

	blob, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	password, err := readSecret(passwordFile, "Password", "password-file", false)
	if err != nil {
		return err
	}
	defer password.Close()

	unpacker := sealpack.NewUnpacker(verifier, sealpack.WithLogger(logger))
	data, err := unpacker.Unpack(blob, password.Bytes(), mode)
	if err != nil {
		logger.Debug("unpack failed", "input", inputPath, "error", err)
		return err
	}

	written, err := writeResult(outputPath, cfg.Output.Directory, inputPath, restoredSuffix, data)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("unpacked", "input", inputPath, "output", written, "mode", mode.String(), "output_bytes", len(data))
	fmt.Println(written)
	return nil
}
