// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/sealpack"
)

const containerSuffix = ".huffseal"

func runPack(args []string) error {
	var (
		common         commonFlags
		inputPath      string
		outputPath     string
		modeName       string
		hashName       string
		passwordFile   string
		keyPath        string
		passphraseFile string
	)

	flagSet := newFlagSet("pack", "pack --in FILE [flags]")
	common.add(flagSet)
	flagSet.StringVar(&inputPath, "in", "", "file to pack (required)")
	flagSet.StringVar(&outputPath, "out", "", "container path (default: unique name next to the input)")
	flagSet.StringVar(&modeName, "mode", "", "strict or signature-only (default: pack.mode)")
	flagSet.StringVar(&hashName, "hash", "", "content hash for strict mode: sha256 or blake3 (default: pack.hash)")
	flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file, or - for stdin")
	flagSet.StringVar(&keyPath, "key", "", "private key PEM file (default: keys.private_key)")
	flagSet.StringVar(&passphraseFile, "passphrase-file", "", "passphrase for a sealed private key (default: keys.passphrase_file)")
	if done, err := parseFlags(flagSet, args); done || err != nil {
		return err
	}
	if inputPath == "" {
		flagSet.Usage()
		return fmt.Errorf("--in is required")
	}

	cfg, logger, err := common.load("pack")
	if err != nil {
		return err
	}

	mode, err := cfg.PackMode()
	if modeName != "" {
		mode, err = sealpack.ParseMode(modeName)
	}
	if err != nil {
		return err
	}
	if mode.Insecure() {
		return fmt.Errorf("%s is an unpack mode; pack with strict or signature-only", mode)
	}

	algorithm, err := cfg.HashAlgorithm()
	if hashName != "" {
		algorithm, err = digest.ParseAlgorithm(hashName)
	}
	if err != nil {
		return err
	}

	if keyPath == "" {
		keyPath = cfg.Keys.PrivateKey
	}
	if passphraseFile == "" {
		passphraseFile = cfg.Keys.PassphraseFile
	}
	if err := checkStdinSources(map[string]string{
		"password-file":   passwordFile,
		"passphrase-file": passphraseFile,
	}); err != nil {
		return err
	}
	signer, err := loadSigner(keyPath, passphraseFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	password, err := readSecret(passwordFile, "Password", "password-file", true)
	if err != nil {
		return err
	}
	defer password.Close()

	packer, err := sealpack.NewPacker(signer,
		sealpack.WithHashAlgorithm(algorithm),
		sealpack.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	blob, err := packer.Pack(data, password.Bytes(), mode)
	if err != nil {
		return err
	}

	written, err := writeResult(outputPath, cfg.Output.Directory, inputPath, containerSuffix, blob)
	if err != nil {
		return fmt.Errorf("writing container: %w", err)
	}
	logger.Info("packed", "input", inputPath, "output", written, "mode", mode.String(),
		"input_bytes", len(data), "container_bytes", len(blob))
	fmt.Println(written)
	return nil
}
