// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/huffseal/lib/secret"
	"github.com/bureau-foundation/huffseal/lib/signature"
)

func runKeygen(args []string) error {
	var (
		common         commonFlags
		directory      string
		schemeName     string
		bits           int
		passphraseFile string
		seal           bool
	)

	flagSet := newFlagSet("keygen", "keygen [flags]")
	common.add(flagSet)
	flagSet.StringVar(&directory, "dir", "", "directory for the key files (default: directory of keys.private_key)")
	flagSet.StringVar(&schemeName, "scheme", "rsa-pss", "signature scheme: rsa-pss or ml-dsa-65")
	flagSet.IntVar(&bits, "bits", 2048, "RSA modulus size")
	flagSet.StringVar(&passphraseFile, "passphrase-file", "", "seal the private key with the passphrase in this file")
	flagSet.BoolVar(&seal, "seal", false, "seal the private key with a passphrase entered at the terminal")
	if done, err := parseFlags(flagSet, args); done || err != nil {
		return err
	}

	cfg, logger, err := common.load("keygen")
	if err != nil {
		return err
	}
	scheme, err := signature.ParseScheme(schemeName)
	if err != nil {
		return err
	}
	if directory == "" {
		directory = filepath.Dir(cfg.Keys.PrivateKey)
	}
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	var passphrase *secret.Buffer
	if passphraseFile != "" || seal {
		passphrase, err = readSecret(passphraseFile, "Key passphrase", "passphrase-file", true)
		if err != nil {
			return err
		}
		defer passphrase.Close()
	}

	pair, err := signature.GenerateKeyPair(scheme, bits)
	if err != nil {
		return err
	}
	defer pair.Close()

	if err := signature.WriteKeyPair(directory, pair, passphrase); err != nil {
		return err
	}

	logger.Info("generated key pair", "scheme", scheme.String(), "directory", directory, "sealed", passphrase != nil)
	fmt.Println(filepath.Join(directory, signature.PrivateKeyFile))
	fmt.Println(filepath.Join(directory, signature.PublicKeyFile))
	return nil
}
