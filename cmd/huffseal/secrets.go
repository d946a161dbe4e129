// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/bureau-foundation/huffseal/lib/secret"
	"github.com/bureau-foundation/huffseal/lib/signature"
)

// readSecret reads a password or passphrase. If path is non-empty it
// is read with secret.ReadFromPath ("-" means the first line of
// stdin). Otherwise the user is prompted on the terminal with echo
// disabled; with confirm set, the prompt is repeated and both entries
// must match.
func readSecret(path, prompt, flagName string, confirm bool) (*secret.Buffer, error) {
	if path != "" {
		buffer, err := secret.ReadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", flagName, err)
		}
		return buffer, nil
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive prompt (use --%s)", flagName)
	}

	first, err := promptSecret(stdinFileDescriptor, prompt+": ")
	if err != nil {
		return nil, err
	}
	if !confirm {
		return first, nil
	}

	second, err := promptSecret(stdinFileDescriptor, "Confirm "+prompt+": ")
	if err != nil {
		first.Close()
		return nil, err
	}
	defer second.Close()
	if !first.Equal(second) {
		first.Close()
		return nil, fmt.Errorf("entries do not match")
	}
	return first, nil
}

// checkStdinSources fails when more than one secret flag reads from
// stdin: each read consumes stdin, so only the first can succeed.
func checkStdinSources(sources map[string]string) error {
	var stdinFlags []string
	for flagName, path := range sources {
		if path == "-" {
			stdinFlags = append(stdinFlags, "--"+flagName)
		}
	}
	if len(stdinFlags) > 1 {
		sort.Strings(stdinFlags)
		return fmt.Errorf("only one of %s can read from stdin", strings.Join(stdinFlags, " and "))
	}
	return nil
}

func promptSecret(fileDescriptor int, prompt string) (*secret.Buffer, error) {
	fmt.Fprint(os.Stderr, prompt)
	entered, err := term.ReadPassword(fileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading from terminal: %w", err)
	}
	if len(entered) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	buffer, err := secret.NewFromBytes(entered)
	if err != nil {
		secret.Zero(entered)
		return nil, err
	}
	return buffer, nil
}

// loadSigner loads the private key, reading the passphrase from
// passphraseFile when given and prompting only if the key turns out to
// be sealed.
func loadSigner(keyPath, passphraseFile string) (signature.Signer, error) {
	var passphrase *secret.Buffer
	if passphraseFile != "" {
		var err error
		passphrase, err = readSecret(passphraseFile, "", "passphrase-file", false)
		if err != nil {
			return nil, err
		}
		defer passphrase.Close()
	}

	signer, err := signature.LoadSigner(keyPath, passphrase)
	if err == nil || passphrase != nil || !errors.Is(err, signature.ErrPassphraseRequired) {
		return signer, err
	}

	passphrase, err = readSecret("", "Key passphrase", "passphrase-file", false)
	if err != nil {
		return nil, err
	}
	defer passphrase.Close()
	return signature.LoadSigner(keyPath, passphrase)
}
