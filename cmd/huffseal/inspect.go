// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/huffseal/lib/codec"
	"github.com/bureau-foundation/huffseal/lib/container"
	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/sealpack"
)

func runInspect(args []string) error {
	var (
		common       commonFlags
		inputPath    string
		passwordFile string
		diagnostic   bool
	)

	flagSet := newFlagSet("inspect", "inspect --in FILE [flags]")
	common.add(flagSet)
	flagSet.StringVar(&inputPath, "in", "", "container to inspect (required)")
	flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file, or - for stdin")
	flagSet.BoolVar(&diagnostic, "diagnostic", false, "also print the container in CBOR diagnostic notation")
	if done, err := parseFlags(flagSet, args); done || err != nil {
		return err
	}
	if inputPath == "" {
		flagSet.Usage()
		return fmt.Errorf("--in is required")
	}

	_, logger, err := common.load("inspect")
	if err != nil {
		return err
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

	record, err := sealpack.NewUnpacker(nil, sealpack.WithLogger(logger)).Open(blob, password.Bytes())
	if err != nil {
		return err
	}
	return printContainer(os.Stdout, record, diagnostic)
}

// printContainer writes container metadata. Nothing here is verified;
// the output says so.
func printContainer(w io.Writer, record *container.Container, diagnostic bool) error {
	table, err := record.CodeTable()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "format version:   %d\n", record.Version)
	fmt.Fprintf(w, "payload:          %d bytes (padding header %d)\n", len(record.Payload), record.Payload[0])
	fmt.Fprintf(w, "code table:       %d symbols, longest code %d bits\n", len(table), table.MaxLength())
	if len(record.ContentHash) > 0 {
		var hash digest.Digest
		copy(hash[:], record.ContentHash)
		fmt.Fprintf(w, "content hash:     %s %s\n", record.HashAlgorithm, digest.Format(hash))
	} else {
		fmt.Fprintf(w, "content hash:     none (signature-only container)\n")
	}
	fmt.Fprintf(w, "signature:        %s, %d bytes\n", record.SignatureScheme, len(record.Signature))
	fmt.Fprintf(w, "table signature:  %s, %d bytes\n", record.SignatureScheme, len(record.TableSignature))
	fmt.Fprintf(w, "verified:         no (use unpack to verify)\n")

	if !diagnostic {
		return nil
	}
	encoded, err := codec.Marshal(record)
	if err != nil {
		return err
	}
	notation, err := codec.Diagnose(encoded)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s\n", notation)
	return err
}
