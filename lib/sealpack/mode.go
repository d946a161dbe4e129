// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealpack

import "fmt"

// Mode selects which verification steps run.
type Mode uint8

const (
	// ModeStrict hashes on pack and verifies hash and signatures on
	// unpack.
	ModeStrict Mode = iota

	// ModeSignatureOnly omits the content hash and verifies only the
	// signatures.
	ModeSignatureOnly

	// ModeBypass skips every check on unpack. INSECURE: best-effort
	// recovery only; tampered containers decode to corrupted output
	// without any error.
	ModeBypass
)

// String returns the mode's configuration name.
func (mode Mode) String() string {
	switch mode {
	case ModeStrict:
		return "strict"
	case ModeSignatureOnly:
		return "signature-only"
	case ModeBypass:
		return "bypass-insecure"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(mode))
	}
}

// Insecure reports whether the mode skips all verification.
func (mode Mode) Insecure() bool {
	return mode == ModeBypass
}

// hashes reports whether pack computes a content hash and unpack
// compares it.
func (mode Mode) hashes() bool {
	return mode == ModeStrict
}

// verifies reports whether unpack checks signatures.
func (mode Mode) verifies() bool {
	return mode == ModeStrict || mode == ModeSignatureOnly
}

func (mode Mode) valid() bool {
	return mode <= ModeBypass
}

// ParseMode converts a configuration name to a Mode. The empty string
// selects [ModeStrict].
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "strict":
		return ModeStrict, nil
	case "signature-only":
		return ModeSignatureOnly, nil
	case "bypass-insecure":
		return ModeBypass, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (valid: strict, signature-only, bypass-insecure)", name)
	}
}
