// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"errors"
	"fmt"
)

// Scheme identifies a signature algorithm. The numeric values are
// stored in containers and must not be renumbered.
type Scheme uint8

const (
	// SchemeNone marks an unsigned container. No Signer or Verifier
	// reports it.
	SchemeNone Scheme = 0

	// SchemeRSAPSS is RSA-PSS with SHA-256 and maximum salt length.
	SchemeRSAPSS Scheme = 1

	// SchemeMLDSA65 is ML-DSA-65 (FIPS 204).
	SchemeMLDSA65 Scheme = 2
)

// String returns the scheme name used in flags and configuration.
func (scheme Scheme) String() string {
	switch scheme {
	case SchemeNone:
		return "none"
	case SchemeRSAPSS:
		return "rsa-pss"
	case SchemeMLDSA65:
		return "ml-dsa-65"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(scheme))
	}
}

// ParseScheme converts a scheme name to a Scheme. The empty string
// selects the default, [SchemeRSAPSS].
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "", "rsa-pss":
		return SchemeRSAPSS, nil
	case "ml-dsa-65":
		return SchemeMLDSA65, nil
	default:
		return SchemeNone, fmt.Errorf("unknown signature scheme %q (valid: rsa-pss, ml-dsa-65)", name)
	}
}

// Signer produces signatures over arbitrary bytes.
type Signer interface {
	Sign(data []byte) ([]byte, error)
	Scheme() Scheme
}

// Verifier checks signatures produced by the matching Signer.
type Verifier interface {
	// Verify reports whether signature is a valid signature over data.
	// It never panics; malformed input yields false.
	Verify(data, signature []byte) bool
	Scheme() Scheme
}

var (
	// ErrUnsupportedKey is returned when a PEM block holds a key type
	// or encoding this package does not handle.
	ErrUnsupportedKey = errors.New("signature: unsupported key")

	// ErrPassphraseRequired is returned by [LoadSigner] when the
	// private key file is sealed and no passphrase was supplied.
	ErrPassphraseRequired = errors.New("signature: private key is sealed and no passphrase was supplied")
)
