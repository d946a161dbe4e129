// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealpack

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/huffseal/lib/container"
	"github.com/bureau-foundation/huffseal/lib/envelope"
	"github.com/bureau-foundation/huffseal/lib/huffman"
)

// Sentinel errors for errors.Is checks. The first four are the
// underlying packages' sentinels, re-exported so callers need only
// this package.
var (
	// ErrEmptyAlphabet is returned by Pack for empty input.
	ErrEmptyAlphabet = huffman.ErrEmptyAlphabet

	// ErrDecode is returned when the payload does not decode under
	// the container's code table.
	ErrDecode = huffman.ErrDecode

	// ErrDecryption is returned for a wrong password or a damaged
	// ciphertext. The two are deliberately indistinguishable.
	ErrDecryption = envelope.ErrDecryption

	// ErrDeserialization is returned when decrypted bytes are not a
	// well-formed container.
	ErrDeserialization = container.ErrMalformed

	// ErrIntegrityMismatch is returned in strict mode when the stored
	// content hash is absent or differs from the payload's hash.
	ErrIntegrityMismatch = errors.New("sealpack: content hash mismatch")

	// ErrSignatureInvalid is returned when the payload or table
	// signature does not verify.
	ErrSignatureInvalid = errors.New("sealpack: signature invalid")
)

// Stage names the pipeline step at which a call failed.
type Stage string

const (
	StageCompress    Stage = "compress"
	StageSign        Stage = "sign"
	StageSerialize   Stage = "serialize"
	StageEncrypt     Stage = "encrypt"
	StageDecrypt     Stage = "decrypt"
	StageDeserialize Stage = "deserialize"
	StageIntegrity   Stage = "integrity"
	StageSignature   Stage = "signature"
	StageDecompress  Stage = "decompress"
)

// Error is the failure type returned by Pack and Unpack.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sealpack %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reason returns a classified, user-facing description of the
// failure with no internal detail.
func (e *Error) Reason() string {
	switch {
	case errors.Is(e.Err, ErrDecryption):
		return "decryption failed: wrong password or corrupted container"
	case errors.Is(e.Err, ErrDeserialization):
		return "container is malformed"
	case errors.Is(e.Err, ErrIntegrityMismatch):
		return "integrity check failed: content hash does not match"
	case errors.Is(e.Err, ErrSignatureInvalid):
		return "signature verification failed"
	case errors.Is(e.Err, ErrEmptyAlphabet):
		return "input is empty: nothing to compress"
	case errors.Is(e.Err, ErrDecode):
		return "payload does not decode under its code table"
	default:
		return fmt.Sprintf("%s step failed", e.Stage)
	}
}

func stageError(stage Stage, err error) *Error {
	return &Error{Stage: stage, Err: err}
}
