// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealpack

import (
	"fmt"

	"github.com/bureau-foundation/huffseal/lib/container"
	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/envelope"
	"github.com/bureau-foundation/huffseal/lib/huffman"
	"github.com/bureau-foundation/huffseal/lib/signature"
)

// Unpacker opens containers and verifies them against one public key.
type Unpacker struct {
	verifier signature.Verifier
	options  options
}

// NewUnpacker returns an Unpacker that verifies with verifier. A nil
// verifier is accepted; every unpack in a verifying mode then fails
// with [ErrSignatureInvalid], so only [ModeBypass] succeeds.
func NewUnpacker(verifier signature.Verifier, opts ...Option) *Unpacker {
	unpacker := &Unpacker{verifier: verifier, options: defaultOptions()}
	for _, opt := range opts {
		opt(&unpacker.options)
	}
	return unpacker
}

// Open decrypts and deserializes a container without verifying or
// decompressing it. Decryption failure stops before the deserializer
// sees any bytes. Use it to inspect container metadata; [Unpack] is
// the verified path.
func (u *Unpacker) Open(blob, password []byte) (*container.Container, error) {
	record, failure := u.open(blob, password)
	if failure != nil {
		return nil, failure
	}
	return record, nil
}

func (u *Unpacker) open(blob, password []byte) (*container.Container, *Error) {
	key, err := envelope.DeriveKey(password)
	if err != nil {
		return nil, stageError(StageDecrypt, err)
	}
	defer key.Close()

	serialized, err := envelope.Decrypt(blob, key)
	if err != nil {
		return nil, stageError(StageDecrypt, err)
	}

	record, err := container.Unmarshal(serialized)
	if err != nil {
		return nil, stageError(StageDeserialize, err)
	}
	return record, nil
}

// Unpack reverses [Packer.Pack]. Stages run in order and the first
// failure is returned:
//
//   - decrypt: [ErrDecryption]
//   - deserialize: [ErrDeserialization]
//   - integrity (strict only): [ErrIntegrityMismatch], including a
//     container packed without a hash
//   - signature (strict and signature-only): [ErrSignatureInvalid]
//   - decompress: [ErrDecode]
//
// In [ModeBypass] the integrity and signature stages are skipped and
// the result may be corrupted.
func (u *Unpacker) Unpack(blob, password []byte, mode Mode) ([]byte, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("sealpack: invalid mode %s", mode)
	}
	logger := u.options.logger.With("operation", "unpack", "mode", mode.String())

	record, failure := u.open(blob, password)
	if failure != nil {
		logger.Debug("unpack failed", "stage", string(failure.Stage))
		return nil, failure
	}

	if mode.hashes() {
		if err := checkIntegrity(record); err != nil {
			logger.Debug("unpack failed", "stage", string(StageIntegrity))
			return nil, stageError(StageIntegrity, err)
		}
	}

	if mode.verifies() {
		if err := u.checkSignatures(record); err != nil {
			logger.Debug("unpack failed", "stage", string(StageSignature))
			return nil, stageError(StageSignature, err)
		}
	}

	if mode.Insecure() {
		logger.Warn("unpacking without integrity or signature verification; output may be corrupted")
	}

	table, err := record.CodeTable()
	if err != nil {
		return nil, stageError(StageDeserialize, err)
	}
	data, err := huffman.Decompress(record.Payload, table)
	if err != nil {
		return nil, stageError(StageDecompress, err)
	}

	logger.Debug("unpacked container",
		"payload_bytes", len(record.Payload),
		"output_bytes", len(data),
		"scheme", record.SignatureScheme.String(),
		"hash", record.HashAlgorithm.String(),
	)
	return data, nil
}

func checkIntegrity(record *container.Container) error {
	if record.HashAlgorithm == digest.AlgorithmNone {
		return fmt.Errorf("%w: container carries no content hash", ErrIntegrityMismatch)
	}
	computed, err := digest.Sum(record.HashAlgorithm, record.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIntegrityMismatch, err)
	}
	if !digest.Equal(computed, record.ContentHash) {
		return ErrIntegrityMismatch
	}
	return nil
}

func (u *Unpacker) checkSignatures(record *container.Container) error {
	if u.verifier == nil {
		return fmt.Errorf("%w: no verification key configured", ErrSignatureInvalid)
	}
	if record.SignatureScheme != u.verifier.Scheme() {
		return fmt.Errorf("%w: container signed with %s, verifier expects %s",
			ErrSignatureInvalid, record.SignatureScheme, u.verifier.Scheme())
	}
	if !u.verifier.Verify(record.Payload, record.Signature) {
		return fmt.Errorf("%w: payload signature", ErrSignatureInvalid)
	}
	transcript, err := container.TableTranscript(record.Table)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	}
	if !u.verifier.Verify(transcript, record.TableSignature) {
		return fmt.Errorf("%w: code table signature", ErrSignatureInvalid)
	}
	return nil
}
