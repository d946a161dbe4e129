// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealpack

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/huffseal/lib/container"
	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/envelope"
	"github.com/bureau-foundation/huffseal/lib/huffman"
	"github.com/bureau-foundation/huffseal/lib/signature"
)

// Packer produces encrypted containers signed with one private key.
type Packer struct {
	signer  signature.Signer
	options options
}

// NewPacker returns a Packer that signs with signer.
func NewPacker(signer signature.Signer, opts ...Option) (*Packer, error) {
	if signer == nil {
		return nil, errors.New("sealpack: packer requires a signer")
	}
	packer := &Packer{signer: signer, options: defaultOptions()}
	for _, opt := range opts {
		opt(&packer.options)
	}
	switch packer.options.hashAlgorithm {
	case digest.SHA256, digest.BLAKE3:
	default:
		return nil, fmt.Errorf("sealpack: unsupported content hash algorithm %s", packer.options.hashAlgorithm)
	}
	return packer, nil
}

// Pack compresses, signs, optionally hashes, serializes and encrypts
// data under a key derived from password. A content hash is included
// only in [ModeStrict]. Empty data fails with [ErrEmptyAlphabet].
//
// The password is not retained or modified.
func (p *Packer) Pack(data, password []byte, mode Mode) ([]byte, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("sealpack: invalid mode %s", mode)
	}
	logger := p.options.logger.With("operation", "pack", "mode", mode.String())

	payload, table, err := huffman.Compress(data)
	if err != nil {
		return nil, stageError(StageCompress, err)
	}

	record := &container.Container{
		Version:         container.FormatVersion,
		Payload:         payload,
		Table:           container.NewTable(table),
		SignatureScheme: p.signer.Scheme(),
	}

	record.Signature, err = p.signer.Sign(payload)
	if err != nil {
		return nil, stageError(StageSign, fmt.Errorf("signing payload: %w", err))
	}
	transcript, err := container.TableTranscript(record.Table)
	if err != nil {
		return nil, stageError(StageSign, err)
	}
	record.TableSignature, err = p.signer.Sign(transcript)
	if err != nil {
		return nil, stageError(StageSign, fmt.Errorf("signing code table: %w", err))
	}

	if mode.hashes() {
		hash, err := digest.Sum(p.options.hashAlgorithm, payload)
		if err != nil {
			return nil, stageError(StageSign, err)
		}
		record.HashAlgorithm = p.options.hashAlgorithm
		record.ContentHash = hash[:]
	}

	serialized, err := container.Marshal(record)
	if err != nil {
		return nil, stageError(StageSerialize, err)
	}

	key, err := envelope.DeriveKey(password)
	if err != nil {
		return nil, stageError(StageEncrypt, err)
	}
	defer key.Close()

	blob, err := envelope.Encrypt(serialized, key)
	if err != nil {
		return nil, stageError(StageEncrypt, err)
	}

	logger.Debug("packed container",
		"input_bytes", len(data),
		"payload_bytes", len(payload),
		"symbols", len(table),
		"scheme", record.SignatureScheme.String(),
		"hash", record.HashAlgorithm.String(),
		"container_bytes", len(blob),
	)
	return blob, nil
}
