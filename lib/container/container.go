// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bureau-foundation/huffseal/lib/codec"
	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/huffman"
	"github.com/bureau-foundation/huffseal/lib/signature"
)

// FormatVersion is the only container version this package reads or
// writes.
const FormatVersion uint8 = 1

// ErrMalformed is wrapped by every serialization and validation
// failure.
var ErrMalformed = errors.New("container: malformed")

// TableEntry is one code-table row. Encoded as a two-element array.
type TableEntry struct {
	_      struct{} `cbor:",toarray"`
	Symbol uint8
	Code   string
}

// Container is the record sealed by lib/sealpack.
type Container struct {
	Version uint8        `cbor:"1,keyasint"`
	Payload []byte       `cbor:"2,keyasint"`
	Table   []TableEntry `cbor:"3,keyasint"`

	// HashAlgorithm and ContentHash are both set or both absent.
	// ContentHash covers Payload only.
	HashAlgorithm digest.Algorithm `cbor:"4,keyasint,omitempty"`
	ContentHash   []byte           `cbor:"5,keyasint,omitempty"`

	// SignatureScheme, Signature and TableSignature are all set or all
	// absent. Signature covers Payload; TableSignature covers
	// TableTranscript(Table).
	SignatureScheme signature.Scheme `cbor:"6,keyasint,omitempty"`
	Signature       []byte           `cbor:"7,keyasint,omitempty"`
	TableSignature  []byte           `cbor:"8,keyasint,omitempty"`
}

// NewTable converts a code table to sorted entries.
func NewTable(table huffman.CodeTable) []TableEntry {
	entries := make([]TableEntry, 0, len(table))
	for _, symbol := range table.Symbols() {
		entries = append(entries, TableEntry{Symbol: symbol, Code: string(table[symbol])})
	}
	return entries
}

// CodeTable converts the entries back to a huffman.CodeTable. Returns
// ErrMalformed if a symbol appears twice.
func (c *Container) CodeTable() (huffman.CodeTable, error) {
	table := make(huffman.CodeTable, len(c.Table))
	for _, entry := range c.Table {
		if _, exists := table[entry.Symbol]; exists {
			return nil, fmt.Errorf("%w: symbol 0x%02x appears twice in code table", ErrMalformed, entry.Symbol)
		}
		table[entry.Symbol] = huffman.Code(entry.Code)
	}
	return table, nil
}

// Validate checks the semantic rules the CBOR schema cannot express.
func (c *Container) Validate() error {
	if c.Version != FormatVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrMalformed, c.Version, FormatVersion)
	}
	if len(c.Payload) == 0 {
		return fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	if len(c.Table) == 0 {
		return fmt.Errorf("%w: empty code table", ErrMalformed)
	}
	for index := 1; index < len(c.Table); index++ {
		if c.Table[index].Symbol <= c.Table[index-1].Symbol {
			return fmt.Errorf("%w: code table is not sorted by symbol at entry %d", ErrMalformed, index)
		}
	}
	table, err := c.CodeTable()
	if err != nil {
		return err
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	switch c.HashAlgorithm {
	case digest.AlgorithmNone:
		if len(c.ContentHash) != 0 {
			return fmt.Errorf("%w: content hash present without an algorithm", ErrMalformed)
		}
	case digest.SHA256, digest.BLAKE3:
		if len(c.ContentHash) != digest.Size {
			return fmt.Errorf("%w: %s content hash is %d bytes, want %d",
				ErrMalformed, c.HashAlgorithm, len(c.ContentHash), digest.Size)
		}
	default:
		return fmt.Errorf("%w: unknown hash algorithm %s", ErrMalformed, c.HashAlgorithm)
	}

	switch c.SignatureScheme {
	case signature.SchemeNone:
		if len(c.Signature) != 0 || len(c.TableSignature) != 0 {
			return fmt.Errorf("%w: signature present without a scheme", ErrMalformed)
		}
	case signature.SchemeRSAPSS, signature.SchemeMLDSA65:
		if len(c.Signature) == 0 || len(c.TableSignature) == 0 {
			return fmt.Errorf("%w: %s scheme set but a signature is missing", ErrMalformed, c.SignatureScheme)
		}
	default:
		return fmt.Errorf("%w: unknown signature scheme %s", ErrMalformed, c.SignatureScheme)
	}
	return nil
}

// Marshal validates c and encodes it.
func Marshal(c *Container) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	data, err := codec.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding: %w", ErrMalformed, err)
	}
	return data, nil
}

// Unmarshal strictly decodes and validates a container.
func Unmarshal(data []byte) (*Container, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	var c Container
	if err := codec.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// tableTranscriptDomain prefixes every table transcript so a table
// signature can never be confused with a payload signature.
const tableTranscriptDomain = "huffseal.table.v1\x00"

// TableTranscript returns the canonical bytes signed by the table
// signature: a domain prefix followed by the deterministic CBOR
// encoding of the entries sorted by symbol. Entry order in the input
// does not matter.
func TableTranscript(entries []TableEntry) ([]byte, error) {
	sorted := make([]TableEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })

	encoded, err := codec.Marshal(sorted)
	if err != nil {
		return nil, fmt.Errorf("encoding table transcript: %w", err)
	}
	transcript := make([]byte, 0, len(tableTranscriptDomain)+len(encoded))
	transcript = append(transcript, tableTranscriptDomain...)
	return append(transcript, encoded...), nil
}
