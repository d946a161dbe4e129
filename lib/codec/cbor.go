// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// Limits applied by the strict decoder. A huffseal container has one
// level of nesting and at most 256 code-table entries.
const (
	strictMaxNestedLevels  = 8
	strictMaxArrayElements = 512
	strictMaxMapPairs      = 64
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding.
var encMode cbor.EncMode

// strictDecMode is the decoder for untrusted input.
var strictDecMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	strictDecMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		TagsMd:            cbor.TagsForbidden,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		MaxNestedLevels:   strictMaxNestedLevels,
		MaxArrayElements:  strictMaxArrayElements,
		MaxMapPairs:       strictMaxMapPairs,
	}.DecMode()
	if err != nil {
		panic("codec: strict CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// UnmarshalStrict decodes CBOR data from an untrusted source into v.
// The whole of data must be exactly one well-formed item that fits v's
// schema.
func UnmarshalStrict(data []byte, v any) error {
	return strictDecMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation for the entire
// contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
