// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealpack

import (
	"log/slog"

	"github.com/bureau-foundation/huffseal/lib/digest"
)

type options struct {
	hashAlgorithm digest.Algorithm
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		hashAlgorithm: digest.SHA256,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// Option configures a Packer or Unpacker.
type Option func(*options)

// WithHashAlgorithm selects the content-hash algorithm used by strict
// packs. The default is SHA-256. Unpack always uses the algorithm
// recorded in the container.
func WithHashAlgorithm(algorithm digest.Algorithm) Option {
	return func(o *options) {
		o.hashAlgorithm = algorithm
	}
}

// WithLogger sets the logger for stage-level diagnostics. Logs carry
// sizes, modes and algorithm names, never key material or content.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
