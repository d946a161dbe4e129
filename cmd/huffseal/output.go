// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"

	"github.com/bureau-foundation/huffseal/lib/atomicfile"
)

// outputMode is used for every result file; restored plaintext and
// containers are both private to the invoking user.
const outputMode = 0600

// writeResult writes data to explicitPath when given. Otherwise it
// creates a uniquely named file "<input base>.<random><suffix>" in
// directory, or next to the input when directory is empty. Returns the
// path written.
func writeResult(explicitPath, directory, inputPath, suffix string, data []byte) (string, error) {
	if explicitPath != "" {
		return explicitPath, atomicfile.Write(explicitPath, data, outputMode)
	}
	if directory == "" {
		directory = filepath.Dir(inputPath)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", err
	}
	return atomicfile.WriteUnique(directory, filepath.Base(inputPath)+".*"+suffix, data, outputMode)
}
