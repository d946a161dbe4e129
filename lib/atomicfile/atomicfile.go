// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write atomically replaces path with data. The file is created with
// mode perm. The parent directory must already exist.
func Write(path string, data []byte, perm os.FileMode) error {
	directory := filepath.Dir(path)
	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	temporaryPath := file.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	// Write, chmod, sync, close, in that order.
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := file.Chmod(perm); err != nil {
		file.Close()
		return fmt.Errorf("setting mode on temporary file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming %s into place: %w", filepath.Base(path), err)
	}
	success = true

	syncDirectory(directory)
	return nil
}

// WriteUnique writes data to a new file in directory whose name is
// pattern with its last "*" replaced by a random string, as in
// os.CreateTemp. Returns the path written. No existing file is ever
// replaced.
func WriteUnique(directory, pattern string, data []byte, perm os.FileMode) (string, error) {
	// Reserve the final name first; the atomic write then replaces the
	// empty placeholder.
	placeholder, err := os.CreateTemp(directory, pattern)
	if err != nil {
		return "", fmt.Errorf("reserving output name: %w", err)
	}
	path := placeholder.Name()
	if err := placeholder.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing output placeholder: %w", err)
	}

	if err := Write(path, data, perm); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// syncDirectory makes a completed rename durable. Errors are ignored:
// the data is already in place and some filesystems reject directory
// fsync.
func syncDirectory(directory string) {
	parentDirectory, err := os.Open(directory)
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
}
