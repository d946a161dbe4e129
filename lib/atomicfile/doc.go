// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicfile writes result files so that readers never see a
// partial file and concurrent writers never share a path.
//
// Every write goes to a temporary file created with a random name in
// the destination directory, is fsynced, then renamed into place, and
// the parent directory is fsynced so the rename survives a power loss.
//
// [Write] replaces a caller-chosen path. [WriteUnique] picks a fresh
// name from a pattern, so two processes writing results derived from
// the same input at the same moment get two distinct files.
package atomicfile
