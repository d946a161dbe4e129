// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build of huffseal is running and which
// container and envelope formats it writes.
//
// Release builds set [GitCommit], [GitDirty], [BuildTime] and
// [Version] with the linker:
//
//	go build -ldflags "-X github.com/bureau-foundation/huffseal/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/huffseal
//
// Development builds and tests see "unknown" and "0.1.0-dev".
// [Full] is what "huffseal version" prints; it appends the format
// versions so a container can be matched to a binary that reads it.
package version
