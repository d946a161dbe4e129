// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// huffseal compresses files with a static Huffman code, signs and
// hashes the result, and encrypts it under a password.
//
// Subcommands:
//
//   - pack: compress, sign, hash and encrypt a file
//   - unpack: decrypt, verify and decompress a container
//   - inspect: decrypt a container and print its metadata without
//     verifying or decompressing it
//   - keygen: generate an RSA-PSS or ML-DSA-65 signing key pair,
//     optionally sealing the private key under a passphrase
//   - stats: report entropy, code lengths and baseline compressor
//     sizes for a file
//   - version: print build information
//
// Configuration comes from the file named by --config or
// HUFFSEAL_CONFIG (see lib/config). Flags override configuration.
// Passwords are read from --password-file ("-" for the first line of
// stdin) or prompted on the terminal with echo disabled.
//
// Results are written atomically. Without --out, each run writes to a
// freshly named file next to the input (or in output.directory), so
// concurrent runs never overwrite each other.
package main
