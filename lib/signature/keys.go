// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/bureau-foundation/huffseal/lib/sealed"
	"github.com/bureau-foundation/huffseal/lib/secret"
)

// File names written by [WriteKeyPair].
const (
	PrivateKeyFile = "private_key.pem"
	PublicKeyFile  = "public_key.pem"
)

// PEM block types.
const (
	blockPKCS8Private = "PRIVATE KEY"
	blockPKCS1Private = "RSA PRIVATE KEY"
	blockSPKIPublic   = "PUBLIC KEY"
	blockPKCS1Public  = "RSA PUBLIC KEY"
	blockMLDSAPrivate = "ML-DSA-65 PRIVATE KEY"
	blockMLDSAPublic  = "ML-DSA-65 PUBLIC KEY"
)

const defaultRSAKeyBits = 2048

// sealedKeyWorkFactor of zero uses age's default scrypt cost.
const sealedKeyWorkFactor = 0

// ParsePrivateKey decodes the first PEM block in data into a Signer.
func ParsePrivateKey(data []byte) (Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrUnsupportedKey)
	}
	defer secret.Zero(block.Bytes)

	switch block.Type {
	case blockPKCS8Private:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#8 private key: %w", err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKCS#8 key is %T, want RSA", ErrUnsupportedKey, key)
		}
		return NewRSASigner(rsaKey)
	case blockPKCS1Private:
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#1 private key: %w", err)
		}
		return NewRSASigner(key)
	case blockMLDSAPrivate:
		var key mldsa65.PrivateKey
		if err := key.UnmarshalBinary(block.Bytes); err != nil {
			return nil, fmt.Errorf("parsing ML-DSA-65 private key: %w", err)
		}
		return NewMLDSASigner(&key), nil
	default:
		return nil, fmt.Errorf("%w: PEM block type %q is not a private key", ErrUnsupportedKey, block.Type)
	}
}

// ParsePublicKey decodes the first PEM block in data into a Verifier.
func ParsePublicKey(data []byte) (Verifier, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrUnsupportedKey)
	}

	switch block.Type {
	case blockSPKIPublic:
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing SPKI public key: %w", err)
		}
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: SPKI key is %T, want RSA", ErrUnsupportedKey, key)
		}
		return NewRSAVerifier(rsaKey)
	case blockPKCS1Public:
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#1 public key: %w", err)
		}
		return NewRSAVerifier(key)
	case blockMLDSAPublic:
		var key mldsa65.PublicKey
		if err := key.UnmarshalBinary(block.Bytes); err != nil {
			return nil, fmt.Errorf("parsing ML-DSA-65 public key: %w", err)
		}
		return NewMLDSAVerifier(&key), nil
	default:
		return nil, fmt.Errorf("%w: PEM block type %q is not a public key", ErrUnsupportedKey, block.Type)
	}
}

// LoadSigner reads a private key file. If the file is sealed with
// lib/sealed it is opened with passphrase first; passphrase may be nil
// for plain PEM files. The passphrase is borrowed and NOT closed.
func LoadSigner(path string, passphrase *secret.Buffer) (Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	defer secret.Zero(data)

	if !sealed.IsSealed(data) {
		return ParsePrivateKey(data)
	}
	if passphrase == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrPassphraseRequired)
	}
	opened, err := sealed.OpenPassphrase(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("opening sealed private key %s: %w", path, err)
	}
	defer opened.Close()
	return ParsePrivateKey(opened.Bytes())
}

// LoadVerifier reads a public key file.
func LoadVerifier(path string) (Verifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	verifier, err := ParsePublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return verifier, nil
}

// KeyPair holds a freshly generated key pair in PEM form.
type KeyPair struct {
	Scheme     Scheme
	PrivatePEM []byte
	PublicPEM  []byte
}

// Close zeros the private key bytes.
func (pair *KeyPair) Close() {
	secret.Zero(pair.PrivatePEM)
}

// GenerateKeyPair creates a new key pair for scheme. bits applies to
// RSA only; zero selects 2048. RSA private keys are encoded as PKCS#8
// and public keys as SPKI.
func GenerateKeyPair(scheme Scheme, bits int) (*KeyPair, error) {
	switch scheme {
	case SchemeRSAPSS:
		if bits == 0 {
			bits = defaultRSAKeyBits
		}
		if bits < MinRSABits {
			return nil, fmt.Errorf("%w: RSA key size %d is below minimum %d", ErrUnsupportedKey, bits, MinRSABits)
		}
		key, err := rsa.GenerateKey(rand.Reader, bits)
		if err != nil {
			return nil, fmt.Errorf("generating RSA key: %w", err)
		}
		privateDER, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("encoding RSA private key: %w", err)
		}
		defer secret.Zero(privateDER)
		publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("encoding RSA public key: %w", err)
		}
		return &KeyPair{
			Scheme:     scheme,
			PrivatePEM: pem.EncodeToMemory(&pem.Block{Type: blockPKCS8Private, Bytes: privateDER}),
			PublicPEM:  pem.EncodeToMemory(&pem.Block{Type: blockSPKIPublic, Bytes: publicDER}),
		}, nil

	case SchemeMLDSA65:
		public, private, err := mldsa65.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generating ML-DSA-65 key: %w", err)
		}
		privateBytes, err := private.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encoding ML-DSA-65 private key: %w", err)
		}
		defer secret.Zero(privateBytes)
		publicBytes, err := public.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encoding ML-DSA-65 public key: %w", err)
		}
		return &KeyPair{
			Scheme:     scheme,
			PrivatePEM: pem.EncodeToMemory(&pem.Block{Type: blockMLDSAPrivate, Bytes: privateBytes}),
			PublicPEM:  pem.EncodeToMemory(&pem.Block{Type: blockMLDSAPublic, Bytes: publicBytes}),
		}, nil

	default:
		return nil, fmt.Errorf("%w: cannot generate keys for scheme %s", ErrUnsupportedKey, scheme)
	}
}

// WriteKeyPair writes pair into dir as [PrivateKeyFile] (mode 0600)
// and [PublicKeyFile] (mode 0644). When passphrase is non-nil the
// private key is sealed with lib/sealed before writing. Existing files
// are never overwritten.
func WriteKeyPair(dir string, pair *KeyPair, passphrase *secret.Buffer) error {
	return writeKeyPair(dir, pair, passphrase, sealedKeyWorkFactor)
}

func writeKeyPair(dir string, pair *KeyPair, passphrase *secret.Buffer, workFactor int) error {
	private := pair.PrivatePEM
	if passphrase != nil {
		sealedBytes, err := sealed.SealPassphrase(pair.PrivatePEM, passphrase, workFactor)
		if err != nil {
			return fmt.Errorf("sealing private key: %w", err)
		}
		private = sealedBytes
	}

	privatePath := filepath.Join(dir, PrivateKeyFile)
	if err := writeExclusive(privatePath, private, 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	publicPath := filepath.Join(dir, PublicKeyFile)
	if err := writeExclusive(publicPath, pair.PublicPEM, 0644); err != nil {
		// Leave no half-written pair behind.
		return errors.Join(fmt.Errorf("writing public key: %w", err), os.Remove(privatePath))
	}
	return nil
}

func writeExclusive(path string, data []byte, mode os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		return errors.Join(err, file.Close(), os.Remove(path))
	}
	if err := file.Sync(); err != nil {
		return errors.Join(err, file.Close(), os.Remove(path))
	}
	return file.Close()
}
