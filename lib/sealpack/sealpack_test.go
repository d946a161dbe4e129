// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealpack

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/huffseal/lib/container"
	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/envelope"
	"github.com/bureau-foundation/huffseal/lib/signature"
	"github.com/bureau-foundation/huffseal/lib/testutil"
)

var (
	correctPassword = []byte("correct-password")
	wrongPassword   = []byte("wrong-password")
)

// keyPair bundles a signer with its matching verifier.
type keyPair struct {
	signer   signature.Signer
	verifier signature.Verifier
}

func rsaKeys(t *testing.T, slot int) keyPair {
	t.Helper()
	signer, err := signature.NewRSASigner(testutil.RSAPrivateKey(t, slot))
	if err != nil {
		t.Fatalf("NewRSASigner: %v", err)
	}
	return keyPair{signer: signer, verifier: signer.Verifier()}
}

func mldsaKeys(t *testing.T, slot int) keyPair {
	t.Helper()
	signer := signature.NewMLDSASigner(testutil.MLDSAPrivateKey(t, slot))
	return keyPair{signer: signer, verifier: signer.Verifier()}
}

func newPacker(t *testing.T, keys keyPair, opts ...Option) *Packer {
	t.Helper()
	packer, err := NewPacker(keys.signer, opts...)
	if err != nil {
		t.Fatalf("NewPacker: %v", err)
	}
	return packer
}

func pack(t *testing.T, packer *Packer, data []byte, mode Mode) []byte {
	t.Helper()
	blob, err := packer.Pack(data, correctPassword, mode)
	if err != nil {
		t.Fatalf("Pack(%s): %v", mode, err)
	}
	return blob
}

// reseal decrypts blob, applies mutate to the container, and encrypts
// the result again under the same password. Signatures and hash are
// left stale.
func reseal(t *testing.T, blob []byte, mutate func(*container.Container)) []byte {
	t.Helper()
	record, err := NewUnpacker(nil).Open(blob, correctPassword)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mutate(record)
	serialized, err := container.Marshal(record)
	if err != nil {
		t.Fatalf("container.Marshal: %v", err)
	}
	return encryptRaw(t, serialized)
}

func encryptRaw(t *testing.T, plaintext []byte) []byte {
	t.Helper()
	key, err := envelope.DeriveKey(correctPassword)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	defer key.Close()
	resealed, err := envelope.Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	return resealed
}

// requireFailure asserts err is an *Error at stage matching sentinel.
func requireFailure(t *testing.T, err error, stage Stage, sentinel error) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v at stage %s, got success", sentinel, stage)
	}
	var failure *Error
	if !errors.As(err, &failure) {
		t.Fatalf("error %v (%T) is not *sealpack.Error", err, err)
	}
	if failure.Stage != stage {
		t.Errorf("Stage = %s, want %s (error: %v)", failure.Stage, stage, err)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("error %v does not match %v", err, sentinel)
	}
	return failure
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"hello world":   []byte("hello world"),
		"single byte":   []byte("x"),
		"single symbol": bytes.Repeat([]byte("a"), 10),
		"binary":        {0x00, 0xff, 0x00, 0x01, 0x80, 0x7f, 0x00},
		"text":          []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40)),
	}
	schemes := map[string]func(*testing.T, int) keyPair{
		"rsa-pss":   rsaKeys,
		"ml-dsa-65": mldsaKeys,
	}
	for schemeName, makeKeys := range schemes {
		keys := makeKeys(t, 0)
		for _, algorithm := range []digest.Algorithm{digest.SHA256, digest.BLAKE3} {
			packer := newPacker(t, keys, WithHashAlgorithm(algorithm))
			unpacker := NewUnpacker(keys.verifier)
			for _, mode := range []Mode{ModeStrict, ModeSignatureOnly, ModeBypass} {
				for inputName, input := range inputs {
					name := schemeName + "/" + algorithm.String() + "/" + mode.String() + "/" + inputName
					t.Run(name, func(t *testing.T) {
						blob := pack(t, packer, input, mode)
						output, err := unpacker.Unpack(blob, correctPassword, mode)
						if err != nil {
							t.Fatalf("Unpack: %v", err)
						}
						if !bytes.Equal(output, input) {
							t.Errorf("Unpack = %q, want %q", output, input)
						}
					})
				}
			}
		}
	}
}

func TestPackRecordsHashOnlyInStrictMode(t *testing.T) {
	keys := rsaKeys(t, 0)
	packer := newPacker(t, keys, WithHashAlgorithm(digest.BLAKE3))
	opener := NewUnpacker(nil)

	strict, err := opener.Open(pack(t, packer, []byte("hello world"), ModeStrict), correctPassword)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if strict.HashAlgorithm != digest.BLAKE3 || len(strict.ContentHash) != digest.Size {
		t.Errorf("strict container hash = %s/%d bytes, want blake3/32", strict.HashAlgorithm, len(strict.ContentHash))
	}
	if strict.SignatureScheme != signature.SchemeRSAPSS || len(strict.Signature) == 0 || len(strict.TableSignature) == 0 {
		t.Errorf("strict container is not fully signed: scheme %s", strict.SignatureScheme)
	}

	signatureOnly, err := opener.Open(pack(t, packer, []byte("hello world"), ModeSignatureOnly), correctPassword)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if signatureOnly.HashAlgorithm != digest.AlgorithmNone || signatureOnly.ContentHash != nil {
		t.Errorf("signature-only container carries a hash (%s)", signatureOnly.HashAlgorithm)
	}
}

func TestPackTwiceDiffers(t *testing.T) {
	packer := newPacker(t, rsaKeys(t, 0))
	first := pack(t, packer, []byte("hello world"), ModeStrict)
	second := pack(t, packer, []byte("hello world"), ModeStrict)
	if bytes.Equal(first, second) {
		t.Error("two packs of the same input produced identical blobs")
	}
}

func TestEmptyInput(t *testing.T) {
	packer := newPacker(t, rsaKeys(t, 0))
	_, err := packer.Pack(nil, correctPassword, ModeStrict)
	failure := requireFailure(t, err, StageCompress, ErrEmptyAlphabet)
	if failure.Reason() != "input is empty: nothing to compress" {
		t.Errorf("Reason = %q", failure.Reason())
	}
}

func TestWrongPassword(t *testing.T) {
	keys := rsaKeys(t, 0)
	blob := pack(t, newPacker(t, keys), []byte("hello world"), ModeStrict)

	for _, mode := range []Mode{ModeStrict, ModeSignatureOnly, ModeBypass} {
		_, err := NewUnpacker(keys.verifier).Unpack(blob, wrongPassword, mode)
		failure := requireFailure(t, err, StageDecrypt, ErrDecryption)
		if !strings.Contains(failure.Reason(), "wrong password or corrupted") {
			t.Errorf("Reason = %q", failure.Reason())
		}
	}
}

func TestCorruptedCiphertext(t *testing.T) {
	keys := rsaKeys(t, 0)
	blob := pack(t, newPacker(t, keys), []byte("hello world"), ModeStrict)
	unpacker := NewUnpacker(keys.verifier)

	corrupted := bytes.Clone(blob)
	corrupted[len(corrupted)/2] ^= 0x10
	_, err := unpacker.Unpack(corrupted, correctPassword, ModeBypass)
	requireFailure(t, err, StageDecrypt, ErrDecryption)

	_, err = unpacker.Unpack(blob[:envelope.Overhead-1], correctPassword, ModeStrict)
	requireFailure(t, err, StageDecrypt, ErrDecryption)

	_, err = unpacker.Unpack(nil, correctPassword, ModeStrict)
	requireFailure(t, err, StageDecrypt, ErrDecryption)
}

func TestDeserializationFailure(t *testing.T) {
	unpacker := NewUnpacker(rsaKeys(t, 0).verifier)
	for name, plaintext := range map[string][]byte{
		"not cbor":  []byte("definitely not a container"),
		"pickle":    []byte("\x80\x04\x95\x1c\x00\x00\x00\x00\x00\x00\x00cos\nsystem\n"),
		"empty map": {0xa0},
		"trailing":  {0xa0, 0x00},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := unpacker.Unpack(encryptRaw(t, plaintext), correctPassword, ModeBypass)
			failure := requireFailure(t, err, StageDeserialize, ErrDeserialization)
			if failure.Reason() != "container is malformed" {
				t.Errorf("Reason = %q", failure.Reason())
			}
		})
	}
}

func TestTamperedPayload(t *testing.T) {
	keys := rsaKeys(t, 0)
	// Four equally frequent symbols give four 2-bit codes, so every
	// mutation of a payload body byte still decodes.
	input := []byte("abcdabcdabcdabcd")
	blob := pack(t, newPacker(t, keys), input, ModeStrict)
	tampered := reseal(t, blob, func(record *container.Container) {
		record.Payload[1] ^= 0xff
	})
	unpacker := NewUnpacker(keys.verifier)

	t.Run("strict", func(t *testing.T) {
		_, err := unpacker.Unpack(tampered, correctPassword, ModeStrict)
		requireFailure(t, err, StageIntegrity, ErrIntegrityMismatch)
	})
	t.Run("signature-only", func(t *testing.T) {
		_, err := unpacker.Unpack(tampered, correctPassword, ModeSignatureOnly)
		requireFailure(t, err, StageSignature, ErrSignatureInvalid)
	})
	t.Run("bypass", func(t *testing.T) {
		output, err := unpacker.Unpack(tampered, correctPassword, ModeBypass)
		if err != nil {
			t.Fatalf("bypass Unpack: %v", err)
		}
		if bytes.Equal(output, input) {
			t.Fatal("bypass returned the original input for a tampered container")
		}
		if string(output) != "dcbaabcdabcdabcd" {
			t.Errorf("bypass output = %q, want %q", output, "dcbaabcdabcdabcd")
		}
	})
}

func TestTamperedHashAndPayload(t *testing.T) {
	// Recomputing the hash after tampering defeats the integrity
	// check; the signature still catches it.
	keys := rsaKeys(t, 0)
	blob := pack(t, newPacker(t, keys), []byte("hello world"), ModeStrict)
	tampered := reseal(t, blob, func(record *container.Container) {
		record.Payload[len(record.Payload)-1] ^= 0x01
		hash, err := digest.Sum(record.HashAlgorithm, record.Payload)
		if err != nil {
			t.Fatalf("Sum: %v", err)
		}
		record.ContentHash = hash[:]
	})
	_, err := NewUnpacker(keys.verifier).Unpack(tampered, correctPassword, ModeStrict)
	requireFailure(t, err, StageSignature, ErrSignatureInvalid)
}

func TestSwappedCodeTable(t *testing.T) {
	keys := rsaKeys(t, 0)
	input := []byte("abcdabcdabcdabcd")
	blob := pack(t, newPacker(t, keys), input, ModeStrict)

	// Swap the codes for 'a' and 'b'. The payload bytes, its hash and
	// its signature are untouched.
	tampered := reseal(t, blob, func(record *container.Container) {
		record.Table[0].Code, record.Table[1].Code = record.Table[1].Code, record.Table[0].Code
	})
	unpacker := NewUnpacker(keys.verifier)

	for _, mode := range []Mode{ModeStrict, ModeSignatureOnly} {
		_, err := unpacker.Unpack(tampered, correctPassword, mode)
		failure := requireFailure(t, err, StageSignature, ErrSignatureInvalid)
		if !strings.Contains(failure.Error(), "code table") {
			t.Errorf("%s: error %q does not name the code table", mode, failure)
		}
	}

	output, err := unpacker.Unpack(tampered, correctPassword, ModeBypass)
	if err != nil {
		t.Fatalf("bypass Unpack: %v", err)
	}
	if string(output) != "bacdbacdbacdbacd" {
		t.Errorf("bypass output = %q, want %q", output, "bacdbacdbacdbacd")
	}
}

func TestStrictRequiresHash(t *testing.T) {
	keys := rsaKeys(t, 0)
	blob := pack(t, newPacker(t, keys), []byte("hello world"), ModeSignatureOnly)
	unpacker := NewUnpacker(keys.verifier)

	_, err := unpacker.Unpack(blob, correctPassword, ModeStrict)
	requireFailure(t, err, StageIntegrity, ErrIntegrityMismatch)

	output, err := unpacker.Unpack(blob, correctPassword, ModeSignatureOnly)
	if err != nil {
		t.Fatalf("signature-only Unpack: %v", err)
	}
	if string(output) != "hello world" {
		t.Errorf("Unpack = %q", output)
	}
}

func TestVerifierMismatch(t *testing.T) {
	blob := pack(t, newPacker(t, rsaKeys(t, 0)), []byte("hello world"), ModeStrict)

	tests := []struct {
		name     string
		verifier signature.Verifier
		want     string
	}{
		{"unrelated rsa key", rsaKeys(t, 1).verifier, "payload signature"},
		{"other scheme", mldsaKeys(t, 0).verifier, "verifier expects ml-dsa-65"},
		{"no verifier", nil, "no verification key"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			unpacker := NewUnpacker(test.verifier)
			_, err := unpacker.Unpack(blob, correctPassword, ModeStrict)
			failure := requireFailure(t, err, StageSignature, ErrSignatureInvalid)
			if !strings.Contains(failure.Error(), test.want) {
				t.Errorf("error %q, want substring %q", failure, test.want)
			}

			// Bypass never consults the verifier.
			output, err := unpacker.Unpack(blob, correctPassword, ModeBypass)
			if err != nil || string(output) != "hello world" {
				t.Errorf("bypass Unpack = %q, %v", output, err)
			}
		})
	}
}

func TestBypassDecodeFailure(t *testing.T) {
	keys := rsaKeys(t, 0)
	blob := pack(t, newPacker(t, keys), []byte("hello world"), ModeStrict)
	tampered := reseal(t, blob, func(record *container.Container) {
		record.Payload[0] = 9
	})
	_, err := NewUnpacker(keys.verifier).Unpack(tampered, correctPassword, ModeBypass)
	failure := requireFailure(t, err, StageDecompress, ErrDecode)
	if failure.Reason() != "payload does not decode under its code table" {
		t.Errorf("Reason = %q", failure.Reason())
	}
}

func TestInvalidMode(t *testing.T) {
	keys := rsaKeys(t, 0)
	if _, err := newPacker(t, keys).Pack([]byte("x"), correctPassword, Mode(7)); err == nil {
		t.Error("Pack accepted mode 7")
	}
	if _, err := NewUnpacker(keys.verifier).Unpack([]byte("x"), correctPassword, Mode(7)); err == nil {
		t.Error("Unpack accepted mode 7")
	}
}

func TestNewPackerValidation(t *testing.T) {
	if _, err := NewPacker(nil); err == nil {
		t.Error("NewPacker(nil) succeeded")
	}
	if _, err := NewPacker(rsaKeys(t, 0).signer, WithHashAlgorithm(digest.AlgorithmNone)); err == nil {
		t.Error("NewPacker accepted hash algorithm none")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name     string
		want     Mode
		insecure bool
	}{
		{"strict", ModeStrict, false},
		{"signature-only", ModeSignatureOnly, false},
		{"bypass-insecure", ModeBypass, true},
	}
	for _, test := range tests {
		mode, err := ParseMode(test.name)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", test.name, err)
		}
		if mode != test.want || mode.String() != test.name || mode.Insecure() != test.insecure {
			t.Errorf("ParseMode(%q) = %v (insecure %v)", test.name, mode, mode.Insecure())
		}
	}
	if mode, err := ParseMode(""); err != nil || mode != ModeStrict {
		t.Errorf("ParseMode(\"\") = %v, %v; want strict", mode, err)
	}
	if _, err := ParseMode("bypass"); err == nil {
		t.Error("ParseMode(bypass) succeeded; the insecure mode must be named explicitly")
	}
}

func TestLogging(t *testing.T) {
	keys := rsaKeys(t, 0)
	var output bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug}))

	packer := newPacker(t, keys, WithLogger(logger))
	unpacker := NewUnpacker(keys.verifier, WithLogger(logger))
	blob := pack(t, packer, []byte("secret document body"), ModeStrict)
	if _, err := unpacker.Unpack(blob, correctPassword, ModeBypass); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	logs := output.String()
	for _, want := range []string{`"msg":"packed container"`, `"level":"WARN"`, `"mode":"bypass-insecure"`} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %s:\n%s", want, logs)
		}
	}
	for _, leaked := range []string{string(correctPassword), "secret document body"} {
		if strings.Contains(logs, leaked) {
			t.Errorf("logs contain %q", leaked)
		}
	}
}

func TestConcurrentCalls(t *testing.T) {
	keys := rsaKeys(t, 0)
	packer := newPacker(t, keys)
	unpacker := NewUnpacker(keys.verifier)

	const workers = 8
	results := make(chan error, workers)
	for index := 0; index < workers; index++ {
		password := []byte(testutil.UniqueID("password"))
		input := []byte(testutil.UniqueID("input") + strings.Repeat(" body", index+1))
		go func() {
			blob, err := packer.Pack(input, password, ModeStrict)
			if err != nil {
				results <- err
				return
			}
			output, err := unpacker.Unpack(blob, password, ModeStrict)
			if err != nil {
				results <- err
				return
			}
			if !bytes.Equal(output, input) {
				results <- errors.New("round trip returned another worker's data")
				return
			}
			results <- nil
		}()
	}
	for index := 0; index < workers; index++ {
		if err := testutil.RequireReceive(t, results, 30*time.Second, "worker %d", index); err != nil {
			t.Errorf("worker: %v", err)
		}
	}
}
