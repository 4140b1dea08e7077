// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/MKhiriev/go-secret-vault/models"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length in bytes of every generated data key (256 bits).
const KeySize = 32

// Algorithm identifies the AEAD used for a blob. It is written as the first
// byte of every ciphertext so that [Sealer.Open] can dispatch on it.
type Algorithm byte

const (
	// AESGCM is AES-256 in Galois/Counter Mode.
	AESGCM Algorithm = 0x01
	// ChaCha20Poly1305 is the IETF ChaCha20-Poly1305 construction.
	ChaCha20Poly1305 Algorithm = 0x02
)

// Cipher names accepted by [ParseAlgorithm] and the APP_CIPHER setting.
const (
	AESGCMName           = "aes-256-gcm"
	ChaCha20Poly1305Name = "chacha20-poly1305"
)

// encoding is strict so that every character of an encoded value matters:
// a flipped character either fails to decode or changes the decoded bytes.
var encoding = base64.RawURLEncoding.Strict()

// ParseAlgorithm maps a cipher name to an [Algorithm]. An empty name selects
// [AESGCM].
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", AESGCMName:
		return AESGCM, nil
	case ChaCha20Poly1305Name:
		return ChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// String returns the cipher name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AESGCM:
		return AESGCMName
	case ChaCha20Poly1305:
		return ChaCha20Poly1305Name
	default:
		return fmt.Sprintf("unknown(%#x)", byte(a))
	}
}

// envelopeSealer is the private implementation of [Sealer].
type envelopeSealer struct {
	// algorithm is used for new seals; Open accepts every known algorithm.
	algorithm Algorithm
	random    io.Reader
}

// NewSealer constructs a [Sealer] that seals new secrets with algorithm.
func NewSealer(algorithm Algorithm) (Sealer, error) {
	if _, err := newAEAD(algorithm, make([]byte, KeySize)); err != nil {
		return nil, err
	}

	return &envelopeSealer{
		algorithm: algorithm,
		random:    rand.Reader,
	}, nil
}

// Seal implements [Sealer].
func (s *envelopeSealer) Seal(plaintext string) (models.SealedSecret, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(s.random, key); err != nil {
		return models.SealedSecret{}, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}

	aead, err := newAEAD(s.algorithm, key)
	if err != nil {
		return models.SealedSecret{}, err
	}

	header := []byte{byte(s.algorithm)}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(s.random, nonce); err != nil {
		return models.SealedSecret{}, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}

	// blob = version ‖ nonce ‖ ciphertext+tag
	blob := make([]byte, 0, len(header)+len(nonce)+len(plaintext)+aead.Overhead())
	blob = append(blob, header...)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, []byte(plaintext), header)

	return models.SealedSecret{
		Key:        encoding.EncodeToString(key),
		Ciphertext: encoding.EncodeToString(blob),
	}, nil
}

// Open implements [Sealer].
func (s *envelopeSealer) Open(key, ciphertext string) (string, error) {
	rawKey, err := encoding.DecodeString(key)
	if err != nil || len(rawKey) != KeySize {
		return "", ErrIntegrity
	}

	blob, err := encoding.DecodeString(ciphertext)
	if err != nil || len(blob) < 1 {
		return "", ErrIntegrity
	}

	aead, err := newAEAD(Algorithm(blob[0]), rawKey)
	if err != nil {
		return "", ErrIntegrity
	}

	header, rest := blob[:1], blob[1:]
	if len(rest) < aead.NonceSize()+aead.Overhead() {
		return "", ErrIntegrity
	}

	nonce, sealed := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, header)
	if err != nil {
		return "", ErrIntegrity
	}

	return string(plaintext), nil
}

func newAEAD(algorithm Algorithm, key []byte) (cipher.AEAD, error) {
	switch algorithm {
	case AESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, ErrUnknownAlgorithm
	}
}
