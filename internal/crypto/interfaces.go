// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the cryptographic primitives of the vault: per-secret
// envelope sealing and password hashing. It knows nothing about the network,
// the database or users.
package crypto

import "github.com/MKhiriev/go-secret-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Sealer encrypts short strings with a freshly generated key per call.
//
// Scheme:
//
//	key        = 32 random bytes from crypto/rand        (new every call)
//	nonce      = random, AEAD nonce size
//	blob       = version ‖ nonce ‖ AEAD(key, nonce, plaintext, aad=version)
//	Key        = base64url(key)
//	Ciphertext = base64url(blob)
type Sealer interface {
	// Seal generates a new key, encrypts plaintext with it and returns both.
	// Two calls with identical plaintext never share a key or a ciphertext.
	Seal(plaintext string) (models.SealedSecret, error)

	// Open decrypts ciphertext with key. Any tampering, truncation, bad
	// encoding or wrong key yields ErrIntegrity and no plaintext.
	Open(key, ciphertext string) (string, error)
}

// PasswordHasher produces and checks salted, deliberately slow password hashes.
type PasswordHasher interface {
	// HashPassword returns a hash with an embedded per-call salt.
	HashPassword(plaintext string) (string, error)

	// VerifyPassword reports whether plaintext matches hash. The comparison
	// runs in constant time with respect to the hash contents.
	VerifyPassword(plaintext, hash string) bool
}
