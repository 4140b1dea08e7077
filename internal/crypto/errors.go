// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrIntegrity is returned by [Sealer.Open] when the ciphertext was
	// modified, truncated, badly encoded or paired with the wrong key.
	ErrIntegrity = errors.New("ciphertext integrity check failed")

	// ErrUnknownAlgorithm is returned when a cipher name is not supported.
	ErrUnknownAlgorithm = errors.New("unknown cipher algorithm")

	// ErrPasswordTooLong is returned when a password exceeds the hash
	// function's input limit (72 bytes for bcrypt).
	ErrPasswordTooLong = errors.New("password is too long")

	// ErrKeyGeneration is returned when the random source fails.
	ErrKeyGeneration = errors.New("key generation failed")
)
