// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Secret is a stored, encrypted message.
//
// Key is always the exact key that produced Ciphertext: both come from a
// single seal operation and are written in a single insert. Secrets are
// immutable once stored.
type Secret struct {
	// ID is the server-assigned row identifier.
	ID int64 `json:"id"`

	// Name is the caller-supplied unique lookup key.
	Name string `json:"name"`

	// Ciphertext is the encoded authenticated ciphertext.
	Ciphertext string `json:"encrypted_message"`

	// Key is the encoded per-secret data key. It is never serialized to
	// API responses.
	Key string `json:"-"`

	// OwnerID references the user that stored the secret. Nil for secrets
	// created without an authenticated owner.
	OwnerID *int64 `json:"-"`

	// CreatedAt is the timestamp when the secret was stored.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Secret model.
func (s Secret) TableName() string {
	return "secrets"
}

// OwnedBy reports whether the secret belongs to the given user.
func (s Secret) OwnedBy(userID int64) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}

// SealedSecret is the output of a seal operation: a freshly generated key
// and the ciphertext it produced. Both values are encoded strings ready to
// be persisted together.
type SealedSecret struct {
	Key        string
	Ciphertext string
}
