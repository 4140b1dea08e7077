// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-secret-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SecretRepository persists encrypted secrets. Names are unique: of two
// concurrent CreateSecret calls with the same name exactly one succeeds.
type SecretRepository interface {
	// CreateSecret inserts secret and returns it with ID and CreatedAt set.
	// Returns [ErrSecretNameAlreadyExists] if the name is taken; in that case
	// nothing is written.
	CreateSecret(ctx context.Context, secret models.Secret) (models.Secret, error)

	// FindSecretByName returns the secret with the given name or
	// [ErrSecretNotFound].
	FindSecretByName(ctx context.Context, name string) (models.Secret, error)

	// ListSecrets returns every stored secret ordered by ID.
	ListSecrets(ctx context.Context) ([]models.Secret, error)
}

// UserRepository persists user accounts. Username and email are unique.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	// Returns [ErrUserAlreadyExists] if the username or email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the user with the given username or
	// [ErrUserNotFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// ErrorClassificator inspects driver errors for a specific SQL backend.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}
