// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-secret-vault/models"
)

// SecretService encrypts messages at rest and hands them back to authorized
// callers.
type SecretService interface {
	// Store seals plaintext under a fresh key and persists it as name.
	// owner may be nil for an unowned secret.
	Store(ctx context.Context, name, plaintext string, owner *models.User) (models.Secret, error)

	// Retrieve loads the secret called name and decrypts it for requester.
	Retrieve(ctx context.Context, name string, requester *models.User) (string, error)

	// List returns all stored secrets without decrypting them.
	List(ctx context.Context) ([]models.Secret, error)
}

// AuthService registers users, checks credentials and issues bearer tokens.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Authenticate reports ok=false for an unknown user or a wrong password;
	// err is reserved for infrastructure failures.
	Authenticate(ctx context.Context, username, password string) (models.User, bool, error)

	// IssueToken signs a token for user. ttl <= 0 selects the configured default.
	IssueToken(ctx context.Context, user models.User, ttl time.Duration) (models.Token, error)

	// ResolveToken verifies token and returns the user it was issued to.
	ResolveToken(ctx context.Context, token string) (models.User, error)
}

// AppInfoService describes the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// SecretServiceWrapper defines middleware composition for SecretService.
type SecretServiceWrapper interface {
	Wrap(SecretService) SecretService
}

// AuthServiceWrapper defines middleware composition for AuthService.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}
