// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/crypto"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/models"
)

// secretService seals messages with a per-secret key and keeps the key
// next to the ciphertext in the same row. Anyone able to read the storage
// backend can therefore decrypt every secret.
type secretService struct {
	secretRepository store.SecretRepository
	sealer           crypto.Sealer

	// scopeToOwner makes Retrieve refuse owned secrets to other users.
	scopeToOwner bool

	logger *logger.Logger
}

func NewSecretService(secretRepository store.SecretRepository, sealer crypto.Sealer, cfg config.App, logger *logger.Logger) SecretService {
	return &secretService{
		secretRepository: secretRepository,
		sealer:           sealer,
		scopeToOwner:     cfg.ScopeToOwner(),
		logger:           logger,
	}
}

// Store seals plaintext and writes name, ciphertext, key and owner in one
// insert. A taken name yields store.ErrSecretNameAlreadyExists and nothing
// is written.
func (s *secretService) Store(ctx context.Context, name, plaintext string, owner *models.User) (models.Secret, error) {
	log := logger.FromContext(ctx)

	sealed, err := s.sealer.Seal(plaintext)
	if err != nil {
		log.Err(err).Str("func", "*secretService.Store").Msg("error sealing message")
		return models.Secret{}, fmt.Errorf("error sealing message: %w", err)
	}

	secret := models.Secret{
		Name:       name,
		Ciphertext: sealed.Ciphertext,
		Key:        sealed.Key,
	}
	if owner != nil {
		ownerID := owner.UserID
		secret.OwnerID = &ownerID
	}

	created, err := s.secretRepository.CreateSecret(ctx, secret)
	if err != nil {
		log.Err(err).Str("func", "*secretService.Store").Str("name", name).Msg("error storing secret")
		return models.Secret{}, fmt.Errorf("error storing secret: %w", err)
	}

	log.Info().Str("func", "*secretService.Store").Int64("id", created.ID).Msg("secret stored")
	return created, nil
}

// Retrieve returns the plaintext of the secret called name.
//
// Errors:
//   - store.ErrSecretNotFound when no such secret exists.
//   - ErrForbidden when scoping is enabled, the secret has an owner and
//     requester is someone else (or nobody).
//   - crypto.ErrIntegrity when the stored pair does not decrypt.
func (s *secretService) Retrieve(ctx context.Context, name string, requester *models.User) (string, error) {
	log := logger.FromContext(ctx)

	secret, err := s.secretRepository.FindSecretByName(ctx, name)
	if err != nil {
		log.Err(err).Str("func", "*secretService.Retrieve").Str("name", name).Msg("error loading secret")
		return "", fmt.Errorf("error loading secret: %w", err)
	}

	if s.scopeToOwner && secret.OwnerID != nil && (requester == nil || !secret.OwnedBy(requester.UserID)) {
		log.Warn().Str("func", "*secretService.Retrieve").Int64("id", secret.ID).Msg("access to foreign secret denied")
		return "", ErrForbidden
	}

	plaintext, err := s.sealer.Open(secret.Key, secret.Ciphertext)
	if err != nil {
		log.Err(err).Str("func", "*secretService.Retrieve").Int64("id", secret.ID).Msg("error opening secret")
		return "", fmt.Errorf("error opening secret: %w", err)
	}

	return plaintext, nil
}

func (s *secretService) List(ctx context.Context) ([]models.Secret, error) {
	secrets, err := s.secretRepository.ListSecrets(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*secretService.List").Msg("error listing secrets")
		return nil, fmt.Errorf("error listing secrets: %w", err)
	}

	return secrets, nil
}
