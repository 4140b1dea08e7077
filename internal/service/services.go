// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/crypto"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/models"
)

type Services struct {
	AuthService    AuthService
	SecretService  SecretService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages using the primitives
// selected by cfg.App. Both auth and secret services are wrapped with
// request validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	algorithm, err := crypto.ParseAlgorithm(cfg.App.Cipher)
	if err != nil {
		return nil, fmt.Errorf("error selecting cipher: %w", err)
	}

	sealer, err := crypto.NewSealer(algorithm)
	if err != nil {
		return nil, fmt.Errorf("error creating sealer: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)

	logger.Info().
		Str("cipher", algorithm.String()).
		Bool("scope_secrets_to_owner", cfg.App.ScopeToOwner()).
		Msg("services configured")

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(NewAuthService(storages.UserRepository, hasher, cfg.App, logger)),
		SecretService:  NewSecretValidationService().Wrap(NewSecretService(storages.SecretRepository, sealer, cfg.App, logger)),
		AppInfoService: appInfoService,
	}, nil
}
