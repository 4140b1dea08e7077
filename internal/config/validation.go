// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secret-vault/internal/crypto"
)

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup. All violations are
// reported together.
func (cfg *StructuredConfig) validate() error {
	return errors.Join(
		cfg.App.validate(),
		cfg.Storage.validate(),
		cfg.Server.validate(),
	)
}

func (a App) validate() error {
	var errs []error

	if len(a.TokenSignKey) < MinTokenSignKeyLength {
		errs = append(errs, fmt.Errorf("%w: token sign key must be at least %d bytes", ErrInvalidAppConfigs, MinTokenSignKeyLength))
	}
	if a.IsProduction() && a.TokenSignKey == DefaultTokenSignKey {
		errs = append(errs, fmt.Errorf("%w: default token sign key is not allowed in production", ErrInvalidAppConfigs))
	}
	if a.TokenIssuer == "" {
		errs = append(errs, fmt.Errorf("%w: empty token issuer", ErrInvalidAppConfigs))
	}
	if a.TokenTTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("%w: token ttl must be positive", ErrInvalidAppConfigs))
	}
	if a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost {
		errs = append(errs, fmt.Errorf("%w: bcrypt cost must be within [%d, %d]", ErrInvalidAppConfigs, minBcryptCost, maxBcryptCost))
	}
	if _, err := crypto.ParseAlgorithm(a.Cipher); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err))
	}

	return errors.Join(errs...)
}

func (s Storage) validate() error {
	if s.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	return nil
}

func (s Server) validate() error {
	var errs []error

	if s.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs))
	}
	if s.RateLimit <= 0 || s.RateWindow <= 0 {
		errs = append(errs, fmt.Errorf("%w: rate limit and window must be positive", ErrInvalidServerConfigs))
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

// Warnings lists settings that are valid but unsafe, such as running with
// the built-in signing key.
func (cfg *StructuredConfig) Warnings() []string {
	var warnings []string

	if cfg.App.TokenSignKey == DefaultTokenSignKey {
		warnings = append(warnings, "using the built-in token sign key; set APP_TOKEN_SIGN_KEY")
	}
	if !cfg.App.ScopeToOwner() {
		warnings = append(warnings, "secret ownership scoping is disabled; any authenticated user can read any secret")
	}

	return warnings
}
