// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/validators"
	"github.com/MKhiriev/go-secret-vault/models"
)

// SecretValidationService rejects malformed names and oversized messages
// before they reach the wrapped SecretService.
type SecretValidationService struct {
	inner     SecretService
	validator validators.Validator
}

func NewSecretValidationService() SecretServiceWrapper {
	return &SecretValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *SecretValidationService) Store(ctx context.Context, name, plaintext string, owner *models.User) (models.Secret, error) {
	if err := v.validator.Validate(ctx, models.StoreSecretRequest{Name: name, Message: plaintext}); err != nil {
		return models.Secret{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Store(ctx, name, plaintext, owner)
}

func (v *SecretValidationService) Retrieve(ctx context.Context, name string, requester *models.User) (string, error) {
	if err := v.validator.Validate(ctx, models.StoreSecretRequest{Name: name}, validators.FieldName); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Retrieve(ctx, name, requester)
}

func (v *SecretValidationService) List(ctx context.Context) ([]models.Secret, error) {
	return v.inner.List(ctx)
}

func (v *SecretValidationService) Wrap(inner SecretService) SecretService {
	v.inner = inner
	return v
}

// AuthValidationService checks registration and login data. Malformed login
// credentials are reported as a plain mismatch without reaching the store.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, username, email, password)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, username, password string) (models.User, bool, error) {
	if err := v.validator.Validate(ctx, models.LoginRequest{Username: username, Password: password}); err != nil {
		return models.User{}, false, nil
	}

	return v.inner.Authenticate(ctx, username, password)
}

func (v *AuthValidationService) IssueToken(ctx context.Context, user models.User, ttl time.Duration) (models.Token, error) {
	return v.inner.IssueToken(ctx, user, ttl)
}

func (v *AuthValidationService) ResolveToken(ctx context.Context, token string) (models.User, error) {
	return v.inner.ResolveToken(ctx, token)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
