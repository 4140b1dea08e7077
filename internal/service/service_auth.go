// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/crypto"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
	"github.com/MKhiriev/go-secret-vault/models"
)

// timingPassword is hashed once and compared against when a login names an
// unknown user, so that path costs the same bcrypt work as a wrong password.
const timingPassword = "timing-equalization-password"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenTTL is used when IssueToken is called without an explicit ttl.
	tokenTTL time.Duration

	now func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenTTL:       cfg.TokenTTL(),
		now:            time.Now,
		logger:         logger,
	}
}

// Register hashes password and creates a new user account.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if the password cannot be hashed (too long).
//   - A wrapped store.ErrUserAlreadyExists if the username or email is taken.
func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := a.hasher.HashPassword(password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", username).Msg("error hashing password")
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return models.User{}, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.Register").Int64("user_id", registeredUser.UserID).Msg("user registered")
	return registeredUser, nil
}

// Authenticate looks the user up by username and compares password with the
// stored hash. An unknown user and a wrong password are indistinguishable to
// the caller: both return ok=false after one bcrypt comparison.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		a.hasher.VerifyPassword(password, a.timingHash())
		log.Info().Str("func", "*authService.Authenticate").Msg("authentication failed")
		return models.User{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by username failed")
		return models.User{}, false, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.VerifyPassword(password, foundUser.PasswordHash) {
		log.Info().Str("func", "*authService.Authenticate").Msg("authentication failed")
		return models.User{}, false, nil
	}

	return foundUser, true, nil
}

// timingHash lazily hashes timingPassword with the configured hasher.
func (a *authService) timingHash() string {
	a.dummyHashOnce.Do(func() {
		hash, err := a.hasher.HashPassword(timingPassword)
		if err != nil {
			a.logger.Err(err).Str("func", "*authService.timingHash").Msg("error hashing timing password")
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

// IssueToken issues a signed JWT whose subject is user.Username.
//
// The token carries the configured issuer and expires after ttl, or after
// the configured default when ttl <= 0.
func (a *authService) IssueToken(ctx context.Context, user models.User, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		ttl = a.tokenTTL
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Username, a.now(), ttl, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.IssueToken").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ResolveToken validates a raw JWT string and loads the user it names.
//
// Every verification failure (bad signature, foreign issuer or algorithm,
// expiry, missing subject) and a subject that no longer exists yield
// ErrInvalidToken. Storage failures are returned as is.
func (a *authService) ResolveToken(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.ResolveToken").Msg("token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, token.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Info().Str("func", "*authService.ResolveToken").Str("username", token.Username).Msg("token subject no longer exists")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResolveToken").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	return user, nil
}
