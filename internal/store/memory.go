// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-secret-vault/models"
)

// MemoryStore is an in-process implementation of both [SecretRepository]
// and [UserRepository]. Uniqueness checks and inserts happen under one
// mutex, so concurrent creates with the same key cannot both succeed.
// Data is lost when the process exits.
type MemoryStore struct {
	mu sync.RWMutex

	secrets      map[string]models.Secret
	lastSecretID int64

	users      map[string]models.User
	emails     map[string]struct{}
	lastUserID int64

	now func() time.Time
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		secrets: make(map[string]models.Secret),
		users:   make(map[string]models.User),
		emails:  make(map[string]struct{}),
		now:     time.Now,
	}
}

// CreateSecret implements [SecretRepository].
func (m *MemoryStore) CreateSecret(ctx context.Context, secret models.Secret) (models.Secret, error) {
	if err := ctx.Err(); err != nil {
		return models.Secret{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.secrets[secret.Name]; exists {
		return models.Secret{}, ErrSecretNameAlreadyExists
	}

	m.lastSecretID++
	secret.ID = m.lastSecretID
	secret.CreatedAt = m.now().UTC()
	if secret.OwnerID != nil {
		owner := *secret.OwnerID
		secret.OwnerID = &owner
	}
	m.secrets[secret.Name] = secret

	return secret, nil
}

// FindSecretByName implements [SecretRepository].
func (m *MemoryStore) FindSecretByName(ctx context.Context, name string) (models.Secret, error) {
	if err := ctx.Err(); err != nil {
		return models.Secret{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	secret, ok := m.secrets[name]
	if !ok {
		return models.Secret{}, ErrSecretNotFound
	}

	return secret, nil
}

// ListSecrets implements [SecretRepository].
func (m *MemoryStore) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	secrets := make([]models.Secret, 0, len(m.secrets))
	for _, s := range m.secrets {
		secrets = append(secrets, s)
	}
	m.mu.RUnlock()

	sort.Slice(secrets, func(i, j int) bool { return secrets[i].ID < secrets[j].ID })

	return secrets, nil
}

// CreateUser implements [UserRepository].
func (m *MemoryStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Username]; exists {
		return models.User{}, ErrUserAlreadyExists
	}
	if _, exists := m.emails[user.Email]; exists {
		return models.User{}, ErrUserAlreadyExists
	}

	m.lastUserID++
	user.UserID = m.lastUserID
	user.CreatedAt = m.now().UTC()
	m.users[user.Username] = user
	m.emails[user.Email] = struct{}{}

	return user, nil
}

// FindUserByUsername implements [UserRepository].
func (m *MemoryStore) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}
