// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MKhiriev/go-secret-vault/internal/crypto"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/mock"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMemorySecretSvc(t *testing.T, scope bool) (SecretService, *store.MemoryStore) {
	t.Helper()

	sealer, err := crypto.NewSealer(crypto.AESGCM)
	require.NoError(t, err)

	cfg := testAppConfig()
	cfg.ScopeSecretsToOwner = boolPtr(scope)

	mem := store.NewMemoryStore()
	return NewSecretService(mem, sealer, cfg, logger.Nop()), mem
}

func TestSecretService_StoreRetrieveScenario(t *testing.T) {
	svc, mem := newMemorySecretSvc(t, true)
	ctx := context.Background()

	secret, err := svc.Store(ctx, "note1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "note1", secret.Name)
	assert.NotContains(t, secret.Ciphertext, "hello")
	assert.NotEmpty(t, secret.Key)

	stored, err := mem.FindSecretByName(ctx, "note1")
	require.NoError(t, err)
	assert.Equal(t, secret.Ciphertext, stored.Ciphertext)
	assert.Equal(t, secret.Key, stored.Key)

	plaintext, err := svc.Retrieve(ctx, "note1", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", plaintext)

	_, err = svc.Retrieve(ctx, "missing", nil)
	assert.ErrorIs(t, err, store.ErrSecretNotFound)
}

func TestSecretService_DuplicateNameLeavesFirstIntact(t *testing.T) {
	svc, mem := newMemorySecretSvc(t, true)
	ctx := context.Background()

	first, err := svc.Store(ctx, "note1", "first", nil)
	require.NoError(t, err)

	_, err = svc.Store(ctx, "note1", "second", nil)
	require.ErrorIs(t, err, store.ErrSecretNameAlreadyExists)

	all, err := mem.ListSecrets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.Key, all[0].Key)
	assert.Equal(t, first.Ciphertext, all[0].Ciphertext)

	plaintext, err := svc.Retrieve(ctx, "note1", nil)
	require.NoError(t, err)
	assert.Equal(t, "first", plaintext)
}

func TestSecretService_ConcurrentStoreSameName(t *testing.T) {
	svc, _ := newMemorySecretSvc(t, true)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		results = make([]error, 8)
	)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Store(ctx, "race", "payload", nil)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, store.ErrSecretNameAlreadyExists):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, len(results)-1, dup)
}

func TestSecretService_OwnerScoping(t *testing.T) {
	alice := &models.User{UserID: 1, Username: "alice"}
	bob := &models.User{UserID: 2, Username: "bob"}

	tests := []struct {
		name      string
		scope     bool
		owner     *models.User
		requester *models.User
		wantErr   error
	}{
		{name: "owner reads own secret", scope: true, owner: alice, requester: alice},
		{name: "other user is refused", scope: true, owner: alice, requester: bob, wantErr: ErrForbidden},
		{name: "anonymous is refused", scope: true, owner: alice, requester: nil, wantErr: ErrForbidden},
		{name: "unowned secret is shared", scope: true, owner: nil, requester: bob},
		{name: "scoping disabled", scope: false, owner: alice, requester: bob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newMemorySecretSvc(t, tt.scope)
			ctx := context.Background()

			_, err := svc.Store(ctx, "note", "top secret", tt.owner)
			require.NoError(t, err)

			plaintext, err := svc.Retrieve(ctx, "note", tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, plaintext)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "top secret", plaintext)
		})
	}
}

func TestSecretService_Store_PersistsOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSecretRepository(ctrl)
	sealer := mock.NewMockSealer(ctrl)
	svc := NewSecretService(repo, sealer, testAppConfig(), logger.Nop())

	owner := &models.User{UserID: 7}

	gomock.InOrder(
		sealer.EXPECT().Seal("hello").Return(models.SealedSecret{Key: "k", Ciphertext: "ct"}, nil),
		repo.EXPECT().CreateSecret(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s models.Secret) (models.Secret, error) {
				assert.Equal(t, "note1", s.Name)
				assert.Equal(t, "k", s.Key)
				assert.Equal(t, "ct", s.Ciphertext)
				require.NotNil(t, s.OwnerID)
				assert.Equal(t, int64(7), *s.OwnerID)
				s.ID = 1
				return s, nil
			}),
	)

	secret, err := svc.Store(context.Background(), "note1", "hello", owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), secret.ID)
}

func TestSecretService_Store_SealFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSecretRepository(ctrl)
	sealer := mock.NewMockSealer(ctrl)
	svc := NewSecretService(repo, sealer, testAppConfig(), logger.Nop())

	sealer.EXPECT().Seal(gomock.Any()).Return(models.SealedSecret{}, crypto.ErrKeyGeneration)
	repo.EXPECT().CreateSecret(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Store(context.Background(), "note1", "hello", nil)
	assert.ErrorIs(t, err, crypto.ErrKeyGeneration)
}

func TestSecretService_Retrieve_IntegrityFailure(t *testing.T) {
	svc, mem := newMemorySecretSvc(t, true)
	ctx := context.Background()

	sealer, err := crypto.NewSealer(crypto.AESGCM)
	require.NoError(t, err)
	a, err := sealer.Seal("first")
	require.NoError(t, err)
	b, err := sealer.Seal("second")
	require.NoError(t, err)

	// a row whose key does not belong to its ciphertext
	_, err = mem.CreateSecret(ctx, models.Secret{Name: "broken", Ciphertext: a.Ciphertext, Key: b.Key})
	require.NoError(t, err)

	plaintext, err := svc.Retrieve(ctx, "broken", nil)
	assert.ErrorIs(t, err, crypto.ErrIntegrity)
	assert.Empty(t, plaintext)
}

func TestSecretService_List(t *testing.T) {
	svc, _ := newMemorySecretSvc(t, true)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Store(ctx, name, "msg-"+name, nil)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Name, all[1].Name, all[2].Name})
}

func TestSecretService_List_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSecretRepository(ctrl)
	repo.EXPECT().ListSecrets(gomock.Any()).Return(nil, store.ErrExecutingQuery)

	sealer, err := crypto.NewSealer(crypto.AESGCM)
	require.NoError(t, err)
	svc := NewSecretValidationService().Wrap(NewSecretService(repo, sealer, testAppConfig(), logger.Nop()))

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}
