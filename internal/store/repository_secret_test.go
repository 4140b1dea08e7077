// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertSecretSQL       = `INSERT INTO secrets (name,encrypted_message,key,user_id) VALUES ($1,$2,$3,$4) RETURNING id, created_at`
	selectSecretByNameSQL = `SELECT id, name, encrypted_message, key, user_id, created_at FROM secrets WHERE name = $1`
	selectAllSecretsSQL   = `SELECT id, name, encrypted_message, key, user_id, created_at FROM secrets ORDER BY id`
)

func newTestSecretRepo(t *testing.T) (*secretRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &secretRepository{db: db, logger: db.logger}, mock
}

func TestCreateSecret(t *testing.T) {
	owner := int64(3)
	now := time.Now().UTC()

	tests := []struct {
		name    string
		secret  models.Secret
		ownerID any
	}{
		{
			name:    "owned",
			secret:  models.Secret{Name: "note1", Ciphertext: "ct", Key: "k", OwnerID: &owner},
			ownerID: owner,
		},
		{
			name:    "unowned",
			secret:  models.Secret{Name: "note2", Ciphertext: "ct", Key: "k"},
			ownerID: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestSecretRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta(insertSecretSQL)).
				WithArgs(tt.secret.Name, tt.secret.Ciphertext, tt.secret.Key, tt.ownerID).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))

			created, err := repo.CreateSecret(context.Background(), tt.secret)
			require.NoError(t, err)
			assert.Equal(t, int64(42), created.ID)
			assert.Equal(t, now, created.CreatedAt)
			assert.Equal(t, tt.secret.Name, created.Name)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateSecret_DuplicateName(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertSecretSQL)).
		WithArgs("note1", "ct", "k", nil).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateSecret(context.Background(), models.Secret{Name: "note1", Ciphertext: "ct", Key: "k"})
	assert.ErrorIs(t, err, ErrSecretNameAlreadyExists)
}

func TestFindSecretByName(t *testing.T) {
	now := time.Now().UTC()

	t.Run("owned", func(t *testing.T) {
		repo, mock := newTestSecretRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSecretByNameSQL)).
			WithArgs("note1").
			WillReturnRows(sqlmock.NewRows(secretColumns).AddRow(1, "note1", "ct", "k", 3, now))

		secret, err := repo.FindSecretByName(context.Background(), "note1")
		require.NoError(t, err)
		require.NotNil(t, secret.OwnerID)
		assert.Equal(t, int64(3), *secret.OwnerID)
		assert.Equal(t, "ct", secret.Ciphertext)
		assert.Equal(t, "k", secret.Key)
	})

	t.Run("unowned", func(t *testing.T) {
		repo, mock := newTestSecretRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSecretByNameSQL)).
			WithArgs("legacy").
			WillReturnRows(sqlmock.NewRows(secretColumns).AddRow(2, "legacy", "ct", "k", nil, now))

		secret, err := repo.FindSecretByName(context.Background(), "legacy")
		require.NoError(t, err)
		assert.Nil(t, secret.OwnerID)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestSecretRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSecretByNameSQL)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindSecretByName(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})

	t.Run("retries deadlock", func(t *testing.T) {
		repo, mock := newTestSecretRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSecretByNameSQL)).
			WithArgs("note1").
			WillReturnError(pgError(pgerrcode.DeadlockDetected))
		mock.ExpectQuery(regexp.QuoteMeta(selectSecretByNameSQL)).
			WithArgs("note1").
			WillReturnRows(sqlmock.NewRows(secretColumns).AddRow(1, "note1", "ct", "k", nil, now))

		secret, err := repo.FindSecretByName(context.Background(), "note1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), secret.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListSecrets(t *testing.T) {
	repo, mock := newTestSecretRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSecretsSQL)).
		WillReturnRows(sqlmock.NewRows(secretColumns).
			AddRow(1, "a", "ct-a", "k-a", 1, now).
			AddRow(2, "b", "ct-b", "k-b", nil, now))

	secrets, err := repo.ListSecrets(context.Background())
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, "a", secrets[0].Name)
	assert.Equal(t, "k-b", secrets[1].Key)
	assert.Nil(t, secrets[1].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSecrets_Empty(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSecretsSQL)).
		WillReturnRows(sqlmock.NewRows(secretColumns))

	secrets, err := repo.ListSecrets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, secrets)
}
