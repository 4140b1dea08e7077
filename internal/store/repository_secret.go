// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/models"
)

// secretRepository is the SQL implementation of [SecretRepository] over the
// "secrets" table. It works unchanged on PostgreSQL and SQLite.
type secretRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSecretRepository constructs a [SecretRepository] backed by db.
func NewSecretRepository(db *DB, logger *logger.Logger) SecretRepository {
	logger.Debug().Msg("creating secret repository")
	return &secretRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSecret implements [SecretRepository]. The name, ciphertext, key and
// owner are written by one INSERT, so a unique violation leaves no trace.
//
// Error handling:
//   - unique violation on name → [ErrSecretNameAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *secretRepository) CreateSecret(ctx context.Context, secret models.Secret) (models.Secret, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSecretQuery(secret)
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.CreateSecret").Msg("error building query")
		return models.Secret{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err == nil {
		err = row.Scan(&secret.ID, timestamp{&secret.CreatedAt})
	}
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.CreateSecret").Msg("error inserting secret")
		return models.Secret{}, r.db.queryError(err, ErrSecretNameAlreadyExists, nil)
	}

	return secret, nil
}

// FindSecretByName implements [SecretRepository].
//
// Error handling:
//   - no rows → [ErrSecretNotFound].
//   - transient errors are retried, others wrapped in [ErrExecutingQuery].
func (r *secretRepository) FindSecretByName(ctx context.Context, name string) (models.Secret, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSecretByNameQuery(name)
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.FindSecretByName").Msg("error building query")
		return models.Secret{}, err
	}

	secret, err := withReadRetry(ctx, r.db, func(ctx context.Context) (models.Secret, error) {
		return scanSecret(r.db.QueryRowContext(ctx, query, args...))
	})
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.FindSecretByName").Msg("error finding secret")
		return models.Secret{}, r.db.queryError(err, nil, ErrSecretNotFound)
	}

	return secret, nil
}

// ListSecrets implements [SecretRepository].
func (r *secretRepository) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllSecretsQuery()
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.ListSecrets").Msg("error building query")
		return nil, err
	}

	secrets, err := withReadRetry(ctx, r.db, func(ctx context.Context) ([]models.Secret, error) {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var secrets []models.Secret
		for rows.Next() {
			secret, err := scanSecret(rows)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			secrets = append(secrets, secret)
		}

		return secrets, rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.ListSecrets").Msg("error listing secrets")
		return nil, r.db.queryError(err, nil, nil)
	}

	return secrets, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecret(row rowScanner) (models.Secret, error) {
	var (
		secret  models.Secret
		ownerID sql.NullInt64
	)

	if err := row.Scan(&secret.ID, &secret.Name, &secret.Ciphertext, &secret.Key, &ownerID, timestamp{&secret.CreatedAt}); err != nil {
		return models.Secret{}, err
	}
	if ownerID.Valid {
		secret.OwnerID = &ownerID.Int64
	}

	return secret, nil
}
