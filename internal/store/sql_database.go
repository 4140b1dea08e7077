// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/migrations"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

// DB is an open SQL connection pool together with the knowledge of which
// backend it talks to.
type DB struct {
	*sql.DB
	dialect            goose.Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for the DB's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect, db.logger)
}

// queryError maps a driver error to a repository error. A unique violation
// becomes onUnique; sql.ErrNoRows becomes onNoRows; anything else is
// wrapped into [ErrExecutingQuery].
func (db *DB) queryError(err, onUnique, onNoRows error) error {
	switch {
	case onUnique != nil && db.errorClassificator.IsUniqueViolation(err):
		return onUnique
	case onNoRows != nil && errors.Is(err, sql.ErrNoRows):
		return onNoRows
	default:
		return fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}
}

// readRetryBackoff bounds retries of idempotent reads on transient errors.
var readRetryBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
}

// withReadRetry runs an idempotent read, retrying errors the classifier
// marks as [Retryable].
func withReadRetry[T any](ctx context.Context, db *DB, read func(ctx context.Context) (T, error)) (T, error) {
	return retry.DoValue(ctx, readRetryBackoff(), func(ctx context.Context) (T, error) {
		v, err := read(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			return v, retry.RetryableError(err)
		}
		return v, err
	})
}
