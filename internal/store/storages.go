// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
)

// Storages bundles the repositories used by the services.
type Storages struct {
	UserRepository   UserRepository
	SecretRepository SecretRepository

	db *DB
}

// backend identifies a storage implementation selected by DSN.
type backend int

const (
	backendMemory backend = iota
	backendPostgres
	backendSQLite
)

// NewStorages selects a backend from cfg.DB.DSN, connects to it, applies
// migrations and returns the repositories.
//
//	memory                          → [MemoryStore]
//	postgres://..., postgresql://...  → PostgreSQL
//	sqlite://path, file:..., *.db   → SQLite
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	kind, target, err := parseDSN(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	var db *DB
	switch kind {
	case backendMemory:
		log.Warn().Str("func", "NewStorages").Msg("using in-memory storage; data is lost on restart")
		mem := NewMemoryStore()
		return &Storages{UserRepository: mem, SecretRepository: mem}, nil
	case backendPostgres:
		db, err = NewConnectPostgres(ctx, target, log)
	case backendSQLite:
		db, err = NewConnectSQLite(ctx, target, log)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return newSQLStorages(db, log), nil
}

func newSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		SecretRepository: NewSecretRepository(db, log),
		db:               db,
	}
}

// Close releases the underlying connection pool, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func parseDSN(dsn string) (backend, string, error) {
	switch {
	case dsn == config.MemoryDSN:
		return backendMemory, "", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return backendPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return backendSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), dsn == ":memory:":
		return backendSQLite, dsn, nil
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// redactDSN hides everything after the scheme so credentials never reach
// logs or error messages.
func redactDSN(dsn string) string {
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		return scheme + "://***"
	}
	return "***"
}
