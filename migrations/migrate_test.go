// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_ = mock // no expectations: goose's first query must fail

	err = Migrate(context.Background(), db, goose.DialectPostgres, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, goose.DialectPostgres, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, goose.DialectMySQL, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestEmbeddedMigrations_EveryDialectHasSameVersions(t *testing.T) {
	var names [][]string
	for _, dir := range []string{"postgres", "sqlite"} {
		entries, err := fs.ReadDir(embedMigrations, dir)
		require.NoError(t, err)

		var list []string
		for _, e := range entries {
			list = append(list, e.Name())
		}
		names = append(names, list)
	}

	require.NotEmpty(t, names[0])
	assert.Equal(t, names[0], names[1])
}

func TestEmbeddedMigrations_CreateBothTables(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		users, err := fs.ReadFile(embedMigrations, dir+"/00001_create_users.sql")
		require.NoError(t, err)
		assert.Contains(t, string(users), "CREATE TABLE IF NOT EXISTS users")

		secrets, err := fs.ReadFile(embedMigrations, dir+"/00002_create_secrets.sql")
		require.NoError(t, err)
		assert.Contains(t, string(secrets), "CREATE TABLE IF NOT EXISTS secrets")
	}
}
