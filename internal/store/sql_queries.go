// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/MKhiriev/go-secret-vault/models"
	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with $N placeholders, understood by both pgx and
// go-sqlite3.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	secretColumns = []string{"id", "name", "encrypted_message", "key", "user_id", "created_at"}
	userColumns   = []string{"user_id", "username", "email", "password_hash", "created_at"}
)

// buildInsertSecretQuery inserts the name, ciphertext, key and owner of a
// secret in a single statement and returns the generated id and timestamp.
func buildInsertSecretQuery(secret models.Secret) (string, []any, error) {
	query, args, err := psql.
		Insert(secret.TableName()).
		Columns("name", "encrypted_message", "key", "user_id").
		Values(secret.Name, secret.Ciphertext, secret.Key, nullableID(secret.OwnerID)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectSecretByNameQuery(name string) (string, []any, error) {
	query, args, err := psql.
		Select(secretColumns...).
		From(models.Secret{}.TableName()).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectAllSecretsQuery() (string, []any, error) {
	query, args, err := psql.
		Select(secretColumns...).
		From(models.Secret{}.TableName()).
		OrderBy("id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertUserQuery(user models.User) (string, []any, error) {
	query, args, err := psql.
		Insert(user.TableName()).
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix("RETURNING user_id, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSelectUserByUsernameQuery(username string) (string, []any, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// nullableID converts an optional owner reference to a driver value.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
