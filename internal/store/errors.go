// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSecretNotFound is returned when no secret has the requested name.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretNameAlreadyExists is returned when a secret with the same name
	// is already stored.
	ErrSecretNameAlreadyExists = errors.New("secret name already exists")

	// ErrUserAlreadyExists is returned when an attempt to register a new user
	// fails because the username or email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no user has the requested username.
	ErrUserNotFound = errors.New("user not found")
)

// Low-level database errors. These are returned (or wrapped) by repository
// methods when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails for a reason
	// other than a known constraint violation.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrUnsupportedDSN is returned when a DSN names no known backend.
	ErrUnsupportedDSN = errors.New("unsupported storage DSN")
)
