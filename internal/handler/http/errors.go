// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-secret-vault/internal/app"
)

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New(app.MsgEmptyAuthorization)

	// ErrInvalidJSON is reported when a request body cannot be decoded.
	ErrInvalidJSON = errors.New(app.MsgInvalidJSON)

	// ErrInvalidCredentials is the single message for every failed login.
	ErrInvalidCredentials = errors.New(app.MsgInvalidCredentials)
)
