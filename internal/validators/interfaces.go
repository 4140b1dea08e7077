// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault requests before they reach the services.
//
// Credentials and secret names are validated here so that the HTTP and gRPC
// transports reject malformed input with the same sentinel errors.
package validators

import "context"

// Validator checks a request value. When fields are given only those fields
// are checked; an unknown field name yields [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
