// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername   = errors.New("username must be 3-64 characters: letters, digits, '_', '.' or '-'")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidPassword   = errors.New("password must be 1-72 bytes long")
	ErrInvalidSecretName = errors.New("secret name must be 1-255 characters without control characters")
	ErrMessageTooLarge   = errors.New("message exceeds 64 KiB")
)
