// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-secret-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldMessage  = "message"
)

// Limits enforced by [RequestValidator].
const (
	MinUsernameLength   = 3
	MaxUsernameLength   = 64
	MaxPasswordBytes    = 72 // bcrypt ignores anything longer
	MaxSecretNameLength = 255
	MaxMessageBytes     = 64 << 10
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// RequestValidator checks the bodies of API requests before they reach the
// services.
type RequestValidator struct{}

// NewRequestValidator returns a [Validator] for [models.RegisterRequest],
// [models.LoginRequest] and [models.StoreSecretRequest].
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate implements [Validator]. Without fields every field of the
// request is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.StoreSecretRequest:
		return v.validateStoreSecretRequest(value, fields...)
	case *models.StoreSecretRequest:
		return v.validateStoreSecretRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegisterRequest(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !ValidUsername(req.Username) {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if !ValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if !ValidPassword(req.Password) {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateLoginRequest(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !ValidUsername(req.Username) {
				return ErrInvalidUsername
			}
		case FieldPassword:
			if !ValidPassword(req.Password) {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateStoreSecretRequest(req models.StoreSecretRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldMessage}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if !ValidSecretName(req.Name) {
				return ErrInvalidSecretName
			}
		case FieldMessage:
			if len(req.Message) > MaxMessageBytes {
				return ErrMessageTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidUsername reports whether s is 3-64 characters of [A-Za-z0-9_.-].
func ValidUsername(s string) bool {
	return len(s) >= MinUsernameLength && len(s) <= MaxUsernameLength && usernamePattern.MatchString(s)
}

// ValidEmail reports whether s is a single bare RFC 5322 address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ValidPassword reports whether s is non-empty and fits into bcrypt.
func ValidPassword(s string) bool {
	return len(s) > 0 && len(s) <= MaxPasswordBytes
}

// ValidSecretName reports whether s is valid UTF-8, 1-255 characters long
// and free of control characters.
func ValidSecretName(s string) bool {
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxSecretNameLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
