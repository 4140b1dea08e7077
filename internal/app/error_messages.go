// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the HTTP and gRPC
// transports, so both answer a failure with the same wording.
package app

const (
	// MsgInvalidCredentials is the single answer to every failed login:
	// unknown user and wrong password are indistinguishable.
	MsgInvalidCredentials = "invalid username/password"

	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgEmptyAuthorization is returned when a protected call carries no
	// bearer token at all.
	MsgEmptyAuthorization = "empty `Authorization` header"

	// MsgInternalError hides the cause of an unexpected failure from gRPC
	// callers. HTTP answers with the status text instead.
	MsgInternalError = "internal error"
)
