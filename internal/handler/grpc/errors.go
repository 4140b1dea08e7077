// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"errors"

	"github.com/MKhiriev/go-secret-vault/internal/app"
	"github.com/MKhiriev/go-secret-vault/internal/crypto"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errInvalidCredentials = errors.New(app.MsgInvalidCredentials)

var errorCodeMap = map[error]codes.Code{
	service.ErrInvalidDataProvided: codes.InvalidArgument,
	service.ErrInvalidToken:        codes.Unauthenticated,
	service.ErrForbidden:           codes.PermissionDenied,

	store.ErrSecretNotFound:          codes.NotFound,
	store.ErrSecretNameAlreadyExists: codes.AlreadyExists,
	store.ErrUserAlreadyExists:       codes.AlreadyExists,

	crypto.ErrIntegrity: codes.DataLoss,
}

// statusFromError converts a service error into a gRPC status error.
// Validation errors keep their detail, the rest expose only the sentinel
// message, and unknown errors become codes.Internal.
func statusFromError(err error) error {
	for target, code := range errorCodeMap {
		if !errors.Is(err, target) {
			continue
		}
		if code == codes.InvalidArgument {
			return status.Error(code, err.Error())
		}
		return status.Error(code, target.Error())
	}
	return status.Error(codes.Internal, app.MsgInternalError)
}

func serviceError(log *logger.Logger, err error, msg string) error {
	st := statusFromError(err)
	if code := status.Code(st); code == codes.Internal || code == codes.DataLoss {
		log.Err(err).Str("code", code.String()).Msg(msg)
	} else {
		log.Warn().Err(err).Str("code", code.String()).Msg(msg)
	}
	return st
}
