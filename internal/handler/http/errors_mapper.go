// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-secret-vault/internal/crypto"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidToken:        http.StatusUnauthorized,
	service.ErrForbidden:           http.StatusForbidden,

	store.ErrSecretNotFound:          http.StatusNotFound,
	store.ErrSecretNameAlreadyExists: http.StatusConflict,
	store.ErrUserAlreadyExists:       http.StatusConflict,

	crypto.ErrIntegrity: http.StatusInternalServerError,
}

// statusFromError returns the HTTP status for err together with the message
// safe to show to the client.
func statusFromError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if !errors.Is(err, target) {
			continue
		}
		switch status {
		case http.StatusBadRequest:
			return status, err.Error()
		case http.StatusInternalServerError:
			return status, http.StatusText(status)
		default:
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeServiceError logs err and writes the mapped JSON error response.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	status, detail := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}
	utils.WriteError(w, detail, status)
}
