// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/go-chi/chi/v5"
)

// maxSecretRequestBytes bounds a store request body. JSON escaping can
// inflate a message well past its decoded size, so the exact limit is left
// to the validators.
const maxSecretRequestBytes = 1 << 20

func (h *Handler) storeSecret(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		unauthorized(w)
		return
	}

	var req models.StoreSecretRequest
	body := http.MaxBytesReader(w, r.Body, maxSecretRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	secret, err := h.services.SecretService.Store(ctx, req.Name, req.Message, &user)
	if err != nil {
		writeServiceError(w, log, err, "storing secret failed")
		return
	}

	utils.WriteJSON(w, models.StoreSecretResponse{
		ID:               secret.ID,
		Name:             secret.Name,
		EncryptedMessage: secret.Ciphertext,
	}, http.StatusCreated)
}

func (h *Handler) retrieveSecret(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		unauthorized(w)
		return
	}

	name, err := secretNameParam(r)
	if err != nil {
		writeServiceError(w, log, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err), "malformed secret name in path")
		return
	}

	message, err := h.services.SecretService.Retrieve(ctx, name, &user)
	if err != nil {
		writeServiceError(w, log, err, "retrieving secret failed")
		return
	}

	utils.WriteJSON(w, models.RetrieveSecretResponse{Name: name, Message: message}, http.StatusOK)
}

// secretNameParam returns the {name} segment decoded exactly once. chi
// matches against r.URL.RawPath when it is set (the path held an escaped
// '/' or other non-canonical escape) and against the decoded r.URL.Path
// otherwise, so only the former still needs unescaping.
func secretNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

