// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, err
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidAddress)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs to /api/user/register and keeps the returned token.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) error {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&token).
		Post("/api/user/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return h.keepToken(resp, token)
}

// Login POSTs to /api/user/login and keeps the returned token.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) error {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&token).
		Post("/api/user/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	return h.keepToken(resp, token)
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/api/user/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) StoreSecret(ctx context.Context, name, message string) (models.StoreSecretResponse, error) {
	var stored models.StoreSecretResponse

	resp, err := h.authedRequest(ctx).
		SetBody(models.StoreSecretRequest{Name: name, Message: message}).
		SetResult(&stored).
		Post("/api/message")
	if err != nil {
		return models.StoreSecretResponse{}, fmt.Errorf("store secret request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StoreSecretResponse{}, err
	}

	return stored, nil
}

func (h *httpServerAdapter) RetrieveSecret(ctx context.Context, name string) (models.RetrieveSecretResponse, error) {
	var secret models.RetrieveSecretResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("name", name).
		SetResult(&secret).
		Get("/api/message/{name}")
	if err != nil {
		return models.RetrieveSecretResponse{}, fmt.Errorf("retrieve secret request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RetrieveSecretResponse{}, err
	}

	return secret, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

// keepToken stores the token from the response body, falling back to the
// Authorization header.
func (h *httpServerAdapter) keepToken(resp *resty.Response, body models.TokenResponse) error {
	token := body.AccessToken
	if token == "" {
		parsed, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMissingToken, err)
		}
		token = parsed
	}

	h.SetToken(token)
	h.logger.Debug().Msg("bearer token stored")
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
