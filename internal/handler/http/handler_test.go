// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- NewHandler ----

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	cfg := config.Server{RateLimit: 5, RateWindow: time.Minute}
	log := logger.Nop()

	h := NewHandler(svc, cfg, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, cfg, h.cfg)
	assert.Equal(t, log, h.logger)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ---- Init: route registration ----

// newRejectingHandler builds a Handler whose services reject every call, so
// each route reaches its handler and fails with a known status.
func newRejectingHandler(t *testing.T, cfg config.Server) *Handler {
	t.Helper()

	auth := &mockAuthService{
		registerFn: func(context.Context, string, string, string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
		authenticateFn: func(context.Context, string, string) (models.User, bool, error) {
			return models.User{}, false, nil
		},
		resolveTokenFn: func(context.Context, string) (models.User, error) {
			return models.User{}, service.ErrInvalidToken
		},
	}

	return NewHandler(&service.Services{
		AuthService:    auth,
		SecretService:  &mockSecretService{},
		AppInfoService: stubBuildInfo{Version: "test"},
	}, cfg, logger.Nop())
}

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	{http.MethodGet, "/"},
	{http.MethodGet, "/api/version"},
	{http.MethodPost, "/api/user/register"},
	{http.MethodPost, "/api/user/login"},
	// auth middleware returns 401, not 404
	{http.MethodGet, "/api/user/me"},
	{http.MethodPost, "/api/message"},
	{http.MethodGet, "/api/message/note1"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newRejectingHandler(t, config.Server{}).Init()

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	router := newRejectingHandler(t, config.Server{}).Init()

	for _, tc := range []routeCase{
		{http.MethodGet, "/api/user/me"},
		{http.MethodPost, "/api/message"},
		{http.MethodGet, "/api/message/note1"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newRejectingHandler(t, config.Server{}).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

// TestInit_WrongMethodReturns404 covers routes mounted in nested groups as
// well as top-level ones.
func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newRejectingHandler(t, config.Server{}).Init()

	for _, tc := range []routeCase{
		{http.MethodPost, "/api/version"},
		{http.MethodGet, "/api/user/register"},
		{http.MethodDelete, "/api/message/note1"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestInit_SetsTraceIDHeader(t *testing.T) {
	router := newRejectingHandler(t, config.Server{}).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_CORSPreflight(t *testing.T) {
	router := newRejectingHandler(t, config.Server{AllowedOrigins: []string{"https://vault.example.com"}}).Init()

	req := httptest.NewRequest(http.MethodOptions, "/api/message", nil)
	req.Header.Set("Origin", "https://vault.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://vault.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestInit_RateLimitsAuthEndpoints verifies that the per-client limit on the
// unauthenticated endpoints answers 429 once exhausted.
func TestInit_RateLimitsAuthEndpoints(t *testing.T) {
	router := newRejectingHandler(t, config.Server{RateLimit: 2, RateWindow: time.Minute}).Init()

	login := func() int {
		body := `{"username":"alice","password":"pw1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusTooManyRequests, login())

	// /api/version is not limited
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
