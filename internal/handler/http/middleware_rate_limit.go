// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/utils"
	"github.com/go-chi/httprate"
)

// withRateLimit throttles credential endpoints per client IP. A non-positive
// limit disables throttling.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.cfg.RateLimit <= 0 || h.cfg.RateWindow <= 0 {
		return next
	}

	return httprate.Limit(
		h.cfg.RateLimit,
		h.cfg.RateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.FromRequest(r).Warn().Str("remote_addr", r.RemoteAddr).Msg("rate limit exceeded")
			utils.WriteError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)(next)
}
