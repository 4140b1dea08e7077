// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
)

const msgServerUnreachable = "network is down or the server is unavailable"

// humanizeError turns adapter and network errors into a single line for the
// status area.
func humanizeError(err error) string {
	var netErr net.Error

	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrTooManyRequests):
		return "too many attempts, try again in a minute"
	case errors.Is(err, adapter.ErrInternalServerError):
		return "server error, try again later"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return msgServerUnreachable
	case strings.Contains(err.Error(), "connection refused"), strings.Contains(err.Error(), "no such host"):
		return msgServerUnreachable
	}

	return err.Error()
}
