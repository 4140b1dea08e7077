// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	cfg := config.ClientConfig{Adapter: config.ClientAdapter{HTTPAddress: "localhost:8080", RequestTimeout: time.Second}}

	app, err := NewApp(cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, app.ui)
}

func TestNewApp_InvalidAddress(t *testing.T) {
	app, err := NewApp(config.ClientConfig{}, models.AppBuildInfo{}, logger.Nop())

	require.ErrorIs(t, err, adapter.ErrInvalidAddress)
	assert.Nil(t, app)
}
