// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/tui"
	"github.com/MKhiriev/go-secret-vault/models"
)

// App wires the server adapter into the terminal UI.
type App struct {
	ui     *tui.TUI
	logger *logger.Logger
}

// NewApp builds the HTTP adapter from cfg and the terminal UI on top of it.
func NewApp(cfg config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	return &App{
		ui:     tui.New(serverAdapter, buildInfo, logger),
		logger: logger,
	}, nil
}

// Run blocks until the user leaves the UI. Quitting with ctrl+c is a normal
// exit and returns nil.
func (a *App) Run(ctx context.Context) error {
	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}
