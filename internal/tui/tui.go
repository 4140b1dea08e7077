// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal client of the secret vault on top of
// Bubble Tea. All server calls go through [adapter.ServerAdapter].
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/models"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned by [TUI.Run] when the user pressed ctrl+c.
var ErrUserQuit = errors.New("user quit")

type TUI struct {
	adapter   adapter.ServerAdapter
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(serverAdapter adapter.ServerAdapter, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{adapter: serverAdapter, buildInfo: buildInfo, logger: logger}
}

// NewRoot builds the router with every page registered and the menu open.
func (t *TUI) NewRoot(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.adapter),
		pageRegister: NewRegisterModel(ctx, t.adapter),
		pageVault:    NewVaultModel(ctx, t.adapter),
	}
	return NewRootModel(ctx, t.adapter, pages, pageMenu, t.buildInfo)
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	t.logger.Info().Msg("terminal UI started")
	finalModel, err := tea.NewProgram(t.NewRoot(ctx), opts...).Run()
	if err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Info().Str("username", result.username).Msg("terminal UI closed by user")
		return ErrUserQuit
	}
	return nil
}
