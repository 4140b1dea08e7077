// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel owns the page map and forwards messages to the current page.
// It handles ctrl+c, NavigateTo, AuthResult and the build info overlay
// itself.
type RootModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	pages   map[string]tea.Model
	current tea.Model

	quitByUser bool
	username   string

	buildInfo     models.AppBuildInfo
	serverInfo    models.AppBuildInfo
	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(ctx context.Context, serverAdapter adapter.ServerAdapter, pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx:        ctx,
		adapter:    serverAdapter,
		pages:      pages,
		current:    pages[startPage],
		buildInfo:  buildInfo,
		serverInfo: models.NewAppBuildInfo("", "", ""),
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkeys for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(keyMsg, keys.version) && r.isMenuPage():
			r.showBuildInfo = !r.showBuildInfo
			if r.showBuildInfo {
				return r, r.cmdServerInfo()
			}
			return r, nil
		case key.Matches(keyMsg, keys.esc) && r.showBuildInfo:
			r.showBuildInfo = false
			return r, nil
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case serverInfoMsg:
		if msg.err == nil {
			r.serverInfo = msg.info
		}
		return r, nil
	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}

		r.showBuildInfo = false
		r.current = next

		if msg.Payload != nil {
			payload := msg.Payload
			return r, func() tea.Msg { return payload }
		}
		return r, r.current.Init()
	case AuthResult:
		if msg.Err == nil {
			r.username = msg.Username
			if vault, exists := r.pages[pageVault]; exists {
				r.current = vault
				return r, r.current.Init()
			}
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.serverInfo)
	}
	if r.current == nil {
		return renderPage("SECRET VAULT", "", "")
	}
	return r.current.View()
}

func (r RootModel) isMenuPage() bool {
	_, ok := r.current.(*MenuModel)
	return ok
}

func (r RootModel) cmdServerInfo() tea.Cmd {
	ctx := r.ctx
	serverAdapter := r.adapter

	return func() tea.Msg {
		info, err := serverAdapter.Version(ctx)
		return serverInfoMsg{info: info, err: err}
	}
}
