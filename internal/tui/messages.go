// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-secret-vault/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageVault    = "vault"
)

// NavigateTo asks [RootModel] to switch the active page. A non-nil Payload
// is delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// AuthResult is produced by the login and register pages once the server
// answered. On success the adapter already holds the bearer token.
type AuthResult struct {
	Err      error
	Username string
}

type profileLoadedMsg struct {
	user models.UserResponse
	err  error
}

type secretStoredMsg struct {
	stored models.StoreSecretResponse
	err    error
}

type secretRevealedMsg struct {
	secret models.RetrieveSecretResponse
	err    error
}

type clearStatusMsg struct{}

type serverInfoMsg struct {
	info models.AppBuildInfo
	err  error
}

type logoutNotice struct {
	username string
}
