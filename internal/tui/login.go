// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text inputs
// (username and password) and dispatches an async login command on form submission.
// On success an [AuthResult] message is produced and handled by [RootModel], which
// opens the vault page.
type LoginModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with pre-configured username and password inputs.
// The username field receives focus immediately; the password field uses masked echo.
func NewLoginModel(ctx context.Context, serverAdapter adapter.ServerAdapter) *LoginModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = 32
	usernameInput.Width = 40
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 72
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:     ctx,
		adapter: serverAdapter,
		inputs:  []textinput.Model{usernameInput, passwordInput},
	}
}

// Init implements [tea.Model]. Clears the form and starts the cursor-blink
// animation for the username input.
func (m *LoginModel) Init() tea.Cmd {
	m.submitting = false
	m.errMsg = ""
	resetInputs(m.inputs, &m.focus)
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [AuthResult] clears submitting state; on error, populates errMsg.
//   - esc returns to the menu.
//   - tab / shift+tab move focus between inputs.
//   - enter validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(AuthResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = loginErrorMessage(result.Err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			focusNext(m.inputs, &m.focus)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			focusPrev(m.inputs, &m.focus)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username == "" || password == "" {
				m.errMsg = "username and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(username, password)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	body := renderForm([]string{"Username", "Password"}, m.inputs, "Log in", "Logging in...", m.submitting, m.errMsg)
	return renderPage("LOG IN", body, "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(username, password string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		err := serverAdapter.Login(ctx, models.LoginRequest{Username: username, Password: password})
		return AuthResult{Err: err, Username: username}
	}
}

// loginErrorMessage never tells an unknown user apart from a wrong password.
func loginErrorMessage(err error) string {
	if errors.Is(err, adapter.ErrUnauthorized) {
		return "invalid username or password"
	}
	return humanizeError(err)
}

func focusNext(inputs []textinput.Model, focus *int) {
	inputs[*focus].Blur()
	*focus = (*focus + 1) % len(inputs)
	inputs[*focus].Focus()
}

func focusPrev(inputs []textinput.Model, focus *int) {
	inputs[*focus].Blur()
	*focus = (*focus - 1 + len(inputs)) % len(inputs)
	inputs[*focus].Focus()
}

func resetInputs(inputs []textinput.Model, focus *int) {
	for i := range inputs {
		inputs[i].SetValue("")
		inputs[i].Blur()
	}
	*focus = 0
	inputs[*focus].Focus()
}
