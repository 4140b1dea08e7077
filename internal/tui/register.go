// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	registerUsername = iota
	registerEmail
	registerPassword
	registerRepeat
)

// RegisterModel is the Bubble Tea model for the registration screen. It renders four
// text inputs (username, email, password and password confirmation) and dispatches an
// async registration command on form submission. The server answers a successful
// registration with a token, so [RootModel] opens the vault page straight away.
type RegisterModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel] with four pre-configured text inputs.
func NewRegisterModel(ctx context.Context, serverAdapter adapter.ServerAdapter) *RegisterModel {
	fields := make([]textinput.Model, 4)

	fields[registerUsername] = textinput.New()
	fields[registerUsername].Placeholder = "username"
	fields[registerUsername].CharLimit = 32
	fields[registerUsername].Width = 40
	fields[registerUsername].Focus()

	fields[registerEmail] = textinput.New()
	fields[registerEmail].Placeholder = "email"
	fields[registerEmail].CharLimit = 254
	fields[registerEmail].Width = 40

	fields[registerPassword] = textinput.New()
	fields[registerPassword].Placeholder = "password"
	fields[registerPassword].CharLimit = 72
	fields[registerPassword].EchoMode = textinput.EchoPassword
	fields[registerPassword].EchoCharacter = '*'
	fields[registerPassword].Width = 40

	fields[registerRepeat] = textinput.New()
	fields[registerRepeat].Placeholder = "repeat password"
	fields[registerRepeat].CharLimit = 72
	fields[registerRepeat].EchoMode = textinput.EchoPassword
	fields[registerRepeat].EchoCharacter = '*'
	fields[registerRepeat].Width = 40

	return &RegisterModel{
		ctx:     ctx,
		adapter: serverAdapter,
		inputs:  fields,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	m.submitting = false
	m.errMsg = ""
	resetInputs(m.inputs, &m.focus)
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [AuthResult] clears submitting state; on error, populates errMsg.
//   - esc returns to the menu.
//   - tab / shift+tab move focus between inputs.
//   - enter checks that all fields are filled and the passwords match, then
//     dispatches the async registration command.
//
// Username, email and password rules are enforced by the server; its
// message is shown as is.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(AuthResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
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

			req := models.RegisterRequest{
				Username: strings.TrimSpace(m.inputs[registerUsername].Value()),
				Email:    strings.TrimSpace(m.inputs[registerEmail].Value()),
				Password: m.inputs[registerPassword].Value(),
			}
			repeat := m.inputs[registerRepeat].Value()

			if req.Username == "" || req.Email == "" || req.Password == "" || repeat == "" {
				m.errMsg = "all fields are required"
				return m, nil
			}
			if req.Password != repeat {
				m.errMsg = "passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(req)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	labels := []string{
		registerUsername: "Username",
		registerEmail:    "Email",
		registerPassword: "Password",
		registerRepeat:   "Repeat password",
	}
	body := renderForm(labels, m.inputs, "Register", "Registering...", m.submitting, m.errMsg)
	return renderPage("REGISTER", body, "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		err := serverAdapter.Register(ctx, req)
		return AuthResult{Err: err, Username: req.Username}
	}
}
