// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-secret-vault/internal/adapter"
	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type vaultMode int

const (
	vaultModeActions vaultMode = iota
	vaultModeStore
	vaultModeReveal
	vaultModeSecret
	vaultModeExpired
)

const (
	actionStore = iota
	actionReveal
	actionLogout
)

const statusTTL = 3 * time.Second

// VaultModel is the page shown after authentication. It stores new secrets,
// reveals stored ones by name and copies a revealed message to the clipboard.
type VaultModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter
	copy    func(string) error

	user models.UserResponse
	mode vaultMode

	actions []string
	idx     int

	nameInput    textinput.Model
	messageInput textarea.Model
	storeFocus   int

	revealInput textinput.Model
	revealed    models.RetrieveSecretResponse
	showPlain   bool

	busy   bool
	status string
	errMsg string
}

// NewVaultModel creates a [VaultModel]. Revealed messages are copied with
// [clipboard.WriteAll].
func NewVaultModel(ctx context.Context, serverAdapter adapter.ServerAdapter) *VaultModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "secret name"
	nameInput.CharLimit = 128
	nameInput.Width = 40

	messageInput := textarea.New()
	messageInput.Placeholder = "message"
	messageInput.SetWidth(48)
	messageInput.SetHeight(5)

	revealInput := textinput.New()
	revealInput.Placeholder = "secret name"
	revealInput.CharLimit = 128
	revealInput.Width = 40

	return &VaultModel{
		ctx:          ctx,
		adapter:      serverAdapter,
		copy:         clipboard.WriteAll,
		actions:      []string{"Store a secret", "Reveal a secret", "Log out"},
		nameInput:    nameInput,
		messageInput: messageInput,
		revealInput:  revealInput,
	}
}

// Init resets the page and loads the profile of the logged-in user.
func (m *VaultModel) Init() tea.Cmd {
	m.mode = vaultModeActions
	m.idx = 0
	m.user = models.UserResponse{}
	m.revealed = models.RetrieveSecretResponse{}
	m.showPlain = false
	m.busy = false
	m.status = ""
	m.errMsg = ""
	return m.cmdLoadProfile()
}

func (m *VaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.user = msg.user
		return m, nil
	case secretStoredMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.mode = vaultModeActions
		m.errMsg = ""
		m.status = fmt.Sprintf("stored %q as %s", msg.stored.Name, fitText(msg.stored.EncryptedMessage, 24))
		return m, clearStatusAfter(statusTTL)
	case secretRevealedMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.revealed = msg.secret
		m.showPlain = false
		m.errMsg = ""
		m.mode = vaultModeSecret
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	switch m.mode {
	case vaultModeStore:
		return m.updateStore(msg, keyMsg, isKey)
	case vaultModeReveal:
		return m.updateReveal(msg, keyMsg, isKey)
	}

	if !isKey {
		return m, nil
	}

	switch m.mode {
	case vaultModeSecret:
		return m.updateSecret(keyMsg)
	case vaultModeExpired:
		if key.Matches(keyMsg, keys.enter, keys.esc) {
			return m, m.logout()
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.actions)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.logout):
		return m, m.logout()
	case key.Matches(keyMsg, keys.enter):
		m.errMsg = ""
		switch m.idx {
		case actionStore:
			return m, m.startStore()
		case actionReveal:
			return m, m.startReveal()
		case actionLogout:
			return m, m.logout()
		}
	}

	return m, nil
}

func (m *VaultModel) updateStore(msg tea.Msg, keyMsg tea.KeyMsg, isKey bool) (tea.Model, tea.Cmd) {
	if isKey {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.mode = vaultModeActions
			m.errMsg = ""
			return m, nil
		case key.Matches(keyMsg, keys.tab, keys.backtab):
			m.toggleStoreFocus()
			return m, nil
		case key.Matches(keyMsg, keys.submit):
			if m.busy {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			message := m.messageInput.Value()
			if name == "" || strings.TrimSpace(message) == "" {
				m.errMsg = "name and message are required"
				return m, nil
			}
			m.errMsg = ""
			m.busy = true
			return m, m.cmdStore(name, message)
		}
	}

	var cmd tea.Cmd
	if m.storeFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.messageInput, cmd = m.messageInput.Update(msg)
	}
	return m, cmd
}

func (m *VaultModel) updateReveal(msg tea.Msg, keyMsg tea.KeyMsg, isKey bool) (tea.Model, tea.Cmd) {
	if isKey {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.mode = vaultModeActions
			m.errMsg = ""
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.busy {
				return m, nil
			}
			name := strings.TrimSpace(m.revealInput.Value())
			if name == "" {
				m.errMsg = "name is required"
				return m, nil
			}
			m.errMsg = ""
			m.busy = true
			return m, m.cmdRetrieve(name)
		}
	}

	var cmd tea.Cmd
	m.revealInput, cmd = m.revealInput.Update(msg)
	return m, cmd
}

func (m *VaultModel) updateSecret(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.revealed = models.RetrieveSecretResponse{}
		m.showPlain = false
		m.mode = vaultModeActions
	case key.Matches(keyMsg, keys.toggle):
		m.showPlain = !m.showPlain
	case key.Matches(keyMsg, keys.copy):
		if err := m.copy(m.revealed.Message); err != nil {
			m.errMsg = "copy failed: " + err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = "copied to clipboard"
		return m, clearStatusAfter(statusTTL)
	}
	return m, nil
}

func (m *VaultModel) View() string {
	switch m.mode {
	case vaultModeStore:
		return m.viewStore()
	case vaultModeReveal:
		return m.viewReveal()
	case vaultModeSecret:
		return m.viewSecret()
	case vaultModeExpired:
		return renderSessionExpired()
	}

	var b strings.Builder
	if m.user.Username != "" {
		b.WriteString("Signed in as ")
		b.WriteString(m.user.Username)
		if m.user.Email != "" {
			b.WriteString(" <")
			b.WriteString(m.user.Email)
			b.WriteString(">")
		}
		b.WriteString("\n\n")
	}

	for i, action := range m.actions {
		if i == m.idx {
			b.WriteString(cursorStyle.Render("> "+action) + "\n")
			continue
		}
		b.WriteString("  " + action + "\n")
	}

	writeFeedback(&b, m.status, m.errMsg)

	return renderPage("VAULT", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ l: log out")
}

func (m *VaultModel) viewStore() string {
	var b strings.Builder
	b.WriteString("Name     │ [")
	b.WriteString(m.nameInput.View())
	b.WriteString("]\n\n")
	b.WriteString("Message\n")
	b.WriteString(m.messageInput.View())
	b.WriteString("\n")

	if m.busy {
		b.WriteString("\n[Storing...]\n")
	}
	writeFeedback(&b, "", m.errMsg)

	return renderPage("STORE A SECRET", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ ctrl+s: store")
}

func (m *VaultModel) viewReveal() string {
	var b strings.Builder
	b.WriteString("Name     │ [")
	b.WriteString(m.revealInput.View())
	b.WriteString("]\n")

	if m.busy {
		b.WriteString("\n[Revealing...]\n")
	}
	writeFeedback(&b, "", m.errMsg)

	return renderPage("REVEAL A SECRET", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: reveal")
}

func (m *VaultModel) viewSecret() string {
	var b strings.Builder
	b.WriteString("Name     │ ")
	b.WriteString(m.revealed.Name)
	b.WriteString("\n")
	b.WriteString("Message  │ ")
	if m.showPlain {
		b.WriteString(strings.ReplaceAll(m.revealed.Message, "\n", "\n         │ "))
	} else {
		b.WriteString(maskSecret(m.revealed.Message))
	}
	b.WriteString("\n")

	writeFeedback(&b, m.status, m.errMsg)

	return renderPage("SECRET", strings.TrimRight(b.String(), "\n"), "esc: back │ space: show/hide │ c: copy")
}

func (m *VaultModel) startStore() tea.Cmd {
	m.mode = vaultModeStore
	m.nameInput.SetValue("")
	m.messageInput.Reset()
	m.storeFocus = 0
	m.messageInput.Blur()
	return m.nameInput.Focus()
}

func (m *VaultModel) startReveal() tea.Cmd {
	m.mode = vaultModeReveal
	m.revealInput.SetValue("")
	return m.revealInput.Focus()
}

func (m *VaultModel) toggleStoreFocus() {
	if m.storeFocus == 0 {
		m.storeFocus = 1
		m.nameInput.Blur()
		m.messageInput.Focus()
		return
	}
	m.storeFocus = 0
	m.messageInput.Blur()
	m.nameInput.Focus()
}

// fail reports err on the current form. A rejected token switches the page
// to the session-expired notice.
func (m *VaultModel) fail(err error) tea.Cmd {
	m.busy = false
	if errors.Is(err, adapter.ErrUnauthorized) {
		m.mode = vaultModeExpired
		return nil
	}
	m.errMsg = humanizeError(err)
	return nil
}

func (m *VaultModel) logout() tea.Cmd {
	username := m.user.Username
	m.adapter.SetToken("")
	m.revealed = models.RetrieveSecretResponse{}
	m.user = models.UserResponse{}
	return func() tea.Msg {
		return NavigateTo{Page: pageMenu, Payload: logoutNotice{username: username}}
	}
}

func (m *VaultModel) cmdLoadProfile() tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		user, err := serverAdapter.Me(ctx)
		return profileLoadedMsg{user: user, err: err}
	}
}

func (m *VaultModel) cmdStore(name, message string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		stored, err := serverAdapter.StoreSecret(ctx, name, message)
		return secretStoredMsg{stored: stored, err: err}
	}
}

func (m *VaultModel) cmdRetrieve(name string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter

	return func() tea.Msg {
		secret, err := serverAdapter.RetrieveSecret(ctx, name)
		return secretRevealedMsg{secret: secret, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
