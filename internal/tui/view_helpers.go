// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const pageWidth = 54

// renderPage frames body between two rules under an upper-case title and
// lists the page's hot keys plus the global quit key underneath.
func renderPage(title, body, hotKeys string) string {
	rule := strings.Repeat("─", pageWidth)

	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	help := "ctrl+c: quit"
	if hotKeys = strings.TrimSpace(hotKeys); hotKeys != "" {
		help = hotKeys + " │ " + help
	}

	page := lipgloss.JoinVertical(lipgloss.Left,
		rule,
		"",
		body,
		"",
		rule,
		helpStyle.Render(help),
	)
	return titleStyle.Render(title) + "\n" + pageStyle.Render(page)
}

// renderForm lays labels and inputs out in two aligned columns followed by
// the submit button, which reads busy while a request is in flight.
func renderForm(labels []string, inputs []textinput.Model, button, busy string, submitting bool, errMsg string) string {
	width := 0
	for _, l := range labels {
		width = max(width, lipgloss.Width(l))
	}

	var b strings.Builder
	for i, in := range inputs {
		fmt.Fprintf(&b, "%-*s  %s\n", width, labels[i], in.View())
	}

	if submitting {
		button = busy
	}
	b.WriteString("\n[" + button + "]\n")
	writeFeedback(&b, "", errMsg)

	return b.String()
}

// writeFeedback appends the status and error lines shared by every form.
func writeFeedback(b *strings.Builder, status, errMsg string) {
	if status != "" {
		b.WriteString("\n" + statusStyle.Render("OK: "+status) + "\n")
	}
	if errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+errMsg) + "\n")
	}
}

// fitText truncates v to max bytes, ending in "..." when there is room.
func fitText(v string, max int) string {
	switch {
	case max <= 0 || len(v) <= max:
		return v
	case max <= 3:
		return v[:max]
	default:
		return v[:max-3] + "..."
	}
}

// maskSecret hides v behind at most 24 bullets.
func maskSecret(v string) string {
	return strings.Repeat("•", min(len([]rune(v)), 24))
}
