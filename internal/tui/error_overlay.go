// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

// renderSessionExpired is shown over the vault page once the server rejects
// the stored token.
func renderSessionExpired() string {
	content := "Session expired\n\nYour token is no longer accepted by the server.\n\nenter / esc: back to menu"
	return overlayBoxStyle.Render(content)
}
