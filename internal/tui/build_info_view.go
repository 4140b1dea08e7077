// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-secret-vault/models"
)

func renderBuildInfoWindow(client, server models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: Secret Vault\n\n")
	writeBuildInfo(&b, "Client", client)
	b.WriteString("\n")
	writeBuildInfo(&b, "Server", server)

	return renderPage("ABOUT", strings.TrimRight(b.String(), "\n"), "esc: back")
}

func writeBuildInfo(b *strings.Builder, label string, info models.AppBuildInfo) {
	b.WriteString(label)
	b.WriteString(" version: ")
	b.WriteString(valueOrNA(info.Version))
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(" date:    ")
	b.WriteString(valueOrNA(info.Date))
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(" commit:  ")
	b.WriteString(valueOrNA(info.Commit))
	b.WriteString("\n")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return models.NotAvailable
	}
	return v
}
