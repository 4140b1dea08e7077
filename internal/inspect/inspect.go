// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package inspect renders the raw contents of the secret table for
// operators: every row with its ciphertext and data key, nothing decrypted.
package inspect

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-secret-vault/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Lister is the part of service.SecretService the inspector needs.
type Lister interface {
	List(ctx context.Context) ([]models.Secret, error)
}

// Run lists every stored secret and writes the table to w.
func Run(ctx context.Context, secrets Lister, w io.Writer) error {
	rows, err := secrets.List(ctx)
	if err != nil {
		return fmt.Errorf("list secrets: %w", err)
	}

	_, err = fmt.Fprintln(w, Render(rows))
	return err
}

// Render formats secrets as a table with one row per secret.
func Render(secrets []models.Secret) string {
	tableWriter := table.NewWriter()
	tableWriter.SetStyle(table.StyleLight)
	tableWriter.AppendHeader(table.Row{"id", "name", "ciphertext", "key", "owner", "created at"})

	for _, s := range secrets {
		tableWriter.AppendRow(table.Row{
			s.ID,
			s.Name,
			s.Ciphertext,
			s.Key,
			owner(s.OwnerID),
			s.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	tableWriter.AppendFooter(table.Row{"", fmt.Sprintf("%d secrets", len(secrets))})

	return tableWriter.Render()
}

func owner(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
