// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-secret-vault/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const testSignKey = "test-sign-key-that-is-at-least-32-bytes"

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:    testSignKey,
		TokenIssuer:     "go-secret-vault",
		TokenTTLMinutes: 30,
		BcryptCost:      bcrypt.MinCost,
		Cipher:          "aes-256-gcm",
		Environment:     config.EnvironmentDevelopment,
		Version:         "1.0.0",
	}
}

func boolPtr(b bool) *bool { return &b }
