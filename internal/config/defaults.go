// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Deployment environments recognized by [App.IsProduction].
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// DefaultTokenSignKey is the development signing key. Using it outside
// development produces a warning, and in production a validation error.
const DefaultTokenSignKey = "your-secret-key-change-in-production-min-32-chars"

// MinTokenSignKeyLength is the shortest accepted signing key in bytes.
const MinTokenSignKeyLength = 32

// DefaultTokenTTLMinutes is the token lifetime used when none is configured.
const DefaultTokenTTLMinutes = 30

// MemoryDSN selects the in-process storage backend.
const MemoryDSN = "memory"

func defaultConfig() *StructuredConfig {
	scope := true

	return &StructuredConfig{
		App: App{
			TokenSignKey:        DefaultTokenSignKey,
			TokenIssuer:         "go-secret-vault",
			TokenTTLMinutes:     DefaultTokenTTLMinutes,
			BcryptCost:          10,
			Cipher:              "aes-256-gcm",
			ScopeSecretsToOwner: &scope,
			Environment:         EnvironmentDevelopment,
			LogLevel:            "debug",
			Version:             "1.0.0",
		},
		Storage: Storage{
			DB: DB{DSN: "sqlite://secrets.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 10 * time.Second,
			RateLimit:      5,
			RateWindow:     time.Minute,
			AllowedOrigins: []string{"*"},
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}
