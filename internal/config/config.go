// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// secret vault. It aggregates all sub-configurations and is populated by
// merging built-in defaults, environment variables, command-line flags and
// an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the token signing key,
	// token lifetime, password hashing cost and the data cipher.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network, timeout, rate-limit and CORS settings for the
	// HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from defaults, environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, logging and versioning.
type App struct {
	// TokenSignKey is the HMAC key used to sign and verify bearer tokens.
	// Must be at least 32 bytes.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// checked on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenTTLMinutes is the default token lifetime in minutes.
	// Env: APP_TOKEN_TTL_MINUTES
	TokenTTLMinutes int `env:"TOKEN_TTL_MINUTES"`

	// BcryptCost is the work factor used when hashing passwords.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Cipher selects the AEAD used for new secrets
	// ("aes-256-gcm" or "chacha20-poly1305").
	// Env: APP_CIPHER
	Cipher string `env:"CIPHER"`

	// ScopeSecretsToOwner restricts retrieval of a secret to the user that
	// stored it. Nil means "use the default" (enabled).
	// Env: APP_SCOPE_SECRETS_TO_OWNER
	ScopeSecretsToOwner *bool `env:"SCOPE_SECRETS_TO_OWNER"`

	// Environment names the deployment ("development", "production").
	// In production the built-in signing key is refused.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// LogLevel is the minimum zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// TokenTTL returns the default token lifetime as a duration. A
// non-positive TokenTTLMinutes yields DefaultTokenTTLMinutes.
func (a App) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return DefaultTokenTTLMinutes * time.Minute
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// ScopeToOwner reports whether secrets are scoped to their owner.
func (a App) ScopeToOwner() bool {
	if a.ScopeSecretsToOwner == nil {
		return true
	}
	return *a.ScopeSecretsToOwner
}

// IsProduction reports whether the application runs in production.
func (a App) IsProduction() bool {
	return a.Environment == EnvironmentProduction
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the storage backend.
type DB struct {
	// DSN selects and configures the backend:
	//   - "memory"                       in-process map, lost on restart
	//   - "postgres://..."               PostgreSQL via pgx
	//   - "sqlite://path", "file:..."    SQLite via go-sqlite3
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC server listens.
	// Empty disables the gRPC server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the handling of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the number of register/login attempts allowed per client
	// IP within RateWindow.
	// Env: SERVER_RATE_LIMIT
	RateLimit int `env:"RATE_LIMIT"`

	// RateWindow is the sliding window for RateLimit.
	// Env: SERVER_RATE_WINDOW
	RateWindow time.Duration `env:"RATE_WINDOW"`

	// AllowedOrigins lists the CORS origins, comma separated in env.
	// Env: SERVER_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Adapter holds the client's view of the server.
type Adapter struct {
	// HTTPAddress is the base URL of the server API
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound client request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LogFile is where the terminal client writes its logs.
	// Env: ADAPTER_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
