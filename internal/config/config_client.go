// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the server API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the server address and timeouts.
	Adapter ClientAdapter
	// LogFile is where the client writes its logs.
	LogFile string
	// LogLevel is the minimum log level.
	LogLevel string
}

// GetClientConfig builds and validates a client-specific config view from
// defaults, environment, flags and the JSON file.
//
// Unlike [GetStructuredConfig] it does not validate server-only settings,
// so a client can run without a signing key.
func GetClientConfig() (*ClientConfig, error) {
	return buildClientConfig(os.Args[1:])
}

func buildClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		LogFile:  cfg.Adapter.LogFile,
		LogLevel: cfg.App.LogLevel,
	}

	return clientCfg, clientCfg.validate()
}
