// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command vaultinspect prints every stored secret with its ciphertext and
// data key. It reads the same configuration as the server.
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-secret-vault/internal/config"
	"github.com/MKhiriev/go-secret-vault/internal/inspect"
	"github.com/MKhiriev/go-secret-vault/internal/logger"
	"github.com/MKhiriev/go-secret-vault/internal/service"
	"github.com/MKhiriev/go-secret-vault/internal/store"
	"github.com/MKhiriev/go-secret-vault/models"
)

func main() {
	log := logger.NewClientLogger("go-secret-vault-inspect", "")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, models.NewAppBuildInfo("", "", ""), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = inspect.Run(ctx, services.SecretService, os.Stdout); err != nil {
		log.Error().Err(err).Msg("inspect failed")
		os.Exit(1)
	}
}
