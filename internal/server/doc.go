// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the vault's HTTP and gRPC listeners side by side and
// stops both when the context is cancelled or one of them fails.
package server
