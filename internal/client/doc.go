// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the terminal vault client from its config: an
// HTTP server adapter and the Bubble Tea UI driving it.
package client
