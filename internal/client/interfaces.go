// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is what cmd/client runs: it owns the terminal until the user quits
// or ctx is cancelled.
type Client interface {
	Run(ctx context.Context) error
}

var _ Client = (*App)(nil)
