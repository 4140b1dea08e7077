// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("vault server: no transport handlers to serve")
	errNoServersToRun      = errors.New("vault server: nothing to run")
)
