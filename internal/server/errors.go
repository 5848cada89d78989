// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoServersAreCreated is returned when the config carries no listen
	// address, leaving nothing to serve.
	errNoServersAreCreated = errors.New("no listen address configured")
)
