// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is a runnable note-browsing application.
type Client interface {
	// Run drives the login flow and the notes browser until the user quits.
	Run() error
}
