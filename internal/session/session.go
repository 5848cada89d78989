// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the client's signed-in identity for the lifetime of
// the process. It replaces implicit global credential state with one holder
// owning explicit Set/Clear/Token/UserID operations plus a change feed that
// interested components subscribe to.
package session

import (
	"sync"

	"github.com/leandrawisnu/noteshare/internal/utils"
)

// Change describes one transition of the session state. SignedIn is false
// after Clear or after storing a token whose identity cannot be decoded.
type Change struct {
	UserID   int64
	SignedIn bool
}

// Session is a process-wide credential holder. The zero UserID means
// anonymous; ownership-gated UI must treat it as "not the owner".
type Session struct {
	mu     sync.RWMutex
	token  string
	userID int64
	subs   []chan Change
}

func New() *Session {
	return &Session{}
}

// Set stores the bearer token and derives the display identity from its
// payload claim. The derivation is advisory: an undecodable token is kept
// (the server will still reject it authoritatively) but yields identity 0.
func (s *Session) Set(token string) {
	userID := utils.DecodeDisplayIdentity(token)

	s.mu.Lock()
	s.token = token
	s.userID = userID
	s.mu.Unlock()

	s.notify(Change{UserID: userID, SignedIn: userID != 0})
}

// Clear drops the stored credential, returning the session to anonymous.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.userID = 0
	s.mu.Unlock()

	s.notify(Change{})
}

// Token returns the stored bearer token, or an empty string when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID returns the advisory identity of the signed-in user, 0 when
// anonymous or undecodable.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Subscribe returns a channel receiving every subsequent session change.
// The channel is buffered; a subscriber that stops draining loses changes
// rather than blocking Set or Clear.
func (s *Session) Subscribe() <-chan Change {
	ch := make(chan Change, 8)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

func (s *Session) notify(change Change) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
