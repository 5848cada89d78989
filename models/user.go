// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication.
// Note ownership references User.UserID; the rest of the system never reads
// anything else from this model.
type User struct {
	// UserID is the internal unique identifier of the user. It is the value
	// embedded in issued tokens and recorded as Note.OwnerID.
	UserID int64 `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// Password transports the plaintext password during register/login calls
	// only. It is never persisted and never serialized in responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored at the persistence layer.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
