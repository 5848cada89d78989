package models

import "time"

// Note is a short text record created by an authenticated user.
//
// OwnerID is assigned exactly once, at creation time, from the identity
// embedded in the caller's bearer token. No operation reassigns it: notes are
// write-once and can only be deleted by their owner.
type Note struct {
	// ID is the server-assigned unique identifier of the note.
	ID int64 `json:"id"`

	// OwnerID is the identifier of the user who created the note.
	// It never changes for the lifetime of the note.
	OwnerID int64 `json:"owner_id"`

	// Title is free-form text. It may be empty but the field is always
	// present in request and response bodies.
	Title string `json:"title"`

	// Content is the free-form body of the note. May be empty.
	Content string `json:"content"`

	// CreatedAt is the timestamp assigned by the database on insert.
	CreatedAt time.Time `json:"created_at"`

	// Attachments holds every image attached to the note, ordered by
	// creation. Always serialized, as an empty array when the note has none.
	Attachments []Attachment `json:"attachments"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
