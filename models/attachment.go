package models

import "time"

// Attachment is an image resource associated with exactly one note.
// An attachment cannot outlive its note: deleting the note removes every
// attachment row with it, and the stored object bytes are cleaned up
// asynchronously.
type Attachment struct {
	// ID is the server-assigned unique identifier of the attachment.
	ID int64 `json:"id"`

	// NoteID references the owning note. Required, set at creation,
	// immutable.
	NoteID int64 `json:"note_id"`

	// URL is the externally fetchable location of the stored image bytes.
	URL string `json:"url"`

	// ObjectKey is the key of the image object inside the storage bucket.
	// Internal to the server; used for cleanup, never exposed to clients.
	ObjectKey string `json:"-"`

	// CreatedAt is the timestamp assigned by the database on insert.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Attachment model.
func (a Attachment) TableName() string {
	return "attachments"
}
