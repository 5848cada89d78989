package models

import "time"

// Audit event types published on every successful mutation.
const (
	EventNoteCreated       = "note.created"
	EventNoteDeleted       = "note.deleted"
	EventAttachmentCreated = "attachment.created"
	EventAttachmentDeleted = "attachment.deleted"
)

// AuditEvent is the message published to the audit topic when a note or
// attachment is mutated. It replaces a synchronous request log: consumers are
// external and publishing is best-effort.
type AuditEvent struct {
	// Type is one of the Event* constants.
	Type string `json:"type"`

	// NoteID identifies the affected note.
	NoteID int64 `json:"note_id"`

	// AttachmentID is set for attachment events, zero otherwise.
	AttachmentID int64 `json:"attachment_id,omitempty"`

	// ActorID is the authenticated user who performed the mutation.
	ActorID int64 `json:"actor_id"`

	// ObjectKeys lists storage objects released by a delete, if any.
	ObjectKeys []string `json:"object_keys,omitempty"`

	// At is the server time of the mutation.
	At time.Time `json:"at"`
}
