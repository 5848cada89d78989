package store

import (
	"context"
	"io"

	"github.com/leandrawisnu/noteshare/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID int64) (models.Note, error)
	// ListNotes returns all notes, newest first. An ownerID greater than
	// zero narrows the listing to that owner's notes.
	ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error)
	DeleteNote(ctx context.Context, noteID int64) error
}

type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, attachment models.Attachment) (models.Attachment, error)
	GetAttachment(ctx context.Context, attachmentID int64) (models.Attachment, error)
	ListByNote(ctx context.Context, noteID int64) ([]models.Attachment, error)
	ListObjectKeysByNote(ctx context.Context, noteID int64) ([]string, error)
	DeleteAttachment(ctx context.Context, attachmentID int64) error
}

// BlobStorage persists attachment image bytes outside the relational
// database and resolves public URLs for stored objects.
type BlobStorage interface {
	PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	RemoveObject(ctx context.Context, objectKey string) error
}

// NoteCache is a read-through cache in front of [NoteRepository] lookups.
// Implementations must treat a cache miss as a non-error condition.
type NoteCache interface {
	GetNote(ctx context.Context, noteID int64) (models.Note, bool)
	SetNote(ctx context.Context, note models.Note)
	GetNoteList(ctx context.Context) ([]models.Note, bool)
	SetNoteList(ctx context.Context, notes []models.Note)
	Invalidate(ctx context.Context, noteID int64)
}
