package service

import (
	"context"

	"github.com/leandrawisnu/noteshare/models"
)

//go:generate mockgen -source=interfaces_client.go -destination=../mock/mock_client_services.go -package=mock

// ClientAuthService handles register/login flows on behalf of the TUI client.
// Implementations keep the bearer token inside the underlying adapter so that
// subsequent note operations are authenticated automatically.
type ClientAuthService interface {
	Register(ctx context.Context, user models.User) (models.Token, error)
	Login(ctx context.Context, user models.User) (models.Token, error)
}

// AttachmentUploadOutcome reports the result of uploading one local file.
// A batch upload continues past individual failures; callers inspect Err per
// file.
type AttachmentUploadOutcome struct {
	Path string
	URL  string
	Err  error
}

// ClientNoteService exposes note operations to the TUI client.
type ClientNoteService interface {
	ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error)
	GetNote(ctx context.Context, noteID int64) (models.Note, error)
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, noteID int64) error

	// UploadAttachments uploads each local file path to the note. One failed
	// file does not abort the rest; the returned slice has one entry per
	// path, in order.
	UploadAttachments(ctx context.Context, noteID int64, paths []string) []AttachmentUploadOutcome

	DeleteAttachment(ctx context.Context, attachmentID int64) error
}
