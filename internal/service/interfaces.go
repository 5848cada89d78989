package service

import (
	"context"
	"io"

	"github.com/leandrawisnu/noteshare/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID int64) (models.Note, error)
	ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error)
	DeleteNote(ctx context.Context, noteID, actorID int64) error
}

// AttachmentUpload is the service-level description of one uploaded image.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type AttachmentService interface {
	UploadAttachment(ctx context.Context, noteID, actorID int64, upload AttachmentUpload) (models.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID, actorID int64) error
}
