package service

import (
	"context"
	"fmt"
	"os"

	"github.com/leandrawisnu/noteshare/internal/adapter"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/models"
)

// ClientServices aggregates the client-side service layer consumed by the
// TUI. All services share one [adapter.ServerAdapter], so a token obtained by
// AuthService is automatically used by NoteService.
type ClientServices struct {
	AuthService ClientAuthService
	NoteService ClientNoteService
}

func NewClientServices(server adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService: &clientAuthService{server: server, logger: logger},
		NoteService: &clientNoteService{server: server, logger: logger},
	}
}

type clientAuthService struct {
	server adapter.ServerAdapter
	logger *logger.Logger
}

func (c *clientAuthService) Register(ctx context.Context, user models.User) (models.Token, error) {
	token, err := c.server.Register(ctx, user)
	if err != nil {
		return models.Token{}, fmt.Errorf("register: %w", err)
	}
	return token, nil
}

func (c *clientAuthService) Login(ctx context.Context, user models.User) (models.Token, error) {
	token, err := c.server.Login(ctx, user)
	if err != nil {
		return models.Token{}, fmt.Errorf("login: %w", err)
	}
	return token, nil
}

type clientNoteService struct {
	server adapter.ServerAdapter
	logger *logger.Logger
}

func (c *clientNoteService) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	return c.server.ListNotes(ctx, ownerID)
}

func (c *clientNoteService) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	return c.server.GetNote(ctx, noteID)
}

func (c *clientNoteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	return c.server.CreateNote(ctx, note)
}

func (c *clientNoteService) DeleteNote(ctx context.Context, noteID int64) error {
	return c.server.DeleteNote(ctx, noteID)
}

// UploadAttachments opens and streams each file in turn. A failure to open or
// upload one file is recorded in its outcome and the loop moves on, so a
// batch with one bad path still delivers the rest.
func (c *clientNoteService) UploadAttachments(ctx context.Context, noteID int64, paths []string) []AttachmentUploadOutcome {
	outcomes := make([]AttachmentUploadOutcome, 0, len(paths))

	for _, path := range paths {
		outcome := AttachmentUploadOutcome{Path: path}

		file, err := os.Open(path)
		if err != nil {
			outcome.Err = fmt.Errorf("open file: %w", err)
			outcomes = append(outcomes, outcome)
			c.logger.Err(err).Str("path", path).Msg("skipping unreadable attachment")
			continue
		}

		uploaded, err := c.server.UploadAttachment(ctx, noteID, path, file)
		file.Close()
		if err != nil {
			outcome.Err = err
			c.logger.Err(err).Str("path", path).Msg("attachment upload failed")
		} else {
			outcome.URL = uploaded.URL
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (c *clientNoteService) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return c.server.DeleteAttachment(ctx, attachmentID)
}
