package http

import (
	"context"
	"testing"

	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/metrics"
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock NoteService
// ─────────────────────────────────────────────

type mockNoteService struct {
	createNoteFn func(ctx context.Context, note models.Note) (models.Note, error)
	getNoteFn    func(ctx context.Context, noteID int64) (models.Note, error)
	listNotesFn  func(ctx context.Context, ownerID int64) ([]models.Note, error)
	deleteNoteFn func(ctx context.Context, noteID, actorID int64) error
}

func (m *mockNoteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	return m.createNoteFn(ctx, note)
}

func (m *mockNoteService) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	return m.getNoteFn(ctx, noteID)
}

func (m *mockNoteService) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	return m.listNotesFn(ctx, ownerID)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, noteID, actorID int64) error {
	return m.deleteNoteFn(ctx, noteID, actorID)
}

// ─────────────────────────────────────────────
// Mock AttachmentService
// ─────────────────────────────────────────────

type mockAttachmentService struct {
	uploadAttachmentFn func(ctx context.Context, noteID, actorID int64, upload service.AttachmentUpload) (models.Attachment, error)
	deleteAttachmentFn func(ctx context.Context, attachmentID, actorID int64) error
}

func (m *mockAttachmentService) UploadAttachment(ctx context.Context, noteID, actorID int64, upload service.AttachmentUpload) (models.Attachment, error) {
	return m.uploadAttachmentFn(ctx, noteID, actorID, upload)
}

func (m *mockAttachmentService) DeleteAttachment(ctx context.Context, attachmentID, actorID int64) error {
	return m.deleteAttachmentFn(ctx, attachmentID, actorID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks.
// Any nil mock is left nil; tests must only hit routes backed by
// the mocks they provide.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, metrics.NewMetrics(), logger.Nop())
}

// authAs returns an AuthService mock that accepts any bearer token and
// resolves it to the given user id.
func authAs(userID int64) *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: userID, SignedString: "test.token"}, nil
		},
	}
}
