package service

import (
	"context"
	"io"

	"github.com/leandrawisnu/noteshare/models"
)

// ─────────────────────────────────────────────
// Mock: store.NoteRepository
// ─────────────────────────────────────────────

type mockNoteRepository struct {
	createFn func(ctx context.Context, note models.Note) (models.Note, error)
	getFn    func(ctx context.Context, noteID int64) (models.Note, error)
	listFn   func(ctx context.Context, ownerID int64) ([]models.Note, error)
	deleteFn func(ctx context.Context, noteID int64) error
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return note, nil
}

func (m *mockNoteRepository) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, noteID)
	}
	return models.Note{}, nil
}

func (m *mockNoteRepository) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockNoteRepository) DeleteNote(ctx context.Context, noteID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, noteID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.AttachmentRepository
// ─────────────────────────────────────────────

type mockAttachmentRepository struct {
	createFn         func(ctx context.Context, attachment models.Attachment) (models.Attachment, error)
	getFn            func(ctx context.Context, attachmentID int64) (models.Attachment, error)
	listByNoteFn     func(ctx context.Context, noteID int64) ([]models.Attachment, error)
	listObjectKeysFn func(ctx context.Context, noteID int64) ([]string, error)
	deleteFn         func(ctx context.Context, attachmentID int64) error
}

func (m *mockAttachmentRepository) CreateAttachment(ctx context.Context, attachment models.Attachment) (models.Attachment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, attachment)
	}
	return attachment, nil
}

func (m *mockAttachmentRepository) GetAttachment(ctx context.Context, attachmentID int64) (models.Attachment, error) {
	if m.getFn != nil {
		return m.getFn(ctx, attachmentID)
	}
	return models.Attachment{}, nil
}

func (m *mockAttachmentRepository) ListByNote(ctx context.Context, noteID int64) ([]models.Attachment, error) {
	if m.listByNoteFn != nil {
		return m.listByNoteFn(ctx, noteID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) ListObjectKeysByNote(ctx context.Context, noteID int64) ([]string, error) {
	if m.listObjectKeysFn != nil {
		return m.listObjectKeysFn(ctx, noteID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, attachmentID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.BlobStorage
// ─────────────────────────────────────────────

type mockBlobStorage struct {
	putFn    func(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	removeFn func(ctx context.Context, objectKey string) error
}

func (m *mockBlobStorage) PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	if m.putFn != nil {
		return m.putFn(ctx, objectKey, reader, size, contentType)
	}
	return "https://cdn.example.com/" + objectKey, nil
}

func (m *mockBlobStorage) RemoveObject(ctx context.Context, objectKey string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, objectKey)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, email string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.UserID = 1
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, email)
	}
	return models.User{}, nil
}
