package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/internal/store"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartUpload builds a multipart/form-data body with a single "file"
// field carrying the given bytes and content type.
func multipartUpload(t *testing.T, fieldName, fileName, contentType string, data []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

// TestUploadAttachment_Success verifies the full multipart round trip: route,
// auth middleware, form parsing, and the response envelope.
func TestUploadAttachment_Success(t *testing.T) {
	var gotNoteID, gotActorID int64
	var gotUpload service.AttachmentUpload

	attachments := &mockAttachmentService{
		uploadAttachmentFn: func(_ context.Context, noteID, actorID int64, upload service.AttachmentUpload) (models.Attachment, error) {
			gotNoteID, gotActorID, gotUpload = noteID, actorID, upload
			return models.Attachment{ID: 3, NoteID: noteID, URL: "http://blob/notes/15/abc.png"}, nil
		},
	}

	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: attachments,
	})
	router := h.Init()

	body, contentType := multipartUpload(t, "file", "photo.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/notes/15/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(15), gotNoteID)
	assert.Equal(t, int64(42), gotActorID)
	assert.Equal(t, "photo.png", gotUpload.FileName)
	assert.Equal(t, "image/png", gotUpload.ContentType)
	assert.Equal(t, int64(len("png-bytes")), gotUpload.Size)

	var resp models.UploadAttachmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "http://blob/notes/15/abc.png", resp.URL)
}

// TestUploadAttachment_RequiresAuth verifies that uploads without a bearer
// token never reach the service.
func TestUploadAttachment_RequiresAuth(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: &mockAttachmentService{},
	})
	router := h.Init()

	body, contentType := multipartUpload(t, "file", "photo.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/notes/15/attachments", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestUploadAttachment_MissingFileField verifies that a multipart form
// without a "file" part is rejected with 400.
func TestUploadAttachment_MissingFileField(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: &mockAttachmentService{},
	})
	router := h.Init()

	body, contentType := multipartUpload(t, "document", "photo.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/notes/15/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestUploadAttachment_NotAnImage verifies the validation mapping to 400.
func TestUploadAttachment_NotAnImage(t *testing.T) {
	attachments := &mockAttachmentService{
		uploadAttachmentFn: func(_ context.Context, _, _ int64, _ service.AttachmentUpload) (models.Attachment, error) {
			return models.Attachment{}, service.ErrValidationNotAnImage
		},
	}

	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: attachments,
	})
	router := h.Init()

	body, contentType := multipartUpload(t, "file", "notes.txt", "text/plain", []byte("plain"))
	req := httptest.NewRequest(http.MethodPost, "/api/notes/15/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestUploadAttachment_FileTooLarge verifies the size-limit mapping to 413.
func TestUploadAttachment_FileTooLarge(t *testing.T) {
	attachments := &mockAttachmentService{
		uploadAttachmentFn: func(_ context.Context, _, _ int64, _ service.AttachmentUpload) (models.Attachment, error) {
			return models.Attachment{}, service.ErrValidationFileTooLarge
		},
	}

	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: attachments,
	})
	router := h.Init()

	body, contentType := multipartUpload(t, "file", "huge.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/notes/15/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// TestUploadAttachment_UnknownNote verifies that uploading to a missing note
// yields 404.
func TestUploadAttachment_UnknownNote(t *testing.T) {
	attachments := &mockAttachmentService{
		uploadAttachmentFn: func(_ context.Context, _, _ int64, _ service.AttachmentUpload) (models.Attachment, error) {
			return models.Attachment{}, store.ErrNoteNotFound
		},
	}

	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: attachments,
	})
	router := h.Init()

	body, contentType := multipartUpload(t, "file", "photo.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/notes/999/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestDeleteAttachment_NotOwner verifies the 403 mapping for deleting an
// attachment of a note owned by someone else.
func TestDeleteAttachment_NotOwner(t *testing.T) {
	attachments := &mockAttachmentService{
		deleteAttachmentFn: func(_ context.Context, _, _ int64) error {
			return service.ErrNotNoteOwner
		},
	}

	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: attachments,
	})
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/attachments/3", nil)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestDeleteAttachment_Success verifies the happy path returns 204.
func TestDeleteAttachment_Success(t *testing.T) {
	var gotAttachmentID, gotActorID int64
	attachments := &mockAttachmentService{
		deleteAttachmentFn: func(_ context.Context, attachmentID, actorID int64) error {
			gotAttachmentID, gotActorID = attachmentID, actorID
			return nil
		},
	}

	h := newTestHandler(t, &service.Services{
		AuthService:       authAs(42),
		AttachmentService: attachments,
	})
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/attachments/3", nil)
	req.Header.Set("Authorization", "Bearer some.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(3), gotAttachmentID)
	assert.Equal(t, int64(42), gotActorID)
}
