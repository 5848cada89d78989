// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header.payload.signature with payload {"id":42}
const testBearerToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJpZCI6NDJ9.signature"

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── URL normalisation ───────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "full url", raw: "https://notes.example.com/", want: "https://notes.example.com"},
		{name: "with whitespace", raw: "  localhost:8080  ", want: "http://localhost:8080"},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	user := models.User{Email: "alice@example.com", Name: "Alice", Password: "secret"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		w.Header().Set("Authorization", "Bearer "+testBearerToken)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, testBearerToken, got.SignedString)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, testBearerToken, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("email already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Email: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid email/password"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Email: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

// ── Notes ───────────────────────────────────────────────────────────────────

func TestCreateNote_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "Bearer "+testBearerToken, r.Header.Get("Authorization"))

		var note models.Note
		require.NoError(t, json.NewDecoder(r.Body).Decode(&note))
		note.ID = 7

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.CreateNoteResponse{ID: note.ID, Note: note})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testBearerToken)

	got, err := a.CreateNote(context.Background(), models.Note{Title: "groceries"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "groceries", got.Title)
}

func TestListNotes_OwnerFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("owner_id"))

		_ = json.NewEncoder(w).Encode(models.NotesResponse{
			Notes: []models.Note{{ID: 1, OwnerID: 42, Title: "mine"}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	notes, err := a.ListNotes(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "mine", notes[0].Title)
}

func TestGetNote_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("note not found"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetNote(context.Background(), 999)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNote_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/15", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("not the note owner"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testBearerToken)

	err := a.DeleteNote(context.Background(), 15)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

// ── Attachments ─────────────────────────────────────────────────────────────

func TestUploadAttachment_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notes/15/attachments", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "photo.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.UploadAttachmentResponse{ID: 3, URL: "http://blob/notes/15/abc.png"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testBearerToken)

	got, err := a.UploadAttachment(context.Background(), 15, "photo.png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "http://blob/notes/15/abc.png", got.URL)
}

func TestUploadAttachment_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte("file exceeds size limit"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testBearerToken)

	_, err := a.UploadAttachment(context.Background(), 15, "huge.png", strings.NewReader("png-bytes"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestDeleteAttachment_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/attachments/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testBearerToken)

	require.NoError(t, a.DeleteAttachment(context.Background(), 3))
}
