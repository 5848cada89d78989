package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/utils"
	"github.com/leandrawisnu/noteshare/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.Token{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.storeTokenFromResponse(resp)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	return h.storeTokenFromResponse(resp)
}

// CreateNote implements [ServerAdapter]. It POSTs the note to
// POST /api/notes and returns the created note with its server-assigned id.
// Requires a valid bearer token.
func (h *httpServerAdapter) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(note).
		Post("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var created models.CreateNoteResponse
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Note{}, fmt.Errorf("decode create note response: %w", err)
	}

	return created.Note, nil
}

// ListNotes implements [ServerAdapter]. It GETs the public listing from
// GET /api/notes, optionally narrowed by owner_id. No token is required.
func (h *httpServerAdapter) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	req := h.client.R().SetContext(ctx)
	if ownerID > 0 {
		req.SetQueryParam("owner_id", fmt.Sprintf("%d", ownerID))
	}

	resp, err := req.Get("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var listing models.NotesResponse
	if err = json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("decode notes listing: %w", err)
	}

	return listing.Notes, nil
}

// GetNote implements [ServerAdapter]. It GETs a single note from
// GET /api/notes/{id}. No token is required.
func (h *httpServerAdapter) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/notes/%d", noteID))
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var found models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &found); err != nil {
		return models.Note{}, fmt.Errorf("decode note response: %w", err)
	}

	return found.Note, nil
}

// DeleteNote implements [ServerAdapter]. It DELETEs /api/notes/{id}.
// Requires a valid bearer token.
func (h *httpServerAdapter) DeleteNote(ctx context.Context, noteID int64) error {
	resp, err := h.authedRequest(ctx).
		Delete(fmt.Sprintf("/api/notes/%d", noteID))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

// UploadAttachment implements [ServerAdapter]. It streams file as the "file"
// field of a multipart POST to /api/notes/{id}/attachments. The part's
// content type is derived from the file extension. Requires a valid bearer
// token.
func (h *httpServerAdapter) UploadAttachment(ctx context.Context, noteID int64, fileName string, file io.Reader) (models.UploadAttachmentResponse, error) {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.authedRequest(ctx).
		SetMultipartField("file", filepath.Base(fileName), contentType, file).
		Post(fmt.Sprintf("/api/notes/%d/attachments", noteID))
	if err != nil {
		return models.UploadAttachmentResponse{}, fmt.Errorf("upload attachment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadAttachmentResponse{}, err
	}

	var uploaded models.UploadAttachmentResponse
	if err = json.Unmarshal(resp.Body(), &uploaded); err != nil {
		return models.UploadAttachmentResponse{}, fmt.Errorf("decode upload response: %w", err)
	}

	return uploaded, nil
}

// DeleteAttachment implements [ServerAdapter]. It DELETEs
// /api/attachments/{id}. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	resp, err := h.authedRequest(ctx).
		Delete(fmt.Sprintf("/api/attachments/%d", attachmentID))
	if err != nil {
		return fmt.Errorf("delete attachment request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// storeTokenFromResponse pulls the bearer token out of the Authorization
// response header, stores it, and returns it together with the identity
// decoded from the token's claims.
func (h *httpServerAdapter) storeTokenFromResponse(resp *resty.Response) (models.Token, error) {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: utils.DecodeDisplayIdentity(token)}, nil
}
