// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the noteshare server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// application from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrForbidden] for 403, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/leandrawisnu/noteshare/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the noteshare
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the provided credentials.
	// On success it stores the returned bearer token via SetToken.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// CreateNote creates a new note owned by the authenticated user.
	// Requires a valid bearer token.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// ListNotes fetches the public note listing. A non-zero ownerID narrows
	// the listing to notes created by that user. No token is required.
	ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error)

	// GetNote fetches a single note with its attachments. No token is
	// required. Returns [ErrNotFound] (wrapped) if the note does not exist.
	GetNote(ctx context.Context, noteID int64) (models.Note, error)

	// DeleteNote deletes the note and all of its attachments. Requires a
	// valid bearer token; the server enforces that the caller owns the note
	// ([ErrForbidden] otherwise).
	DeleteNote(ctx context.Context, noteID int64) error

	// UploadAttachment streams one image file to the note's attachment
	// endpoint as a multipart upload. Requires a valid bearer token.
	UploadAttachment(ctx context.Context, noteID int64, fileName string, file io.Reader) (models.UploadAttachmentResponse, error)

	// DeleteAttachment removes a single attachment. Requires a valid bearer
	// token; only the owner of the parent note may delete.
	DeleteAttachment(ctx context.Context, attachmentID int64) error
}
