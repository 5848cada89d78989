package models

// Response envelopes shared by the HTTP handlers and the client adapter.
// Shapes mirror what the web frontend consumes: collections and single
// entities are wrapped in a named field rather than returned bare.

// NotesResponse wraps the public note listing.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// NoteResponse wraps a single note fetched by id.
type NoteResponse struct {
	Note Note `json:"note"`
}

// CreateNoteResponse echoes a freshly created note. ID is duplicated at the
// top level because callers need it immediately to attach images.
type CreateNoteResponse struct {
	ID   int64 `json:"id"`
	Note Note  `json:"note"`
}

// UploadAttachmentResponse reports one stored attachment.
type UploadAttachmentResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// TokenResponse carries the bearer token in the login/register response body.
// The same token is also set in the Authorization response header.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
