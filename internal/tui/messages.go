package tui

import (
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/models"
)

// NavigateTo switches the RootModel to another registered page. An optional
// Payload message is delivered to the new page after the switch.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult finishes the login screen's async command. A nil Err ends the
// authentication flow; Token carries the signed credential for the session
// holder.
type LoginResult struct {
	Err    error
	Email  string
	Token  string
	UserID int64
}

// RegisterResult finishes the registration screen's async command.
type RegisterResult struct {
	Err    error
	Email  string
	UserID int64
}

// RegisterSuccessNotice is delivered to the menu page after a successful
// registration so it can show a confirmation line.
type RegisterSuccessNotice struct {
	Email string
}

// BrowseAnonymously ends the authentication flow without signing in.
type BrowseAnonymously struct{}

type notesLoadedMsg struct {
	notes []models.Note
	err   error
}

type noteCreatedMsg struct {
	note    models.Note
	uploads []service.AttachmentUploadOutcome
	err     error
}

type noteDeletedMsg struct {
	err error
}

type attachmentDeletedMsg struct {
	err error
}
