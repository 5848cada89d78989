package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrNotNoteOwner is returned when an authenticated user attempts an
	// owner-only operation on a note that belongs to someone else.
	ErrNotNoteOwner = errors.New("user is not the note owner")

	ErrValidationNoFile       = errors.New("no attachment file provided")
	ErrValidationNotAnImage   = errors.New("attachment is not an image")
	ErrValidationFileTooLarge = errors.New("attachment file is too large")
	ErrValidationNoUserID     = errors.New("no user ID was given")
)
