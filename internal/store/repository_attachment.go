package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/models"
)

// attachmentRepository is the PostgreSQL-backed implementation of
// [AttachmentRepository]. It manages attachment metadata rows; the image
// bytes themselves live in [BlobStorage] under the row's object key.
type attachmentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAttachmentRepository constructs an [AttachmentRepository] backed by the
// provided database connection and logger.
func NewAttachmentRepository(db *DB, logger *logger.Logger) AttachmentRepository {
	logger.Debug().Msg("creating attachment repository")
	return &attachmentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAttachment persists a new attachment metadata row and returns it
// with server-assigned fields (ID, CreatedAt) populated.
func (r *attachmentRepository) CreateAttachment(ctx context.Context, attachment models.Attachment) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAttachment, attachment.NoteID, attachment.URL, attachment.ObjectKey)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*attachmentRepository.CreateAttachment").Msg("error: row is nil")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&attachment.ID, &attachment.NoteID, &attachment.URL, &attachment.ObjectKey, &attachment.CreatedAt); err != nil {
		log.Err(err).Str("func", "*attachmentRepository.CreateAttachment").Msg("error: scanning error")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return attachment, nil
}

// GetAttachment retrieves a single attachment row by id.
//
// Returns [ErrAttachmentNotFound] when no row with the given id exists.
func (r *attachmentRepository) GetAttachment(ctx context.Context, attachmentID int64) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	var attachment models.Attachment
	row := r.db.QueryRowContext(ctx, getAttachment, attachmentID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*attachmentRepository.GetAttachment").Msg("error: row is nil")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&attachment.ID, &attachment.NoteID, &attachment.URL, &attachment.ObjectKey, &attachment.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attachment{}, ErrAttachmentNotFound
		}

		log.Err(err).Str("func", "*attachmentRepository.GetAttachment").Msg("error: scanning error")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return attachment, nil
}

// ListByNote returns all attachment rows of a note ordered by id.
func (r *attachmentRepository) ListByNote(ctx context.Context, noteID int64) ([]models.Attachment, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAttachmentsByNote, noteID)
	if err != nil {
		log.Err(err).Str("func", "*attachmentRepository.ListByNote").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	attachments := make([]models.Attachment, 0)
	for rows.Next() {
		var attachment models.Attachment
		if err := rows.Scan(&attachment.ID, &attachment.NoteID, &attachment.URL, &attachment.ObjectKey, &attachment.CreatedAt); err != nil {
			log.Err(err).Str("func", "*attachmentRepository.ListByNote").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		attachments = append(attachments, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return attachments, nil
}

// ListObjectKeysByNote returns the object keys of all attachments of a note.
// Used to schedule blob cleanup before the note row (and, via cascade, the
// attachment rows) are deleted.
func (r *attachmentRepository) ListObjectKeysByNote(ctx context.Context, noteID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listObjectKeysByNote, noteID)
	if err != nil {
		log.Err(err).Str("func", "*attachmentRepository.ListObjectKeysByNote").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if key != "" {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return keys, nil
}

// DeleteAttachment removes a single attachment row.
//
// Returns [ErrAttachmentNotFound] when the row does not exist.
func (r *attachmentRepository) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteAttachment, attachmentID)
	if err != nil {
		log.Err(err).Str("func", "*attachmentRepository.DeleteAttachment").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAttachmentNotFound
	}

	return nil
}
