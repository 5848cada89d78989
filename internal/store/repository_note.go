package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It manages the "notes" table; attachment rows hang off notes via a foreign
// key with ON DELETE CASCADE, so deleting a note removes its attachment rows
// in the same statement. Attachment rows themselves are read through the
// [AttachmentRepository] when notes are hydrated.
type noteRepository struct {
	logger      *logger.Logger
	db          *DB
	attachments AttachmentRepository
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger. The attachment repository is used to load
// each note's attachments on reads.
func NewNoteRepository(db *DB, attachments AttachmentRepository, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:          db,
		attachments: attachments,
		logger:      logger,
	}
}

// CreateNote persists a new note and returns it with server-assigned fields
// (ID, CreatedAt) populated.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createNote, note.OwnerID, note.Title, note.Content)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: row is nil")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// GetNote retrieves a single note by id, with its attachments loaded.
//
// Returns [ErrNoteNotFound] when no note with the given id exists.
func (r *noteRepository) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.db.QueryRowContext(ctx, getNote, noteID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNote").Msg("error: row is nil")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.GetNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	attachments, err := r.attachments.ListByNote(ctx, note.ID)
	if err != nil {
		return models.Note{}, err
	}
	note.Attachments = attachments

	return note, nil
}

// ListNotes returns notes ordered newest-first, each with its attachments
// loaded. An ownerID greater than zero narrows the listing to that owner.
func (r *noteRepository) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(ownerID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt); err != nil {
			log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for i := range notes {
		attachments, err := r.attachments.ListByNote(ctx, notes[i].ID)
		if err != nil {
			return nil, err
		}
		notes[i].Attachments = attachments
	}

	return notes, nil
}

// DeleteNote removes a note row. Attachment rows are removed by the
// ON DELETE CASCADE constraint; the stored image bytes are the caller's
// responsibility.
//
// Returns [ErrNoteNotFound] when the note does not exist.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteNote, noteID)
	if err != nil {
		classification := r.db.errorClassificator.Classify(err)
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Bool("retryable", classification == Retryable).
			Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
