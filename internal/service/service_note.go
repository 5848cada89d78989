package service

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrawisnu/noteshare/internal/audit"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/metrics"
	"github.com/leandrawisnu/noteshare/internal/store"
	"github.com/leandrawisnu/noteshare/internal/workers"
	"github.com/leandrawisnu/noteshare/models"
)

// noteService is the concrete implementation of NoteService.
//
// Reads go through the note cache when one is configured; every write
// invalidates the affected cache entries. Notes are write-once: there is no
// update path, and the owner recorded at creation never changes.
type noteService struct {
	noteRepository       store.NoteRepository
	attachmentRepository store.AttachmentRepository
	cache                store.NoteCache
	publisher            audit.Publisher
	cleanup              *workers.BlobCleanupWorker
	metrics              *metrics.Metrics
	logger               *logger.Logger
}

// NewNoteService constructs a NoteService on top of the given storages.
func NewNoteService(storages store.Storages, publisher audit.Publisher, cleanup *workers.BlobCleanupWorker, m *metrics.Metrics, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository:       storages.NoteRepository,
		attachmentRepository: storages.AttachmentRepository,
		cache:                storages.NoteCache,
		publisher:            publisher,
		cleanup:              cleanup,
		metrics:              m,
		logger:               logger,
	}
}

// CreateNote persists a new note owned by note.OwnerID. The title may be
// empty; it only has to be bound from the request.
//
// Returns:
//   - ErrValidationNoUserID if no owner is set.
//   - A wrapped storage error if persistence fails.
func (s *noteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.OwnerID == 0 {
		return models.Note{}, ErrValidationNoUserID
	}

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("owner_id", note.OwnerID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, created.ID)
	s.metrics.NoteCreated()
	s.publish(ctx, models.AuditEvent{
		Type:    models.EventNoteCreated,
		NoteID:  created.ID,
		ActorID: created.OwnerID,
		At:      time.Now(),
	})

	return created, nil
}

// GetNote returns a single note with its attachments. Reads are served from
// the cache when possible.
func (s *noteService) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note, ok := s.cache.GetNote(ctx, noteID); ok {
		return note, nil
	}

	note, err := s.noteRepository.GetNote(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup ended with error")
		return models.Note{}, fmt.Errorf("note lookup ended with error: %w", err)
	}

	s.cache.SetNote(ctx, note)

	return note, nil
}

// ListNotes returns all notes newest-first. The unfiltered listing is served
// from the cache when possible; per-owner listings always hit the database.
func (s *noteService) ListNotes(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		if notes, ok := s.cache.GetNoteList(ctx); ok {
			return notes, nil
		}
	}

	notes, err := s.noteRepository.ListNotes(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("note listing ended with error")
		return nil, fmt.Errorf("note listing ended with error: %w", err)
	}

	if ownerID == 0 {
		s.cache.SetNoteList(ctx, notes)
	}

	return notes, nil
}

// DeleteNote removes a note on behalf of actorID.
//
// Existence is checked before ownership, so a missing note reports not-found
// even to users who would not have been allowed to delete it. Attachment rows
// go with the note via the cascade constraint; the image bytes are handed to
// the blob cleanup worker.
//
// Returns:
//   - store.ErrNoteNotFound if the note does not exist.
//   - ErrNotNoteOwner if actorID does not own the note.
func (s *noteService) DeleteNote(ctx context.Context, noteID, actorID int64) error {
	log := logger.FromContext(ctx)

	note, err := s.noteRepository.GetNote(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup before delete ended with error")
		return fmt.Errorf("note lookup before delete ended with error: %w", err)
	}

	if note.OwnerID != actorID {
		log.Warn().
			Int64("note_id", noteID).
			Int64("owner_id", note.OwnerID).
			Int64("actor_id", actorID).
			Msg("delete rejected: actor is not the note owner")
		return ErrNotNoteOwner
	}

	objectKeys, err := s.attachmentRepository.ListObjectKeysByNote(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("collecting attachment object keys ended with error")
		return fmt.Errorf("collecting attachment object keys ended with error: %w", err)
	}

	if err := s.noteRepository.DeleteNote(ctx, noteID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, noteID)
	s.cleanup.Enqueue(objectKeys...)
	s.metrics.NoteDeleted()
	s.publish(ctx, models.AuditEvent{
		Type:       models.EventNoteDeleted,
		NoteID:     noteID,
		ActorID:    actorID,
		ObjectKeys: objectKeys,
		At:         time.Now(),
	})

	return nil
}

// publish emits an audit event without letting publish failures surface to
// the caller.
func (s *noteService) publish(ctx context.Context, event models.AuditEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).Str("event_type", event.Type).Msg("audit event publish failed")
	}
}
