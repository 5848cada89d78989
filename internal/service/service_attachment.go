package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/leandrawisnu/noteshare/internal/audit"
	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/metrics"
	"github.com/leandrawisnu/noteshare/internal/store"
	"github.com/leandrawisnu/noteshare/internal/utils"
	"github.com/leandrawisnu/noteshare/models"
)

// maxAttachmentSize caps a single uploaded image at 10 MiB.
const maxAttachmentSize = 10 << 20

// attachmentService is the concrete implementation of AttachmentService.
//
// Uploads write the image bytes to blob storage first and insert the metadata
// row second, so a failed insert leaves at worst an unreferenced object, never
// a dangling URL.
type attachmentService struct {
	noteRepository       store.NoteRepository
	attachmentRepository store.AttachmentRepository
	blob                 store.BlobStorage
	cache                store.NoteCache
	publisher            audit.Publisher
	metrics              *metrics.Metrics
	uuid                 *utils.UUIDGenerator
	ownerOnlyUploads     bool
	logger               *logger.Logger
}

// NewAttachmentService constructs an AttachmentService on top of the given
// storages. cfg.OwnerOnlyAttachments restricts uploads to the note's owner;
// deletion is owner-only regardless.
func NewAttachmentService(storages store.Storages, cfg config.App, publisher audit.Publisher, m *metrics.Metrics, logger *logger.Logger) AttachmentService {
	return &attachmentService{
		noteRepository:       storages.NoteRepository,
		attachmentRepository: storages.AttachmentRepository,
		blob:                 storages.BlobStorage,
		cache:                storages.NoteCache,
		publisher:            publisher,
		metrics:              m,
		uuid:                 utils.NewUUIDGenerator(),
		ownerOnlyUploads:     cfg.OwnerOnlyAttachments,
		logger:               logger,
	}
}

// UploadAttachment stores one image on behalf of actorID and links it to the
// note.
//
// Returns:
//   - store.ErrNoteNotFound if the note does not exist.
//   - ErrNotNoteOwner if owner-only uploads are enabled and actorID does not
//     own the note.
//   - ErrValidationNoFile / ErrValidationNotAnImage / ErrValidationFileTooLarge
//     on a bad upload.
func (s *attachmentService) UploadAttachment(ctx context.Context, noteID, actorID int64, upload AttachmentUpload) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	if upload.Reader == nil || upload.Size == 0 {
		return models.Attachment{}, ErrValidationNoFile
	}
	if upload.Size > maxAttachmentSize {
		return models.Attachment{}, ErrValidationFileTooLarge
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return models.Attachment{}, ErrValidationNotAnImage
	}

	note, err := s.noteRepository.GetNote(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup before upload ended with error")
		return models.Attachment{}, fmt.Errorf("note lookup before upload ended with error: %w", err)
	}

	if s.ownerOnlyUploads && note.OwnerID != actorID {
		log.Warn().
			Int64("note_id", noteID).
			Int64("owner_id", note.OwnerID).
			Int64("actor_id", actorID).
			Msg("upload rejected: actor is not the note owner")
		return models.Attachment{}, ErrNotNoteOwner
	}

	objectKey := fmt.Sprintf("notes/%d/%s%s", noteID, s.uuid.Generate(), strings.ToLower(filepath.Ext(upload.FileName)))

	url, err := s.blob.PutObject(ctx, objectKey, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		log.Err(err).Str("object_key", objectKey).Msg("attachment upload to blob storage ended with error")
		return models.Attachment{}, fmt.Errorf("attachment upload ended with error: %w", err)
	}

	attachment, err := s.attachmentRepository.CreateAttachment(ctx, models.Attachment{
		NoteID:    noteID,
		URL:       url,
		ObjectKey: objectKey,
	})
	if err != nil {
		log.Err(err).Str("object_key", objectKey).Msg("attachment row creation ended with error")
		// best effort: do not leave the freshly stored object orphaned
		if removeErr := s.blob.RemoveObject(ctx, objectKey); removeErr != nil {
			log.Err(removeErr).Str("object_key", objectKey).Msg("rollback of stored object failed")
		}
		return models.Attachment{}, fmt.Errorf("attachment creation ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, noteID)
	s.metrics.AttachmentUploaded()
	s.publish(ctx, models.AuditEvent{
		Type:         models.EventAttachmentCreated,
		NoteID:       noteID,
		AttachmentID: attachment.ID,
		ActorID:      actorID,
		ObjectKeys:   []string{objectKey},
		At:           time.Now(),
	})

	return attachment, nil
}

// DeleteAttachment removes one attachment on behalf of actorID. Only the
// owner of the parent note may delete, and existence is checked before
// ownership.
//
// Returns:
//   - store.ErrAttachmentNotFound if the attachment does not exist.
//   - ErrNotNoteOwner if actorID does not own the parent note.
func (s *attachmentService) DeleteAttachment(ctx context.Context, attachmentID, actorID int64) error {
	log := logger.FromContext(ctx)

	attachment, err := s.attachmentRepository.GetAttachment(ctx, attachmentID)
	if err != nil {
		log.Err(err).Int64("attachment_id", attachmentID).Msg("attachment lookup before delete ended with error")
		return fmt.Errorf("attachment lookup before delete ended with error: %w", err)
	}

	note, err := s.noteRepository.GetNote(ctx, attachment.NoteID)
	if err != nil {
		log.Err(err).Int64("note_id", attachment.NoteID).Msg("parent note lookup ended with error")
		return fmt.Errorf("parent note lookup ended with error: %w", err)
	}

	if note.OwnerID != actorID {
		log.Warn().
			Int64("attachment_id", attachmentID).
			Int64("owner_id", note.OwnerID).
			Int64("actor_id", actorID).
			Msg("delete rejected: actor is not the note owner")
		return ErrNotNoteOwner
	}

	if err := s.attachmentRepository.DeleteAttachment(ctx, attachmentID); err != nil {
		log.Err(err).Int64("attachment_id", attachmentID).Msg("attachment deletion ended with error")
		return fmt.Errorf("attachment deletion ended with error: %w", err)
	}

	if attachment.ObjectKey != "" {
		if err := s.blob.RemoveObject(ctx, attachment.ObjectKey); err != nil {
			log.Err(err).Str("object_key", attachment.ObjectKey).Msg("stored object removal failed")
		}
	}

	s.cache.Invalidate(ctx, attachment.NoteID)
	s.metrics.AttachmentDeleted()
	s.publish(ctx, models.AuditEvent{
		Type:         models.EventAttachmentDeleted,
		NoteID:       attachment.NoteID,
		AttachmentID: attachmentID,
		ActorID:      actorID,
		ObjectKeys:   []string{attachment.ObjectKey},
		At:           time.Now(),
	})

	return nil
}

func (s *attachmentService) publish(ctx context.Context, event models.AuditEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).Str("event_type", event.Type).Msg("audit event publish failed")
	}
}
