package store

import (
	"context"
	"fmt"

	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
)

// Storages aggregates every storage backend the service layer depends on.
type Storages struct {
	UserRepository       UserRepository
	NoteRepository       NoteRepository
	AttachmentRepository AttachmentRepository
	BlobStorage          BlobStorage
	NoteCache            NoteCache
}

// NewStorages connects and migrates the relational database, connects the
// blob store, and wires the note cache. An empty Cache.Addr falls back to the
// no-op cache so the rest of the system is oblivious to whether redis is
// deployed.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return Storages{}, fmt.Errorf("connect postgres: %w", err)
	}
	if err = db.Migrate(); err != nil {
		return Storages{}, fmt.Errorf("run migrations: %w", err)
	}

	blob, err := NewMinioBlobStorage(ctx, cfg.Blob, log)
	if err != nil {
		return Storages{}, fmt.Errorf("connect blob storage: %w", err)
	}

	cache := NewNopNoteCache()
	if cfg.Cache.Addr != "" {
		cache, err = NewRedisNoteCache(ctx, cfg.Cache, log)
		if err != nil {
			// a broken cache must not take the whole server down
			log.Err(err).Msg("note cache unavailable, continuing without caching")
			cache = NewNopNoteCache()
		}
	}

	attachments := NewAttachmentRepository(db, log)

	return Storages{
		UserRepository:       NewUserRepository(db, log),
		NoteRepository:       NewNoteRepository(db, attachments, log),
		AttachmentRepository: attachments,
		BlobStorage:          blob,
		NoteCache:            cache,
	}, nil
}
