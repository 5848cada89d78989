package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/models"
)

const (
	noteKeyFormat = "note:%d"
	noteListKey   = "notes:all"
)

// redisNoteCache is the redis-backed implementation of [NoteCache].
//
// Cache failures are logged and swallowed: a broken cache degrades read
// latency, never correctness, so every method falls back to "miss".
type redisNoteCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisNoteCache connects to redis and returns a [NoteCache] with the
// configured entry TTL.
func NewRedisNoteCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (NoteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisNoteCache").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisNoteCache").Str("addr", cfg.Addr).Msg("connected to redis successfully")

	return &redisNoteCache{
		client: client,
		ttl:    cfg.TTL,
		logger: log,
	}, nil
}

func (c *redisNoteCache) GetNote(ctx context.Context, noteID int64) (models.Note, bool) {
	log := logger.FromContext(ctx)
	key := fmt.Sprintf(noteKeyFormat, noteID)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Err(err).Str("func", "*redisNoteCache.GetNote").Str("key", key).Msg("error getting cached note")
		}
		return models.Note{}, false
	}

	var note models.Note
	if err := json.Unmarshal([]byte(data), &note); err != nil {
		log.Err(err).Str("func", "*redisNoteCache.GetNote").Str("key", key).Msg("error parsing cached note")
		return models.Note{}, false
	}

	return note, true
}

func (c *redisNoteCache) SetNote(ctx context.Context, note models.Note) {
	log := logger.FromContext(ctx)
	key := fmt.Sprintf(noteKeyFormat, note.ID)

	data, err := json.Marshal(note)
	if err != nil {
		log.Err(err).Str("func", "*redisNoteCache.SetNote").Str("key", key).Msg("error marshalling note for cache")
		return
	}

	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		log.Err(err).Str("func", "*redisNoteCache.SetNote").Str("key", key).Msg("error setting cached note")
	}
}

func (c *redisNoteCache) GetNoteList(ctx context.Context) ([]models.Note, bool) {
	log := logger.FromContext(ctx)

	data, err := c.client.Get(ctx, noteListKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Err(err).Str("func", "*redisNoteCache.GetNoteList").Msg("error getting cached note list")
		}
		return nil, false
	}

	var notes []models.Note
	if err := json.Unmarshal([]byte(data), &notes); err != nil {
		log.Err(err).Str("func", "*redisNoteCache.GetNoteList").Msg("error parsing cached note list")
		return nil, false
	}

	return notes, true
}

func (c *redisNoteCache) SetNoteList(ctx context.Context, notes []models.Note) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(notes)
	if err != nil {
		log.Err(err).Str("func", "*redisNoteCache.SetNoteList").Msg("error marshalling note list for cache")
		return
	}

	if err := c.client.Set(ctx, noteListKey, string(data), c.ttl).Err(); err != nil {
		log.Err(err).Str("func", "*redisNoteCache.SetNoteList").Msg("error setting cached note list")
	}
}

// Invalidate drops the cached note and the cached listing. Called on every
// write that touches the note or its attachments.
func (c *redisNoteCache) Invalidate(ctx context.Context, noteID int64) {
	log := logger.FromContext(ctx)
	key := fmt.Sprintf(noteKeyFormat, noteID)

	if err := c.client.Del(ctx, key, noteListKey).Err(); err != nil {
		log.Err(err).Str("func", "*redisNoteCache.Invalidate").Str("key", key).Msg("error invalidating cached note")
	}
}

// nopNoteCache is used when no cache address is configured: every read is a
// miss and every write is a no-op.
type nopNoteCache struct{}

// NewNopNoteCache returns a [NoteCache] that caches nothing.
func NewNopNoteCache() NoteCache { return nopNoteCache{} }

func (nopNoteCache) GetNote(context.Context, int64) (models.Note, bool) { return models.Note{}, false }
func (nopNoteCache) SetNote(context.Context, models.Note)               {}
func (nopNoteCache) GetNoteList(context.Context) ([]models.Note, bool)  { return nil, false }
func (nopNoteCache) SetNoteList(context.Context, []models.Note)         {}
func (nopNoteCache) Invalidate(context.Context, int64)                  {}
