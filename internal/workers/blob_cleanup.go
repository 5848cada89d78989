package workers

import (
	"context"
	"sync"
	"time"

	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/store"
)

const (
	cleanupQueueSize    = 256
	cleanupAttempts     = 3
	cleanupRetryBackoff = time.Second
)

// BlobCleanupWorker removes orphaned attachment objects from blob storage.
//
// Deleting a note removes its attachment rows in the same SQL statement via
// the cascade constraint, but the image bytes live outside the database.
// The service layer enqueues the object keys it collected before the delete;
// this worker drains the queue in the background so the HTTP request never
// waits on the object store.
type BlobCleanupWorker struct {
	blob   store.BlobStorage
	logger *logger.Logger

	queue chan string
	once  sync.Once
	done  chan struct{}
}

// NewBlobCleanupWorker constructs a worker draining into the given blob
// storage.
func NewBlobCleanupWorker(blob store.BlobStorage, log *logger.Logger) *BlobCleanupWorker {
	return &BlobCleanupWorker{
		blob:   blob,
		logger: log,
		queue:  make(chan string, cleanupQueueSize),
		done:   make(chan struct{}),
	}
}

// Enqueue schedules object keys for removal. A full queue drops the keys and
// logs them; orphaned objects are recoverable by an offline sweep, a blocked
// request handler is not.
func (w *BlobCleanupWorker) Enqueue(keys ...string) {
	for _, key := range keys {
		select {
		case w.queue <- key:
		default:
			w.logger.Warn().Str("object_key", key).Msg("cleanup queue full, dropping object key")
		}
	}
}

// Run starts the background drain goroutine. Safe to call once; Workers
// aggregates call Run exactly once per worker.
func (w *BlobCleanupWorker) Run() {
	w.once.Do(func() {
		go w.drain()
	})
}

// Stop closes the queue and waits for the drain goroutine to finish the
// remaining keys.
func (w *BlobCleanupWorker) Stop() {
	close(w.queue)
	<-w.done
}

func (w *BlobCleanupWorker) drain() {
	defer close(w.done)

	for key := range w.queue {
		w.remove(key)
	}
}

func (w *BlobCleanupWorker) remove(key string) {
	for attempt := 1; attempt <= cleanupAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := w.blob.RemoveObject(ctx, key)
		cancel()

		if err == nil {
			w.logger.Debug().Str("object_key", key).Msg("removed orphaned attachment object")
			return
		}

		w.logger.Err(err).
			Str("object_key", key).
			Int("attempt", attempt).
			Msg("failed to remove attachment object")

		if attempt < cleanupAttempts {
			time.Sleep(cleanupRetryBackoff)
		}
	}
}
