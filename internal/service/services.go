package service

import (
	"github.com/leandrawisnu/noteshare/internal/audit"
	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/metrics"
	"github.com/leandrawisnu/noteshare/internal/store"
	"github.com/leandrawisnu/noteshare/internal/workers"
)

type Services struct {
	AuthService       AuthService
	NoteService       NoteService
	AttachmentService AttachmentService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, publisher audit.Publisher, cleanup *workers.BlobCleanupWorker, m *metrics.Metrics, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, logger),
		NoteService:       NewNoteService(storages, publisher, cleanup, m, logger),
		AttachmentService: NewAttachmentService(storages, cfg.App, publisher, m, logger),
	}
}
