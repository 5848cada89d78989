package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/leandrawisnu/noteshare/internal/adapter"
	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/internal/session"
	"github.com/leandrawisnu/noteshare/internal/tui"
	"github.com/leandrawisnu/noteshare/models"
)

type App struct {
	services *service.ClientServices
	session  *session.Session
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(buildInfo models.AppBuildInfo) (*App, error) {
	log := logger.NewClientLogger("note-client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	svcs := service.NewClientServices(serverAdapter, log)

	sess := session.New()
	go func() {
		for change := range sess.Subscribe() {
			log.Info().
				Bool("signed_in", change.SignedIn).
				Int64("user_id", change.UserID).
				Msg("session changed")
		}
	}()

	ui, err := tui.New(svcs, sess, buildInfo, log)
	if err != nil {
		return nil, fmt.Errorf("create tui: %w", err)
	}

	return &App{services: svcs, session: sess, tui: ui, logger: log}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	_, err := a.tui.LoginFlow(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	}

	logout, err := a.tui.MainLoop(ctx)
	if err != nil {
		return err
	}
	if logout {
		return a.Run()
	}

	return nil
}
