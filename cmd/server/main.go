package main

import (
	"context"
	"fmt"

	"github.com/leandrawisnu/noteshare/internal/audit"
	"github.com/leandrawisnu/noteshare/internal/config"
	myHTTP "github.com/leandrawisnu/noteshare/internal/handler/http"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/metrics"
	"github.com/leandrawisnu/noteshare/internal/server"
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/internal/store"
	"github.com/leandrawisnu/noteshare/internal/workers"

	_ "go.uber.org/automaxprocs"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("note-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateForServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	publisher := audit.NewNopPublisher()
	if cfg.Events.Enabled {
		publisher = audit.NewKafkaPublisher(cfg.Events, log)
	}
	defer publisher.Close()

	cleanup := workers.NewBlobCleanupWorker(storages.BlobStorage, log)
	defer cleanup.Stop()
	workers.NewWorkers(cleanup).Run()

	m := metrics.NewMetrics()

	services := service.NewServices(storages, *cfg, publisher, cleanup, m, log)
	handler := myHTTP.NewHandler(services, m, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
