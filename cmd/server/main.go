package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/travelnote/travelnote/internal/adapter"
	"github.com/travelnote/travelnote/internal/config"
	"github.com/travelnote/travelnote/internal/handler"
	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/notify"
	"github.com/travelnote/travelnote/internal/server"
	"github.com/travelnote/travelnote/internal/service"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// best effort: variables may come from the environment directly
	_ = godotenv.Load()

	log := logger.NewLogger("travelnote-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing database connection")
		}
	}()

	repositories := store.NewRepositories(db, log)

	dispatcher := notify.NewLogDispatcher(log)
	scheduler := notify.NewTimerScheduler(dispatcher, log)
	defer scheduler.Stop()
	permissionGate := notify.NewStoredPermissionGate(repositories.UserRepository, log)

	geocoder, err := adapter.NewHTTPGeocoder(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating geocoder")
	}

	services := service.NewServices(*repositories, scheduler, permissionGate, geocoder, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	// re-arm notification timers lost in the previous process
	rescheduler := workers.NewBootRescheduler(repositories, scheduler, cfg.Workers, log)
	go workers.NewWorkers(rescheduler).Run()

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
