package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/handler"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/server"
	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/internal/store"
	"github.com/MKhiriev/go-auth-portal/internal/workers"
	"github.com/MKhiriev/go-auth-portal/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	log := logger.NewLogger("auth-portal-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Dur("session_ttl", cfg.Auth.SessionTTL).
		Bool("redis_sessions", cfg.Storage.Redis.URL != "").
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer closeStorages(storages, log)

	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, cfg.Workers, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped")
		closeStorages(storages, log)
		os.Exit(1)
	}
}

func closeStorages(storages io.Closer, log *logger.Logger) {
	if err := storages.Close(); err != nil {
		log.Err(err).Msg("error closing storages")
	}
}
