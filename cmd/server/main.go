package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/api"
	"github.com/healthassist-server/internal/auth"
	"github.com/healthassist-server/internal/cache"
	"github.com/healthassist-server/internal/chat"
	"github.com/healthassist-server/internal/config"
	"github.com/healthassist-server/internal/database"
	"github.com/healthassist-server/internal/domain"
	"github.com/healthassist-server/internal/history"
	"github.com/healthassist-server/internal/repository"
	"github.com/healthassist-server/internal/service"
	"github.com/healthassist-server/pkg/directory"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	logger := newLogger(&cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host":   cfg.Server.Host,
		"port":   cfg.Server.Port,
		"driver": cfg.Storage.Driver,
	}).Info("Starting HealthAssist server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := api.Deps{
		Config:    cfg,
		Logger:    logger,
		Tokens:    auth.NewTokenManager(&cfg.Auth),
		Directory: directory.NewClient(&cfg.Directory, logger),
		Chat:      chat.NewResponder(logger),
	}

	assessorOpts := []service.AssessorOption{}

	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewConnection(ctx, &cfg.Database, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		runner, err := database.NewMigrationRunner(configManager.GetDatabaseURL(), cfg.Database.MigrationsPath, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize migrations")
		}
		if err := runner.Up(); err != nil {
			logger.WithError(err).Fatal("Failed to apply migrations")
		}
		runner.Close()

		store, err := history.NewPostgresStoreFromURL(configManager.GetDatabaseURL())
		if err != nil {
			logger.WithError(err).Fatal("Failed to open history store")
		}
		defer store.Close()

		deps.History = store
		deps.Users = repository.NewUserRepository(db.Pool, logger)
		deps.Appointments = repository.NewAppointmentRepository(db.Pool, logger)
		assessorOpts = append(assessorOpts, service.WithRecorder(store))

	default:
		store, err := history.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open history store")
		}
		defer store.Close()

		deps.History = store
		assessorOpts = append(assessorOpts, service.WithRecorder(store))
	}

	if cfg.Cache.Enabled {
		resultCache, err := cache.New(&cfg.Cache)
		if err != nil {
			logger.WithError(err).Warn("Result cache unavailable, continuing without it")
		} else {
			defer resultCache.Close()
			assessorOpts = append(assessorOpts, service.WithResultCache(resultCache))
		}
	}

	deps.Assessor = service.NewHealthAssessor(logger, assessorOpts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := api.NewServer(deps).Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

func newLogger(cfg *domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	switch cfg.Output {
	case "stderr":
		logger.SetOutput(os.Stderr)
	default:
		logger.SetOutput(os.Stdout)
	}
	return logger
}
