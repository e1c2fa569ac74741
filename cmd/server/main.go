package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/preventive-care-server/internal/api"
	"github.com/preventive-care-server/internal/config"
	"github.com/preventive-care-server/internal/database"
	"github.com/preventive-care-server/internal/domain"
	"github.com/preventive-care-server/internal/history"
	"github.com/preventive-care-server/internal/service"
	"github.com/preventive-care-server/pkg/insight"
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

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, health, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open assessment store")
	}
	defer store.Close()

	var insights domain.InsightGenerator
	if cfg.Insight.Enabled {
		client, err := insight.NewClient(cfg.Insight, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create insight client")
		}
		defer client.Close()
		insights = client
	} else {
		logger.Info("Insight generation disabled, assessments will carry placeholder narratives")
	}

	engine := service.NewRiskEngine(logger)
	svc := service.NewAssessmentService(logger, engine, insights, store)
	server := api.NewServer(cfg, logger, svc, health)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"storage": cfg.Storage.Driver,
	}).Info("Starting preventive care server")

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

// openStore builds the configured history backend. For postgres it runs
// pending migrations first and returns a pool-backed health checker; sqlite
// needs neither.
func openStore(ctx context.Context, cfg *domain.Config, logger *logrus.Logger) (history.Store, api.HealthChecker, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := history.NewSQLiteStore(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.WithField("path", cfg.Storage.SQLite.Path).Info("Using SQLite assessment store")
		return store, nil, nil

	case "postgres":
		runner, err := database.NewMigrationRunner(cfg.Storage.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("creating migration runner: %w", err)
		}
		if err := runner.Up(); err != nil {
			runner.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		runner.Close()

		pool, err := database.NewPool(ctx, cfg.Storage.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("creating connection pool: %w", err)
		}

		db, err := database.OpenSQL(cfg.Storage.Postgres)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("opening store connection: %w", err)
		}

		store, err := history.NewPostgresStore(db)
		if err != nil {
			pool.Close()
			db.Close()
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return store, pool, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
