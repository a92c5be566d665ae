package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/theeabrarrr/raza-gas-erp/internal/database"
	"github.com/theeabrarrr/raza-gas-erp/internal/models"
	"github.com/theeabrarrr/raza-gas-erp/internal/postgres"
	"github.com/theeabrarrr/raza-gas-erp/internal/service"
	"github.com/theeabrarrr/raza-gas-erp/internal/storage"
	"github.com/theeabrarrr/raza-gas-erp/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	}
}

// Services bundles everything a command needs.
type Services struct {
	Store    store.Store
	Uploader storage.Uploader
	Core     *service.Service
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices wires the configured store backend and the proof
// uploader into a core service.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	st, err := InitializeStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	uploader, err := storage.NewUploader(cfg.Storage)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &Services{
		Store:    st,
		Uploader: uploader,
		Core:     service.NewService(st, uploader),
	}, nil
}

// InitializeStore connects the backend named by the configuration. Useful on
// its own for read-only commands that never upload proofs.
func InitializeStore(ctx context.Context, cfg *models.Config) (store.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		zap.L().Info("Using embedded SQLite store", zap.String("path", cfg.Database.Path))
		return database.NewService(ctx, cfg.Database)
	case "postgres":
		zap.L().Info("Using Postgres store")
		return postgres.NewService(ctx, cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
