package bootstrap

import (
	"context"
	"log"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/storage"
	"notekeeper-be/internal/upload"
	"notekeeper-be/pkg/s3client"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	NoteController controller.INoteController
	JwtMiddleware  fiber.Handler
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	isProd := cfg.App.Environment == "production"

	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)

	// Storage backend: the single strategy-selection point.
	backend := newStorageBackend(cfg, sysLogger)
	uploadHandler := upload.NewHandler(backend)

	noteService := service.NewNoteService(uowFactory, backend, sysLogger)
	noteController := controller.NewNoteController(noteService, uploadHandler, isProd)

	return &Container{
		NoteController: noteController,
		JwtMiddleware:  serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret),
		Logger:         sysLogger,
	}
}

func newStorageBackend(cfg *config.Config, sysLogger logger.ILogger) storage.Backend {
	if cfg.Storage.Driver == "s3" {
		client, err := s3client.New(context.Background(), s3client.Config{
			Endpoint:        cfg.Storage.S3.Endpoint,
			Region:          cfg.Storage.S3.Region,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			Bucket:          cfg.Storage.S3.Bucket,
			PublicURL:       cfg.Storage.S3.PublicURL,
			UsePathStyle:    cfg.Storage.S3.UsePathStyle,
		})
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize S3 storage backend: %v", err)
		}
		sysLogger.Info("storage", "Using storage backend: S3", map[string]interface{}{
			"bucket": cfg.Storage.S3.Bucket,
		})
		return storage.NewS3Backend(client, cfg.Storage.S3.KeyPrefix)
	}

	backend, err := storage.NewLocalBackend(cfg.Storage.LocalDir, cfg.Storage.LocalPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize local storage backend: %v", err)
	}
	sysLogger.Info("storage", "Using storage backend: local disk", map[string]interface{}{
		"dir": cfg.Storage.LocalDir,
	})
	return backend
}
