package main

import (
	"github.com/minhph/resourcehub/internal/config"
	"github.com/minhph/resourcehub/internal/handlers"
	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/internal/utils"
	"github.com/minhph/resourcehub/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	storageService *services.StorageService
	tokenCleanup   *services.TokenCleanupService
	taskQueue      services.TaskQueue
	worker         *services.Worker
	authHandler    *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Audit entries are written through the task queue so the primary
	// operation never waits on them
	services.InitAuditLogger(models.GetDB())
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(services.ProcessAuditTask)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(services.ProcessAuditTask)
			worker.Start()
		}
	}

	storageService := services.NewStorageService(&cfg.Storage)
	if err := storageService.EnsureBuckets(); err != nil {
		logger.Fatalf("Failed to prepare storage buckets: %v", err)
	}

	tokenCleanup := services.NewTokenCleanupService(models.GetDB())
	if err := tokenCleanup.Start(); err != nil {
		logger.Warn().Err(err).Msg("Failed to schedule token cleanup")
	}

	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		storageService: storageService,
		tokenCleanup:   tokenCleanup,
		taskQueue:      taskQueue,
		worker:         worker,
		authHandler:    authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.tokenCleanup.Stop()

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("Shutdown complete")
}
