package main

import (
	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/config"
	"github.com/minhph/resourcehub/internal/handlers"
	"github.com/minhph/resourcehub/internal/middleware"
	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Tighter limits on credential and bulk-write routes
	loginLimiter := middleware.NewRateLimiter(5, 10)
	importLimiter := middleware.NewRateLimiter(1, 3)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// Uploaded files (avatars, branding assets, attachments)
	r.Static("/uploads", svc.storageService.Root())

	db := models.GetDB()

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/register", loginLimiter.Middleware(), svc.authHandler.Register)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Branding is public: login screens read it before any session exists
		systemConfigHandler := handlers.NewSystemConfigHandler(db)
		api.GET("/branding", systemConfigHandler.GetBranding)

		// SSE events (public route with internal token validation)
		eventsHandler := handlers.NewEventsHandler(services.GetChangeHub())
		api.GET("/events", eventsHandler.Stream)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard (all users)
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard", dashboardHandler.GetStats)

			// Categories and resources. Per-category access and per-record
			// ownership checks live in the handlers; the route group only
			// guarantees a session exists.
			categoryHandler := handlers.NewCategoryHandler(db)
			protected.GET("/categories", categoryHandler.List)
			protected.GET("/categories/:id", categoryHandler.Get)

			resourceHandler := handlers.NewResourceHandler(db)
			protected.GET("/categories/:id/resources", resourceHandler.List)
			protected.POST("/categories/:id/resources", resourceHandler.Create)
			protected.PUT("/categories/:id/resources/:resourceId", resourceHandler.Update)
			protected.DELETE("/categories/:id/resources/:resourceId", resourceHandler.Delete)
			protected.GET("/categories/:id/resources/export", resourceHandler.Export)
			protected.POST("/categories/:id/resources/import", importLimiter.Middleware(), resourceHandler.Import)

			// Projects (read for all users)
			projectHandler := handlers.NewProjectHandler(db)
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/all", projectHandler.ListAll)
			protected.GET("/projects/:id", projectHandler.Get)

			// Relation-field user picker
			userHandler := handlers.NewUserHandler(db)
			protected.GET("/users/all", userHandler.ListAll)
			protected.PUT("/users/me/avatar", userHandler.UpdateAvatar)

			// Uploads
			storageHandler := handlers.NewStorageHandler(svc.storageService)
			protected.POST("/storage/:bucket", storageHandler.Upload)
		}

		// Staff routes (admin and manager)
		staff := api.Group("")
		staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			projectHandler := handlers.NewProjectHandler(db)
			staff.POST("/projects", projectHandler.Create)
			staff.PUT("/projects/:id", projectHandler.Update)
			staff.DELETE("/projects/:id", projectHandler.Delete)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			categoryHandler := handlers.NewCategoryHandler(db)
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			userHandler := handlers.NewUserHandler(db)
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			auditLogHandler := handlers.NewAuditLogHandler(db)
			admin.GET("/audit-logs", auditLogHandler.List)

			systemConfigHandler := handlers.NewSystemConfigHandler(db)
			admin.PUT("/branding", systemConfigHandler.UpdateBranding)
		}
	}
}
