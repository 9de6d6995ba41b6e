// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App
	prom   *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	statusRepo     repository.StatusRepository
	commentRepo    repository.CommentRepository
	reportRepo     repository.ReportRepository
	engagementRepo repository.EngagementRepository
	taxonomyRepo   repository.TaxonomyRepository

	userService       *service.UserService
	postService       *service.PostService
	statusService     *service.StatusService
	commentService    *service.CommentService
	reportService     *service.ReportService
	engagementService *service.EngagementService
	taxonomyService   *service.TaxonomyService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg, redisClient)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		prom:           fiberprometheus.New("inkwell-api"),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		statusRepo:     repository.NewStatusRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		reportRepo:     repository.NewReportRepository(db),
		engagementRepo: repository.NewEngagementRepository(db),
		taxonomyRepo:   repository.NewTaxonomyRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.statusService = service.NewStatusService(server.statusRepo, server.isStaffByUserID)
	server.postService = service.NewPostService(server.postRepo, server.statusRepo, server.taxonomyRepo, server.isStaffByUserID)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo, server.isStaffByUserID, cfg.CommentAutoApprove)
	server.reportService = service.NewReportService(server.reportRepo, server.commentRepo, server.isStaffByUserID)
	server.engagementService = service.NewEngagementService(server.engagementRepo, server.postRepo)
	server.taxonomyService = service.NewTaxonomyService(server.taxonomyRepo, server.isStaffByUserID)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	app.Use(s.prom.Middleware)

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	s.prom.RegisterAt(app, "/metrics")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// Public post routes (browse/search)
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchPosts)
	publicPosts.Get("/featured", s.GetFeaturedPosts)
	publicPosts.Get("/popular", s.GetPopularPosts)
	publicPosts.Get("/slug/:slug", s.GetPostBySlug)
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Get("/:id", s.GetPost)

	// Public comment reads
	publicComments := api.Group("/comments")
	publicComments.Get("/:id/replies", s.GetReplies)

	// Public status registry
	statuses := api.Group("/statuses")
	statuses.Get("/", s.GetStatuses)
	statuses.Get("/:slug", s.GetStatusBySlug)

	// Public taxonomy routes
	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Get("/:slug/posts", s.GetCategoryPosts)
	categories.Get("/:slug", s.GetCategory)
	tags := api.Group("/tags")
	tags.Get("/", s.GetTags)
	tags.Get("/:slug/posts", s.GetTagPosts)
	tags.Get("/:slug", s.GetTag)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/me/drafts", s.GetMyDrafts)
	users.Get("/me/bookmarks", s.GetMyBookmarks)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/posts", s.GetUserPosts)
	users.Get("/:id/comments", s.GetUserComments)
	users.Get("/:id", s.GetUserProfile)

	// Protected post routes
	posts := protected.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	// Specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/publish", s.PublishPost)
	posts.Post("/:id/unpublish", s.UnpublishPost)
	posts.Put("/:id/status", s.SetPostStatus)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Post("/:id/bookmark", s.BookmarkPost)
	posts.Delete("/:id/bookmark", s.UnbookmarkPost)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	// Generic /:id routes (update, delete)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Protected comment routes
	comments := protected.Group("/comments")
	comments.Post("/:id/report", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "report_comment"), s.ReportComment)
	comments.Post("/:id/flag", s.FlagComment)
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Moderation routes (staff checks live in the services)
	moderation := protected.Group("/moderation")
	moderation.Get("/comments/pending", s.GetPendingComments)
	moderation.Post("/comments/:id/approve", s.ApproveComment)
	moderation.Post("/comments/:id/reject", s.RejectComment)
	moderation.Post("/comments/:id/spam", s.MarkCommentSpam)
	moderation.Delete("/comments/:id/flag", s.UnflagComment)
	moderation.Get("/comments/:id/log", s.GetModerationLog)
	moderation.Get("/comments/:id/reports", s.GetCommentReports)
	moderation.Get("/reports", s.GetOpenReports)
	moderation.Post("/reports/:id/review", s.StartReportReview)
	moderation.Post("/reports/:id/resolve", s.ResolveReport)
	moderation.Get("/reports/:id", s.GetReport)

	// Admin routes for registries
	admin := protected.Group("/admin", s.StaffRequired())
	admin.Get("/statuses", s.GetAllStatuses)
	admin.Post("/statuses", s.CreateStatus)
	admin.Put("/statuses/:id", s.UpdateStatus)
	admin.Delete("/statuses/:id", s.DeactivateStatus)
	admin.Post("/categories", s.CreateCategory)
	admin.Put("/categories/:id", s.UpdateCategory)
	admin.Delete("/categories/:id", s.DeleteCategory)
	admin.Post("/tags", s.CreateTag)
	admin.Delete("/tags/:id", s.DeleteTag)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades without Redis (no cache, no rate limits) but
		// stays functional, so a missing client does not fail readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// StaffRequired returns middleware that rejects non-staff users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		staff, err := s.isStaffByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !staff {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Staff access required"))
		}

		return c.Next()
	}
}

func (s *Server) isStaffByUserID(ctx context.Context, userID uint) (bool, error) {
	return s.userRepo.IsStaff(ctx, userID)
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
