// Package server contains the HTTP handlers for the application's API
// endpoints. It translates query parameters into the core's enumerated
// types and typed errors back into HTTP statuses.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"murmur/internal/cache"
	"murmur/internal/config"
	"murmur/internal/graph"
	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
	"murmur/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	store          *graph.Store
	cache          *cache.Cache
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo repository.UserRepository

	social        *service.SocialGraphService
	feeds         *service.FeedEngine
	tags          *service.TagService
	notifications *service.NotificationEngine
	moderation    *service.ModerationService
	posts         *service.PostService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	store, err := graph.NewStore(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		return nil, fmt.Errorf("graph store connection failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("graph store unreachable: %w", err)
	}

	server := newServer(cfg, store, cache.New(cfg.RedisURL))
	server.store = store
	// Registered here rather than in newServer: the collectors go into
	// the default prometheus registry, which tolerates one registration
	// per process.
	server.promMiddleware = fiberprometheus.New("murmur-api")
	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Use this in tests or when a bootstrap layer establishes
// the store and cache itself.
func NewServerWithDeps(cfg *config.Config, runner graph.Runner, c *cache.Cache) *Server {
	return newServer(cfg, runner, c)
}

func newServer(cfg *config.Config, runner graph.Runner, c *cache.Cache) *Server {
	userRepo := repository.NewUserRepository(runner)
	followRepo := repository.NewFollowRepository(runner)
	postRepo := repository.NewPostRepository(runner)
	tagRepo := repository.NewTagRepository(runner)
	notificationRepo := repository.NewNotificationRepository(runner)
	reportRepo := repository.NewReportRepository(runner)

	middleware.InitMiddleware(cfg)

	server := &Server{
		config:   cfg,
		cache:    c,
		userRepo: userRepo,
	}
	server.social = service.NewSocialGraphService(followRepo, userRepo)
	server.feeds = service.NewFeedEngine(postRepo, c)
	server.tags = service.NewTagService(tagRepo, c)
	server.notifications = service.NewNotificationEngine(notificationRepo)
	server.moderation = service.NewModerationService(reportRepo, postRepo, userRepo)
	server.posts = service.NewPostService(postRepo, tagRepo, userRepo, server.notifications)

	return server
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing. The id also rides in the handler context
	// so store query logs can be correlated back to the request.
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			c.Context().SetUserValue(observability.CorrelationID, rid)
		}
		return c.Next()
	})

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// CORS must run before anything that can short-circuit so browser
	// clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public read surface
	feed := api.Group("/feed")
	feed.Get("/anonymous", middleware.OptionalAuth, s.GetAnonymousFeed)
	feed.Get("/", middleware.AuthRequired, s.GetHomeFeed)

	publicPosts := api.Group("/posts")
	publicPosts.Get("/:uuid/responses", s.GetResponses)
	publicPosts.Get("/:uuid/quotes", s.GetQuotes)
	publicPosts.Get("/:uuid/info", s.GetPostInfo)
	publicPosts.Get("/:uuid", s.GetPost)

	tags := api.Group("/tags")
	tags.Get("/popular", s.GetPopularTags)
	tags.Get("/name/:name", s.GetTagByName)
	tags.Get("/:uuid/posts", s.GetTagPosts)
	tags.Get("/:uuid", s.GetTag)

	users := api.Group("/users")
	users.Get("/:uuid/following", s.GetFollowing)
	users.Get("/:uuid/followers", s.GetFollowers)
	users.Get("/:uuid/profile-info", s.GetProfileInfo)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	posts := protected.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Post("/:uuid/like", s.LikePost)
	posts.Delete("/:uuid/like", s.UnlikePost)
	posts.Get("/:uuid/liked", s.GetLikeState)

	follows := protected.Group("/follows")
	follows.Post("/:uuid", s.Follow)
	follows.Delete("/:uuid", s.Unfollow)
	follows.Get("/:uuid", s.GetFollowState)
	follows.Get("/:uuid/mutual", s.GetMutualConnections)

	notifs := protected.Group("/notifications")
	notifs.Get("/", s.GetNotifications)
	notifs.Get("/unread-count", s.GetUnreadCount)
	notifs.Post("/read-all", s.MarkAllNotificationsRead)
	notifs.Post("/:uuid/read", s.MarkNotificationRead)

	reports := protected.Group("/reports")
	reports.Post("/", s.FileReport)
	reports.Get("/", s.AdminRequired, s.GetReports)
	reports.Post("/:uuid/resolve", s.AdminRequired, s.ResolveReport)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if s.store == nil {
		storeStatus = "unavailable"
	} else if err := s.store.VerifyConnectivity(ctx); err != nil {
		storeStatus = "unhealthy"
	}

	cacheStatus := "healthy"
	if !s.cache.Enabled() {
		cacheStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"store": storeStatus,
			"cache": cacheStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired rejects principals without the admin authority. Must run
// after AuthRequired so the principal is available.
func (s *Server) AdminRequired(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	if !principal.HasAuthority("ROLE_ADMIN") {
		return respondError(c, models.NewUnauthorizedError("admin access required"))
	}
	return c.Next()
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Murmur API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return respondError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(ctx); err != nil {
			log.Printf("error closing graph store: %v", err)
		}
	}
	log.Println("Server shutdown complete")
	return nil
}
