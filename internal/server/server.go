// Package server contains the HTTP handlers and route wiring for the
// application.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/web"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// promOnce guards the Prometheus middleware, whose collectors may only be
// registered once per process (tests construct several servers).
var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// Server holds all dependencies and provides handlers. It is constructed once
// at startup and passed into every route; there is no ambient request state.
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	sessions    *session.Manager
	renderer    *web.Renderer
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	authService *service.AuthService
	postService *service.PostService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("template parsing failed: %w", err)
	}

	s := &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		sessions: session.NewManager(cfg.SecretKey, session.DefaultTTL),
		renderer: renderer,
	}

	s.userRepo = repository.NewUserRepository(db)
	s.postRepo = repository.NewPostRepository(db)
	s.authService = service.NewAuthService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.isAdminByUserID)

	return s, nil
}

// isAdminByUserID reports whether the identity carries the privileged flag.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for correlating log lines
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	promOnce.Do(func() {
		prom = fiberprometheus.New("inkwell")
	})
	app.Use(prom.Middleware)

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Session resolution runs on every route so templates know the
	// current identity.
	app.Use(middleware.LoadSession(s.sessions))

	// Global rate limiting per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks and metrics
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	promOnce.Do(func() {
		prom = fiberprometheus.New("inkwell")
	})
	prom.RegisterAt(app, "/metrics")

	app.Get("/", s.Index)

	// Session authentication
	app.Get("/login", s.LoginForm)
	app.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/register", s.RegisterForm)
	app.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Get("/logout", s.Logout)

	// Reading is public
	app.Get("/post/:id", s.ShowPost)
	app.Get("/about", s.About)
	app.Get("/contact", s.Contact)

	// Creating requires a session; the route-level check redirects guests
	// to the login page.
	app.Get("/new-post", middleware.RequireAuth(), s.NewPostForm)
	app.Post("/new-post", middleware.RequireAuth(), s.CreatePost)

	// Editing and deleting pass the access gate: the post must exist
	// (404 first), then only the author or an administrator is admitted.
	app.Get("/edit-post/:id", s.PostGate(), s.EditPostForm)
	app.Post("/edit-post/:id", s.PostGate(), s.UpdatePost)
	app.Get("/delete/:id", s.PostGate(), s.DeletePost)

	// Anything else is a 404 page rather than Fiber's plain-text default.
	app.Use(s.NotFoundPage)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
