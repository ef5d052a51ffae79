// Package server contains the HTTP handlers and middleware wiring for the blog API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blogpessoal/internal/cache"
	"blogpessoal/internal/config"
	"blogpessoal/internal/database"
	"blogpessoal/internal/featureflags"
	"blogpessoal/internal/middleware"
	"blogpessoal/internal/models"
	"blogpessoal/internal/observability"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/security"
	"blogpessoal/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "blogpessoal-api"

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	featureFlags    *featureflags.Manager
	tokens          *security.JWTService
	principals      *security.PrincipalLoader
	postagemRepo    repository.PostagemRepository
	temaRepo        repository.TemaRepository
	usuarioRepo     repository.UsuarioRepository
	postagemService *service.PostagemService
	temaService     *service.TemaService
	usuarioService  *service.UsuarioService
}

// NewServer connects to the database and Redis and builds a Server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	observability.ConfigureRepoLogging(middleware.Logger, cfg.RepoLogging)
	middleware.ConfigureRateLimit(cfg.Env)

	postagemRepo := repository.NewPostagemRepository(db)
	temaRepo := repository.NewTemaRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	tokens := security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL(), cfg.JWTIssuer)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(serviceName),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		tokens:         tokens,
		principals:     security.NewPrincipalLoader(usuarioRepo),
		postagemRepo:   postagemRepo,
		temaRepo:       temaRepo,
		usuarioRepo:    usuarioRepo,
	}
	server.postagemService = service.NewPostagemService(postagemRepo, temaRepo, usuarioRepo)
	server.temaService = service.NewTemaService(temaRepo)
	server.usuarioService = service.NewUsuarioService(usuarioRepo, tokens)

	return server, nil
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Blog Pessoal API",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// errorHandler renders errors that escape handlers, keeping Fiber's own status codes.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return models.RespondWithError(c, fe.Code, &models.AppError{Code: codeForStatus(fe.Code), Message: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.Respond(c, models.NewInternalError(err))
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case fiber.StatusForbidden:
		return models.CodeForbidden
	case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed, fiber.StatusUnprocessableEntity:
		return models.CodeValidation
	default:
		if status >= fiber.StatusInternalServerError {
			return models.CodeInternal
		}
		return ""
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Request ID and trace ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	auth := s.AuthRequired()

	// Public usuario routes are registered before the protected ones on the same group.
	usuarios := app.Group("/usuarios")
	usuarios.Post("/logar", middleware.RateLimit(s.redis, 10, 5*time.Minute, "logar"), s.Logar)
	usuarios.Post("/cadastrar", middleware.RateLimit(s.redis, 5, 10*time.Minute, "cadastrar"), s.CadastrarUsuario)
	usuarios.Get("/all", auth, s.GetAllUsuarios)
	usuarios.Put("/atualizar", auth, s.AtualizarUsuario)
	usuarios.Get("/:id", auth, s.GetUsuario)

	postagens := app.Group("/postagens", auth)
	postagens.Get("/", s.GetAllPostagens)
	postagens.Get("/titulo/:titulo", s.GetPostagensByTitulo)
	postagens.Get("/:id", s.GetPostagem)
	postagens.Post("/", s.CreatePostagem)
	postagens.Put("/", s.UpdatePostagem)
	postagens.Delete("/:id", s.DeletePostagem)

	temas := app.Group("/temas", auth)
	temas.Get("/", s.GetAllTemas)
	temas.Get("/descricao/:descricao", s.GetTemasByDescricao)
	temas.Get("/:id", s.GetTema)
	temas.Post("/", s.CreateTema)
	temas.Put("/", s.UpdateTema)
	temas.Delete("/:id", s.DeleteTema)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and cache health. The cache is optional:
// it only fails readiness when configured and unreachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
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

// Start serves HTTP on the configured port until Shutdown is called.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
