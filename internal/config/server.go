package config

import (
	"ProjectBudget/database/postgres"
	authHandler "ProjectBudget/internal/api/auth/handler"
	authRepository "ProjectBudget/internal/api/auth/repository"
	authService "ProjectBudget/internal/api/auth/service"
	budgetHandler "ProjectBudget/internal/api/budget/handler"
	budgetRepository "ProjectBudget/internal/api/budget/repository"
	budgetService "ProjectBudget/internal/api/budget/service"
	expenseHandler "ProjectBudget/internal/api/expense/handler"
	expenseRepository "ProjectBudget/internal/api/expense/repository"
	expenseService "ProjectBudget/internal/api/expense/service"
	"ProjectBudget/internal/middleware"
	"ProjectBudget/pkg/bcrypt"
	"ProjectBudget/pkg/redis"
	"ProjectBudget/pkg/utils"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	cfg         *Config
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, errors.New("fiber app is required")
	}
	if server.log == nil {
		return nil, errors.New("logger is required")
	}
	if server.cfg == nil {
		server.cfg = Load()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithConfig(cfg *Config) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase opens the postgres pool described by the config and, when
// DB_AUTO_MIGRATE is on, applies pending migrations. WithConfig must come first.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return errors.New("config must be set before database")
		}

		db, err := postgres.New(postgres.Options{
			DSN:             s.cfg.DatabaseURL(),
			MaxOpenConns:    s.cfg.DBMaxOpenConns,
			MaxIdleConns:    s.cfg.DBMaxIdleConns,
			ConnMaxLifetime: s.cfg.DBConnMaxLifetime,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if s.cfg.DBAutoMigrate {
			if err := postgres.RunMigrations(db); err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return errors.New("logger must be initialized before middleware")
		}

		opts := middleware.Options{}
		if s.cfg != nil {
			opts.RequestsPerSecond = s.cfg.RateLimitRPS
			opts.Burst = s.cfg.RateLimitBurst
			opts.LimiterIdleTTL = s.cfg.RateLimitIdleTTL
			opts.TokenSecret = s.cfg.JWTAccessTokenSecret
		}
		s.middleware = middleware.New(s.log, opts)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.bcryptUtils, s.utils, s.cfg.AccessTokenTTL)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Budget Domain
	budgetRepo := budgetRepository.New(s.db, s.log)
	budgetServices := budgetService.New(s.log, budgetRepo, authRepo, s.redisServer, s.utils)
	budgetHandlers := budgetHandler.New(s.log, s.validator, s.middleware, budgetServices)

	// Expense Domain
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.New(s.log, expenseRepo, budgetRepo, s.redisServer, s.cfg.BudgetCacheTTL, s.utils)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, budgetHandlers, expenseHandlers)
}

func (s *Server) mountRoutes() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.mountRoutes()

	return s.engine.Listen(fmt.Sprintf(":%s", s.cfg.AppPort))
}

func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()
	if s.db != nil {
		if dbErr := s.db.Close(); dbErr != nil {
			err = errors.Join(err, dbErr)
		}
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
