package config

import (
	"ProjectViagem/database/postgres"
	radarHandler "ProjectViagem/internal/api/radar/handler"
	radarRepository "ProjectViagem/internal/api/radar/repository"
	radarService "ProjectViagem/internal/api/radar/service"
	voiceHandler "ProjectViagem/internal/api/voice/handler"
	voiceRepository "ProjectViagem/internal/api/voice/repository"
	voiceService "ProjectViagem/internal/api/voice/service"
	"ProjectViagem/internal/middleware"
	"ProjectViagem/pkg/gemini"
	"ProjectViagem/pkg/nlp"
	"ProjectViagem/pkg/redis"
	"ProjectViagem/pkg/utils"
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	geminiClient gemini.IGemini
	processor    nlp.IProcessor
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
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
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

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
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
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithProcessor() ServerOption {
	return func(s *Server) error {
		s.processor = nlp.NewProcessor()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Radar Domain
	radarRepo := radarRepository.New(s.db, s.log)
	radarServices := radarService.New(s.log, radarRepo, s.utils)
	radarHandlers := radarHandler.New(s.log, s.validator, s.middleware, radarServices)

	// Voice Domain
	voiceRepo := voiceRepository.New(s.db, s.log)
	voiceServices := voiceService.New(
		s.log,
		voiceRepo,
		radarServices,
		s.processor,
		s.geminiClient,
		s.redisServer,
		s.utils,
		voiceService.NewVoiceConfigFromEnv(),
	)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)

	// Hydrate the matcher with routes created through the API before this
	// boot; the compiled-in defaults are already present.
	if err := voiceServices.SyncRouteMappings(context.Background()); err != nil {
		s.log.Warnf("Failed to load route mappings into matcher: %v", err)
	}

	s.setupHealthCheck()
	s.handlers = append(s.handlers, radarHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
