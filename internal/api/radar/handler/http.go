package radarHandler

import (
	radarService "ProjectViagem/internal/api/radar/service"
	"ProjectViagem/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RadarHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	radarService radarService.IRadarService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	rs radarService.IRadarService,
) *RadarHandler {
	return &RadarHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		radarService: rs,
	}
}

func (h *RadarHandler) Start(srv fiber.Router) {
	radars := srv.Group("/radars")
	radars.Use(h.middleware.NewRateLimiter)

	radars.Post("/", h.middleware.NewTokenMiddleware, h.CreateRadar)
	radars.Get("", h.middleware.NewTokenMiddleware, h.GetRadars)
	radars.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteRadar)
}
