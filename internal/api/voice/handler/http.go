package voiceHandler

import (
	voiceService "ProjectViagem/internal/api/voice/service"
	"ProjectViagem/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice")
	voice.Use(h.middleware.NewRateLimiter)

	// Websocket session stream. The token travels as a query parameter since
	// browsers cannot set headers on websocket upgrades.
	voice.Use("/stream", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	voice.Get("/stream", websocket.New(h.Stream))

	voice.Post("/interpret", h.middleware.NewTokenMiddleware, h.Interpret)
	voice.Get("/history", h.middleware.NewTokenMiddleware, h.GetHistory)

	voice.Get("/routes", h.middleware.NewTokenMiddleware, h.GetRouteMappings)
	voice.Post("/routes", h.middleware.NewTokenMiddleware, h.CreateRouteMapping)
	voice.Put("/routes/:id", h.middleware.NewTokenMiddleware, h.UpdateRouteMapping)
	voice.Delete("/routes/:id", h.middleware.NewTokenMiddleware, h.DeleteRouteMapping)
}
