package handlerUtil

import (
	"ProjectViagem/internal/api/radar"
	"ProjectViagem/internal/api/voice"
	"ProjectViagem/pkg/log"
	"ProjectViagem/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Voice domain errors
	if errors.Is(err, voice.ErrEmptyTranscript) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Empty transcript")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Transcript must not be empty",
			"code":    "EMPTY_TRANSCRIPT",
		})
	}

	if errors.Is(err, voice.ErrRouteMappingNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Route mapping not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Route mapping not found",
			"code":    "ROUTE_MAPPING_NOT_FOUND",
		})
	}

	if errors.Is(err, voice.ErrRouteMappingExists) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Route mapping already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Route mapping already exists",
			"code":    "ROUTE_MAPPING_EXISTS",
		})
	}

	// Radar domain errors
	if errors.Is(err, radar.ErrRadarNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Radar not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Radar not found",
			"code":    "RADAR_NOT_FOUND",
		})
	}

	if errors.Is(err, radar.ErrRadarNotOwned) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Radar does not belong to user")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Radar does not belong to user",
			"code":    "RADAR_NOT_OWNED",
		})
	}

	if errors.Is(err, radar.ErrDuplicateRadar) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Duplicate radar for route")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "An active radar already exists for this route",
			"code":    "DUPLICATE_RADAR",
		})
	}

	if errors.Is(err, radar.ErrInvalidRoute) || errors.Is(err, radar.ErrSameCity) ||
		errors.Is(err, radar.ErrInvalidDateRange) || errors.Is(err, radar.ErrInvalidTarget) ||
		errors.Is(err, radar.ErrInvalidMonitorTyp) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid radar request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"code":    "INVALID_RADAR",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
