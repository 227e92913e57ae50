package preferences

import (
	"errors"

	"budget-core/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for preferences.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the preference routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/preferences")
	group.Get("/number-format", h.HandleGetNumberFormat)
	group.Put("/number-format", h.HandleSetNumberFormat)
}

// HandleGetNumberFormat returns the number format in use.
// @Summary Get number format
// @Tags preferences
// @Produce json
// @Success 200 {object} NumberFormatResponse
// @Router /preferences/number-format [get]
func (h *Handler) HandleGetNumberFormat(c *fiber.Ctx) error {
	return c.JSON(h.service.Get())
}

// HandleSetNumberFormat changes the number format.
// @Summary Set number format
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body NumberFormatRequest true "Format"
// @Success 200 {object} NumberFormatResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /preferences/number-format [put]
func (h *Handler) HandleSetNumberFormat(c *fiber.Ctx) error {
	var req NumberFormatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.Set(c.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to save number format", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}
