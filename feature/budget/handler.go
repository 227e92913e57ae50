package budget

import (
	"errors"

	"budget-core/core/logger"
	"budget-core/core/months"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for budgets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the budget routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/budget")
	group.Get("/:type", h.HandleContext)
	group.Post("/:type/summary", h.HandleToggleSummary)
	group.Post("/:type/actions", h.HandleAction)
	group.Get("/:type/:month", h.HandleMonth)
}

// HandleContext returns the budget context.
// @Summary Get budget context
// @Tags budget
// @Produce json
// @Param type path string true "report or rollover"
// @Success 200 {object} ContextValue
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /budget/{type} [get]
func (h *Handler) HandleContext(c *fiber.Ctx) error {
	v, err := h.service.Context(c.Context(), c.Params("type"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(v)
}

// HandleToggleSummary flips the summary collapsed flag.
// @Summary Toggle budget summary
// @Tags budget
// @Produce json
// @Param type path string true "report or rollover"
// @Success 200 {object} ContextValue
// @Router /budget/{type}/summary [post]
func (h *Handler) HandleToggleSummary(c *fiber.Ctx) error {
	v, err := h.service.ToggleSummary(c.Context(), c.Params("type"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(v)
}

// HandleAction applies a budget action.
// @Summary Apply budget action
// @Tags budget
// @Accept json
// @Produce json
// @Param type path string true "report or rollover"
// @Param body body ActionRequest true "Action"
// @Success 200 {object} MonthBudget
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /budget/{type}/actions [post]
func (h *Handler) HandleAction(c *fiber.Ctx) error {
	var req ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	mb, err := h.service.Apply(c.Context(), c.Params("type"), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(mb)
}

// HandleMonth returns the budgeted amounts of a month.
// @Summary Get month budget
// @Tags budget
// @Produce json
// @Param type path string true "report or rollover"
// @Param month path string true "YYYY-MM"
// @Success 200 {object} MonthBudget
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /budget/{type}/{month} [get]
func (h *Handler) HandleMonth(c *fiber.Ctx) error {
	mb, err := h.service.Month(c.Context(), c.Params("type"), c.Params("month"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(mb)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownContext),
		errors.Is(err, ErrUnknownAction),
		errors.Is(err, ErrMissingCategory),
		errors.Is(err, ErrUnknownCategory),
		errors.Is(err, months.ErrInvalidMonth):
		status = fiber.StatusBadRequest
	default:
		logger.WithRayID(h.service.logger, c).Error("Budget request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
