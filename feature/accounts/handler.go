package accounts

import (
	"errors"

	"budget-core/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for accounts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the account routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/accounts")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
}

// HandleList returns all accounts.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} AccountView
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Failed to list accounts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	views := make([]AccountView, 0, len(list))
	for _, a := range list {
		v, err := h.service.View(a)
		if err != nil {
			l.Error("Failed to format balance", zap.String("account", a.ID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		views = append(views, v)
	}
	return c.JSON(views)
}

// HandleGet returns one account.
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} AccountView
// @Failure 404 {object} map[string]string "Not Found"
// @Router /accounts/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	a, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	v, err := h.service.View(*a)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(v)
}

// HandleCreate creates an account.
// @Summary Create account
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body CreateRequest true "Account"
// @Success 201 {object} AccountView
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /accounts [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	a, err := h.service.Create(c.Context(), req)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Failed to create account", zap.Error(err))
		return writeError(c, err)
	}
	v, err := h.service.View(*a)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidBalance):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
