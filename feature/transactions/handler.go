package transactions

import (
	"errors"

	"budget-core/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for transactions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the transaction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/transactions")
	group.Get("/", h.HandleList)
	group.Post("/import", h.HandleImport)
}

// HandleList returns the transactions of an account.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param account query string true "Account ID"
// @Success 200 {array} TransactionView
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /transactions [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.service.List(c.Context(), c.Query("account"))
	if err != nil {
		return h.writeError(c, err)
	}

	views := make([]TransactionView, 0, len(list))
	for _, t := range list {
		v, err := h.service.View(t)
		if err != nil {
			return h.writeError(c, err)
		}
		views = append(views, v)
	}
	return c.JSON(views)
}

// HandleImport plans and optionally applies a file import.
// @Summary Import transactions
// @Description Diffs a CSV file from the bucket against the account. The plan is applied only with confirm=true and dry_run=false.
// @Tags transactions
// @Accept json
// @Produce json
// @Param body body ImportRequest true "Import"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /transactions/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.service.Apply(c.Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrObjectNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrMissingAccount), errors.Is(err, ErrMissingObject), errors.Is(err, ErrMissingColumn):
		status = fiber.StatusBadRequest
	default:
		logger.WithRayID(h.service.logger, c).Error("Transaction request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
