package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jack-T524/oms/internal/service"
	"github.com/jack-T524/oms/pkg/metrics"
	"github.com/jack-T524/oms/pkg/mylogger"
	"github.com/jack-T524/oms/pkg/utils"
	"go.uber.org/zap"
)

type DirectoryHandler struct {
	svc     service.IntakeService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewDirectoryHandler(svc service.IntakeService, m *metrics.Metrics, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		svc:     svc,
		metrics: m,
		logger:  logger,
	}
}

func (h *DirectoryHandler) ListCustomers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	customers, err := h.svc.ListCustomers(ctx)
	if err != nil {
		mylogger.Error(
			ctx,
			h.logger,
			"list customers failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"customers": customers})
}

// Repair takes newly learned contact info for a buyer, saves it, and flips
// every pending order of that buyer to shippable.
func (h *DirectoryHandler) Repair(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(service.RepairInput)
	if err := c.BodyParser(input); err != nil {
		h.logger.Warn(
			"failed to parse body in repair",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	repaired, err := h.svc.RepairStatus(ctx, input)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.FormatValidationError(vErrs),
			})
		}

		mylogger.Error(
			ctx,
			h.logger,
			"repair failed",
			zap.String("name", input.Name),
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	h.metrics.StatusRepairs.Add(float64(repaired))

	return c.JSON(fiber.Map{"orders_repaired": repaired})
}
