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

type IntakeHandler struct {
	svc     service.IntakeService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

type ParseInput struct {
	Text string `json:"text"`
}

func NewIntakeHandler(svc service.IntakeService, m *metrics.Metrics, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		svc:     svc,
		metrics: m,
		logger:  logger,
	}
}

// ParseDraft previews how a pasted line splits into draft fields so the UI
// can prefill its form before saving.
func (h *IntakeHandler) ParseDraft(c *fiber.Ctx) error {
	input := new(ParseInput)

	if err := c.BodyParser(input); err != nil {
		h.logger.Warn(
			"failed to parse body in draft parse",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	return c.JSON(h.svc.ParseDraft(input.Text))
}

func (h *IntakeHandler) CreateOrder(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(service.OrderInput)
	if err := c.BodyParser(input); err != nil {
		h.logger.Warn(
			"failed to parse body in create order",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "error parsing body",
		})
	}

	res, err := h.svc.RecordOrder(ctx, input)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			h.metrics.OrdersRejected.Inc()

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.FormatValidationError(vErrs),
			})
		}

		mylogger.Error(
			ctx,
			h.logger,
			"record order failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	h.metrics.OrdersRecorded.Inc()

	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *IntakeHandler) ListOrders(c *fiber.Ctx) error {
	ctx := c.UserContext()

	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		mylogger.Error(
			ctx,
			h.logger,
			"list orders failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"orders": orders})
}
