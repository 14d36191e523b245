package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-T524/oms/internal/export"
	"github.com/jack-T524/oms/internal/service"
	"github.com/jack-T524/oms/pkg/metrics"
	"github.com/jack-T524/oms/pkg/mylogger"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ManifestHandler struct {
	svc     service.ConsolidationService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewManifestHandler(svc service.ConsolidationService, m *metrics.Metrics, logger *zap.Logger) *ManifestHandler {
	return &ManifestHandler{
		svc:     svc,
		metrics: m,
		logger:  logger,
	}
}

func (h *ManifestHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	manifest, err := h.svc.Consolidate(ctx)
	if err != nil {
		mylogger.Error(
			ctx,
			h.logger,
			"consolidation failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	h.metrics.ManifestsBuilt.Inc()

	return c.JSON(manifest)
}

// Export runs a fresh consolidation pass and streams it as an xlsx download.
func (h *ManifestHandler) Export(c *fiber.Ctx) error {
	ctx := c.UserContext()

	manifest, err := h.svc.Consolidate(ctx)
	if err != nil {
		mylogger.Error(
			ctx,
			h.logger,
			"consolidation failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := export.WriteManifest(manifest)
	if err != nil {
		mylogger.Error(
			ctx,
			h.logger,
			"manifest export failed",
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.metrics.ManifestsBuilt.Inc()
	h.metrics.ExportsServed.Inc()

	filename := export.Filename(time.Now())
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.Send(data)
}
