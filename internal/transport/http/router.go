package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jack-T524/oms/internal/transport/http/handler"
	"github.com/jack-T524/oms/internal/transport/http/middleware"
)

type Handlers struct {
	Intake    *handler.IntakeHandler
	Directory *handler.DirectoryHandler
	Manifest  *handler.ManifestHandler
}

func RegisterRoutes(app *fiber.App, h *Handlers, authToken string) {
	app.Use(middleware.NewRequestIDMiddleware())

	api := app.Group("/api", middleware.NewAuthMiddleware(authToken))

	api.Post("/drafts/parse", h.Intake.ParseDraft)

	orders := api.Group("/orders")
	orders.Post("", h.Intake.CreateOrder)
	orders.Get("", h.Intake.ListOrders)

	customers := api.Group("/customers")
	customers.Get("", h.Directory.ListCustomers)
	customers.Post("/repair", h.Directory.Repair)

	manifest := api.Group("/manifest")
	manifest.Get("", h.Manifest.Get)
	manifest.Get("/export", h.Manifest.Export)
}
