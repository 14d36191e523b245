package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jack-T524/oms/internal/repository"
	"github.com/jack-T524/oms/internal/rowstore"
	"github.com/jack-T524/oms/internal/service"
	transport "github.com/jack-T524/oms/internal/transport/http"
	"github.com/jack-T524/oms/internal/transport/http/handler"
	"github.com/jack-T524/oms/pkg/config"
	"github.com/jack-T524/oms/pkg/db"
	"github.com/jack-T524/oms/pkg/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using system envs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger, err := config.NewLogger(config.LoggerConfig{
		Level: cfg.Log.Level,
		Env:   cfg.Env,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	var store rowstore.Store
	switch cfg.Store.Backend {
	case "memory":
		store = rowstore.NewMemoryStore()
	case "sheets":
		store, err = rowstore.NewSheetsStore(ctx, cfg.Store.Sheets.CredentialsFile, cfg.Store.Sheets.SpreadsheetID, logger)
		if err != nil {
			log.Fatalf("failed to open sheets store: %v", err)
		}
	case "postgres":
		if err := db.RunMigrations(cfg.Store.Postgres.MigrationsPath, cfg.Store.Postgres.URL); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}

		pool, err := db.NewPostgresDB(cfg.Store.Postgres.URL)
		if err != nil {
			log.Fatalf("failed to create pool: %v", err)
		}
		defer pool.Close()

		store = rowstore.NewPostgresStore(pool, logger)
	default:
		log.Fatalf("unknown store backend: %q", cfg.Store.Backend)
	}

	orderRepo := repository.NewOrderRepository(store, logger)
	customerRepo := repository.NewCustomerRepository(store, logger)

	intakeService := service.NewIntakeService(orderRepo, customerRepo, logger)
	consolidationService := service.NewConsolidationService(orderRepo, customerRepo, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	metricsServer := &http.Server{Addr: cfg.Metrics.Port}
	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		log.Println("Metrics listening on " + cfg.Metrics.Port)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	app := fiber.New()

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.Limiter.Max,
		Expiration: cfg.Limiter.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Try again later.",
			})
		},
	}))

	handlers := &transport.Handlers{
		Intake:    handler.NewIntakeHandler(intakeService, m, logger),
		Directory: handler.NewDirectoryHandler(intakeService, m, logger),
		Manifest:  handler.NewManifestHandler(consolidationService, m, logger),
	}

	transport.RegisterRoutes(app, handlers, cfg.Auth.Token)

	logger.Info("Order intake service started!")

	go func() {
		log.Println("HTTP Service listening on: " + cfg.HTTP.Port)
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Error listening on HTTP port %v: %v\n", cfg.HTTP.Port, err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP app: %v\n", err)
	} else {
		log.Println("HTTP App stopped gracefully")
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down metrics server: %v\n", err)
	}
}
