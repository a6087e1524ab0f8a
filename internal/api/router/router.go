package router

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	handler "github.com/zdziszkee/bank-registry/internal/api/handlers"
	"github.com/zdziszkee/bank-registry/internal/api/middleware"
	"github.com/zdziszkee/bank-registry/internal/metrics"
)

// Options carries the app-level settings and observability hooks
type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Logger       logrus.FieldLogger
}

// SetupRoutes configures all API routes
func SetupRoutes(bankHandler *handler.BankHandler, healthHandler *handler.HealthHandler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: handler.ErrorHandler(opts.Logger),
	})

	// Add global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(opts.Logger))
	app.Use(middleware.Metrics(opts.Metrics))

	app.Get("/health", healthHandler.Health)
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// API versioning
	v1 := app.Group("/api/v1")

	banks := v1.Group("/banks")
	banks.Post("/", bankHandler.CreateBank)
	banks.Get("/", bankHandler.ListBanks)
	banks.Get("/swift/:swiftCode", bankHandler.GetBankBySwiftCode)
	banks.Get("/self-call/swift/:swiftCode", bankHandler.SelfCallGetBankBySwiftCode)
	banks.Get("/self-call/:id", bankHandler.SelfCallGetBankByID)
	banks.Get("/:id", bankHandler.GetBankByID)
	banks.Put("/:id", bankHandler.UpdateBank)
	banks.Delete("/:id", bankHandler.DeleteBank)

	return app
}
