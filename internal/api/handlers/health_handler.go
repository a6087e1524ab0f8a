package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// HealthChecker is implemented by dependencies that can report their health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports whether the service's dependencies are reachable
type HealthHandler struct {
	checks map[string]HealthChecker
	logger logrus.FieldLogger
}

// NewHealthHandler creates a handler over the named checks
func NewHealthHandler(checks map[string]HealthChecker, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger.WithField("component", "health")}
}

// Health handles GET /health
func (h *HealthHandler) Health(c fiber.Ctx) error {
	components := make(fiber.Map, len(h.checks))
	status := "UP"

	for name, check := range h.checks {
		if err := check.Health(c.Context()); err != nil {
			h.logger.WithError(err).WithField("check", name).Warn("Health check failed")
			components[name] = "DOWN"
			status = "DOWN"
			continue
		}
		components[name] = "UP"
	}

	code := fiber.StatusOK
	if status != "UP" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"components": components,
	})
}
