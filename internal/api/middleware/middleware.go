package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/zdziszkee/bank-registry/internal/metrics"
)

// RequestLogger logs every request with its status and latency
func RequestLogger(logger logrus.FieldLogger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Call the next handler
		err := c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"ip":      c.IP(),
			"latency": time.Since(start),
		})
		if err != nil {
			entry.WithError(err).Error("Request failed")
			return err
		}
		entry.Info("Request handled")
		return nil
	}
}

// Metrics records request counts and durations labelled by route pattern
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.ObserveRequest(c.Method(), c.Route().Path, strconv.Itoa(status), start)
		return err
	}
}
