package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders errors that escape the handlers (unknown routes,
// recovered panics) in the same body shape as handler errors.
func ErrorHandler(logger logrus.FieldLogger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return writeError(c, fe.Code, "NOT_FOUND", fe.Message, nil)
			case fiber.StatusMethodNotAllowed:
				return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", fe.Message, nil)
			}
		}

		logger.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
	}
}

func writeError(c fiber.Ctx, status int, code, message string, details []string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:     code,
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Path:      c.Path(),
		Details:   details,
	})
}
