package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	models "github.com/zdziszkee/bank-registry/internal/models"
	service "github.com/zdziszkee/bank-registry/internal/services"
)

// BankHandler handles API requests for banks
type BankHandler struct {
	service   service.BankService
	validator *validator.Validate
	logger    logrus.FieldLogger
}

// NewBankHandler creates a new handler instance
func NewBankHandler(service service.BankService, logger logrus.FieldLogger) *BankHandler {
	return &BankHandler{
		service:   service,
		validator: newValidator(),
		logger:    logger.WithField("component", "bank_handler"),
	}
}

// CreateBank handles POST /banks
func (h *BankHandler) CreateBank(c fiber.Ctx) error {
	req, ok, err := h.bindRequest(c)
	if !ok {
		return err
	}

	bank, err := h.service.CreateBank(c.Context(), req.ToModel())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewBankResponse(bank))
}

// UpdateBank handles PUT /banks/:id
func (h *BankHandler) UpdateBank(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "ILLEGAL_ARGUMENT", "Invalid bank id: "+c.Params("id"), nil)
	}

	req, ok, err := h.bindRequest(c)
	if !ok {
		return err
	}

	bank, err := h.service.UpdateBank(c.Context(), id, req.ToModel())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(NewBankResponse(bank))
}

// GetBankByID handles GET /banks/:id
func (h *BankHandler) GetBankByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "ILLEGAL_ARGUMENT", "Invalid bank id: "+c.Params("id"), nil)
	}

	bank, found, err := h.service.GetBankByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	if !found {
		return writeError(c, fiber.StatusNotFound, "BANK_NOT_FOUND", "Bank not found with id: "+id.String(), nil)
	}

	return c.Status(fiber.StatusOK).JSON(NewBankResponse(bank))
}

// GetBankBySwiftCode handles GET /banks/swift/:swiftCode
func (h *BankHandler) GetBankBySwiftCode(c fiber.Ctx) error {
	code := c.Params("swiftCode")

	bank, found, err := h.service.GetBankBySwiftCode(c.Context(), code)
	if err != nil {
		return h.handleError(c, err)
	}
	if !found {
		return writeError(c, fiber.StatusNotFound, "BANK_NOT_FOUND", "Bank not found with SWIFT code: "+code, nil)
	}

	return c.Status(fiber.StatusOK).JSON(NewBankResponse(bank))
}

// ListBanks handles GET /banks. Only the first non-blank filter applies, in the
// order activeOnly, country, countryCode, name.
func (h *BankHandler) ListBanks(c fiber.Ctx) error {
	activeOnly := false
	if raw := c.Query("activeOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "ILLEGAL_ARGUMENT", "activeOnly must be a boolean, got: "+raw, nil)
		}
		activeOnly = parsed
	}

	ctx := c.Context()
	var (
		banks []models.Bank
		err   error
	)
	switch {
	case activeOnly:
		banks, err = h.service.GetActiveBanks(ctx)
	case !isBlank(c.Query("country")):
		banks, err = h.service.GetBanksByCountry(ctx, c.Query("country"))
	case !isBlank(c.Query("countryCode")):
		banks, err = h.service.GetBanksByCountryCode(ctx, c.Query("countryCode"))
	case !isBlank(c.Query("name")):
		banks, err = h.service.SearchBanksByName(ctx, c.Query("name"))
	default:
		banks, err = h.service.GetAllBanks(ctx)
	}
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(NewBankResponses(banks))
}

// DeleteBank handles DELETE /banks/:id
func (h *BankHandler) DeleteBank(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "ILLEGAL_ARGUMENT", "Invalid bank id: "+c.Params("id"), nil)
	}

	if err := h.service.DeleteBank(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SelfCallGetBankByID handles GET /banks/self-call/:id
func (h *BankHandler) SelfCallGetBankByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "ILLEGAL_ARGUMENT", "Invalid bank id: "+c.Params("id"), nil)
	}

	bank, found := h.service.SelfCallGetBankByID(c.Context(), id)
	if !found {
		return writeError(c, fiber.StatusNotFound, "BANK_NOT_FOUND", "Bank not found with id: "+id.String(), nil)
	}
	return c.Status(fiber.StatusOK).JSON(NewBankResponse(bank))
}

// SelfCallGetBankBySwiftCode handles GET /banks/self-call/swift/:swiftCode
func (h *BankHandler) SelfCallGetBankBySwiftCode(c fiber.Ctx) error {
	code := c.Params("swiftCode")

	bank, found := h.service.SelfCallGetBankBySwiftCode(c.Context(), code)
	if !found {
		return writeError(c, fiber.StatusNotFound, "BANK_NOT_FOUND", "Bank not found with SWIFT code: "+code, nil)
	}
	return c.Status(fiber.StatusOK).JSON(NewBankResponse(bank))
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// bindRequest decodes and validates the body. When ok is false the error
// response has already been written and err is what the handler must return.
func (h *BankHandler) bindRequest(c fiber.Ctx) (req *BankRequest, ok bool, err error) {
	req = new(BankRequest)
	if err := c.Bind().Body(req); err != nil {
		h.logger.WithError(err).Debug("Malformed request body")
		return nil, false, writeError(c, fiber.StatusBadRequest, "ILLEGAL_ARGUMENT", "Malformed JSON request", nil)
	}

	if details := validationMessages(h.validator, req); len(details) > 0 {
		h.logger.WithField("details", details).Debug("Request validation failed")
		return nil, false, writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Validation failed for request", details)
	}
	return req, true, nil
}

// handleError maps service errors onto HTTP responses
func (h *BankHandler) handleError(c fiber.Ctx, err error) error {
	var (
		missing   *service.MissingFieldError
		invalid   *service.InvalidSwiftCodeError
		duplicate *service.DuplicateSwiftCodeError
		notFound  *service.NotFoundError
	)

	switch {
	case errors.As(err, &notFound):
		return writeError(c, fiber.StatusNotFound, "BANK_NOT_FOUND", err.Error(), nil)
	case errors.As(err, &duplicate):
		return writeError(c, fiber.StatusConflict, "DUPLICATE_BANK", err.Error(), nil)
	case errors.As(err, &missing), errors.As(err, &invalid):
		return writeError(c, fiber.StatusBadRequest, "INVALID_BANK_DATA", err.Error(), nil)
	default:
		h.logger.WithError(err).WithField("path", c.Path()).Error("Unexpected error")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
	}
}
