package handlers

import (
	"strings"
	"time"

	"github.com/google/uuid"

	models "github.com/zdziszkee/bank-registry/internal/models"
)

// BankRequest is the payload accepted by create and update.
// The SWIFT code format is left to the service, which normalises it.
type BankRequest struct {
	SwiftCode   string  `json:"swiftCode" validate:"required"`
	Name        string  `json:"name" validate:"required,max=255"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	CountryCode *string `json:"countryCode" validate:"omitempty,countrycode"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,phonenumber"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	Website     *string `json:"website" validate:"omitempty,max=255"`
	BankType    *string `json:"bankType" validate:"omitempty,oneof=COMMERCIAL INVESTMENT CENTRAL COOPERATIVE SAVINGS CREDIT_UNION ONLINE PRIVATE DEVELOPMENT EXPORT_IMPORT"`
	Active      *bool   `json:"active"`
}

// ToModel converts the request into a bank candidate. Empty optional strings
// are treated as absent.
func (r *BankRequest) ToModel() *models.Bank {
	bank := &models.Bank{
		SwiftCode:   r.SwiftCode,
		Name:        r.Name,
		Address:     optional(r.Address),
		City:        optional(r.City),
		Country:     optional(r.Country),
		CountryCode: optional(r.CountryCode),
		PhoneNumber: optional(r.PhoneNumber),
		Email:       optional(r.Email),
		Website:     optional(r.Website),
		Active:      r.Active,
	}
	if r.BankType != nil && *r.BankType != "" {
		t := models.BankType(*r.BankType)
		bank.BankType = &t
	}
	return bank
}

func optional(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}

// BankResponse is the JSON representation of a bank
type BankResponse struct {
	ID                  uuid.UUID        `json:"id"`
	SwiftCode           string           `json:"swiftCode"`
	Name                string           `json:"name"`
	Address             *string          `json:"address,omitempty"`
	City                *string          `json:"city,omitempty"`
	Country             *string          `json:"country,omitempty"`
	CountryCode         *string          `json:"countryCode,omitempty"`
	PhoneNumber         *string          `json:"phoneNumber,omitempty"`
	Email               *string          `json:"email,omitempty"`
	Website             *string          `json:"website,omitempty"`
	BankType            *models.BankType `json:"bankType,omitempty"`
	BankTypeDisplayName string           `json:"bankTypeDisplayName,omitempty"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// NewBankResponse maps a bank onto its response form
func NewBankResponse(bank *models.Bank) BankResponse {
	resp := BankResponse{
		ID:          bank.ID,
		SwiftCode:   bank.SwiftCode,
		Name:        bank.Name,
		Address:     bank.Address,
		City:        bank.City,
		Country:     bank.Country,
		CountryCode: bank.CountryCode,
		PhoneNumber: bank.PhoneNumber,
		Email:       bank.Email,
		Website:     bank.Website,
		BankType:    bank.BankType,
		Active:      bank.IsOperational(),
		CreatedAt:   bank.CreatedAt,
		UpdatedAt:   bank.UpdatedAt,
	}
	if bank.BankType != nil {
		resp.BankTypeDisplayName = bank.BankType.DisplayName()
	}
	return resp
}

// NewBankResponses maps a list of banks, never returning nil
func NewBankResponses(banks []models.Bank) []BankResponse {
	out := make([]BankResponse, 0, len(banks))
	for i := range banks {
		out = append(out, NewBankResponse(&banks[i]))
	}
	return out
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Details   []string  `json:"details,omitempty"`
}
