package service

import (
	"strings"

	models "github.com/zdziszkee/bank-registry/internal/models"
)

// validateBank checks swiftCode presence, name presence, then swiftCode format,
// reporting only the first failure. On success bank.SwiftCode holds the
// canonical form.
func validateBank(bank *models.Bank) error {
	if strings.TrimSpace(bank.SwiftCode) == "" {
		return &MissingFieldError{Field: "swiftCode"}
	}
	if strings.TrimSpace(bank.Name) == "" {
		return &MissingFieldError{Field: "name"}
	}

	code := models.NormalizeSwiftCode(bank.SwiftCode)
	if !models.IsValidSwiftCode(code) {
		return &InvalidSwiftCodeError{Code: bank.SwiftCode}
	}

	bank.SwiftCode = code
	return nil
}
