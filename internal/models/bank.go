package models

import (
	"time"

	"github.com/google/uuid"
)

// Bank represents a banking institution in the banks table.
// Optional descriptive fields are pointers: nil means the value was never set.
type Bank struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SwiftCode   string    `json:"swiftCode" db:"swift_code"`
	Name        string    `json:"name" db:"name"`
	Address     *string   `json:"address,omitempty" db:"address"`
	City        *string   `json:"city,omitempty" db:"city"`
	Country     *string   `json:"country,omitempty" db:"country"`
	CountryCode *string   `json:"countryCode,omitempty" db:"country_code"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Website     *string   `json:"website,omitempty" db:"website"`
	BankType    *BankType `json:"bankType,omitempty" db:"bank_type"`
	Active      *bool     `json:"active,omitempty" db:"active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOperational reports whether the bank is explicitly marked active.
func (b *Bank) IsOperational() bool {
	return b.Active != nil && *b.Active
}

// IsValidSwiftCode reports whether the bank's SWIFT code is well formed.
func (b *Bank) IsValidSwiftCode() bool {
	return IsValidSwiftCode(b.SwiftCode)
}

// StringPtr returns nil for an empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
