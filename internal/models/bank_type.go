package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BankType is the closed set of institution categories.
type BankType string

const (
	Commercial   BankType = "COMMERCIAL"
	Investment   BankType = "INVESTMENT"
	Central      BankType = "CENTRAL"
	Cooperative  BankType = "COOPERATIVE"
	Savings      BankType = "SAVINGS"
	CreditUnion  BankType = "CREDIT_UNION"
	Online       BankType = "ONLINE"
	Private      BankType = "PRIVATE"
	Development  BankType = "DEVELOPMENT"
	ExportImport BankType = "EXPORT_IMPORT"
)

var bankTypeDisplayNames = map[BankType]string{
	Commercial:   "Commercial Bank",
	Investment:   "Investment Bank",
	Central:      "Central Bank",
	Cooperative:  "Cooperative Bank",
	Savings:      "Savings Bank",
	CreditUnion:  "Credit Union",
	Online:       "Online Bank",
	Private:      "Private Bank",
	Development:  "Development Bank",
	ExportImport: "Export-Import Bank",
}

// BankTypes lists every bank type in declaration order.
func BankTypes() []BankType {
	return []BankType{
		Commercial, Investment, Central, Cooperative, Savings,
		CreditUnion, Online, Private, Development, ExportImport,
	}
}

// DisplayName returns the human readable name, or "" for an unknown tag.
func (t BankType) DisplayName() string {
	return bankTypeDisplayNames[t]
}

// IsValid reports whether t belongs to the closed set.
func (t BankType) IsValid() bool {
	_, ok := bankTypeDisplayNames[t]
	return ok
}

// ParseBankType resolves a tag case-insensitively.
func ParseBankType(s string) (BankType, error) {
	t := BankType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown bank type %q", s)
	}
	return t, nil
}

func (t *BankType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseBankType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
