package reader

import (
	"io"
)

// BankRecord is one raw row of a bank seed file, trimmed but not validated.
type BankRecord struct {
	Index       int
	SwiftCode   string // SWIFT CODE
	Name        string // NAME
	Address     string // ADDRESS
	City        string // CITY
	Country     string // COUNTRY
	CountryCode string // COUNTRY CODE
	PhoneNumber string // PHONE NUMBER
	Email       string // EMAIL
	Website     string // WEBSITE
	BankType    string // BANK TYPE
	Active      string // ACTIVE
}

// BanksReader loads raw bank records from a seed source
type BanksReader interface {
	LoadBanks(reader io.Reader) ([]BankRecord, error)
}
