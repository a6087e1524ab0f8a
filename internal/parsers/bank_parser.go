package parser

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	models "github.com/zdziszkee/bank-registry/internal/models"
	readers "github.com/zdziszkee/bank-registry/internal/readers"
)

type BanksParser interface {
	ParseBanks(records []readers.BankRecord) ([]models.Bank, error)
}

// DefaultBanksParser turns raw seed records into banks, skipping rows that
// could never be stored.
type DefaultBanksParser struct {
	Logger logrus.FieldLogger
}

var countryCodeRegex = regexp.MustCompile(`^[A-Z]{2}$`) // ISO2 country code regex

func NewBanksParser(logger logrus.FieldLogger) *DefaultBanksParser {
	return &DefaultBanksParser{Logger: logger.WithField("component", "bank_parser")}
}

func (p DefaultBanksParser) ParseBanks(records []readers.BankRecord) ([]models.Bank, error) {
	banks := []models.Bank{}
	logger := p.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	for _, record := range records {
		rowLogger := logger.WithFields(logrus.Fields{"row": record.Index, "swift_code": record.SwiftCode})

		if record.SwiftCode == "" {
			rowLogger.Warn("Skipping seed row: SWIFT code cannot be empty")
			continue
		}
		swiftCode := models.NormalizeSwiftCode(record.SwiftCode)
		if !models.IsValidSwiftCode(swiftCode) {
			rowLogger.Warn("Skipping seed row: SWIFT code does not match the 8 or 11 character format")
			continue
		}

		if record.Name == "" {
			rowLogger.Warn("Skipping seed row: name cannot be empty")
			continue
		}
		if utf8.RuneCountInString(record.Name) > 255 {
			rowLogger.Warn("Skipping seed row: name exceeds maximum length")
			continue
		}

		if record.CountryCode != "" && !countryCodeRegex.MatchString(record.CountryCode) {
			rowLogger.WithField("country_code", record.CountryCode).Warn("Skipping seed row: country code does not match ISO2 format")
			continue
		}

		var bankType *models.BankType
		if record.BankType != "" {
			parsed, err := models.ParseBankType(record.BankType)
			if err != nil {
				rowLogger.WithError(err).Warn("Skipping seed row: unknown bank type")
				continue
			}
			bankType = &parsed
		}

		// An empty ACTIVE column leaves the default to the service.
		var active *bool
		if record.Active != "" {
			parsed, err := strconv.ParseBool(record.Active)
			if err != nil {
				rowLogger.WithField("active", record.Active).Warn("Skipping seed row: active must be true or false")
				continue
			}
			active = models.BoolPtr(parsed)
		}

		banks = append(banks, models.Bank{
			SwiftCode:   swiftCode,
			Name:        record.Name,
			Address:     models.StringPtr(record.Address),
			City:        models.StringPtr(record.City),
			Country:     models.StringPtr(record.Country),
			CountryCode: models.StringPtr(record.CountryCode),
			PhoneNumber: models.StringPtr(record.PhoneNumber),
			Email:       models.StringPtr(record.Email),
			Website:     models.StringPtr(record.Website),
			BankType:    bankType,
			Active:      active,
		})
	}

	return banks, nil
}
