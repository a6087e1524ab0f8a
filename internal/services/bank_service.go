package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zdziszkee/bank-registry/internal/metrics"
	models "github.com/zdziszkee/bank-registry/internal/models"
	repository "github.com/zdziszkee/bank-registry/internal/repositories"
)

// BankService handles business logic for the bank registry
type BankService interface {
	CreateBank(ctx context.Context, bank *models.Bank) (*models.Bank, error)
	UpdateBank(ctx context.Context, id uuid.UUID, bank *models.Bank) (*models.Bank, error)
	GetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool, error)
	GetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool, error)
	GetAllBanks(ctx context.Context) ([]models.Bank, error)
	GetBanksByCountry(ctx context.Context, country string) ([]models.Bank, error)
	GetBanksByCountryCode(ctx context.Context, countryCode string) ([]models.Bank, error)
	SearchBanksByName(ctx context.Context, name string) ([]models.Bank, error)
	GetActiveBanks(ctx context.Context) ([]models.Bank, error)
	DeleteBank(ctx context.Context, id uuid.UUID) error
	SelfCallGetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool)
	SelfCallGetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool)
}

// BankClient looks banks up through the service's own HTTP API.
// Implementations report any failure as an absent result.
type BankClient interface {
	GetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool)
	GetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool)
}

// Option configures a bankService
type Option func(*bankService)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *bankService) {
		s.now = now
	}
}

// WithClient enables the self-call lookups.
func WithClient(client BankClient) Option {
	return func(s *bankService) {
		s.client = client
	}
}

// WithMetrics counts creations and deletions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *bankService) {
		s.metrics = m
	}
}

// bankService implements BankService
type bankService struct {
	repo    repository.BankRepository
	client  BankClient
	metrics *metrics.Metrics
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewBankService creates a new instance of the bank service
func NewBankService(repo repository.BankRepository, logger logrus.FieldLogger, opts ...Option) BankService {
	s := &bankService{
		repo:   repo,
		logger: logger.WithField("component", "bank_service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBank validates, checks uniqueness and persists a new bank
func (s *bankService) CreateBank(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
	s.logger.WithField("swift_code", bank.SwiftCode).Info("Creating bank")

	if err := validateBank(bank); err != nil {
		s.logger.WithError(err).Warn("Bank validation failed")
		return nil, err
	}

	exists, err := s.repo.ExistsBySwiftCode(ctx, bank.SwiftCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check swift code %s: %w", bank.SwiftCode, err)
	}
	if exists {
		s.logger.WithField("swift_code", bank.SwiftCode).Warn("Bank with SWIFT code already exists")
		return nil, &DuplicateSwiftCodeError{Code: bank.SwiftCode}
	}

	now := s.timestamp()
	bank.CreatedAt = now
	bank.UpdatedAt = now
	if bank.Active == nil {
		bank.Active = models.BoolPtr(true)
	}

	saved, err := s.repo.Save(ctx, bank)
	if err != nil {
		return nil, s.translateSaveError(bank.SwiftCode, err)
	}

	s.metrics.IncrementBanksCreated()
	s.logger.WithFields(logrus.Fields{
		"id":         saved.ID,
		"swift_code": saved.SwiftCode,
	}).Info("Bank created")
	return saved, nil
}

// UpdateBank replaces the bank stored under id, keeping its creation time
func (s *bankService) UpdateBank(ctx context.Context, id uuid.UUID, bank *models.Bank) (*models.Bank, error) {
	s.logger.WithField("id", id).Info("Updating bank")

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to load bank %s: %w", id, err)
	}

	if err := validateBank(bank); err != nil {
		s.logger.WithError(err).Warn("Bank validation failed")
		return nil, err
	}

	// The SWIFT code may change as long as no other bank holds the new one.
	if bank.SwiftCode != existing.SwiftCode {
		exists, err := s.repo.ExistsBySwiftCode(ctx, bank.SwiftCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check swift code %s: %w", bank.SwiftCode, err)
		}
		if exists {
			s.logger.WithField("swift_code", bank.SwiftCode).Warn("Bank with SWIFT code already exists")
			return nil, &DuplicateSwiftCodeError{Code: bank.SwiftCode}
		}
	}

	bank.ID = id
	bank.CreatedAt = existing.CreatedAt
	bank.UpdatedAt = s.timestamp()
	if bank.UpdatedAt.Before(bank.CreatedAt) {
		bank.UpdatedAt = bank.CreatedAt
	}
	if bank.Active == nil {
		bank.Active = existing.Active
	}

	saved, err := s.repo.Save(ctx, bank)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, s.translateSaveError(bank.SwiftCode, err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":         saved.ID,
		"swift_code": saved.SwiftCode,
	}).Info("Bank updated")
	return saved, nil
}

// GetBankByID reports found=false when no bank has the id
func (s *bankService) GetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool, error) {
	s.logger.WithField("id", id).Debug("Fetching bank by id")
	return s.lookup(s.repo.FindByID(ctx, id))
}

// GetBankBySwiftCode matches the code as given, without normalising it
func (s *bankService) GetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool, error) {
	s.logger.WithField("swift_code", code).Debug("Fetching bank by SWIFT code")
	return s.lookup(s.repo.FindBySwiftCode(ctx, code))
}

func (s *bankService) GetAllBanks(ctx context.Context) ([]models.Bank, error) {
	s.logger.Debug("Fetching all banks")
	return list(s.repo.FindAll(ctx))
}

func (s *bankService) GetBanksByCountry(ctx context.Context, country string) ([]models.Bank, error) {
	s.logger.WithField("country", country).Debug("Fetching banks by country")
	return list(s.repo.FindByCountry(ctx, country))
}

func (s *bankService) GetBanksByCountryCode(ctx context.Context, countryCode string) ([]models.Bank, error) {
	s.logger.WithField("country_code", countryCode).Debug("Fetching banks by country code")
	return list(s.repo.FindByCountryCode(ctx, countryCode))
}

// SearchBanksByName matches a case-insensitive substring of the name
func (s *bankService) SearchBanksByName(ctx context.Context, name string) ([]models.Bank, error) {
	s.logger.WithField("name", name).Debug("Searching banks by name")
	return list(s.repo.FindByNameContaining(ctx, name))
}

func (s *bankService) GetActiveBanks(ctx context.Context) ([]models.Bank, error) {
	s.logger.Debug("Fetching active banks")
	return list(s.repo.FindActive(ctx))
}

// DeleteBank removes the bank permanently
func (s *bankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	s.logger.WithField("id", id).Info("Deleting bank")

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return fmt.Errorf("failed to load bank %s: %w", id, err)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return fmt.Errorf("failed to delete bank %s: %w", id, err)
	}

	s.metrics.IncrementBanksDeleted()
	s.logger.WithField("id", id).Info("Bank deleted")
	return nil
}

// SelfCallGetBankByID fetches the bank through the HTTP API
func (s *bankService) SelfCallGetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool) {
	if s.client == nil {
		return nil, false
	}
	s.logger.WithField("id", id).Debug("Self-call lookup by id")
	return s.client.GetBankByID(ctx, id)
}

// SelfCallGetBankBySwiftCode fetches the bank through the HTTP API
func (s *bankService) SelfCallGetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool) {
	if s.client == nil {
		return nil, false
	}
	s.logger.WithField("swift_code", code).Debug("Self-call lookup by SWIFT code")
	return s.client.GetBankBySwiftCode(ctx, code)
}

// timestamp reads the clock at the precision storage keeps, so responses carry
// the values a later read returns.
func (s *bankService) timestamp() time.Time {
	return s.now().Truncate(time.Microsecond)
}

// translateSaveError maps a storage uniqueness violation onto the duplicate error
func (s *bankService) translateSaveError(code string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		s.logger.WithField("swift_code", code).Warn("Storage rejected duplicate SWIFT code")
		return &DuplicateSwiftCodeError{Code: code}
	}
	return fmt.Errorf("failed to save bank %s: %w", code, err)
}

func (s *bankService) lookup(bank *models.Bank, err error) (*models.Bank, bool, error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return bank, true, nil
}

func list(banks []models.Bank, err error) ([]models.Bank, error) {
	if err != nil {
		return nil, err
	}
	if banks == nil {
		banks = []models.Bank{}
	}
	return banks, nil
}
