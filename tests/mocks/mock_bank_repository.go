package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	models "github.com/zdziszkee/bank-registry/internal/models"
)

// MockBankRepository implements the BankRepository interface for testing
type MockBankRepository struct {
	ExistsBySwiftCodeFunc    func(ctx context.Context, code string) (bool, error)
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*models.Bank, error)
	FindBySwiftCodeFunc      func(ctx context.Context, code string) (*models.Bank, error)
	FindAllFunc              func(ctx context.Context) ([]models.Bank, error)
	FindByCountryFunc        func(ctx context.Context, country string) ([]models.Bank, error)
	FindByCountryCodeFunc    func(ctx context.Context, countryCode string) ([]models.Bank, error)
	FindByNameContainingFunc func(ctx context.Context, name string) ([]models.Bank, error)
	FindActiveFunc           func(ctx context.Context) ([]models.Bank, error)
	SaveFunc                 func(ctx context.Context, bank *models.Bank) (*models.Bank, error)
	DeleteByIDFunc           func(ctx context.Context, id uuid.UUID) error
	CountFunc                func(ctx context.Context) (int64, error)
}

func (m *MockBankRepository) ExistsBySwiftCode(ctx context.Context, code string) (bool, error) {
	return m.ExistsBySwiftCodeFunc(ctx, code)
}

func (m *MockBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bank, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockBankRepository) FindBySwiftCode(ctx context.Context, code string) (*models.Bank, error) {
	return m.FindBySwiftCodeFunc(ctx, code)
}

func (m *MockBankRepository) FindAll(ctx context.Context) ([]models.Bank, error) {
	return m.FindAllFunc(ctx)
}

func (m *MockBankRepository) FindByCountry(ctx context.Context, country string) ([]models.Bank, error) {
	return m.FindByCountryFunc(ctx, country)
}

func (m *MockBankRepository) FindByCountryCode(ctx context.Context, countryCode string) ([]models.Bank, error) {
	return m.FindByCountryCodeFunc(ctx, countryCode)
}

func (m *MockBankRepository) FindByNameContaining(ctx context.Context, name string) ([]models.Bank, error) {
	return m.FindByNameContainingFunc(ctx, name)
}

func (m *MockBankRepository) FindActive(ctx context.Context) ([]models.Bank, error) {
	return m.FindActiveFunc(ctx)
}

func (m *MockBankRepository) Save(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
	return m.SaveFunc(ctx, bank)
}

func (m *MockBankRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return m.DeleteByIDFunc(ctx, id)
}

func (m *MockBankRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, errors.New("Count not implemented")
}
