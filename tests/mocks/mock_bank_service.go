package mocks

import (
	"context"

	"github.com/google/uuid"

	models "github.com/zdziszkee/bank-registry/internal/models"
)

// MockBankService implements service.BankService.
type MockBankService struct {
	CreateBankFunc                 func(ctx context.Context, bank *models.Bank) (*models.Bank, error)
	UpdateBankFunc                 func(ctx context.Context, id uuid.UUID, bank *models.Bank) (*models.Bank, error)
	GetBankByIDFunc                func(ctx context.Context, id uuid.UUID) (*models.Bank, bool, error)
	GetBankBySwiftCodeFunc         func(ctx context.Context, code string) (*models.Bank, bool, error)
	GetAllBanksFunc                func(ctx context.Context) ([]models.Bank, error)
	GetBanksByCountryFunc          func(ctx context.Context, country string) ([]models.Bank, error)
	GetBanksByCountryCodeFunc      func(ctx context.Context, countryCode string) ([]models.Bank, error)
	SearchBanksByNameFunc          func(ctx context.Context, name string) ([]models.Bank, error)
	GetActiveBanksFunc             func(ctx context.Context) ([]models.Bank, error)
	DeleteBankFunc                 func(ctx context.Context, id uuid.UUID) error
	SelfCallGetBankByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Bank, bool)
	SelfCallGetBankBySwiftCodeFunc func(ctx context.Context, code string) (*models.Bank, bool)
}

func (m *MockBankService) CreateBank(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
	return m.CreateBankFunc(ctx, bank)
}

func (m *MockBankService) UpdateBank(ctx context.Context, id uuid.UUID, bank *models.Bank) (*models.Bank, error) {
	return m.UpdateBankFunc(ctx, id, bank)
}

func (m *MockBankService) GetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool, error) {
	return m.GetBankByIDFunc(ctx, id)
}

func (m *MockBankService) GetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool, error) {
	return m.GetBankBySwiftCodeFunc(ctx, code)
}

func (m *MockBankService) GetAllBanks(ctx context.Context) ([]models.Bank, error) {
	return m.GetAllBanksFunc(ctx)
}

func (m *MockBankService) GetBanksByCountry(ctx context.Context, country string) ([]models.Bank, error) {
	return m.GetBanksByCountryFunc(ctx, country)
}

func (m *MockBankService) GetBanksByCountryCode(ctx context.Context, countryCode string) ([]models.Bank, error) {
	return m.GetBanksByCountryCodeFunc(ctx, countryCode)
}

func (m *MockBankService) SearchBanksByName(ctx context.Context, name string) ([]models.Bank, error) {
	return m.SearchBanksByNameFunc(ctx, name)
}

func (m *MockBankService) GetActiveBanks(ctx context.Context) ([]models.Bank, error) {
	return m.GetActiveBanksFunc(ctx)
}

func (m *MockBankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	return m.DeleteBankFunc(ctx, id)
}

func (m *MockBankService) SelfCallGetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool) {
	return m.SelfCallGetBankByIDFunc(ctx, id)
}

func (m *MockBankService) SelfCallGetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool) {
	return m.SelfCallGetBankBySwiftCodeFunc(ctx, code)
}
