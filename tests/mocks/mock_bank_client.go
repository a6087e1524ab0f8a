package mocks

import (
	"context"

	"github.com/google/uuid"

	models "github.com/zdziszkee/bank-registry/internal/models"
)

// MockBankClient implements service.BankClient.
type MockBankClient struct {
	GetBankByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Bank, bool)
	GetBankBySwiftCodeFunc func(ctx context.Context, code string) (*models.Bank, bool)
}

func (m *MockBankClient) GetBankByID(ctx context.Context, id uuid.UUID) (*models.Bank, bool) {
	return m.GetBankByIDFunc(ctx, id)
}

func (m *MockBankClient) GetBankBySwiftCode(ctx context.Context, code string) (*models.Bank, bool) {
	return m.GetBankBySwiftCodeFunc(ctx, code)
}
