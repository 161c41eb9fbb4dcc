package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"atelier-backend/internal/domain"
)

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Append(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockLedgerRepo) List(ctx context.Context, f domain.EntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepo) Balance(ctx context.Context, f domain.EntryFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepo) InsuranceHeld(ctx context.Context, f domain.EntryFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}
