package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

func womenScope(branch int32) domain.CallerScope {
	return domain.CallerScope{
		UserID:      "staff-1",
		BranchID:    &branch,
		Departments: domain.NewDepartmentSet(domain.DepartmentWomen),
	}
}

func TestLedgerService_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewLedgerService(repo)
		scope := womenScope(1)

		err := svc.Post(ctx, scope, &domain.LedgerEntry{Amount: 0, Kind: domain.EntryKindIncome, Department: domain.DepartmentWomen, BranchID: 1})
		assert.True(t, domain.IsValidation(err))

		err = svc.Post(ctx, scope, &domain.LedgerEntry{Amount: 100, Kind: "BOGUS", Department: domain.DepartmentWomen, BranchID: 1})
		assert.True(t, domain.IsValidation(err))

		err = svc.Post(ctx, scope, &domain.LedgerEntry{Amount: 100, Kind: domain.EntryKindIncome, Department: "BOGUS", BranchID: 1})
		assert.True(t, domain.IsValidation(err))
		repo.AssertNotCalled(t, "Append")
	})

	t.Run("RejectsOutOfScopePostings", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewLedgerService(repo)
		scope := womenScope(1)

		err := svc.Post(ctx, scope, &domain.LedgerEntry{Amount: 100, Kind: domain.EntryKindIncome, Department: domain.DepartmentMen, BranchID: 1})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		err = svc.Post(ctx, scope, &domain.LedgerEntry{Amount: 100, Kind: domain.EntryKindIncome, Department: domain.DepartmentWomen, BranchID: 9})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "Append")
	})

	t.Run("FillsDefaultsAndAppends", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewLedgerService(repo)
		scope := womenScope(1)

		repo.On("Append", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil)

		entry := &domain.LedgerEntry{Amount: 100, Kind: domain.EntryKindIncome, Department: domain.DepartmentWomen, BranchID: 1}
		require.NoError(t, svc.Post(ctx, scope, entry))
		assert.False(t, entry.At.IsZero())
		require.NotNil(t, entry.ActorID)
		assert.Equal(t, "staff-1", *entry.ActorID)
		assert.NotEmpty(t, entry.EntryKey)
		repo.AssertExpectations(t)
	})
}

func TestLedgerService_BranchPinning(t *testing.T) {
	ctx := context.Background()

	t.Run("BranchStaffCannotWidenTheFilter", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewLedgerService(repo)
		scope := womenScope(1)

		repo.On("Balance", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
			return f.BranchID != nil && *f.BranchID == 1
		})).Return(int64(500), nil)

		other := int32(9)
		balance, err := svc.Balance(ctx, scope, domain.EntryFilter{BranchID: &other})
		require.NoError(t, err)
		assert.Equal(t, int64(500), balance)
		repo.AssertExpectations(t)
	})

	t.Run("GeneralManagerFiltersFreely", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewLedgerService(repo)
		gm := domain.CallerScope{UserID: "gm"}

		other := int32(9)
		repo.On("Balance", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
			return f.BranchID != nil && *f.BranchID == 9
		})).Return(int64(70), nil)

		balance, err := svc.Balance(ctx, gm, domain.EntryFilter{BranchID: &other})
		require.NoError(t, err)
		assert.Equal(t, int64(70), balance)
	})
}

func TestLedgerService_Report(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerRepo)
	svc := service.NewLedgerService(repo)
	scope := womenScope(1)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	periodEntries := []domain.LedgerEntry{
		{Amount: 300, Kind: domain.EntryKindIncome},
		{Amount: 80, Kind: domain.EntryKindExpense},
	}

	// balance and insurance held are all-time; entries are period-bounded
	allTime := func(f domain.EntryFilter) bool {
		return f.From.IsZero() && f.To.IsZero() && f.BranchID != nil && *f.BranchID == 1
	}
	bounded := func(f domain.EntryFilter) bool {
		return f.From.Equal(from) && f.To.Equal(to)
	}
	repo.On("Balance", ctx, mock.MatchedBy(allTime)).Return(int64(1200), nil)
	repo.On("InsuranceHeld", ctx, mock.MatchedBy(allTime)).Return(int64(200), nil)
	repo.On("List", ctx, mock.MatchedBy(bounded)).Return(periodEntries, nil)

	report, err := svc.Report(ctx, scope, domain.EntryFilter{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), report.CashBalance)
	assert.Equal(t, int64(200), report.InsuranceHeld)
	assert.Equal(t, int64(300), report.Period.Revenue)
	assert.Equal(t, int64(80), report.Period.Expense)
	assert.Equal(t, int64(220), report.Period.NetFlow)
	assert.Len(t, report.Entries, 2)
	repo.AssertExpectations(t)
}
