package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

func TestExpenseRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scope := f.staffScope(domain.DepartmentWomen)

	t.Run("GeneralManagerHasNoSafe", func(t *testing.T) {
		_, err := f.expenses.Record(ctx, f.managerScope(), service.RecordExpenseInput{Amount: 100, Description: "laundry"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		_, err := f.expenses.Record(ctx, scope, service.RecordExpenseInput{Amount: 0, Description: "laundry"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("DepartmentOutsideScopeDenied", func(t *testing.T) {
		beauty := domain.DepartmentBeautySalon
		_, err := f.expenses.Record(ctx, scope, service.RecordExpenseInput{
			Amount: 100, Department: &beauty, Description: "supplies",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("PostsExpenseEntry", func(t *testing.T) {
		expense, err := f.expenses.Record(ctx, scope, service.RecordExpenseInput{
			Amount: 100, Description: "dress laundry",
		})
		require.NoError(t, err)
		// unspecified department goes to the women's safe
		assert.Equal(t, domain.DepartmentWomen, expense.Department)
		assert.Equal(t, "staff-1", expense.CreatedBy)

		entries := f.ledgerEntries(t)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.EntryKindExpense, entries[0].Kind)
		assert.Equal(t, int64(100), entries[0].Amount)
		assert.Equal(t, fmt.Sprintf("expense:%d", expense.ID), entries[0].EntryKey)

		balance, err := f.ledger.Balance(ctx, scope, domain.EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(-100), balance)
	})
}

func TestExpenseCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scope := f.staffScope(domain.DepartmentWomen)

	t.Run("NameRequired", func(t *testing.T) {
		err := f.expenses.CreateCategory(ctx, scope, &domain.ExpenseCategory{})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("CreateAndList", func(t *testing.T) {
		cat := &domain.ExpenseCategory{Name: "Laundry"}
		require.NoError(t, f.expenses.CreateCategory(ctx, scope, cat))
		require.NotNil(t, cat.BranchID)

		cats, err := f.expenses.ListCategories(ctx, scope)
		require.NoError(t, err)
		assert.Len(t, cats, 1)
	})
}
