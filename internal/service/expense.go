package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	ledgerRepo  repository.LedgerRepository
	now         func() time.Time
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, ledgerRepo repository.LedgerRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, ledgerRepo: ledgerRepo, now: time.Now}
}

func (s *expenseService) Record(ctx context.Context, scope domain.CallerScope, in RecordExpenseInput) (*domain.Expense, error) {
	if scope.Unscoped() {
		return nil, domain.ErrUnauthorized
	}
	if in.Amount <= 0 {
		return nil, domain.NewValidationError("amount", "expense amount must be positive")
	}

	// Unspecified department means the main (women's) safe pays.
	department := domain.DepartmentWomen
	if in.Department != nil {
		if !in.Department.Valid() {
			return nil, domain.NewValidationError("department", "unknown department")
		}
		department = *in.Department
	}
	if !scope.AllowsDepartment(department) {
		return nil, domain.ErrUnauthorized
	}

	at := in.At
	if at.IsZero() {
		at = s.now()
	}
	expense := &domain.Expense{
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Department:  department,
		BranchID:    scope.BranchID,
		Description: in.Description,
		At:          at,
		CreatedBy:   scope.UserID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	ref := fmt.Sprintf("%d", expense.ID)
	entry := &domain.LedgerEntry{
		At:          at,
		Amount:      expense.Amount,
		Kind:        domain.EntryKindExpense,
		Department:  department,
		BranchID:    *scope.BranchID,
		Description: fmt.Sprintf("expense: %s", in.Description),
		ReferenceID: &ref,
		ActorID:     scope.ActorID(),
		EntryKey:    fmt.Sprintf("expense:%d", expense.ID),
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil && !errors.Is(err, domain.ErrDuplicateEntry) {
		return nil, fmt.Errorf("posting expense %d to the safe: %w", expense.ID, err)
	}
	return expense, nil
}

func (s *expenseService) CreateCategory(ctx context.Context, scope domain.CallerScope, cat *domain.ExpenseCategory) error {
	if cat.Name == "" {
		return domain.NewValidationError("name", "category name is required")
	}
	if cat.BranchID == nil {
		cat.BranchID = scope.BranchID
	}
	if !scope.AllowsBranch(cat.BranchID) {
		return domain.ErrUnauthorized
	}
	return s.expenseRepo.CreateCategory(ctx, cat)
}

func (s *expenseService) ListCategories(ctx context.Context, scope domain.CallerScope) ([]domain.ExpenseCategory, error) {
	return s.expenseRepo.ListCategories(ctx, scope.BranchID)
}

func (s *expenseService) List(ctx context.Context, scope domain.CallerScope, from, to time.Time) ([]domain.Expense, error) {
	return s.expenseRepo.List(ctx, scope.BranchID, from, to)
}
