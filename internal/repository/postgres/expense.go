package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) CreateCategory(ctx context.Context, cat *domain.ExpenseCategory) error {
	query := `INSERT INTO expense_categories (name, branch_id) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, cat.Name, cat.BranchID).Scan(&cat.ID)
}

func (r *expenseRepository) ListCategories(ctx context.Context, branchID *int32) ([]domain.ExpenseCategory, error) {
	query := `SELECT id, name, branch_id FROM expense_categories`
	args := []interface{}{}
	if branchID != nil {
		query += ` WHERE branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.ExpenseCategory
	for rows.Next() {
		var c domain.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.BranchID); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (category_id, amount, department, branch_id, description, at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.CategoryID, e.Amount, e.Department, e.BranchID,
		e.Description, e.At, e.CreatedBy).Scan(&e.ID)
}

func (r *expenseRepository) List(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.Expense, error) {
	query := `SELECT id, category_id, amount, department, branch_id, COALESCE(description, ''), at, created_by
	          FROM expenses WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if branchID != nil {
		query += fmt.Sprintf(` AND branch_id = $%d`, argIdx)
		args = append(args, *branchID)
		argIdx++
	}
	if !from.IsZero() {
		query += fmt.Sprintf(` AND at >= $%d`, argIdx)
		args = append(args, from)
		argIdx++
	}
	if !to.IsZero() {
		query += fmt.Sprintf(` AND at <= $%d`, argIdx)
		args = append(args, to)
		argIdx++
	}
	query += ` ORDER BY at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Amount, &e.Department, &e.BranchID,
			&e.Description, &e.At, &e.CreatedBy); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
