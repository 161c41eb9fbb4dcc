package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (at, amount, kind, department, branch_id, description, reference_id, actor_id, entry_key)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.At, e.Amount, e.Kind, e.Department, e.BranchID,
		e.Description, e.ReferenceID, e.ActorID, e.EntryKey).Scan(&e.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEntry
	}
	return err
}

// filterClause renders the shared WHERE clause for an entry filter. The
// returned clause always starts with WHERE.
func filterClause(f domain.EntryFilter, args *[]interface{}) string {
	clause := ` WHERE 1=1`
	idx := len(*args) + 1
	if f.BranchID != nil {
		clause += fmt.Sprintf(` AND branch_id = $%d`, idx)
		*args = append(*args, *f.BranchID)
		idx++
	}
	if f.Department != nil {
		clause += fmt.Sprintf(` AND department = $%d`, idx)
		*args = append(*args, *f.Department)
		idx++
	}
	if f.ActorID != nil {
		clause += fmt.Sprintf(` AND actor_id = $%d`, idx)
		*args = append(*args, *f.ActorID)
		idx++
	}
	if !f.From.IsZero() {
		clause += fmt.Sprintf(` AND at >= $%d`, idx)
		*args = append(*args, f.From)
		idx++
	}
	if !f.To.IsZero() {
		clause += fmt.Sprintf(` AND at <= $%d`, idx)
		*args = append(*args, f.To)
		idx++
	}
	return clause
}

func (r *ledgerRepository) List(ctx context.Context, f domain.EntryFilter) ([]domain.LedgerEntry, error) {
	args := []interface{}{}
	query := `SELECT id, at, amount, kind, department, branch_id, COALESCE(description, ''), reference_id, actor_id, entry_key
	          FROM ledger_entries` + filterClause(f, &args) + ` ORDER BY at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.At, &e.Amount, &e.Kind, &e.Department, &e.BranchID,
			&e.Description, &e.ReferenceID, &e.ActorID, &e.EntryKey); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepository) Balance(ctx context.Context, f domain.EntryFilter) (int64, error) {
	args := []interface{}{}
	query := `SELECT COALESCE(SUM(CASE WHEN kind IN ('INCOME', 'INSURANCE_IN') THEN amount ELSE -amount END), 0)
	          FROM ledger_entries` + filterClause(f, &args)
	var balance int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&balance)
	return balance, err
}

func (r *ledgerRepository) InsuranceHeld(ctx context.Context, f domain.EntryFilter) (int64, error) {
	args := []interface{}{}
	query := `SELECT COALESCE(SUM(CASE WHEN kind = 'INSURANCE_IN' THEN amount ELSE -amount END), 0)
	          FROM ledger_entries` + filterClause(f, &args) + ` AND kind IN ('INSURANCE_IN', 'INSURANCE_OUT')`
	var held int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&held)
	return held, err
}
