package postgres

import (
	"context"
	"database/sql"
	"errors"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type branchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) repository.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, b *domain.Branch) error {
	query := `INSERT INTO branches (name, commercial_name, address, phone, is_main)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.Name, b.CommercialName, b.Address, b.Phone, b.IsMain).Scan(&b.ID)
}

func (r *branchRepository) GetByID(ctx context.Context, id int32) (*domain.Branch, error) {
	b := &domain.Branch{}
	query := `SELECT id, name, COALESCE(commercial_name, ''), COALESCE(address, ''), COALESCE(phone, ''), is_main
	          FROM branches WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.CommercialName, &b.Address, &b.Phone, &b.IsMain)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *branchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT id, name, COALESCE(commercial_name, ''), COALESCE(address, ''), COALESCE(phone, ''), is_main
	          FROM branches ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.CommercialName, &b.Address, &b.Phone, &b.IsMain); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
