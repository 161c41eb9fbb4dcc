package postgres

import (
	"context"
	"database/sql"
	"errors"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type salonServiceRepository struct {
	db *sql.DB
}

func NewSalonServiceRepository(db *sql.DB) repository.SalonServiceRepository {
	return &salonServiceRepository{db: db}
}

func (r *salonServiceRepository) Create(ctx context.Context, svc *domain.SalonService) error {
	query := `INSERT INTO salon_services (name, price, branch_id) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, svc.Name, svc.Price, svc.BranchID).Scan(&svc.ID)
}

func (r *salonServiceRepository) GetByID(ctx context.Context, id int32) (*domain.SalonService, error) {
	svc := &domain.SalonService{}
	query := `SELECT id, name, price, branch_id FROM salon_services WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&svc.ID, &svc.Name, &svc.Price, &svc.BranchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *salonServiceRepository) List(ctx context.Context, branchID *int32) ([]domain.SalonService, error) {
	query := `SELECT id, name, price, branch_id FROM salon_services`
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

	var services []domain.SalonService
	for rows.Next() {
		var svc domain.SalonService
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.BranchID); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}
