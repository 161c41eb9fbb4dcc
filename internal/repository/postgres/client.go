package postgres

import (
	"context"
	"database/sql"
	"errors"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, phone, address, notes)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Address, c.Notes).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(notes, '')
	          FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	sqlQuery := `SELECT id, name, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(notes, '')
	             FROM clients WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
	             ORDER BY name`
	rows, err := r.db.QueryContext(ctx, sqlQuery, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
