package postgres

import (
	"context"
	"database/sql"
	"errors"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, branch_id, can_access_men, can_access_women, can_access_beauty, is_active`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, full_name, email, password_hash, branch_id, can_access_men, can_access_women, can_access_beauty, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.FullName, u.Email, u.PasswordHash,
		u.BranchID, u.CanAccessMen, u.CanAccessWomen, u.CanAccessBeauty, u.IsActive)
	if isUniqueViolation(err) {
		return &domain.IntegrityError{Op: "create user", Err: err}
	}
	return err
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.BranchID,
		&u.CanAccessMen, &u.CanAccessWomen, &u.CanAccessBeauty, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET full_name=$1, email=$2, password_hash=$3, branch_id=$4,
	          can_access_men=$5, can_access_women=$6, can_access_beauty=$7, is_active=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, u.FullName, u.Email, u.PasswordHash, u.BranchID,
		u.CanAccessMen, u.CanAccessWomen, u.CanAccessBeauty, u.IsActive, u.ID)
	return err
}
