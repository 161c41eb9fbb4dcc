package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type appointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *domain.SalonAppointment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO salon_appointments (client_id, branch_id, at, total_amount, paid_amount, status, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowContext(ctx, query, a.ClientID, a.BranchID, a.At, a.TotalAmount, a.PaidAmount, a.Status, a.Notes).Scan(&a.ID)
	if err != nil {
		return err
	}

	for i := range a.Items {
		item := &a.Items[i]
		item.AppointmentID = a.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO salon_appointment_items (appointment_id, service_id, price, quantity) VALUES ($1, $2, $3, $4) RETURNING id`,
			item.AppointmentID, item.ServiceID, item.Price, item.Quantity).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int32) (*domain.SalonAppointment, error) {
	a := &domain.SalonAppointment{}
	query := `SELECT id, client_id, branch_id, at, total_amount, paid_amount, status, COALESCE(notes, '')
	          FROM salon_appointments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.ClientID, &a.BranchID, &a.At,
		&a.TotalAmount, &a.PaidAmount, &a.Status, &a.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, appointment_id, service_id, price, quantity FROM salon_appointment_items WHERE appointment_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.AppointmentItem
		if err := rows.Scan(&it.ID, &it.AppointmentID, &it.ServiceID, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		a.Items = append(a.Items, it)
	}
	return a, rows.Err()
}

func (r *appointmentRepository) Update(ctx context.Context, a *domain.SalonAppointment) error {
	query := `UPDATE salon_appointments SET status=$1, total_amount=$2, paid_amount=$3, notes=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, a.Status, a.TotalAmount, a.PaidAmount, a.Notes, a.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.SalonAppointment, error) {
	query := `SELECT id, client_id, branch_id, at, total_amount, paid_amount, status, COALESCE(notes, '')
	          FROM salon_appointments WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.BranchID != nil {
		query += fmt.Sprintf(` AND branch_id = $%d`, argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if !filter.From.IsZero() {
		query += fmt.Sprintf(` AND at >= $%d`, argIdx)
		args = append(args, filter.From)
		argIdx++
	}
	if !filter.To.IsZero() {
		query += fmt.Sprintf(` AND at <= $%d`, argIdx)
		args = append(args, filter.To)
		argIdx++
	}
	query += ` ORDER BY at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []domain.SalonAppointment
	for rows.Next() {
		var a domain.SalonAppointment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.BranchID, &a.At, &a.TotalAmount,
			&a.PaidAmount, &a.Status, &a.Notes); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}
