package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, client_id, branch_id, created_at, pickup_date, return_date,
	total_amount, discount, paid_amount, insurance_amount, insurance_deduction, status, COALESCE(notes, '')`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bookings (client_id, branch_id, created_at, pickup_date, return_date,
	          total_amount, discount, paid_amount, insurance_amount, insurance_deduction, status, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err = tx.QueryRowContext(ctx, query, b.ClientID, b.BranchID, b.CreatedAt, b.PickupDate, b.ReturnDate,
		b.TotalAmount, b.Discount, b.PaidAmount, b.InsuranceAmount, b.InsuranceDeduction, b.Status, b.Notes).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.IntegrityError{Op: "create booking", Err: err}
		}
		return err
	}

	for i := range b.Items {
		item := &b.Items[i]
		item.BookingID = b.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO booking_items (booking_id, inventory_item_id, rental_price) VALUES ($1, $2, $3) RETURNING id`,
			item.BookingID, item.InventoryItemID, item.RentalPrice).Scan(&item.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.IntegrityError{Op: "create booking item", Err: err}
			}
			return err
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.ClientID, &b.BranchID, &b.CreatedAt,
		&b.PickupDate, &b.ReturnDate, &b.TotalAmount, &b.Discount, &b.PaidAmount,
		&b.InsuranceAmount, &b.InsuranceDeduction, &b.Status, &b.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.Items, err = r.loadItems(ctx, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// loadItems loads booking items with the catalog price and department joined
// in, so the zero-total fallback and department inference need no extra reads.
func (r *bookingRepository) loadItems(ctx context.Context, bookingID int32) ([]domain.BookingItem, error) {
	query := `SELECT bi.id, bi.booking_id, bi.inventory_item_id, bi.rental_price, c.rental_price, c.department
	          FROM booking_items bi
	          JOIN inventory_items i ON i.id = bi.inventory_item_id
	          JOIN catalog_items c ON c.id = i.catalog_item_id
	          WHERE bi.booking_id = $1
	          ORDER BY bi.id`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BookingItem
	for rows.Next() {
		var it domain.BookingItem
		if err := rows.Scan(&it.ID, &it.BookingID, &it.InventoryItemID, &it.RentalPrice,
			&it.CatalogPrice, &it.Department); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, total_amount=$2, discount=$3, paid_amount=$4,
	          insurance_amount=$5, insurance_deduction=$6, notes=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, b.Status, b.TotalAmount, b.Discount, b.PaidAmount,
		b.InsuranceAmount, b.InsuranceDeduction, b.Notes, b.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, itemID int32, pickup, ret time.Time, excludeID int32) ([]domain.Booking, error) {
	// Half-open ranges: a booking blocks [pickup_date, return_date), so an
	// item returned the morning of day N can go out again that same day.
	query := `SELECT b.` + bookingColumnsQualified() + `
	          FROM bookings b
	          JOIN booking_items bi ON bi.booking_id = b.id
	          WHERE bi.inventory_item_id = $1
	            AND b.status NOT IN ($2, $3)
	            AND b.id <> $4
	            AND $5 < b.return_date
	            AND b.pickup_date < $6
	          ORDER BY b.pickup_date`
	rows, err := r.db.QueryContext(ctx, query, itemID,
		domain.BookingStatusCancelled, domain.BookingStatusReturned, excludeID, pickup, ret)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func bookingColumnsQualified() string {
	return `id, b.client_id, b.branch_id, b.created_at, b.pickup_date, b.return_date,
	b.total_amount, b.discount, b.paid_amount, b.insurance_amount, b.insurance_deduction, b.status, COALESCE(b.notes, '')`
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.ClientID, &b.BranchID, &b.CreatedAt, &b.PickupDate, &b.ReturnDate,
			&b.TotalAmount, &b.Discount, &b.PaidAmount, &b.InsuranceAmount, &b.InsuranceDeduction,
			&b.Status, &b.Notes); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT b.` + bookingColumnsQualified() + ` FROM bookings b WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.BranchID != nil {
		query += fmt.Sprintf(` AND b.branch_id = $%d`, argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(` AND b.status = $%d`, argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if len(filter.Departments) > 0 {
		// A booking belongs to the department of its first item in insertion
		// order, matching the department-inference policy.
		query += fmt.Sprintf(` AND (
			SELECT c.department FROM booking_items bi
			JOIN inventory_items i ON i.id = bi.inventory_item_id
			JOIN catalog_items c ON c.id = i.catalog_item_id
			WHERE bi.booking_id = b.id ORDER BY bi.id LIMIT 1
		) = ANY($%d)`, argIdx)
		args = append(args, pq.Array(departmentStrings(filter.Departments)))
		argIdx++
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) MarkLate(ctx context.Context, cutoff time.Time) ([]int32, error) {
	query := `UPDATE bookings SET status = $1 WHERE status = $2 AND return_date < $3 RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusLate, domain.BookingStatusPickedUp, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
