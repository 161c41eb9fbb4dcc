package postgres

import (
	"database/sql"
	"errors"

	"atelier-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BranchRepository
	repository.ClientRepository
	repository.UserRepository
	repository.CatalogRepository
	repository.SalonServiceRepository
	repository.BookingRepository
	repository.AppointmentRepository
	repository.LedgerRepository
	repository.ExpenseRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		BranchRepository:       NewBranchRepository(db),
		ClientRepository:       NewClientRepository(db),
		UserRepository:         NewUserRepository(db),
		CatalogRepository:      NewCatalogRepository(db),
		SalonServiceRepository: NewSalonServiceRepository(db),
		BookingRepository:      NewBookingRepository(db),
		AppointmentRepository:  NewAppointmentRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		ExpenseRepository:      NewExpenseRepository(db),
	}
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (class 23505), the storage backstop for barcode and entry-key
// uniqueness.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// nullIfEmpty maps empty strings to NULL so partial unique indexes (barcode)
// ignore rows without a value.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
