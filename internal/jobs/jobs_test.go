package jobs_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/config"
	"atelier-backend/internal/domain"
	"atelier-backend/internal/jobs"
	"atelier-backend/internal/repository/postgres"
)

func newJobRunner(t *testing.T) (*jobs.JobRunner, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return jobs.NewJobRunner(db, postgres.NewStore(db), &config.Config{}), mock
}

func TestMarkLateBookings(t *testing.T) {
	jr, mock := newJobRunner(t)

	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs(domain.BookingStatusLate, domain.BookingStatusPickedUp, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	jr.MarkLateBookings()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStaleAppointments(t *testing.T) {
	jr, mock := newJobRunner(t)

	// only deposit-free PENDING appointments past their slot are swept
	mock.ExpectQuery("UPDATE salon_appointments").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2).AddRow(5))

	jr.ExpireStaleAppointments()
	assert.NoError(t, mock.ExpectationsWereMet())
}
