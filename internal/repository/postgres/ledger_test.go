package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository/postgres"
)

func TestLedgerRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		entry := &domain.LedgerEntry{
			At:          time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
			Amount:      350,
			Kind:        domain.EntryKindIncome,
			Department:  domain.DepartmentWomen,
			BranchID:    1,
			Description: "balance collected at pickup for booking #7",
			EntryKey:    "booking:7:pickup-income",
		}

		mock.ExpectQuery("INSERT INTO ledger_entries").
			WithArgs(entry.At, entry.Amount, entry.Kind, entry.Department, entry.BranchID,
				entry.Description, nil, nil, entry.EntryKey).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		err := repo.Append(ctx, entry)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), entry.ID)
	})

	t.Run("DuplicateEntryKey", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO ledger_entries").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Append(ctx, &domain.LedgerEntry{
			Amount: 350, Kind: domain.EntryKindIncome,
			Department: domain.DepartmentWomen, BranchID: 1,
			EntryKey: "booking:7:pickup-income",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
	})
}

func TestLedgerRepository_Balance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("FilteredByBranchAndDepartment", func(t *testing.T) {
		branch := int32(1)
		dept := domain.DepartmentWomen
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN kind IN`).
			WithArgs(branch, dept).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(650))

		balance, err := repo.Balance(ctx, domain.EntryFilter{BranchID: &branch, Department: &dept})
		assert.NoError(t, err)
		assert.Equal(t, int64(650), balance)
	})
}

func TestLedgerRepository_InsuranceHeld(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	branch := int32(1)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN kind = 'INSURANCE_IN'`).
		WithArgs(branch).
		WillReturnRows(sqlmock.NewRows([]string{"held"}).AddRow(200))

	held, err := repo.InsuranceHeld(ctx, domain.EntryFilter{BranchID: &branch})
	assert.NoError(t, err)
	assert.Equal(t, int64(200), held)
}

func TestLedgerRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "at", "amount", "kind", "department", "branch_id", "description", "reference_id", "actor_id", "entry_key"}).
		AddRow(1, at, 100, "INCOME", "WOMEN", 1, "deposit for booking #7", "7", "u-1", "booking:7:deposit").
		AddRow(2, at.Add(time.Hour), 200, "INSURANCE_IN", "WOMEN", 1, "insurance received for booking #7", "7", "u-1", "booking:7:insurance-in")

	mock.ExpectQuery("SELECT (.+) FROM ledger_entries").
		WillReturnRows(rows)

	entries, err := repo.List(ctx, domain.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryKindIncome, entries[0].Kind)
	assert.Equal(t, int64(200), entries[1].Amount)
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, "7", *entries[0].ReferenceID)
}
