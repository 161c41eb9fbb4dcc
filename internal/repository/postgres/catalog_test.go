package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository/postgres"
)

func TestCatalogRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewCatalogRepository(db)
	ctx := context.Background()

	branch := int32(1)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO inventory_items").
			WithArgs(int32(4), "D-001", "M", "ivory", domain.ItemStatusAvailable, branch).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

		item := &domain.InventoryItem{
			CatalogItemID: 4,
			Barcode:       "D-001",
			Size:          "M",
			Color:         "ivory",
			Status:        domain.ItemStatusAvailable,
			BranchID:      &branch,
		}
		require.NoError(t, repo.CreateItem(ctx, item))
		assert.Equal(t, int32(12), item.ID)
	})

	t.Run("DuplicateBarcode", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO inventory_items").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "inventory_items_barcode_key"})

		item := &domain.InventoryItem{
			CatalogItemID: 4,
			Barcode:       "D-001",
			Size:          "L",
			Status:        domain.ItemStatusAvailable,
			BranchID:      &branch,
		}
		err := repo.CreateItem(ctx, item)
		assert.True(t, domain.IsIntegrity(err))
	})
}

func TestCatalogRepository_GetItemWithDefinition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewCatalogRepository(db)
	ctx := context.Background()

	branch := int32(1)
	rows := sqlmock.NewRows([]string{"id", "catalog_item_id", "barcode", "size", "color", "status", "branch_id",
		"c_id", "name", "description", "department", "rental_price", "deposit_amount", "code"}).
		AddRow(12, 4, "D-001", "M", "ivory", "AVAILABLE", branch,
			4, "Wedding Dress V12", "", "WOMEN", 500, 200, "WD-12")

	mock.ExpectQuery("JOIN catalog_items c").
		WithArgs(int32(12)).
		WillReturnRows(rows)

	item, def, err := repo.GetItemWithDefinition(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "D-001", item.Barcode)
	assert.Equal(t, domain.ItemStatusAvailable, item.Status)
	assert.Equal(t, "Wedding Dress V12", def.Name)
	assert.Equal(t, domain.DepartmentWomen, def.Department)
	assert.Equal(t, int64(500), def.RentalPrice)
}

func TestCatalogRepository_UpdateItemStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewCatalogRepository(db)

	mock.ExpectExec("UPDATE inventory_items SET status").
		WithArgs(domain.ItemStatusRented, int32(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateItemStatus(context.Background(), 99, domain.ItemStatusRented)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
