package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"

	"github.com/lib/pq"
)

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func departmentStrings(departments []domain.Department) []string {
	out := make([]string, len(departments))
	for i, d := range departments {
		out[i] = string(d)
	}
	return out
}

func (r *catalogRepository) CreateDefinition(ctx context.Context, def *domain.CatalogItem) error {
	query := `INSERT INTO catalog_items (name, description, department, rental_price, deposit_amount, code)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, def.Name, def.Description, def.Department,
		def.RentalPrice, def.DepositAmount, def.Code).Scan(&def.ID)
}

func (r *catalogRepository) GetDefinition(ctx context.Context, id int32) (*domain.CatalogItem, error) {
	def := &domain.CatalogItem{}
	query := `SELECT id, name, COALESCE(description, ''), department, rental_price, deposit_amount, COALESCE(code, '')
	          FROM catalog_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&def.ID, &def.Name, &def.Description,
		&def.Department, &def.RentalPrice, &def.DepositAmount, &def.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (r *catalogRepository) ListDefinitions(ctx context.Context, departments []domain.Department) ([]domain.CatalogItem, error) {
	query := `SELECT id, name, COALESCE(description, ''), department, rental_price, deposit_amount, COALESCE(code, '')
	          FROM catalog_items`
	args := []interface{}{}
	if len(departments) > 0 {
		query += ` WHERE department = ANY($1)`
		args = append(args, pq.Array(departmentStrings(departments)))
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []domain.CatalogItem
	for rows.Next() {
		var def domain.CatalogItem
		if err := rows.Scan(&def.ID, &def.Name, &def.Description, &def.Department,
			&def.RentalPrice, &def.DepositAmount, &def.Code); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *catalogRepository) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (catalog_item_id, barcode, size, color, status, branch_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, item.CatalogItemID, nullIfEmpty(item.Barcode),
		item.Size, item.Color, item.Status, item.BranchID).Scan(&item.ID)
	if isUniqueViolation(err) {
		return &domain.IntegrityError{Op: "create inventory item: duplicate barcode", Err: err}
	}
	return err
}

func (r *catalogRepository) GetItem(ctx context.Context, id int32) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{}
	query := `SELECT id, catalog_item_id, COALESCE(barcode, ''), size, COALESCE(color, ''), status, branch_id
	          FROM inventory_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.CatalogItemID,
		&item.Barcode, &item.Size, &item.Color, &item.Status, &item.BranchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *catalogRepository) GetItemWithDefinition(ctx context.Context, id int32) (*domain.InventoryItem, *domain.CatalogItem, error) {
	item := &domain.InventoryItem{}
	def := &domain.CatalogItem{}
	query := `SELECT i.id, i.catalog_item_id, COALESCE(i.barcode, ''), i.size, COALESCE(i.color, ''), i.status, i.branch_id,
	                 c.id, c.name, COALESCE(c.description, ''), c.department, c.rental_price, c.deposit_amount, COALESCE(c.code, '')
	          FROM inventory_items i
	          JOIN catalog_items c ON c.id = i.catalog_item_id
	          WHERE i.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.CatalogItemID, &item.Barcode, &item.Size, &item.Color, &item.Status, &item.BranchID,
		&def.ID, &def.Name, &def.Description, &def.Department, &def.RentalPrice, &def.DepositAmount, &def.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return item, def, nil
}

func (r *catalogRepository) ListItems(ctx context.Context, branchID *int32, departments []domain.Department) ([]domain.InventoryItem, error) {
	query := `SELECT i.id, i.catalog_item_id, COALESCE(i.barcode, ''), i.size, COALESCE(i.color, ''), i.status, i.branch_id
	          FROM inventory_items i
	          JOIN catalog_items c ON c.id = i.catalog_item_id
	          WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if branchID != nil {
		query += ` AND i.branch_id = $1`
		args = append(args, *branchID)
		argIdx++
	}
	if len(departments) > 0 {
		query += fmt.Sprintf(` AND c.department = ANY($%d)`, argIdx)
		args = append(args, pq.Array(departmentStrings(departments)))
	}
	query += ` ORDER BY i.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.CatalogItemID, &item.Barcode, &item.Size,
			&item.Color, &item.Status, &item.BranchID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *catalogRepository) UpdateItemStatus(ctx context.Context, itemID int32, status domain.ItemStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE inventory_items SET status = $1 WHERE id = $2`, status, itemID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
