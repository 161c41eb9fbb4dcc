package domain

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "AVAILABLE"
	ItemStatusReserved    ItemStatus = "RESERVED"
	ItemStatusRented      ItemStatus = "RENTED"
	ItemStatusMaintenance ItemStatus = "MAINTENANCE"
	ItemStatusLost        ItemStatus = "LOST"
)

// CatalogItem is the model definition shared by all physical copies of a
// garment (e.g. "wedding dress V12"). Prices are in integer piasters.
type CatalogItem struct {
	ID            int32      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Department    Department `json:"department"`
	RentalPrice   int64      `json:"rental_price"`
	DepositAmount int64      `json:"deposit_amount"`
	Code          string     `json:"code"`
}

// InventoryItem is one physical rentable unit of a catalog item.
type InventoryItem struct {
	ID            int32  `json:"id"`
	CatalogItemID int32  `json:"catalog_item_id"`
	Barcode       string `json:"barcode"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	// Status is a cached projection of booking activity. It is written only
	// by the booking lifecycle on pickup and return; no other component may
	// mutate it.
	Status ItemStatus `json:"status"`
	// BranchID is nil while the item is unassigned; unassigned items are not
	// bookable.
	BranchID *int32 `json:"branch_id,omitempty"`
}

type SalonService struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	BranchID *int32 `json:"branch_id,omitempty"`
}
