package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository/memory"
	"atelier-backend/internal/service"
)

// fixture wires services on the in-memory store, seeded with one branch, one
// client, a women's dress, a men's suit, and a salon service.
type fixture struct {
	store        *memory.Store
	bookings     service.BookingService
	appointments service.AppointmentService
	ledger       service.LedgerService
	catalog      service.CatalogService
	expenses     service.ExpenseService

	branchID    int32
	clientID    int32
	dressItemID int32
	suitItemID  int32
	makeupSvcID int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	branch := &domain.Branch{Name: "Heliopolis", CommercialName: "Atelier Nour", IsMain: true}
	require.NoError(t, store.Branches().Create(ctx, branch))
	client := &domain.Client{Name: "Mona", Phone: "0100000000"}
	require.NoError(t, store.Clients().Create(ctx, client))

	dress := &domain.CatalogItem{Name: "Wedding Dress V12", Department: domain.DepartmentWomen, RentalPrice: 500, DepositAmount: 200}
	require.NoError(t, store.Catalog().CreateDefinition(ctx, dress))
	dressItem := &domain.InventoryItem{CatalogItemID: dress.ID, Barcode: "D-001", Size: "M", Status: domain.ItemStatusAvailable, BranchID: &branch.ID}
	require.NoError(t, store.Catalog().CreateItem(ctx, dressItem))

	suit := &domain.CatalogItem{Name: "Classic Suit", Department: domain.DepartmentMen, RentalPrice: 300, DepositAmount: 100}
	require.NoError(t, store.Catalog().CreateDefinition(ctx, suit))
	suitItem := &domain.InventoryItem{CatalogItemID: suit.ID, Barcode: "S-001", Size: "48", Status: domain.ItemStatusAvailable, BranchID: &branch.ID}
	require.NoError(t, store.Catalog().CreateItem(ctx, suitItem))

	makeup := &domain.SalonService{Name: "Bridal Makeup", Price: 150, BranchID: &branch.ID}
	require.NoError(t, store.SalonServices().Create(ctx, makeup))

	availability := service.NewAvailabilityChecker(store.Bookings(), store.Catalog())
	return &fixture{
		store: store,
		bookings: service.NewBookingService(
			store.Bookings(), store.Catalog(), store.Ledger(), availability, service.FirstItemDepartment),
		appointments: service.NewAppointmentService(store.Appointments(), store.SalonServices(), store.Ledger()),
		ledger:       service.NewLedgerService(store.Ledger()),
		catalog:      service.NewCatalogService(store.Catalog(), store.SalonServices()),
		expenses:     service.NewExpenseService(store.Expenses(), store.Ledger()),
		branchID:     branch.ID,
		clientID:     client.ID,
		dressItemID:  dressItem.ID,
		suitItemID:   suitItem.ID,
		makeupSvcID:  makeup.ID,
	}
}

func (f *fixture) staffScope(depts ...domain.Department) domain.CallerScope {
	branch := f.branchID
	return domain.CallerScope{
		UserID:      "staff-1",
		BranchID:    &branch,
		Departments: domain.NewDepartmentSet(depts...),
	}
}

func (f *fixture) managerScope() domain.CallerScope {
	return domain.CallerScope{
		UserID: "gm",
		Departments: domain.NewDepartmentSet(
			domain.DepartmentMen, domain.DepartmentWomen, domain.DepartmentBeautySalon),
	}
}

// ledgerEntries reads the raw safe entries, oldest first.
func (f *fixture) ledgerEntries(t *testing.T) []domain.LedgerEntry {
	t.Helper()
	entries, err := f.store.Ledger().List(context.Background(), domain.EntryFilter{})
	require.NoError(t, err)
	return entries
}

func (f *fixture) itemStatus(t *testing.T, itemID int32) domain.ItemStatus {
	t.Helper()
	item, err := f.store.Catalog().GetItem(context.Background(), itemID)
	require.NoError(t, err)
	return item.Status
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}
