package repository

import (
	"context"
	"time"

	"atelier-backend/internal/domain"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, id int32) (*domain.Branch, error)
	List(ctx context.Context) ([]domain.Branch, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	Search(ctx context.Context, query string) ([]domain.Client, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CatalogRepository interface {
	CreateDefinition(ctx context.Context, def *domain.CatalogItem) error
	GetDefinition(ctx context.Context, id int32) (*domain.CatalogItem, error)
	ListDefinitions(ctx context.Context, departments []domain.Department) ([]domain.CatalogItem, error)

	CreateItem(ctx context.Context, item *domain.InventoryItem) error
	GetItem(ctx context.Context, id int32) (*domain.InventoryItem, error)
	// GetItemWithDefinition loads the physical item together with its catalog
	// definition, needed for price snapshots and department checks.
	GetItemWithDefinition(ctx context.Context, id int32) (*domain.InventoryItem, *domain.CatalogItem, error)
	ListItems(ctx context.Context, branchID *int32, departments []domain.Department) ([]domain.InventoryItem, error)
	// UpdateItemStatus is the single choke point through which the booking
	// lifecycle mutates the cached item status.
	UpdateItemStatus(ctx context.Context, itemID int32, status domain.ItemStatus) error
}

type SalonServiceRepository interface {
	Create(ctx context.Context, svc *domain.SalonService) error
	GetByID(ctx context.Context, id int32) (*domain.SalonService, error)
	List(ctx context.Context, branchID *int32) ([]domain.SalonService, error)
}

// BookingFilter narrows booking lists to the caller's scope.
type BookingFilter struct {
	BranchID    *int32
	Status      *domain.BookingStatus
	Departments []domain.Department
}

type BookingRepository interface {
	// Create persists the booking and its items in one transaction.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// FindOverlapping returns bookings that hold the given item for a range
	// overlapping [pickup, ret) and whose status still blocks the item.
	// excludeID skips one booking (when re-checking an existing booking).
	FindOverlapping(ctx context.Context, itemID int32, pickup, ret time.Time, excludeID int32) ([]domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	// MarkLate flips PickedUp bookings whose return date passed before the
	// cutoff to Late, returning the ids it changed.
	MarkLate(ctx context.Context, cutoff time.Time) ([]int32, error)
}

type AppointmentFilter struct {
	BranchID *int32
	Status   *domain.AppointmentStatus
	From     time.Time
	To       time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.SalonAppointment) error
	GetByID(ctx context.Context, id int32) (*domain.SalonAppointment, error)
	Update(ctx context.Context, appt *domain.SalonAppointment) error
	List(ctx context.Context, filter AppointmentFilter) ([]domain.SalonAppointment, error)
}

type LedgerRepository interface {
	// Append writes one immutable entry. A duplicate entry key yields
	// domain.ErrDuplicateEntry. There is no update or delete.
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	// List returns matching entries ordered by timestamp; callers must not
	// assume storage order beyond that.
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error)
	Balance(ctx context.Context, filter domain.EntryFilter) (int64, error)
	InsuranceHeld(ctx context.Context, filter domain.EntryFilter) (int64, error)
}

type ExpenseRepository interface {
	CreateCategory(ctx context.Context, cat *domain.ExpenseCategory) error
	ListCategories(ctx context.Context, branchID *int32) ([]domain.ExpenseCategory, error)
	Create(ctx context.Context, exp *domain.Expense) error
	List(ctx context.Context, branchID *int32, from, to time.Time) ([]domain.Expense, error)
}
