package service

import (
	"context"
	"time"

	"atelier-backend/internal/domain"
)

// CreateBookingInput carries everything needed to open a rental booking.
// Amounts are integer piasters.
type CreateBookingInput struct {
	ClientID        int32     `json:"client_id"`
	PickupDate      time.Time `json:"pickup_date"`
	ReturnDate      time.Time `json:"return_date"`
	ItemIDs         []int32   `json:"item_ids"`
	TotalAmount     int64     `json:"total_amount"`
	Discount        int64     `json:"discount"`
	PaidAmount      int64     `json:"paid_amount"`
	InsuranceAmount int64     `json:"insurance_amount"`
	Notes           string    `json:"notes"`
}

type BookingService interface {
	Create(ctx context.Context, scope domain.CallerScope, in CreateBookingInput) (*domain.Booking, error)
	Confirm(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error)
	PickUp(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error)
	Return(ctx context.Context, scope domain.CallerScope, id int32, insuranceDeduction int64) (*domain.Booking, error)
	Cancel(ctx context.Context, scope domain.CallerScope, id int32, refundAmount int64) (*domain.Booking, error)
	AddPayment(ctx context.Context, scope domain.CallerScope, id int32, amount int64) (*domain.Booking, error)
	Get(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error)
	List(ctx context.Context, scope domain.CallerScope, status *domain.BookingStatus) ([]domain.Booking, error)
}

type AppointmentLine struct {
	ServiceID int32 `json:"service_id"`
	Quantity  int32 `json:"quantity"`
}

type CreateAppointmentInput struct {
	ClientID   int32             `json:"client_id"`
	At         time.Time         `json:"at"`
	Lines      []AppointmentLine `json:"lines"`
	PaidAmount int64             `json:"paid_amount"`
	Notes      string            `json:"notes"`
}

type AppointmentService interface {
	Create(ctx context.Context, scope domain.CallerScope, in CreateAppointmentInput) (*domain.SalonAppointment, error)
	Confirm(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error)
	Complete(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error)
	AddPayment(ctx context.Context, scope domain.CallerScope, id int32, amount int64) (*domain.SalonAppointment, error)
	Cancel(ctx context.Context, scope domain.CallerScope, id int32, refundAmount int64) (*domain.SalonAppointment, error)
	Get(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error)
	List(ctx context.Context, scope domain.CallerScope, from, to time.Time) ([]domain.SalonAppointment, error)
}

// SafeReport is the derived view over the department ledger: period figures
// plus the all-time running balance and insurance currently held.
type SafeReport struct {
	Period        domain.PeriodSummary `json:"period"`
	CashBalance   int64                `json:"cash_balance"`
	InsuranceHeld int64                `json:"insurance_held"`
	Entries       []domain.LedgerEntry `json:"entries"`
}

type LedgerService interface {
	Post(ctx context.Context, scope domain.CallerScope, entry *domain.LedgerEntry) error
	Balance(ctx context.Context, scope domain.CallerScope, filter domain.EntryFilter) (int64, error)
	InsuranceHeld(ctx context.Context, scope domain.CallerScope, filter domain.EntryFilter) (int64, error)
	Report(ctx context.Context, scope domain.CallerScope, filter domain.EntryFilter) (*SafeReport, error)
}

type CatalogService interface {
	CreateDefinition(ctx context.Context, scope domain.CallerScope, def *domain.CatalogItem) error
	CreateItem(ctx context.Context, scope domain.CallerScope, item *domain.InventoryItem) error
	ListDefinitions(ctx context.Context, scope domain.CallerScope) ([]domain.CatalogItem, error)
	ListItems(ctx context.Context, scope domain.CallerScope) ([]domain.InventoryItem, error)
	CreateSalonService(ctx context.Context, scope domain.CallerScope, svc *domain.SalonService) error
	ListSalonServices(ctx context.Context, scope domain.CallerScope) ([]domain.SalonService, error)
}

type RecordExpenseInput struct {
	CategoryID  int32              `json:"category_id"`
	Amount      int64              `json:"amount"`
	Department  *domain.Department `json:"department,omitempty"`
	Description string             `json:"description"`
	At          time.Time          `json:"at"`
}

type ExpenseService interface {
	Record(ctx context.Context, scope domain.CallerScope, in RecordExpenseInput) (*domain.Expense, error)
	CreateCategory(ctx context.Context, scope domain.CallerScope, cat *domain.ExpenseCategory) error
	ListCategories(ctx context.Context, scope domain.CallerScope) ([]domain.ExpenseCategory, error)
	List(ctx context.Context, scope domain.CallerScope, from, to time.Time) ([]domain.Expense, error)
}

type AuthService interface {
	// Login checks credentials and returns a signed token whose claims carry
	// the user's branch and department capabilities.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CreateUser(ctx context.Context, scope domain.CallerScope, user *domain.User, password string) error
}
