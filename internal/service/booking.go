package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	catalogRepo  repository.CatalogRepository
	ledgerRepo   repository.LedgerRepository
	availability *AvailabilityChecker
	deptPolicy   DepartmentPolicy
	now          func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	catalogRepo repository.CatalogRepository,
	ledgerRepo repository.LedgerRepository,
	availability *AvailabilityChecker,
	deptPolicy DepartmentPolicy,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		ledgerRepo:   ledgerRepo,
		availability: availability,
		deptPolicy:   deptPolicy,
		now:          time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, scope domain.CallerScope, in CreateBookingInput) (*domain.Booking, error) {
	// Bookings are opened by branch staff; the general manager holds no
	// branch safe to receive the deposit.
	if scope.Unscoped() {
		return nil, domain.ErrUnauthorized
	}
	if !in.PickupDate.Before(in.ReturnDate) {
		return nil, domain.NewValidationError("return_date", "must be after pickup date")
	}
	if len(in.ItemIDs) == 0 {
		return nil, domain.NewValidationError("item_ids", "at least one item must be selected")
	}
	if in.TotalAmount < 0 || in.Discount < 0 || in.PaidAmount < 0 || in.InsuranceAmount < 0 {
		return nil, domain.NewValidationError("amounts", "monetary amounts must not be negative")
	}

	items := make([]domain.BookingItem, 0, len(in.ItemIDs))
	for _, itemID := range in.ItemIDs {
		item, def, err := s.catalogRepo.GetItemWithDefinition(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("loading item %d: %w", itemID, err)
		}
		if !scope.AllowsDepartment(def.Department) {
			return nil, domain.ErrUnauthorized
		}
		if item.BranchID == nil {
			return nil, domain.NewValidationError("item_ids", fmt.Sprintf("item %d is not assigned to a branch", itemID))
		}
		if !scope.AllowsBranch(item.BranchID) {
			return nil, domain.ErrUnauthorized
		}
		items = append(items, domain.BookingItem{
			InventoryItemID: itemID,
			RentalPrice:     def.RentalPrice, // snapshot at reservation time
			CatalogPrice:    def.RentalPrice,
			Department:      def.Department,
		})
	}

	if err := s.availability.CheckItems(ctx, in.ItemIDs, in.PickupDate, in.ReturnDate, 0); err != nil {
		return nil, err
	}

	total := in.TotalAmount
	if total == 0 {
		for _, it := range items {
			total += it.RentalPrice
		}
	}

	booking := &domain.Booking{
		ClientID:        in.ClientID,
		BranchID:        scope.BranchID,
		CreatedAt:       s.now(),
		PickupDate:      in.PickupDate,
		ReturnDate:      in.ReturnDate,
		TotalAmount:     total,
		Discount:        in.Discount,
		PaidAmount:      in.PaidAmount,
		InsuranceAmount: in.InsuranceAmount,
		Status:          domain.BookingStatusNew,
		Notes:           in.Notes,
		Items:           items,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if in.PaidAmount > 0 {
		err := s.post(ctx, scope, booking, domain.EntryKindIncome, in.PaidAmount,
			fmt.Sprintf("deposit for booking #%d", booking.ID),
			fmt.Sprintf("booking:%d:deposit", booking.ID))
		if err != nil {
			return nil, err
		}
	}
	return booking, nil
}

// post writes one ledger entry for a booking. Deterministic entry keys make
// re-running a transition safe: a duplicate key is treated as already posted.
func (s *bookingService) post(ctx context.Context, scope domain.CallerScope, b *domain.Booking, kind domain.EntryKind, amount int64, description, key string) error {
	ref := fmt.Sprintf("%d", b.ID)
	entry := &domain.LedgerEntry{
		At:          s.now(),
		Amount:      amount,
		Kind:        kind,
		Department:  s.deptPolicy(b.Items),
		BranchID:    branchOrZero(b.BranchID),
		Description: description,
		ReferenceID: &ref,
		ActorID:     scope.ActorID(),
		EntryKey:    key,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil && !errors.Is(err, domain.ErrDuplicateEntry) {
		return fmt.Errorf("posting %s for booking %d: %w", kind, b.ID, err)
	}
	return nil
}

func branchOrZero(id *int32) int32 {
	if id == nil {
		return 0
	}
	return *id
}

func (s *bookingService) load(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsBranch(booking.BranchID) {
		return nil, domain.ErrUnauthorized
	}
	return booking, nil
}

func (s *bookingService) Confirm(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error) {
	booking, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusNew {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot confirm a %s booking", booking.Status))
	}
	booking.Status = domain.BookingStatusConfirmed
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) PickUp(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error) {
	booking, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusNew && booking.Status != domain.BookingStatusConfirmed {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot hand over a %s booking", booking.Status))
	}

	// Repair legacy rows whose stored total is zero before settling.
	booking.TotalAmount = booking.EffectiveTotal()

	remaining := booking.NetTotal() - booking.PaidAmount
	if remaining > 0 {
		// The outstanding rent is collected at handover.
		err := s.post(ctx, scope, booking, domain.EntryKindIncome, remaining,
			fmt.Sprintf("balance collected at pickup for booking #%d", booking.ID),
			fmt.Sprintf("booking:%d:pickup-income", booking.ID))
		if err != nil {
			return nil, err
		}
		booking.PaidAmount += remaining
	}
	if booking.InsuranceAmount > 0 {
		// Insurance is held, not earned; it enters the safe as a deposit.
		err := s.post(ctx, scope, booking, domain.EntryKindInsuranceIn, booking.InsuranceAmount,
			fmt.Sprintf("insurance received for booking #%d", booking.ID),
			fmt.Sprintf("booking:%d:insurance-in", booking.ID))
		if err != nil {
			return nil, err
		}
	}

	for _, it := range booking.Items {
		if err := s.catalogRepo.UpdateItemStatus(ctx, it.InventoryItemID, domain.ItemStatusRented); err != nil {
			return nil, fmt.Errorf("marking item %d rented: %w", it.InventoryItemID, err)
		}
	}

	booking.Status = domain.BookingStatusPickedUp
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Return(ctx context.Context, scope domain.CallerScope, id int32, insuranceDeduction int64) (*domain.Booking, error) {
	booking, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPickedUp && booking.Status != domain.BookingStatusLate {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot return a %s booking", booking.Status))
	}
	if insuranceDeduction < 0 {
		return nil, domain.NewValidationError("insurance_deduction", "must not be negative")
	}
	// Never deduct more than the insurance actually held.
	if insuranceDeduction > booking.InsuranceAmount {
		insuranceDeduction = booking.InsuranceAmount
	}
	booking.InsuranceDeduction = insuranceDeduction

	// The deduction stays in the safe by never being returned; only the
	// refund leaves as an insurance-out movement.
	if refund := booking.RefundAmount(); refund > 0 {
		err := s.post(ctx, scope, booking, domain.EntryKindInsuranceOut, refund,
			fmt.Sprintf("insurance refunded for booking #%d (after deducting %d)", booking.ID, insuranceDeduction),
			fmt.Sprintf("booking:%d:insurance-out", booking.ID))
		if err != nil {
			return nil, err
		}
	}

	for _, it := range booking.Items {
		if err := s.catalogRepo.UpdateItemStatus(ctx, it.InventoryItemID, domain.ItemStatusAvailable); err != nil {
			return nil, fmt.Errorf("marking item %d available: %w", it.InventoryItemID, err)
		}
	}

	booking.Status = domain.BookingStatusReturned
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, scope domain.CallerScope, id int32, refundAmount int64) (*domain.Booking, error) {
	booking, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot cancel a %s booking", booking.Status))
	}
	// Once the garments left the branch the only way out is a return, which
	// settles the insurance and puts the items back in rotation.
	if booking.Status == domain.BookingStatusPickedUp || booking.Status == domain.BookingStatusLate {
		return nil, domain.NewValidationError("status", fmt.Sprintf("a %s booking must be returned, not cancelled", booking.Status))
	}
	if refundAmount < 0 {
		return nil, domain.NewValidationError("refund_amount", "must not be negative")
	}
	// Never refund more than was actually paid.
	if refundAmount > booking.PaidAmount {
		refundAmount = booking.PaidAmount
	}
	if refundAmount > 0 {
		err := s.post(ctx, scope, booking, domain.EntryKindExpense, refundAmount,
			fmt.Sprintf("refund on cancellation of booking #%d", booking.ID),
			fmt.Sprintf("booking:%d:cancel-refund", booking.ID))
		if err != nil {
			return nil, err
		}
	}

	// Items were never marked rented before pickup, so there is nothing to
	// reset.
	booking.Status = domain.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) AddPayment(ctx context.Context, scope domain.CallerScope, id int32, amount int64) (*domain.Booking, error) {
	booking, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot take a payment on a %s booking", booking.Status))
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "payment must be positive")
	}

	err = s.post(ctx, scope, booking, domain.EntryKindIncome, amount,
		fmt.Sprintf("additional payment for booking #%d", booking.ID),
		fmt.Sprintf("booking:%d:payment:%s", booking.ID, uuid.NewString()))
	if err != nil {
		return nil, err
	}

	booking.PaidAmount += amount
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, scope domain.CallerScope, id int32) (*domain.Booking, error) {
	return s.load(ctx, scope, id)
}

func (s *bookingService) List(ctx context.Context, scope domain.CallerScope, status *domain.BookingStatus) ([]domain.Booking, error) {
	// A caller with no department capability gets an empty list, not an
	// error; only direct mutations are denied outright.
	departments := scope.Departments.Slice()
	if len(departments) == 0 {
		return nil, nil
	}
	return s.bookingRepo.List(ctx, repository.BookingFilter{
		BranchID:    scope.BranchID,
		Status:      status,
		Departments: departments,
	})
}
