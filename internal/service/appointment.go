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

// appointmentService is the salon sibling of the booking controller: no
// physical-inventory conflict check, and every posting lands in the beauty
// salon department's safe.
type appointmentService struct {
	apptRepo    repository.AppointmentRepository
	serviceRepo repository.SalonServiceRepository
	ledgerRepo  repository.LedgerRepository
	now         func() time.Time
}

func NewAppointmentService(
	apptRepo repository.AppointmentRepository,
	serviceRepo repository.SalonServiceRepository,
	ledgerRepo repository.LedgerRepository,
) AppointmentService {
	return &appointmentService{
		apptRepo:    apptRepo,
		serviceRepo: serviceRepo,
		ledgerRepo:  ledgerRepo,
		now:         time.Now,
	}
}

func (s *appointmentService) requireBeauty(scope domain.CallerScope) error {
	if scope.Unscoped() {
		return domain.ErrUnauthorized
	}
	if !scope.AllowsDepartment(domain.DepartmentBeautySalon) {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *appointmentService) Create(ctx context.Context, scope domain.CallerScope, in CreateAppointmentInput) (*domain.SalonAppointment, error) {
	if err := s.requireBeauty(scope); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("lines", "at least one service must be selected")
	}
	if in.PaidAmount < 0 {
		return nil, domain.NewValidationError("paid_amount", "must not be negative")
	}

	var total int64
	items := make([]domain.AppointmentItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		svc, err := s.serviceRepo.GetByID(ctx, line.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("loading salon service %d: %w", line.ServiceID, err)
		}
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, domain.AppointmentItem{
			ServiceID: svc.ID,
			Price:     svc.Price, // snapshot at booking time
			Quantity:  qty,
		})
		total += svc.Price * int64(qty)
	}

	// A deposit holds the slot; without one the appointment stays PENDING
	// until staff confirm it, and the nightly sweep cancels it once the slot
	// time passes.
	status := domain.AppointmentStatusPending
	if in.PaidAmount > 0 {
		status = domain.AppointmentStatusConfirmed
	}

	appt := &domain.SalonAppointment{
		ClientID:    in.ClientID,
		BranchID:    scope.BranchID,
		At:          in.At,
		TotalAmount: total,
		PaidAmount:  in.PaidAmount,
		Status:      status,
		Notes:       in.Notes,
		Items:       items,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	if in.PaidAmount > 0 {
		err := s.post(ctx, scope, appt, domain.EntryKindIncome, in.PaidAmount,
			fmt.Sprintf("deposit for salon appointment #%d", appt.ID),
			fmt.Sprintf("appointment:%d:deposit", appt.ID))
		if err != nil {
			return nil, err
		}
	}
	return appt, nil
}

func (s *appointmentService) post(ctx context.Context, scope domain.CallerScope, a *domain.SalonAppointment, kind domain.EntryKind, amount int64, description, key string) error {
	ref := fmt.Sprintf("%d", a.ID)
	entry := &domain.LedgerEntry{
		At:          s.now(),
		Amount:      amount,
		Kind:        kind,
		Department:  domain.DepartmentBeautySalon,
		BranchID:    branchOrZero(a.BranchID),
		Description: description,
		ReferenceID: &ref,
		ActorID:     scope.ActorID(),
		EntryKey:    key,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil && !errors.Is(err, domain.ErrDuplicateEntry) {
		return fmt.Errorf("posting %s for appointment %d: %w", kind, a.ID, err)
	}
	return nil
}

func (s *appointmentService) load(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsBranch(appt.BranchID) {
		return nil, domain.ErrUnauthorized
	}
	return appt, nil
}

func (s *appointmentService) Confirm(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error) {
	if err := s.requireBeauty(scope); err != nil {
		return nil, err
	}
	appt, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != domain.AppointmentStatusPending {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot confirm a %s appointment", appt.Status))
	}
	appt.Status = domain.AppointmentStatusConfirmed
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) Complete(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error) {
	if err := s.requireBeauty(scope); err != nil {
		return nil, err
	}
	appt, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot complete a %s appointment", appt.Status))
	}
	appt.Status = domain.AppointmentStatusCompleted
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) AddPayment(ctx context.Context, scope domain.CallerScope, id int32, amount int64) (*domain.SalonAppointment, error) {
	if err := s.requireBeauty(scope); err != nil {
		return nil, err
	}
	appt, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot take a payment on a %s appointment", appt.Status))
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "payment must be positive")
	}
	// Never collect past the invoice total.
	if remaining := appt.RemainingAmount(); amount > remaining {
		amount = remaining
	}
	if amount == 0 {
		return appt, nil
	}

	err = s.post(ctx, scope, appt, domain.EntryKindIncome, amount,
		fmt.Sprintf("payment for salon appointment #%d", appt.ID),
		fmt.Sprintf("appointment:%d:payment:%s", appt.ID, uuid.NewString()))
	if err != nil {
		return nil, err
	}

	appt.PaidAmount += amount
	if appt.RemainingAmount() == 0 {
		appt.Status = domain.AppointmentStatusCompleted
	}
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) Cancel(ctx context.Context, scope domain.CallerScope, id int32, refundAmount int64) (*domain.SalonAppointment, error) {
	if err := s.requireBeauty(scope); err != nil {
		return nil, err
	}
	appt, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot cancel a %s appointment", appt.Status))
	}
	if refundAmount < 0 {
		return nil, domain.NewValidationError("refund_amount", "must not be negative")
	}
	if refundAmount > appt.PaidAmount {
		refundAmount = appt.PaidAmount
	}
	if refundAmount > 0 {
		err := s.post(ctx, scope, appt, domain.EntryKindExpense, refundAmount,
			fmt.Sprintf("refund on cancellation of salon appointment #%d", appt.ID),
			fmt.Sprintf("appointment:%d:cancel-refund", appt.ID))
		if err != nil {
			return nil, err
		}
	}

	appt.Status = domain.AppointmentStatusCancelled
	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) Get(ctx context.Context, scope domain.CallerScope, id int32) (*domain.SalonAppointment, error) {
	return s.load(ctx, scope, id)
}

func (s *appointmentService) List(ctx context.Context, scope domain.CallerScope, from, to time.Time) ([]domain.SalonAppointment, error) {
	// Listing without the beauty capability yields an empty set, not an
	// error, mirroring booking lists.
	if !scope.AllowsDepartment(domain.DepartmentBeautySalon) {
		return nil, nil
	}
	return s.apptRepo.List(ctx, repository.AppointmentFilter{
		BranchID: scope.BranchID,
		From:     from,
		To:       to,
	})
}
