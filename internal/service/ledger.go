package service

import (
	"context"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"

	"github.com/google/uuid"
)

type ledgerService struct {
	repo repository.LedgerRepository
	now  func() time.Time
}

func NewLedgerService(repo repository.LedgerRepository) LedgerService {
	return &ledgerService{repo: repo, now: time.Now}
}

// scopeFilter pins the filter to the caller's branch. A branch-bound caller
// cannot widen the filter past their own branch; the general manager may
// filter freely.
func scopeFilter(scope domain.CallerScope, f domain.EntryFilter) domain.EntryFilter {
	if scope.BranchID != nil {
		f.BranchID = scope.BranchID
	}
	return f
}

func (s *ledgerService) Post(ctx context.Context, scope domain.CallerScope, entry *domain.LedgerEntry) error {
	if entry.Amount <= 0 {
		return domain.NewValidationError("amount", "must be a positive magnitude")
	}
	if !entry.Kind.Valid() {
		return domain.NewValidationError("kind", "unknown transaction kind")
	}
	if !entry.Department.Valid() {
		return domain.NewValidationError("department", "unknown department")
	}
	if !scope.AllowsDepartment(entry.Department) {
		return domain.ErrUnauthorized
	}
	if !scope.AllowsBranch(&entry.BranchID) {
		return domain.ErrUnauthorized
	}
	if entry.At.IsZero() {
		entry.At = s.now()
	}
	if entry.ActorID == nil {
		entry.ActorID = scope.ActorID()
	}
	if entry.EntryKey == "" {
		entry.EntryKey = uuid.NewString()
	}
	return s.repo.Append(ctx, entry)
}

func (s *ledgerService) Balance(ctx context.Context, scope domain.CallerScope, filter domain.EntryFilter) (int64, error) {
	return s.repo.Balance(ctx, scopeFilter(scope, filter))
}

func (s *ledgerService) InsuranceHeld(ctx context.Context, scope domain.CallerScope, filter domain.EntryFilter) (int64, error) {
	return s.repo.InsuranceHeld(ctx, scopeFilter(scope, filter))
}

func (s *ledgerService) Report(ctx context.Context, scope domain.CallerScope, filter domain.EntryFilter) (*SafeReport, error) {
	filter = scopeFilter(scope, filter)

	// Running balance and insurance held are all-time figures for the same
	// branch/department/actor slice, ignoring the period bounds.
	allTime := filter
	allTime.From, allTime.To = time.Time{}, time.Time{}

	balance, err := s.repo.Balance(ctx, allTime)
	if err != nil {
		return nil, err
	}
	held, err := s.repo.InsuranceHeld(ctx, allTime)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &SafeReport{
		Period:        domain.SummarizeEntries(entries),
		CashBalance:   balance,
		InsuranceHeld: held,
		Entries:       entries,
	}, nil
}
