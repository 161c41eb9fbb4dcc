package domain

import "time"

type EntryKind string

const (
	EntryKindIncome       EntryKind = "INCOME"
	EntryKindExpense      EntryKind = "EXPENSE"
	EntryKindInsuranceIn  EntryKind = "INSURANCE_IN"
	EntryKindInsuranceOut EntryKind = "INSURANCE_OUT"
)

func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindIncome, EntryKindExpense, EntryKindInsuranceIn, EntryKindInsuranceOut:
		return true
	}
	return false
}

// Sign is +1 for money entering the safe, -1 for money leaving it.
func (k EntryKind) Sign() int64 {
	switch k {
	case EntryKindIncome, EntryKindInsuranceIn:
		return 1
	default:
		return -1
	}
}

// LedgerEntry is one immutable safe transaction. Amount is always a positive
// magnitude; the direction comes from Kind. Corrections are made by posting an
// offsetting entry, never by editing history.
type LedgerEntry struct {
	ID          int32      `json:"id"`
	At          time.Time  `json:"at"`
	Amount      int64      `json:"amount"`
	Kind        EntryKind  `json:"kind"`
	Department  Department `json:"department"`
	BranchID    int32      `json:"branch_id"`
	Description string     `json:"description"`
	// ReferenceID links back to the booking/appointment/expense that produced
	// the entry.
	ReferenceID *string `json:"reference_id,omitempty"`
	ActorID     *string `json:"actor_id,omitempty"`
	// EntryKey deduplicates postings: lifecycle transitions use deterministic
	// keys so re-running a completed transition cannot double-post.
	EntryKey string `json:"entry_key"`
}

// EntryFilter narrows ledger reads. Zero-value fields are ignored.
type EntryFilter struct {
	BranchID   *int32
	Department *Department
	ActorID    *string
	From       time.Time
	To         time.Time
}

func (f EntryFilter) Matches(e LedgerEntry) bool {
	if f.BranchID != nil && e.BranchID != *f.BranchID {
		return false
	}
	if f.Department != nil && e.Department != *f.Department {
		return false
	}
	if f.ActorID != nil && (e.ActorID == nil || *e.ActorID != *f.ActorID) {
		return false
	}
	if !f.From.IsZero() && e.At.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.At.After(f.To) {
		return false
	}
	return true
}

// PeriodSummary is the safe report over a filtered set of entries.
type PeriodSummary struct {
	Revenue      int64 `json:"revenue"`
	Expense      int64 `json:"expense"`
	InsuranceIn  int64 `json:"insurance_in"`
	InsuranceOut int64 `json:"insurance_out"`
	NetFlow      int64 `json:"net_flow"`
}

// FoldBalance folds entries into the running cash balance:
// income and insurance received minus expenses and insurance returned.
func FoldBalance(entries []LedgerEntry) int64 {
	var balance int64
	for _, e := range entries {
		balance += e.Kind.Sign() * e.Amount
	}
	return balance
}

// FoldInsuranceHeld folds only the insurance entries into the amount of
// client deposits currently sitting in the safe.
func FoldInsuranceHeld(entries []LedgerEntry) int64 {
	var held int64
	for _, e := range entries {
		switch e.Kind {
		case EntryKindInsuranceIn:
			held += e.Amount
		case EntryKindInsuranceOut:
			held -= e.Amount
		}
	}
	return held
}

// SummarizeEntries produces the period figures for a set of entries.
func SummarizeEntries(entries []LedgerEntry) PeriodSummary {
	var s PeriodSummary
	for _, e := range entries {
		switch e.Kind {
		case EntryKindIncome:
			s.Revenue += e.Amount
		case EntryKindExpense:
			s.Expense += e.Amount
		case EntryKindInsuranceIn:
			s.InsuranceIn += e.Amount
		case EntryKindInsuranceOut:
			s.InsuranceOut += e.Amount
		}
	}
	s.NetFlow = (s.Revenue + s.InsuranceIn) - (s.Expense + s.InsuranceOut)
	return s
}
