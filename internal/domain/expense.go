package domain

import "time"

type ExpenseCategory struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	BranchID *int32 `json:"branch_id,omitempty"`
}

// Expense is an operational outgoing (laundry, repairs, supplies). Recording
// one posts a matching Expense ledger entry against the department's safe.
type Expense struct {
	ID          int32      `json:"id"`
	CategoryID  int32      `json:"category_id"`
	Amount      int64      `json:"amount"`
	Department  Department `json:"department"`
	BranchID    *int32     `json:"branch_id,omitempty"`
	Description string     `json:"description"`
	At          time.Time  `json:"at"`
	CreatedBy   string     `json:"created_by"`
}
