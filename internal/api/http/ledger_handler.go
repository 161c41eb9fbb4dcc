package http

import (
	"net/http"
	"strconv"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type postEntryRequest struct {
	Amount      int64             `json:"amount"`
	Kind        domain.EntryKind  `json:"kind"`
	Department  domain.Department `json:"department"`
	BranchID    int32             `json:"branch_id"`
	Description string            `json:"description"`
	ReferenceID *string           `json:"reference_id,omitempty"`
}

// Post records a manual safe entry (corrections, owner withdrawals). The
// lifecycle transitions post their own entries; this endpoint is for the rest.
func (h *LedgerHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req postEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry := &domain.LedgerEntry{
		Amount:      req.Amount,
		Kind:        req.Kind,
		Department:  req.Department,
		BranchID:    req.BranchID,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
	}
	if err := h.ledger.Post(r.Context(), ScopeFrom(r), entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Report returns the safe report: running cash balance, insurance held, and
// the period summary for the filtered window.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter, err := entryFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.ledger.Report(r.Context(), ScopeFrom(r), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func entryFilterFromQuery(r *http.Request) (domain.EntryFilter, error) {
	var filter domain.EntryFilter

	if raw := r.URL.Query().Get("branch_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return filter, domain.NewValidationError("branch_id", "must be an integer")
		}
		branchID := int32(id)
		filter.BranchID = &branchID
	}
	if raw := r.URL.Query().Get("department"); raw != "" {
		dept := domain.Department(raw)
		if !dept.Valid() {
			return filter, domain.NewValidationError("department", "unknown department")
		}
		filter.Department = &dept
	}
	if raw := r.URL.Query().Get("actor_id"); raw != "" {
		actor := raw
		filter.ActorID = &actor
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		return filter, err
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to

	return filter, nil
}
