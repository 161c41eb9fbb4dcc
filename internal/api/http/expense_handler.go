package http

import (
	"net/http"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

type ExpenseHandler struct {
	expenses service.ExpenseService
}

func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func (h *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	var in service.RecordExpenseInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	expense, err := h.expenses.Record(r.Context(), ScopeFrom(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeParam(r, "from")
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		writeError(w, err)
		return
	}

	expenses, err := h.expenses.List(r.Context(), ScopeFrom(r), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat domain.ExpenseCategory
	if err := decodeBody(r, &cat); err != nil {
		writeError(w, err)
		return
	}
	if err := h.expenses.CreateCategory(r.Context(), ScopeFrom(r), &cat); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (h *ExpenseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.expenses.ListCategories(r.Context(), ScopeFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if cats == nil {
		cats = []domain.ExpenseCategory{}
	}
	writeJSON(w, http.StatusOK, cats)
}
