package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return int32(id), nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.Create(r.Context(), ScopeFrom(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookings.Get(r.Context(), ScopeFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.BookingStatus(raw)
		status = &s
	}
	bookings, err := h.bookings.List(r.Context(), ScopeFrom(r), status)
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(id int32) (*domain.Booking, error) {
		return h.bookings.Confirm(r.Context(), ScopeFrom(r), id)
	})
}

func (h *BookingHandler) PickUp(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(id int32) (*domain.Booking, error) {
		return h.bookings.PickUp(r.Context(), ScopeFrom(r), id)
	})
}

type returnRequest struct {
	InsuranceDeduction int64 `json:"insurance_deduction"`
}

func (h *BookingHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.transition(w, r, func(id int32) (*domain.Booking, error) {
		return h.bookings.Return(r.Context(), ScopeFrom(r), id, req.InsuranceDeduction)
	})
}

type cancelRequest struct {
	RefundAmount int64 `json:"refund_amount"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.transition(w, r, func(id int32) (*domain.Booking, error) {
		return h.bookings.Cancel(r.Context(), ScopeFrom(r), id, req.RefundAmount)
	})
}

type paymentRequest struct {
	Amount int64 `json:"amount"`
}

func (h *BookingHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.transition(w, r, func(id int32) (*domain.Booking, error) {
		return h.bookings.AddPayment(r.Context(), ScopeFrom(r), id, req.Amount)
	})
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, fn func(id int32) (*domain.Booking, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := fn(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
