package http

import (
	"net/http"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

type AppointmentHandler struct {
	appointments service.AppointmentService
}

func NewAppointmentHandler(appointments service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateAppointmentInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	appt, err := h.appointments.Create(r.Context(), ScopeFrom(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	appt, err := h.appointments.Get(r.Context(), ScopeFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// List accepts optional ?from=RFC3339&to=RFC3339 to bound the day view.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
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

	appts, err := h.appointments.List(r.Context(), ScopeFrom(r), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if appts == nil {
		appts = []domain.SalonAppointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(id int32) (*domain.SalonAppointment, error) {
		return h.appointments.Confirm(r.Context(), ScopeFrom(r), id)
	})
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(id int32) (*domain.SalonAppointment, error) {
		return h.appointments.Complete(r.Context(), ScopeFrom(r), id)
	})
}

func (h *AppointmentHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.transition(w, r, func(id int32) (*domain.SalonAppointment, error) {
		return h.appointments.AddPayment(r.Context(), ScopeFrom(r), id, req.Amount)
	})
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.transition(w, r, func(id int32) (*domain.SalonAppointment, error) {
		return h.appointments.Cancel(r.Context(), ScopeFrom(r), id, req.RefundAmount)
	})
}

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, fn func(id int32) (*domain.SalonAppointment, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	appt, err := fn(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(name, "must be RFC3339")
	}
	return t, nil
}
