package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// AppointmentItem is one service line on a salon appointment. Price is the
// snapshot of the service price at booking time.
type AppointmentItem struct {
	ID            int32 `json:"id"`
	AppointmentID int32 `json:"appointment_id"`
	ServiceID     int32 `json:"service_id"`
	Price         int64 `json:"price"`
	Quantity      int32 `json:"quantity"`
}

type SalonAppointment struct {
	ID          int32             `json:"id"`
	ClientID    int32             `json:"client_id"`
	BranchID    *int32            `json:"branch_id,omitempty"`
	At          time.Time         `json:"at"`
	TotalAmount int64             `json:"total_amount"`
	PaidAmount  int64             `json:"paid_amount"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes"`
	Items       []AppointmentItem `json:"items"`
}

// RemainingAmount is the unpaid part of the appointment, floored at zero and
// zero once cancelled.
func (a *SalonAppointment) RemainingAmount() int64 {
	if a.Status == AppointmentStatusCancelled {
		return 0
	}
	remaining := a.TotalAmount - a.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}
