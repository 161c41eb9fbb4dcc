package domain

import "time"

type BookingStatus string

const (
	BookingStatusNew       BookingStatus = "NEW"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusPickedUp  BookingStatus = "PICKED_UP"
	BookingStatusReturned  BookingStatus = "RETURNED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusLate      BookingStatus = "LATE"
)

// Terminal reports whether the booking can no longer change state.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusReturned || s == BookingStatusCancelled
}

// BlocksItem reports whether a booking in this status still holds its items
// for availability purposes. Late bookings are out with the client and keep
// blocking the item.
func (s BookingStatus) BlocksItem() bool {
	return s != BookingStatusCancelled && s != BookingStatusReturned
}

// BookingItem joins a booking to one inventory item. RentalPrice is the
// snapshot taken at reservation time; later catalog price changes never alter
// an existing booking.
type BookingItem struct {
	ID              int32 `json:"id"`
	BookingID       int32 `json:"booking_id"`
	InventoryItemID int32 `json:"inventory_item_id"`
	RentalPrice     int64 `json:"rental_price"`
	// CatalogPrice carries the item's current catalog price when loaded, used
	// only as the fallback for legacy rows whose snapshot is zero.
	CatalogPrice int64      `json:"-"`
	Department   Department `json:"-"`
}

// Booking is a rental-garment reservation. All amounts are integer piasters.
type Booking struct {
	ID                 int32         `json:"id"`
	ClientID           int32         `json:"client_id"`
	BranchID           *int32        `json:"branch_id,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	PickupDate         time.Time     `json:"pickup_date"`
	ReturnDate         time.Time     `json:"return_date"`
	TotalAmount        int64         `json:"total_amount"`
	Discount           int64         `json:"discount"`
	PaidAmount         int64         `json:"paid_amount"`
	InsuranceAmount    int64         `json:"insurance_amount"`
	InsuranceDeduction int64         `json:"insurance_deduction"`
	Status             BookingStatus `json:"status"`
	Notes              string        `json:"notes"`
	Items              []BookingItem `json:"items"`
}

// EffectiveTotal returns the rental total, recomputing it from the item
// snapshots when the stored total is zero (a data-quality symptom of older
// records). A zero snapshot falls back to the item's current catalog price.
func (b *Booking) EffectiveTotal() int64 {
	if b.TotalAmount != 0 || len(b.Items) == 0 {
		return b.TotalAmount
	}
	var total int64
	for _, it := range b.Items {
		if it.RentalPrice > 0 {
			total += it.RentalPrice
		} else {
			total += it.CatalogPrice
		}
	}
	return total
}

// NetTotal is the rental total after discount.
func (b *Booking) NetTotal() int64 {
	return b.EffectiveTotal() - b.Discount
}

// RemainingAmount is the unpaid part of the rental, floored at zero.
// Overpayments are tolerated; a cancelled booking owes nothing.
func (b *Booking) RemainingAmount() int64 {
	if b.Status == BookingStatusCancelled {
		return 0
	}
	remaining := b.NetTotal() - b.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RefundAmount is the insurance returned to the client at return time.
func (b *Booking) RefundAmount() int64 {
	return b.InsuranceAmount - b.InsuranceDeduction
}

// IsLate reports whether the booking is out past its return date. The stored
// Late status is written by the nightly sweep; this check does not depend on
// the sweep having run.
func (b *Booking) IsLate(now time.Time) bool {
	if b.Status == BookingStatusLate {
		return true
	}
	return b.Status == BookingStatusPickedUp && now.After(b.ReturnDate)
}
