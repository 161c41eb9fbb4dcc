package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_EffectiveTotal(t *testing.T) {
	t.Run("StoredTotalWins", func(t *testing.T) {
		b := &Booking{TotalAmount: 500, Items: []BookingItem{{RentalPrice: 100}}}
		assert.Equal(t, int64(500), b.EffectiveTotal())
	})

	t.Run("ZeroTotalRecomputedFromSnapshots", func(t *testing.T) {
		b := &Booking{Items: []BookingItem{{RentalPrice: 300}, {RentalPrice: 200}}}
		assert.Equal(t, int64(500), b.EffectiveTotal())
	})

	t.Run("ZeroSnapshotFallsBackToCatalogPrice", func(t *testing.T) {
		b := &Booking{Items: []BookingItem{{RentalPrice: 0, CatalogPrice: 350}, {RentalPrice: 150}}}
		assert.Equal(t, int64(500), b.EffectiveTotal())
	})

	t.Run("NoItemsStaysZero", func(t *testing.T) {
		b := &Booking{}
		assert.Equal(t, int64(0), b.EffectiveTotal())
	})
}

func TestBooking_RemainingAmount(t *testing.T) {
	t.Run("DiscountApplied", func(t *testing.T) {
		b := &Booking{TotalAmount: 500, Discount: 50, PaidAmount: 100, Status: BookingStatusNew}
		assert.Equal(t, int64(350), b.RemainingAmount())
	})

	t.Run("OverpaymentFloorsAtZero", func(t *testing.T) {
		b := &Booking{TotalAmount: 500, PaidAmount: 600, Status: BookingStatusPickedUp}
		assert.Equal(t, int64(0), b.RemainingAmount())
	})

	t.Run("CancelledOwesNothing", func(t *testing.T) {
		b := &Booking{TotalAmount: 500, PaidAmount: 100, Status: BookingStatusCancelled}
		assert.Equal(t, int64(0), b.RemainingAmount())
	})
}

func TestBooking_RefundAmount(t *testing.T) {
	b := &Booking{InsuranceAmount: 200, InsuranceDeduction: 50}
	assert.Equal(t, int64(150), b.RefundAmount())
}

func TestBooking_IsLate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("PickedUpPastReturnDate", func(t *testing.T) {
		b := &Booking{Status: BookingStatusPickedUp, ReturnDate: now.AddDate(0, 0, -1)}
		assert.True(t, b.IsLate(now))
	})

	t.Run("PickedUpBeforeReturnDate", func(t *testing.T) {
		b := &Booking{Status: BookingStatusPickedUp, ReturnDate: now.AddDate(0, 0, 2)}
		assert.False(t, b.IsLate(now))
	})

	t.Run("StoredLateStatus", func(t *testing.T) {
		b := &Booking{Status: BookingStatusLate, ReturnDate: now.AddDate(0, 0, 5)}
		assert.True(t, b.IsLate(now))
	})

	t.Run("ReturnedIsNeverLate", func(t *testing.T) {
		b := &Booking{Status: BookingStatusReturned, ReturnDate: now.AddDate(0, 0, -5)}
		assert.False(t, b.IsLate(now))
	})
}

func TestBookingStatus_BlocksItem(t *testing.T) {
	assert.True(t, BookingStatusNew.BlocksItem())
	assert.True(t, BookingStatusConfirmed.BlocksItem())
	assert.True(t, BookingStatusPickedUp.BlocksItem())
	assert.True(t, BookingStatusLate.BlocksItem())
	assert.False(t, BookingStatusReturned.BlocksItem())
	assert.False(t, BookingStatusCancelled.BlocksItem())
}
