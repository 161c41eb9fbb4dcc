package service

import (
	"context"
	"fmt"
	"time"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

// RangesOverlap applies the half-open conflict rule to [p1, r1) and [p2, r2):
// a range ends the morning of its return date, so an item returned on day N
// can be picked up again that same day.
func RangesOverlap(p1, r1, p2, r2 time.Time) bool {
	return p1.Before(r2) && p2.Before(r1)
}

// AvailabilityChecker decides whether inventory items can be promised for a
// date range without double-booking.
type AvailabilityChecker struct {
	bookingRepo repository.BookingRepository
	catalogRepo repository.CatalogRepository
}

func NewAvailabilityChecker(bookingRepo repository.BookingRepository, catalogRepo repository.CatalogRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookingRepo: bookingRepo, catalogRepo: catalogRepo}
}

// CheckItems verifies every item of a candidate booking. The first
// conflicting item rejects the whole booking with a ConflictError naming the
// item and the blocking booking, so the caller can render a precise message.
// excludeBookingID skips one booking when re-checking an existing one.
func (c *AvailabilityChecker) CheckItems(ctx context.Context, itemIDs []int32, pickup, ret time.Time, excludeBookingID int32) error {
	for _, itemID := range itemIDs {
		blocking, err := c.bookingRepo.FindOverlapping(ctx, itemID, pickup, ret, excludeBookingID)
		if err != nil {
			return fmt.Errorf("checking availability of item %d: %w", itemID, err)
		}
		if len(blocking) == 0 {
			continue
		}
		conflict := &domain.ConflictError{
			InventoryItemID: itemID,
			BlockingBooking: blocking[0].ID,
		}
		if item, def, err := c.catalogRepo.GetItemWithDefinition(ctx, itemID); err == nil {
			conflict.ItemLabel = fmt.Sprintf("%s (%s)", def.Name, item.Barcode)
		}
		return conflict
	}
	return nil
}

// IsAvailable is the boolean convenience form of CheckItems for one item.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, itemID int32, pickup, ret time.Time, excludeBookingID int32) (bool, error) {
	err := c.CheckItems(ctx, []int32{itemID}, pickup, ret, excludeBookingID)
	if err == nil {
		return true, nil
	}
	if domain.IsConflict(err) {
		return false, nil
	}
	return false, err
}
