package jobs

import (
	"context"
	"time"

	"atelier-backend/internal/logger"
)

// MarkLateBookings flips picked-up bookings whose return date has passed to
// LATE so branch staff see them at the top of the day's list.
func (jr *JobRunner) MarkLateBookings() {
	jr.runWithRecovery("MarkLateBookings", func() {
		ctx := context.Background()

		ids, err := jr.store.BookingRepository.MarkLate(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark late bookings", "error", err)
			return
		}

		logger.Info("Marked bookings as late", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Marked booking as late", "booking_id", id)
		}
	})
}

// ExpireStaleAppointments cancels unpaid PENDING salon appointments whose
// scheduled time passed, freeing the slot in the day view. Appointments with
// a deposit are left for staff to settle by hand.
func (jr *JobRunner) ExpireStaleAppointments() {
	jr.runWithRecovery("ExpireStaleAppointments", func() {
		ctx := context.Background()

		query := `
			UPDATE salon_appointments
			SET status = 'CANCELLED'
			WHERE status = 'PENDING'
			  AND paid_amount = 0
			  AND at < $1
			RETURNING id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to expire stale appointments", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan expired appointment", "error", err)
				continue
			}
			logger.Debug("Expired stale appointment", "appointment_id", id)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired appointments", "error", err)
			return
		}

		logger.Info("Expired stale appointments", "count", count)
	})
}
