package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

func TestAppointmentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beauty := f.staffScope(domain.DepartmentBeautySalon)

	t.Run("RequiresBeautyCapability", func(t *testing.T) {
		women := f.staffScope(domain.DepartmentWomen)
		_, err := f.appointments.Create(ctx, women, service.CreateAppointmentInput{
			ClientID: f.clientID, At: day(10),
			Lines: []service.AppointmentLine{{ServiceID: f.makeupSvcID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("SnapshotsPricesAndPostsDeposit", func(t *testing.T) {
		appt, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{
			ClientID: f.clientID, At: day(10),
			Lines: []service.AppointmentLine{
				{ServiceID: f.makeupSvcID, Quantity: 2},
				{ServiceID: f.makeupSvcID}, // zero quantity defaults to one
			},
			PaidAmount: 100,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentStatusConfirmed, appt.Status)
		assert.Equal(t, int64(450), appt.TotalAmount) // 150*2 + 150
		assert.Equal(t, int32(1), appt.Items[1].Quantity)

		entries := f.ledgerEntries(t)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.EntryKindIncome, entries[0].Kind)
		assert.Equal(t, int64(100), entries[0].Amount)
		// salon money always lands in the beauty salon's safe
		assert.Equal(t, domain.DepartmentBeautySalon, entries[0].Department)
	})

	t.Run("NoLinesRejected", func(t *testing.T) {
		_, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{ClientID: f.clientID, At: day(10)})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NoDepositStartsPending", func(t *testing.T) {
		appt, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{
			ClientID: f.clientID, At: day(11),
			Lines: []service.AppointmentLine{{ServiceID: f.makeupSvcID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentStatusPending, appt.Status)
	})
}

func TestAppointmentConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beauty := f.staffScope(domain.DepartmentBeautySalon)

	appt, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{
		ClientID: f.clientID, At: day(10),
		Lines: []service.AppointmentLine{{ServiceID: f.makeupSvcID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, domain.AppointmentStatusPending, appt.Status)

	confirmed, err := f.appointments.Confirm(ctx, beauty, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusConfirmed, confirmed.Status)

	// only a pending appointment can be confirmed
	_, err = f.appointments.Confirm(ctx, beauty, appt.ID)
	assert.True(t, domain.IsValidation(err))
}

func TestAppointmentAddPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beauty := f.staffScope(domain.DepartmentBeautySalon)

	appt, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{
		ClientID: f.clientID, At: day(10),
		Lines:      []service.AppointmentLine{{ServiceID: f.makeupSvcID, Quantity: 1}},
		PaidAmount: 50,
	})
	require.NoError(t, err)

	t.Run("OverpaymentClampedAndAutoCompletes", func(t *testing.T) {
		// remaining is 100; paying 500 settles exactly the remainder
		updated, err := f.appointments.AddPayment(ctx, beauty, appt.ID, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(150), updated.PaidAmount)
		assert.Equal(t, int64(0), updated.RemainingAmount())
		assert.Equal(t, domain.AppointmentStatusCompleted, updated.Status)

		entries := f.ledgerEntries(t)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(100), entries[1].Amount)
	})

	t.Run("CompletedAppointmentRejectsPayment", func(t *testing.T) {
		_, err := f.appointments.AddPayment(ctx, beauty, appt.ID, 10)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAppointmentCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beauty := f.staffScope(domain.DepartmentBeautySalon)

	appt, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{
		ClientID: f.clientID, At: day(10),
		Lines:      []service.AppointmentLine{{ServiceID: f.makeupSvcID, Quantity: 1}},
		PaidAmount: 50,
	})
	require.NoError(t, err)

	cancelled, err := f.appointments.Cancel(ctx, beauty, appt.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(0), cancelled.RemainingAmount())

	entries := f.ledgerEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryKindExpense, entries[1].Kind)
	// refund clamped to what was paid
	assert.Equal(t, int64(50), entries[1].Amount)
}

func TestAppointmentList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beauty := f.staffScope(domain.DepartmentBeautySalon)

	_, err := f.appointments.Create(ctx, beauty, service.CreateAppointmentInput{
		ClientID: f.clientID, At: day(10),
		Lines: []service.AppointmentLine{{ServiceID: f.makeupSvcID, Quantity: 1}},
	})
	require.NoError(t, err)

	t.Run("WithoutBeautyCapabilityIsEmpty", func(t *testing.T) {
		women := f.staffScope(domain.DepartmentWomen)
		appts, err := f.appointments.List(ctx, women, day(1), day(30))
		require.NoError(t, err)
		assert.Empty(t, appts)
	})

	t.Run("PeriodBounds", func(t *testing.T) {
		appts, err := f.appointments.List(ctx, beauty, day(1), day(30))
		require.NoError(t, err)
		assert.Len(t, appts, 1)

		appts, err = f.appointments.List(ctx, beauty, day(11), day(30))
		require.NoError(t, err)
		assert.Empty(t, appts)
	})
}
