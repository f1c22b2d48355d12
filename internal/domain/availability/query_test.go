//go:build unit

package availability_test

import (
	"testing"

	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/booking"
	"pool-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConflict(t *testing.T) {
	asset := uuid.New()
	existing := bookingFor(asset, on(monday, 9, 0), on(monday, 17, 0)).MustBuildDomain()
	bookings := []*booking.Booking{existing}

	t.Run("overlapping proposal conflicts", func(t *testing.T) {
		got, err := availability.CheckConflict(asset, on(monday, 12, 0), on(monday, 18, 0), bookings)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, existing.ID(), got[0].ID())
	})

	t.Run("touching proposal does not conflict", func(t *testing.T) {
		got, err := availability.CheckConflict(asset, on(monday, 17, 0), on(monday, 18, 0), bookings)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("other asset does not conflict", func(t *testing.T) {
		got, err := availability.CheckConflict(uuid.New(), on(monday, 12, 0), on(monday, 18, 0), bookings)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("terminal bookings do not conflict", func(t *testing.T) {
		terminal := []*booking.Booking{
			bookingFor(asset, on(monday, 9, 0), on(monday, 17, 0)).WithStatus(booking.StatusCanceled).MustBuildDomain(),
			bookingFor(asset, on(monday, 9, 0), on(monday, 17, 0)).Returned(on(monday, 11, 0), booking.ConditionGood).MustBuildDomain(),
		}
		got, err := availability.CheckConflict(asset, on(monday, 12, 0), on(monday, 18, 0), terminal)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("active booking conflicts", func(t *testing.T) {
		active := bookingFor(asset, on(monday, 9, 0), on(monday, 17, 0)).WithStatus(booking.StatusActive).MustBuildDomain()
		got, err := availability.CheckConflict(asset, on(monday, 8, 0), on(monday, 10, 0), []*booking.Booking{active})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("invalid proposal NG", func(t *testing.T) {
		_, err := availability.CheckConflict(asset, on(monday, 18, 0), on(monday, 12, 0), bookings)
		assert.True(t, errs.Is(err, booking.ErrInvalidRange))
	})
}

func TestEnsureNoConflict(t *testing.T) {
	asset := uuid.New()
	existing := bookingFor(asset, on(monday, 9, 0), on(monday, 17, 0)).MustBuildDomain()
	proposed, err := booking.NewTimeRange(on(monday, 16, 0), on(monday, 20, 0))
	require.NoError(t, err)

	err = availability.EnsureNoConflict(asset, proposed, []*booking.Booking{existing})
	require.Error(t, err)
	assert.True(t, errs.Is(err, booking.ErrSchedulingConflict))

	var conflict *booking.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, existing.ID(), conflict.Conflicts[0].ID())
}

func TestBookingsForAssetOnDate(t *testing.T) {
	engine := availability.NewEngine(berlin)
	asset := uuid.New()
	afternoon := bookingFor(asset, on(monday, 13, 0), on(monday, 15, 0)).MustBuildDomain()
	morning := bookingFor(asset, on(monday, 9, 0), on(monday, 11, 0)).MustBuildDomain()
	canceled := bookingFor(asset, on(monday, 11, 0), on(monday, 12, 0)).WithStatus(booking.StatusCanceled).MustBuildDomain()
	nextDay := bookingFor(asset, on(monday.AddDays(1), 9, 0), on(monday.AddDays(1), 11, 0)).MustBuildDomain()
	foreign := bookingFor(uuid.New(), on(monday, 9, 0), on(monday, 11, 0)).MustBuildDomain()

	got := engine.BookingsForAssetOnDate(asset, monday, []*booking.Booking{afternoon, canceled, nextDay, morning, foreign})

	require.Len(t, got, 2)
	assert.Equal(t, morning.ID(), got[0].ID())
	assert.Equal(t, afternoon.ID(), got[1].ID())
	assert.Equal(t, availability.StatusAvailablePartial, engine.AssetStatusOnDate(asset, monday, got))
	assert.Empty(t, engine.BookingsForAssetOnDate(asset, monday.AddDays(-1), got))
}
