//go:build unit

package availability_test

import (
	"testing"
	"time"

	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/booking"
	"pool-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = mustLoad("Europe/Berlin")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// monday is 2026-03-02.
var monday = availability.Day{Year: 2026, Month: time.March, Day: 2}

func on(d availability.Day, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, berlin)
}

func bookingFor(assetID uuid.UUID, start, end time.Time) *builder.BookingBuilder {
	return builder.NewBookingBuilder().WithAsset(assetID).WithRange(start, end)
}

func TestClassifyDay(t *testing.T) {
	engine := availability.NewEngine(berlin)
	asset := uuid.New()
	other := uuid.New()
	sunday := monday.AddDays(-1)
	tuesday := monday.AddDays(1)

	tests := []struct {
		name     string
		bookings []*booking.Booking
		want     availability.Status
	}{
		{
			name: "no bookings",
			want: availability.StatusAvailable,
		},
		{
			name: "full-day booking",
			bookings: []*booking.Booking{
				bookingFor(asset, on(monday, 0, 0), on(tuesday, 0, 0)).MustBuildDomain(),
			},
			want: availability.StatusBooked,
		},
		{
			name: "multi-day booking spanning the day",
			bookings: []*booking.Booking{
				bookingFor(asset, on(sunday, 14, 0), on(tuesday, 10, 0)).MustBuildDomain(),
			},
			want: availability.StatusBooked,
		},
		{
			name: "morning booking 09:00-12:00",
			bookings: []*booking.Booking{
				bookingFor(asset, on(monday, 9, 0), on(monday, 12, 0)).MustBuildDomain(),
			},
			want: availability.StatusAvailablePartial,
		},
		{
			name: "booking ending at midnight the day starts",
			bookings: []*booking.Booking{
				bookingFor(asset, on(sunday, 9, 0), on(monday, 0, 0)).MustBuildDomain(),
			},
			want: availability.StatusAvailable,
		},
		{
			name: "booking starting the next day",
			bookings: []*booking.Booking{
				bookingFor(asset, on(tuesday, 0, 0), on(tuesday, 12, 0)).MustBuildDomain(),
			},
			want: availability.StatusAvailable,
		},
		{
			name: "two partial bookings stay partial",
			bookings: []*booking.Booking{
				bookingFor(asset, on(monday, 0, 0), on(monday, 12, 0)).MustBuildDomain(),
				bookingFor(asset, on(monday, 12, 0), on(tuesday, 0, 0)).MustBuildDomain(),
			},
			want: availability.StatusAvailablePartial,
		},
		{
			name: "canceled full-day booking ignored",
			bookings: []*booking.Booking{
				bookingFor(asset, on(monday, 0, 0), on(tuesday, 0, 0)).WithStatus(booking.StatusCanceled).MustBuildDomain(),
			},
			want: availability.StatusAvailable,
		},
		{
			name: "other asset's booking ignored",
			bookings: []*booking.Booking{
				bookingFor(other, on(monday, 0, 0), on(tuesday, 0, 0)).MustBuildDomain(),
			},
			want: availability.StatusAvailable,
		},
		{
			name: "completed booking still occupies",
			bookings: []*booking.Booking{
				bookingFor(asset, on(sunday, 8, 0), on(tuesday, 8, 0)).Returned(on(tuesday, 8, 0), booking.ConditionGood).MustBuildDomain(),
			},
			want: availability.StatusBooked,
		},
		{
			name: "returned on the day makes it partial",
			bookings: []*booking.Booking{
				bookingFor(asset, on(sunday, 8, 0), on(tuesday, 8, 0)).Returned(on(monday, 10, 0), booking.ConditionGood).MustBuildDomain(),
			},
			want: availability.StatusAvailablePartial,
		},
		{
			name: "returned the day before frees the day",
			bookings: []*booking.Booking{
				bookingFor(asset, on(sunday, 8, 0), on(tuesday, 8, 0)).Returned(on(sunday, 18, 0), booking.ConditionGood).MustBuildDomain(),
			},
			want: availability.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ClassifyDay(asset, monday, tt.bookings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDayUsesEngineLocation(t *testing.T) {
	asset := uuid.New()
	// 23:00 UTC on Sunday is already Monday 00:00 in Berlin (CET, UTC+1).
	b := bookingFor(asset,
		time.Date(2026, time.March, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 2, 23, 0, 0, 0, time.UTC),
	).MustBuildDomain()

	assert.Equal(t, availability.StatusBooked, availability.NewEngine(berlin).ClassifyDay(asset, monday, []*booking.Booking{b}))
	assert.Equal(t, availability.StatusAvailablePartial, availability.NewEngine(time.UTC).ClassifyDay(asset, monday, []*booking.Booking{b}))
}

func TestClassifyDayIsTotal(t *testing.T) {
	engine := availability.NewEngine(berlin)
	asset := uuid.New()
	bookings := []*booking.Booking{
		nil,
		bookingFor(asset, on(monday, 9, 0), on(monday, 12, 0)).MustBuildDomain(),
	}

	for i := -3; i <= 3; i++ {
		got := engine.ClassifyDay(asset, monday.AddDays(i), bookings)
		assert.Contains(t, []availability.Status{
			availability.StatusAvailable,
			availability.StatusBooked,
			availability.StatusAvailablePartial,
		}, got)
	}
}

func TestDay(t *testing.T) {
	t.Run("parse and format round trip", func(t *testing.T) {
		d, err := availability.ParseDay("2026-02-28")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-01", d.AddDays(1).String())
	})

	t.Run("invalid date NG", func(t *testing.T) {
		_, err := availability.NewDay(2026, time.February, 30)
		assert.ErrorIs(t, err, availability.ErrInvalidDay)

		_, err = availability.ParseDay("02.03.2026")
		assert.ErrorIs(t, err, availability.ErrInvalidDay)
	})

	t.Run("bounds", func(t *testing.T) {
		start, end := monday.Bounds(berlin)
		assert.Equal(t, on(monday, 0, 0), start)
		assert.Equal(t, on(monday, 23, 59).Add(59*time.Second+999*time.Millisecond), end)
	})

	t.Run("days in month", func(t *testing.T) {
		days, err := availability.DaysInMonth(2028, time.February)
		require.NoError(t, err)
		assert.Len(t, days, 29)
		assert.Equal(t, "2028-02-29", days[28].String())
	})
}
