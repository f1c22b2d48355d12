//go:build unit

package availability_test

import (
	"testing"

	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAggregateDay(t *testing.T) {
	engine := availability.NewEngine(berlin)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	fleet := []uuid.UUID{a, b, c}
	tuesday := monday.AddDays(1)

	fullDay := func(id uuid.UUID) *booking.Booking {
		return bookingFor(id, on(monday, 0, 0), on(tuesday, 0, 0)).MustBuildDomain()
	}
	morning := func(id uuid.UUID) *booking.Booking {
		return bookingFor(id, on(monday, 9, 0), on(monday, 12, 0)).MustBuildDomain()
	}

	tests := []struct {
		name        string
		fleet       []uuid.UUID
		bookings    []*booking.Booking
		wantBucket  availability.Bucket
		wantBooked  int
		wantPartial int
	}{
		{name: "3/3 booked", fleet: fleet, bookings: []*booking.Booking{fullDay(a), fullDay(b), fullDay(c)}, wantBucket: availability.BucketAllBooked, wantBooked: 3},
		{name: "1/3 booked", fleet: fleet, bookings: []*booking.Booking{fullDay(a)}, wantBucket: availability.BucketSomeBooked, wantBooked: 1},
		{name: "only partial", fleet: fleet, bookings: []*booking.Booking{morning(b)}, wantBucket: availability.BucketSomeBooked, wantPartial: 1},
		{name: "2 booked 1 partial", fleet: fleet, bookings: []*booking.Booking{fullDay(a), fullDay(b), morning(c)}, wantBucket: availability.BucketSomeBooked, wantBooked: 2, wantPartial: 1},
		{name: "0/3 booked", fleet: fleet, wantBucket: availability.BucketAllAvailable},
		{name: "empty fleet", fleet: nil, bookings: []*booking.Booking{fullDay(a)}, wantBucket: availability.BucketAllAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.AggregateDay(tt.fleet, monday, tt.bookings)
			assert.Equal(t, tt.wantBucket, got.Bucket)
			assert.Equal(t, tt.wantBooked, got.BookedCount)
			assert.Equal(t, tt.wantPartial, got.PartialCount)
			assert.Len(t, got.Assets, len(tt.fleet))
			assert.Equal(t, monday, got.Day)
		})
	}
}

func TestAggregateDayListsAssetsInFleetOrder(t *testing.T) {
	engine := availability.NewEngine(berlin)
	a, b := uuid.New(), uuid.New()

	got := engine.AggregateDay([]uuid.UUID{b, a}, monday, []*booking.Booking{
		bookingFor(a, on(monday, 9, 0), on(monday, 12, 0)).MustBuildDomain(),
	})

	want := []availability.AssetDayStatus{
		{AssetID: b, Status: availability.StatusAvailable},
		{AssetID: a, Status: availability.StatusAvailablePartial},
	}
	if diff := cmp.Diff(want, got.Assets); diff != "" {
		t.Errorf("Assets mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateMonth(t *testing.T) {
	engine := availability.NewEngine(berlin)
	a := uuid.New()
	days, err := availability.DaysInMonth(2026, monday.Month)
	assert.NoError(t, err)

	got := engine.AggregateMonth([]uuid.UUID{a}, days, []*booking.Booking{
		bookingFor(a, on(monday, 0, 0), on(monday.AddDays(2), 0, 0)).MustBuildDomain(),
	})

	assert.Len(t, got, 31)
	for _, s := range got {
		switch s.Day {
		case monday, monday.AddDays(1):
			assert.Equal(t, availability.BucketAllBooked, s.Bucket, s.Day.String())
		default:
			assert.Equal(t, availability.BucketAllAvailable, s.Bucket, s.Day.String())
		}
	}
}
