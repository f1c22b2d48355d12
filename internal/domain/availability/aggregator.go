package availability

import (
	"pool-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type Bucket string

const (
	BucketAllAvailable Bucket = "all-available"
	BucketSomeBooked   Bucket = "some-booked"
	BucketAllBooked    Bucket = "all-booked"
)

func (b Bucket) String() string {
	return string(b)
}

type AssetDayStatus struct {
	AssetID uuid.UUID
	Status  Status
}

type DaySummary struct {
	Day          Day
	Bucket       Bucket
	BookedCount  int
	PartialCount int
	Assets       []AssetDayStatus
}

// AggregateDay reduces the per-asset classification of every asset in the
// fleet into one calendar-cell signal.
func (e *Engine) AggregateDay(assetIDs []uuid.UUID, day Day, bookings []*booking.Booking) DaySummary {
	summary := DaySummary{
		Day:    day,
		Assets: make([]AssetDayStatus, 0, len(assetIDs)),
	}
	for _, id := range assetIDs {
		status := e.ClassifyDay(id, day, bookings)
		switch status {
		case StatusBooked:
			summary.BookedCount++
		case StatusAvailablePartial:
			summary.PartialCount++
		}
		summary.Assets = append(summary.Assets, AssetDayStatus{AssetID: id, Status: status})
	}
	summary.Bucket = bucketFor(len(assetIDs), summary.BookedCount, summary.PartialCount)
	return summary
}

// AggregateMonth runs AggregateDay for every day of the month.
func (e *Engine) AggregateMonth(assetIDs []uuid.UUID, days []Day, bookings []*booking.Booking) []DaySummary {
	out := make([]DaySummary, len(days))
	for i, d := range days {
		out[i] = e.AggregateDay(assetIDs, d, bookings)
	}
	return out
}

func bucketFor(fleetSize, booked, partial int) Bucket {
	switch {
	case fleetSize > 0 && booked == fleetSize:
		return BucketAllBooked
	case booked > 0 || partial > 0:
		return BucketSomeBooked
	default:
		return BucketAllAvailable
	}
}
