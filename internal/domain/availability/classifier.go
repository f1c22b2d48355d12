package availability

import (
	"time"

	"pool-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAvailable        Status = "available"
	StatusBooked           Status = "booked"
	StatusAvailablePartial Status = "available-partial"
)

func (s Status) String() string {
	return string(s)
}

// Engine holds the location in which calendar days are interpreted. It
// keeps no booking state between calls.
type Engine struct {
	loc *time.Location
}

func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// ClassifyDay decides whether assetID is free, partially committed, or
// fully committed on day. bookings may contain other assets' bookings.
func (e *Engine) ClassifyDay(assetID uuid.UUID, day Day, bookings []*booking.Booking) Status {
	dayRange := e.dayRange(day)

	occupied := false
	for _, b := range bookings {
		occ, ok := occupancyOn(b, assetID, dayRange)
		if !ok {
			continue
		}
		if occ.Covers(dayRange) {
			return StatusBooked
		}
		occupied = true
	}
	if occupied {
		return StatusAvailablePartial
	}
	return StatusAvailable
}

func (e *Engine) dayRange(day Day) booking.TimeRange {
	start, end := day.Bounds(e.loc)
	// start < end always holds for a civil day.
	r, _ := booking.NewTimeRange(start, end)
	return r
}

func occupancyOn(b *booking.Booking, assetID uuid.UUID, dayRange booking.TimeRange) (booking.TimeRange, bool) {
	if b == nil || b.AssetID() != assetID {
		return booking.TimeRange{}, false
	}
	occ, ok := b.Occupancy()
	if !ok || !occ.Overlaps(dayRange) {
		return booking.TimeRange{}, false
	}
	return occ, true
}
