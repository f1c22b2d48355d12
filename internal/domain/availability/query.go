package availability

import (
	"sort"
	"time"

	"pool-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingsForAssetOnDate returns the bookings of assetID that occupy any
// part of day, ordered by start.
func (e *Engine) BookingsForAssetOnDate(assetID uuid.UUID, day Day, bookings []*booking.Booking) []*booking.Booking {
	dayRange := e.dayRange(day)
	var out []*booking.Booking
	for _, b := range bookings {
		if _, ok := occupancyOn(b, assetID, dayRange); ok {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out
}

func (e *Engine) AssetStatusOnDate(assetID uuid.UUID, day Day, bookings []*booking.Booking) Status {
	return e.ClassifyDay(assetID, day, bookings)
}

// CheckConflict returns every reserved or active booking of assetID that
// overlaps [start, end). The result is a pre-flight hint only; concurrent
// writers must be serialized by the store.
func CheckConflict(assetID uuid.UUID, start, end time.Time, bookings []*booking.Booking) ([]*booking.Booking, error) {
	proposed, err := booking.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	return Conflicts(assetID, proposed, bookings), nil
}

func Conflicts(assetID uuid.UUID, proposed booking.TimeRange, bookings []*booking.Booking) []*booking.Booking {
	var out []*booking.Booking
	for _, b := range bookings {
		if b == nil || b.AssetID() != assetID || !b.Status().Holds() {
			continue
		}
		if b.Period().Overlaps(proposed) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out
}

// EnsureNoConflict turns a non-empty conflict set into a *booking.ConflictError.
func EnsureNoConflict(assetID uuid.UUID, proposed booking.TimeRange, bookings []*booking.Booking) error {
	if conflicts := Conflicts(assetID, proposed, bookings); len(conflicts) > 0 {
		return &booking.ConflictError{Conflicts: conflicts}
	}
	return nil
}

func sortByStart(bs []*booking.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		return bs[i].Period().Start().Before(bs[j].Period().Start())
	})
}
