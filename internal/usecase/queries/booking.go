package queries

import (
	"context"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra"
	"pool-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/mock_booking.go -package=queriesmock

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	History(ctx context.Context, id uuid.UUID) ([]*TransitionView, error)
	// ListByAsset returns non-canceled bookings of the asset overlapping [from, to).
	ListByAsset(ctx context.Context, assetID uuid.UUID, from, to time.Time) ([]*BookingView, error)
	// ListAllByAsset returns every booking of the asset, canceled included.
	ListAllByAsset(ctx context.Context, assetID uuid.UUID) ([]*BookingView, error)
	// ListOccupying returns non-canceled pool bookings overlapping [from, to).
	ListOccupying(ctx context.Context, from, to time.Time) ([]*booking.Booking, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	History(ctx context.Context, id uuid.UUID) ([]*TransitionView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, booking.ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]*TransitionView, error) {
	if _, err := q.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return q.store.History(ctx, id)
}

// toDomain rebuilds the booking behind a view so the availability engine
// can apply its occupancy rules.
func toDomain(v *BookingView) (*booking.Booking, error) {
	period, err := booking.NewTimeRange(v.StartDate, v.EndDate)
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(v.Status)
	if err != nil {
		return nil, err
	}

	var purpose booking.Purpose
	if v.Purpose != nil {
		purpose = booking.NewPurpose(*v.Purpose)
	}

	var ri *booking.ReturnInfo
	if v.ReturnInfo != nil {
		ri = &booking.ReturnInfo{
			Returned:   v.ReturnInfo.Returned,
			ReturnedAt: v.ReturnInfo.ReturnedAt,
			Condition:  booking.Condition(v.ReturnInfo.Condition),
			Comments:   v.ReturnInfo.Comments,
		}
	}

	return booking.ReconstructBooking(v.ID, v.AssetID, v.EmployeeID, period, purpose, status, ri, v.CreatedAt, v.UpdatedAt)
}
