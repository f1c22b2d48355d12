package repository

import (
	"context"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	LockAsset(ctx context.Context, db pgsql.DBTX, assetID uuid.UUID) error
	CreateBooking(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateBookingParams) error
	UpdateBookingState(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateBookingStateParams) (int64, error)
	CreateBookingEvent(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateBookingEventParams) error
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      db.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db db.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) LockAsset(ctx context.Context, tx db.DBTX, assetID uuid.UUID) error {
	if err := r.queries.LockAsset(ctx, tx, assetID); err != nil {
		return infra.WrapRepoErr("failed to lock asset", err)
	}
	return nil
}

// Create maps an exclusion-constraint violation to KindConflict.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	params := converter.BookingToCreateParams(b)

	if err := r.queries.CreateBooking(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error {
	params := converter.BookingToUpdateParams(b, expected)

	affected, err := r.queries.UpdateBookingState(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking changed concurrently or not found", nil, infra.KindConflict)
	}

	return nil
}

func (r *BookingRepository) AppendEvent(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, tr booking.Transition) error {
	params, err := converter.TransitionToEventParams(bookingID, tr)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking event", err)
	}

	if err := r.queries.CreateBookingEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}

	return nil
}
