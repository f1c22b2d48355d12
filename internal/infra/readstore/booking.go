package readstore

import (
	"context"
	"encoding/json"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/infra/repository/converter"
	"pool-booking/internal/pkg/pgconv"
	"pool-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/readstore/mock_booking.go -package=readstoremock

type BookingReadQueries interface {
	GetBookingByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Bookings, error)
	GetBookingByIDForUpdate(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Bookings, error)
	GetBookingViewByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.BookingViewRow, error)
	ListHoldingBookingsByAsset(ctx context.Context, db pgsql.DBTX, arg pgsql.ListBookingsByAssetParams) ([]pgsql.Bookings, error)
	ListOccupyingBookingsByAsset(ctx context.Context, db pgsql.DBTX, arg pgsql.ListBookingsByAssetParams) ([]pgsql.BookingViewRow, error)
	ListBookingsByAsset(ctx context.Context, db pgsql.DBTX, assetID uuid.UUID) ([]pgsql.BookingViewRow, error)
	ListOccupyingBookings(ctx context.Context, db pgsql.DBTX, arg pgsql.ListBookingsInRangeParams) ([]pgsql.Bookings, error)
	ListBookingEvents(ctx context.Context, db pgsql.DBTX, bookingID uuid.UUID) ([]pgsql.BookingEvents, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      db.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db db.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return rowToBookingView(row), nil
}

func (r *BookingReadStore) History(ctx context.Context, id uuid.UUID) ([]*queries.TransitionView, error) {
	rows, err := r.queries.ListBookingEvents(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking events", err)
	}

	result := make([]*queries.TransitionView, 0, len(rows))
	for _, row := range rows {
		view := &queries.TransitionView{
			Event:      row.Event,
			From:       pgconv.StringPtrFromPgtype(row.FromStatus),
			To:         row.ToStatus,
			OccurredAt: pgconv.TimeFromPgtype(row.OccurredAt),
		}
		if len(row.Detail) > 0 {
			if err := json.Unmarshal(row.Detail, &view.Detail); err != nil {
				return nil, infra.WrapRepoErr("failed to decode booking event detail", err)
			}
		}
		result = append(result, view)
	}

	return result, nil
}

// ListByAsset returns the non-canceled bookings of assetID overlapping [from, to).
func (r *BookingReadStore) ListByAsset(ctx context.Context, assetID uuid.UUID, from, to time.Time) ([]*queries.BookingView, error) {
	params := pgsql.ListBookingsByAssetParams{
		AssetID: assetID,
		From:    from,
		To:      to,
	}

	rows, err := r.queries.ListOccupyingBookingsByAsset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by asset", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = rowToBookingView(row)
	}

	return result, nil
}

func (r *BookingReadStore) ListAllByAsset(ctx context.Context, assetID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByAsset(ctx, r.db, assetID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list all bookings by asset", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = rowToBookingView(row)
	}

	return result, nil
}

// ListOccupying returns every non-canceled pool booking overlapping [from, to).
func (r *BookingReadStore) ListOccupying(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	params := pgsql.ListBookingsInRangeParams{
		From: from,
		To:   to,
	}

	rows, err := r.queries.ListOccupyingBookings(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings in range", err)
	}

	bookings, err := converter.BookingsFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct bookings", err)
	}

	return bookings, nil
}

func (r *BookingReadStore) FindDomainByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*booking.Booking, error) {
	get := r.queries.GetBookingByID
	if forUpdate {
		get = r.queries.GetBookingByIDForUpdate
	}

	row, err := get(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking", err)
	}

	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct booking", err)
	}

	return b, nil
}

func (r *BookingReadStore) ListHolding(ctx context.Context, assetID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	params := pgsql.ListBookingsByAssetParams{
		AssetID: assetID,
		From:    from,
		To:      to,
	}

	rows, err := r.queries.ListHoldingBookingsByAsset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list holding bookings", err)
	}

	bookings, err := converter.BookingsFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct bookings", err)
	}

	return bookings, nil
}

func rowToBookingView(row pgsql.BookingViewRow) *queries.BookingView {
	view := &queries.BookingView{
		ID:           row.ID,
		AssetID:      row.AssetID,
		AssetName:    row.AssetName,
		EmployeeID:   row.EmployeeID,
		EmployeeName: row.EmployeeName,
		StartDate:    row.StartAt,
		EndDate:      row.EndAt,
		Purpose:      pgconv.StringPtrFromPgtype(row.Purpose),
		Status:       row.Status,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	if row.Returned || row.ReturnedAt.Valid {
		view.ReturnInfo = &queries.ReturnInfoView{
			Returned:   row.Returned,
			ReturnedAt: pgconv.TimeFromPgtype(row.ReturnedAt),
			Condition:  row.ReturnCondition.String,
			Comments:   pgconv.StringPtrFromPgtype(row.ReturnComments),
		}
	}

	return view
}
