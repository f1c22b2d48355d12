package converter

import (
	"encoding/json"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func BookingToCreateParams(b *booking.Booking) pgsql.CreateBookingParams {
	return pgsql.CreateBookingParams{
		ID:         b.ID(),
		AssetID:    b.AssetID(),
		EmployeeID: b.EmployeeID(),
		StartAt:    b.Period().Start(),
		EndAt:      b.Period().End(),
		Purpose:    pgconv.OptionalStringToPgtype(b.Purpose().String()),
		Status:     b.Status().String(),
		CreatedAt:  pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

// BookingToUpdateParams writes the current state of b, guarded by the status it had when loaded.
func BookingToUpdateParams(b *booking.Booking, expected booking.Status) pgsql.UpdateBookingStateParams {
	params := pgsql.UpdateBookingStateParams{
		ID:             b.ID(),
		Status:         b.Status().String(),
		UpdatedAt:      pgconv.TimeToPgtype(b.UpdatedAt()),
		ExpectedStatus: expected.String(),
	}

	if ri := b.ReturnInfo(); ri != nil {
		params.Returned = ri.Returned
		params.ReturnedAt = pgconv.OptionalTimeToPgtype(ri.ReturnedAt)
		params.ReturnCondition = pgconv.OptionalStringToPgtype(ri.Condition.String())
		params.ReturnComments = pgconv.StringPtrToPgtype(ri.Comments)
	}

	return params
}

func BookingFromRow(row pgsql.Bookings) (*booking.Booking, error) {
	period, err := booking.NewTimeRange(row.StartAt, row.EndAt)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}

	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}

	var returnInfo *booking.ReturnInfo
	if row.Returned || row.ReturnedAt.Valid || row.ReturnCondition.Valid {
		ri := &booking.ReturnInfo{
			Returned:   row.Returned,
			ReturnedAt: pgconv.TimeFromPgtype(row.ReturnedAt),
			Comments:   pgconv.StringPtrFromPgtype(row.ReturnComments),
		}
		if row.ReturnCondition.Valid {
			cond, err := booking.ParseCondition(row.ReturnCondition.String)
			if err != nil {
				return nil, errs.Wrapf(err, "booking %s", row.ID)
			}
			ri.Condition = cond
		}
		returnInfo = ri
	}

	var purpose booking.Purpose
	if row.Purpose.Valid {
		purpose = booking.NewPurpose(row.Purpose.String)
	}

	return booking.ReconstructBooking(
		row.ID,
		row.AssetID,
		row.EmployeeID,
		period,
		purpose,
		status,
		returnInfo,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func BookingsFromRows(rows []pgsql.Bookings) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := BookingFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func TransitionToEventParams(bookingID uuid.UUID, tr booking.Transition) (pgsql.CreateBookingEventParams, error) {
	params := pgsql.CreateBookingEventParams{
		BookingID:  bookingID,
		Event:      tr.Event.String(),
		ToStatus:   tr.To.String(),
		OccurredAt: pgconv.TimeToPgtype(tr.OccurredAt),
	}

	if tr.From != nil {
		params.FromStatus = pgconv.StringToPgtype(tr.From.String())
	} else {
		params.FromStatus = pgtype.Text{Valid: false}
	}

	if len(tr.Detail) > 0 {
		detail, err := json.Marshal(tr.Detail)
		if err != nil {
			return pgsql.CreateBookingEventParams{}, errs.Wrap(err, "marshal transition detail")
		}
		params.Detail = detail
	}

	return params, nil
}
