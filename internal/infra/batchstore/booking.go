package batchstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/pkg/tracing"
	"pool-booking/internal/usecase/batch"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const bookingColumns = `
	id, asset_id, employee_id, start_at, end_at, purpose, status,
	returned, returned_at, return_condition, return_comments,
	created_at, updated_at`

type bookingRow struct {
	ID              uuid.UUID      `db:"id"`
	AssetID         uuid.UUID      `db:"asset_id"`
	EmployeeID      uuid.UUID      `db:"employee_id"`
	StartAt         time.Time      `db:"start_at"`
	EndAt           time.Time      `db:"end_at"`
	Purpose         sql.NullString `db:"purpose"`
	Status          string         `db:"status"`
	Returned        bool           `db:"returned"`
	ReturnedAt      pq.NullTime    `db:"returned_at"`
	ReturnCondition sql.NullString `db:"return_condition"`
	ReturnComments  sql.NullString `db:"return_comments"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r bookingRow) toDomain() (*booking.Booking, error) {
	period, err := booking.NewTimeRange(r.StartAt, r.EndAt)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", r.ID)
	}
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", r.ID)
	}

	var returnInfo *booking.ReturnInfo
	if r.Returned || r.ReturnedAt.Valid || r.ReturnCondition.Valid {
		ri := &booking.ReturnInfo{Returned: r.Returned}
		if r.ReturnedAt.Valid {
			ri.ReturnedAt = r.ReturnedAt.Time
		}
		if r.ReturnComments.Valid {
			c := r.ReturnComments.String
			ri.Comments = &c
		}
		if r.ReturnCondition.Valid {
			cond, err := booking.ParseCondition(r.ReturnCondition.String)
			if err != nil {
				return nil, errs.Wrapf(err, "booking %s", r.ID)
			}
			ri.Condition = cond
		}
		returnInfo = ri
	}

	var purpose booking.Purpose
	if r.Purpose.Valid {
		purpose = booking.NewPurpose(r.Purpose.String)
	}

	return booking.ReconstructBooking(
		r.ID, r.AssetID, r.EmployeeID,
		period, purpose, status, returnInfo,
		r.CreatedAt, r.UpdatedAt,
	)
}

var _ batch.ActivationStore = (*BookingStore)(nil)

// BookingStore is the database/sql side of the bookings tables, used by
// batch jobs that run outside the API process.
type BookingStore struct {
	db     *sqlx.DB
	traced bool
}

func NewBookingStore(db *sqlx.DB, traced bool) *BookingStore {
	return &BookingStore{db: db, traced: traced}
}

const listDueReserved = `
SELECT` + bookingColumns + `
FROM bookings
WHERE status = 'reserved' AND start_at <= $1
ORDER BY start_at, id
LIMIT $2`

func (s *BookingStore) ListDueReserved(ctx context.Context, now time.Time, limit int) ([]*booking.Booking, error) {
	ctx, span := tracing.Start(ctx, s.traced, "BookingStore.ListDueReserved")

	var rows []bookingRow
	if err := s.db.SelectContext(ctx, &rows, listDueReserved, now, limit); err != nil {
		span.End(err)
		return nil, infra.WrapRepoErr("failed to list due reserved bookings", err)
	}

	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			span.End(err)
			return nil, err
		}
		out = append(out, b)
	}
	span.AddMetadata("count", len(out))
	span.End(nil)
	return out, nil
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (s *BookingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx batch.ActivationTx) error) (err error) {
	ctx, span := tracing.Start(ctx, s.traced, "BookingStore.WithinTx")
	defer func() { span.End(err) }()

	sqlTx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}

	if err = fn(ctx, &bookingTx{tx: sqlTx, traced: s.traced}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return errs.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

type bookingTx struct {
	tx     *sqlx.Tx
	traced bool
}

func (t *bookingTx) LockAsset(ctx context.Context, assetID uuid.UUID) error {
	ctx, span := tracing.Start(ctx, t.traced, "BookingStore.LockAsset")

	// Same key as the API's advisory lock so both processes serialize per asset.
	_, err := t.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, assetID)
	span.End(err)
	if err != nil {
		return infra.WrapRepoErr("failed to lock asset", err)
	}
	return nil
}

func (t *bookingTx) BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	ctx, span := tracing.Start(ctx, t.traced, "BookingStore.BookingForUpdate")

	var row bookingRow
	err := t.tx.GetContext(ctx, &row, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	span.End(err)
	if err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking", err)
	}
	return row.toDomain()
}

func (t *bookingTx) UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error {
	ctx, span := tracing.Start(ctx, t.traced, "BookingStore.UpdateStatus")

	res, err := t.tx.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		b.ID(), b.Status().String(), b.UpdatedAt(), expected.String(),
	)
	if err != nil {
		span.End(err)
		return infra.WrapRepoErr("failed to update booking status", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		span.End(err)
		return infra.WrapRepoErr("failed to read affected rows", err)
	}
	if affected == 0 {
		err := infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
		span.End(err)
		return err
	}

	span.End(nil)
	return nil
}

func (t *bookingTx) AppendEvent(ctx context.Context, bookingID uuid.UUID, tr booking.Transition) error {
	ctx, span := tracing.Start(ctx, t.traced, "BookingStore.AppendEvent")

	var from sql.NullString
	if tr.From != nil {
		from = sql.NullString{String: tr.From.String(), Valid: true}
	}
	var detail []byte
	if len(tr.Detail) > 0 {
		var err error
		if detail, err = json.Marshal(tr.Detail); err != nil {
			span.End(err)
			return errs.Wrap(err, "marshal transition detail")
		}
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO booking_events (booking_id, event, from_status, to_status, occurred_at, detail)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		bookingID, tr.Event.String(), from, tr.To.String(), tr.OccurredAt, detail,
	)
	span.End(err)
	if err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}
	return nil
}

func (t *bookingTx) EnqueueJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	ctx, span := tracing.Start(ctx, t.traced, "BookingStore.EnqueueJob")

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO notification_jobs (kind, topic, payload, run_at, status) VALUES ($1, $2, $3, $4, 'queued')`,
		kind, topic, payload, runAt,
	)
	span.End(err)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
