package pgsql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `b.id, b.asset_id, b.employee_id, b.start_at, b.end_at, b.purpose, b.status,
	b.returned, b.returned_at, b.return_condition, b.return_comments, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *Bookings, extra ...any) error {
	dest := []any{
		&b.ID, &b.AssetID, &b.EmployeeID, &b.StartAt, &b.EndAt, &b.Purpose, &b.Status,
		&b.Returned, &b.ReturnedAt, &b.ReturnCondition, &b.ReturnComments, &b.CreatedAt, &b.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func collectBookings(rows pgx.Rows) ([]Bookings, error) {
	defer rows.Close()
	var items []Bookings
	for rows.Next() {
		var b Bookings
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func collectBookingViews(rows pgx.Rows) ([]BookingViewRow, error) {
	defer rows.Close()
	var items []BookingViewRow
	for rows.Next() {
		var v BookingViewRow
		if err := scanBooking(rows, &v.Bookings, &v.AssetName, &v.EmployeeName); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

const lockAsset = `SELECT pg_advisory_xact_lock(hashtext($1::text))`

// LockAsset serializes writers of one asset until the surrounding transaction ends.
func (q *Queries) LockAsset(ctx context.Context, db DBTX, assetID uuid.UUID) error {
	_, err := db.Exec(ctx, lockAsset, assetID)
	return err
}

const createBooking = `
INSERT INTO bookings (
	id, asset_id, employee_id, start_at, end_at, purpose, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type CreateBookingParams struct {
	ID         uuid.UUID
	AssetID    uuid.UUID
	EmployeeID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Purpose    pgtype.Text
	Status     string
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID, arg.AssetID, arg.EmployeeID, arg.StartAt, arg.EndAt,
		arg.Purpose, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const updateBookingState = `
UPDATE bookings
SET status = $2,
	returned = $3,
	returned_at = $4,
	return_condition = $5,
	return_comments = $6,
	updated_at = $7
WHERE id = $1 AND status = $8`

type UpdateBookingStateParams struct {
	ID              uuid.UUID
	Status          string
	Returned        bool
	ReturnedAt      pgtype.Timestamptz
	ReturnCondition pgtype.Text
	ReturnComments  pgtype.Text
	UpdatedAt       pgtype.Timestamptz
	// ExpectedStatus guards against a concurrent transition.
	ExpectedStatus string
}

func (q *Queries) UpdateBookingState(ctx context.Context, db DBTX, arg UpdateBookingStateParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingState,
		arg.ID, arg.Status, arg.Returned, arg.ReturnedAt,
		arg.ReturnCondition, arg.ReturnComments, arg.UpdatedAt, arg.ExpectedStatus,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getBookingByID = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	var b Bookings
	err := scanBooking(db.QueryRow(ctx, getBookingByID, id), &b)
	return b, err
}

const getBookingByIDForUpdate = getBookingByID + ` FOR UPDATE`

func (q *Queries) GetBookingByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	var b Bookings
	err := scanBooking(db.QueryRow(ctx, getBookingByIDForUpdate, id), &b)
	return b, err
}

const getBookingViewByID = `
SELECT ` + bookingColumns + `, a.name, e.name
FROM bookings b
JOIN assets a ON a.id = b.asset_id
JOIN employees e ON e.id = b.employee_id
WHERE b.id = $1`

func (q *Queries) GetBookingViewByID(ctx context.Context, db DBTX, id uuid.UUID) (BookingViewRow, error) {
	var v BookingViewRow
	err := scanBooking(db.QueryRow(ctx, getBookingViewByID, id), &v.Bookings, &v.AssetName, &v.EmployeeName)
	return v, err
}

const listHoldingBookingsByAsset = `
SELECT ` + bookingColumns + `
FROM bookings b
WHERE b.asset_id = $1
  AND b.status IN ('reserved', 'active')
  AND tstzrange(b.start_at, b.end_at, '[)') && tstzrange($2::timestamptz, $3::timestamptz, '[)')
ORDER BY b.start_at`

type ListBookingsByAssetParams struct {
	AssetID uuid.UUID
	From    time.Time
	To      time.Time
}

// ListHoldingBookingsByAsset returns reserved and active bookings overlapping [From, To).
func (q *Queries) ListHoldingBookingsByAsset(ctx context.Context, db DBTX, arg ListBookingsByAssetParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listHoldingBookingsByAsset, arg.AssetID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

const listOccupyingBookingsByAsset = `
SELECT ` + bookingColumns + `, a.name, e.name
FROM bookings b
JOIN assets a ON a.id = b.asset_id
JOIN employees e ON e.id = b.employee_id
WHERE b.asset_id = $1
  AND b.status <> 'canceled'
  AND tstzrange(b.start_at, b.end_at, '[)') && tstzrange($2::timestamptz, $3::timestamptz, '[)')
ORDER BY b.start_at`

// ListOccupyingBookingsByAsset returns every non-canceled booking of the asset overlapping [From, To).
func (q *Queries) ListOccupyingBookingsByAsset(ctx context.Context, db DBTX, arg ListBookingsByAssetParams) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listOccupyingBookingsByAsset, arg.AssetID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}

const listBookingsByAsset = `
SELECT ` + bookingColumns + `, a.name, e.name
FROM bookings b
JOIN assets a ON a.id = b.asset_id
JOIN employees e ON e.id = b.employee_id
WHERE b.asset_id = $1
ORDER BY b.start_at`

// ListBookingsByAsset returns every booking of the asset in any status.
func (q *Queries) ListBookingsByAsset(ctx context.Context, db DBTX, assetID uuid.UUID) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listBookingsByAsset, assetID)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}

const listOccupyingBookings = `
SELECT ` + bookingColumns + `
FROM bookings b
JOIN assets a ON a.id = b.asset_id
WHERE a.is_pool_device
  AND b.status <> 'canceled'
  AND tstzrange(b.start_at, b.end_at, '[)') && tstzrange($1::timestamptz, $2::timestamptz, '[)')
ORDER BY b.asset_id, b.start_at`

type ListBookingsInRangeParams struct {
	From time.Time
	To   time.Time
}

// ListOccupyingBookings returns every non-canceled pool booking overlapping [From, To).
func (q *Queries) ListOccupyingBookings(ctx context.Context, db DBTX, arg ListBookingsInRangeParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listOccupyingBookings, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

const createBookingEvent = `
INSERT INTO booking_events (booking_id, event, from_status, to_status, occurred_at, detail)
VALUES ($1, $2, $3, $4, $5, $6)`

type CreateBookingEventParams struct {
	BookingID  uuid.UUID
	Event      string
	FromStatus pgtype.Text
	ToStatus   string
	OccurredAt pgtype.Timestamptz
	Detail     []byte
}

func (q *Queries) CreateBookingEvent(ctx context.Context, db DBTX, arg CreateBookingEventParams) error {
	_, err := db.Exec(ctx, createBookingEvent,
		arg.BookingID, arg.Event, arg.FromStatus, arg.ToStatus, arg.OccurredAt, arg.Detail,
	)
	return err
}

const listBookingEvents = `
SELECT id, booking_id, event, from_status, to_status, occurred_at, detail
FROM booking_events
WHERE booking_id = $1
ORDER BY occurred_at, id`

func (q *Queries) ListBookingEvents(ctx context.Context, db DBTX, bookingID uuid.UUID) ([]BookingEvents, error) {
	rows, err := db.Query(ctx, listBookingEvents, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BookingEvents
	for rows.Next() {
		var e BookingEvents
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Event, &e.FromStatus, &e.ToStatus, &e.OccurredAt, &e.Detail); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
