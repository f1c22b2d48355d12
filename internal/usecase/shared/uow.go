package shared

import (
	"context"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	AssetByID(ctx context.Context, id uuid.UUID) (*AssetSnapshot, error)
	EmployeeByID(ctx context.Context, id uuid.UUID) (*EmployeeSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// BookingByIDForUpdate row-locks the booking for the rest of the transaction.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// HoldingBookings returns reserved and active bookings of the asset overlapping [from, to).
	HoldingBookings(ctx context.Context, assetID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	// LockAsset serializes create/activate on one asset for the rest of the transaction.
	LockAsset(ctx context.Context, tx db.DBTX, assetID uuid.UUID) error
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	// Update persists b when its stored status still equals expected.
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error
	AppendEvent(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, tr booking.Transition) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key is already taken.
	TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error
	// ClaimExpired takes over an expired key; false means it has not expired.
	ClaimExpired(ctx context.Context, tx db.DBTX, key uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
