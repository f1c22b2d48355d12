package pgsql

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Assets struct {
	ID           uuid.UUID
	Name         string
	IsPoolDevice bool
	Status       string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type Employees struct {
	ID        uuid.UUID
	Name      string
	Email     pgtype.Text
	CreatedAt pgtype.Timestamptz
}

type Bookings struct {
	ID              uuid.UUID
	AssetID         uuid.UUID
	EmployeeID      uuid.UUID
	StartAt         time.Time
	EndAt           time.Time
	Purpose         pgtype.Text
	Status          string
	Returned        bool
	ReturnedAt      pgtype.Timestamptz
	ReturnCondition pgtype.Text
	ReturnComments  pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type BookingViewRow struct {
	Bookings
	AssetName    string
	EmployeeName string
}

type BookingEvents struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	Event      string
	FromStatus pgtype.Text
	ToStatus   string
	OccurredAt pgtype.Timestamptz
	Detail     []byte
}

type NotificationJobs struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     pgtype.Timestamptz
	Attempts  int32
	Status    string
	LastError pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key              uuid.UUID
	Endpoint         string
	RequestHash      string
	ResponseBodyHash pgtype.Text
	Status           string
	ResultBookingID  pgtype.UUID
	ExpiresAt        pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}
