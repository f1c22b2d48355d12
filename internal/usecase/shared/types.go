package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands independent of read-side query types.
type AssetSnapshot struct {
	ID           uuid.UUID
	Name         string
	IsPoolDevice bool
	Status       string
}

type EmployeeSnapshot struct {
	ID   uuid.UUID
	Name string
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

// OutboxJob is one queued lifecycle event awaiting publication.
type OutboxJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}
