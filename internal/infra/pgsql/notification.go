package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   pgtype.Timestamptz
	Status  string
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt, arg.Status)
	return err
}

const claimQueuedNotificationJobs = `
SELECT id, kind, topic, payload, run_at, attempts, status, last_error, created_at, updated_at
FROM notification_jobs
WHERE status = 'queued' AND run_at <= $1
ORDER BY run_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED`

type ClaimQueuedNotificationJobsParams struct {
	Now   pgtype.Timestamptz
	Limit int32
}

// ClaimQueuedNotificationJobs locks due jobs so concurrent relays never pick the same row.
func (q *Queries) ClaimQueuedNotificationJobs(ctx context.Context, db DBTX, arg ClaimQueuedNotificationJobsParams) ([]NotificationJobs, error) {
	rows, err := db.Query(ctx, claimQueuedNotificationJobs, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []NotificationJobs
	for rows.Next() {
		var j NotificationJobs
		if err := rows.Scan(
			&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt, &j.Attempts,
			&j.Status, &j.LastError, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

const updateNotificationJobStatus = `
UPDATE notification_jobs
SET status = $2,
	last_error = $3,
	attempts = attempts + $4,
	run_at = COALESCE($5, run_at),
	updated_at = now()
WHERE id = $1`

type UpdateNotificationJobStatusParams struct {
	ID        uuid.UUID
	Status    string
	LastError pgtype.Text
	// AttemptDelta is added to the attempt counter.
	AttemptDelta int32
	// NextRunAt reschedules a job that stays queued.
	NextRunAt pgtype.Timestamptz
}

func (q *Queries) UpdateNotificationJobStatus(ctx context.Context, db DBTX, arg UpdateNotificationJobStatusParams) error {
	_, err := db.Exec(ctx, updateNotificationJobStatus,
		arg.ID, arg.Status, arg.LastError, arg.AttemptDelta, arg.NextRunAt,
	)
	return err
}
