package repository

import (
	"context"
	"time"

	"pool-booking/internal/infra"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/infra/pgsql"
	"pool-booking/internal/pkg/pgconv"
	"pool-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateNotificationJobParams) error
	ClaimQueuedNotificationJobs(ctx context.Context, db pgsql.DBTX, arg pgsql.ClaimQueuedNotificationJobsParams) ([]pgsql.NotificationJobs, error)
	UpdateNotificationJobStatus(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      db.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db db.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := pgsql.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  JobStatusQueued,
	}

	err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

// ClaimDue locks up to limit queued jobs whose run_at has passed. tx must be a transaction.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]shared.OutboxJob, error) {
	params := pgsql.ClaimQueuedNotificationJobsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: limit,
	}

	rows, err := r.queries.ClaimQueuedNotificationJobs(ctx, tx, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.OutboxJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.OutboxJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: row.Attempts,
		}
	}

	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, jobID uuid.UUID) error {
	return r.UpdateJobStatus(ctx, tx, jobID, JobStatusSent, nil, 1, time.Time{})
}

// MarkFailed requeues the job at retryAt, or fails it for good when retryAt is zero.
func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, jobID uuid.UUID, cause error, retryAt time.Time) error {
	msg := cause.Error()
	status := JobStatusFailed
	if !retryAt.IsZero() {
		status = JobStatusQueued
	}
	return r.UpdateJobStatus(ctx, tx, jobID, status, &msg, 1, retryAt)
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError *string, attemptDelta int32, nextRunAt time.Time) error {
	params := pgsql.UpdateNotificationJobStatusParams{
		ID:           jobID,
		Status:       status,
		AttemptDelta: attemptDelta,
		NextRunAt:    pgconv.OptionalTimeToPgtype(nextRunAt),
	}

	if lastError != nil {
		params.LastError = pgtype.Text{String: *lastError, Valid: true}
	} else {
		params.LastError = pgtype.Text{Valid: false}
	}

	err := r.queries.UpdateNotificationJobStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}

	return nil
}
