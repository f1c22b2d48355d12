package outbox

import (
	"context"
	"log/slog"
	"time"

	"pool-booking/internal/infra/db"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/config"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxRetryDelay = 5 * time.Minute

type JobStore interface {
	// ClaimDue row-locks due jobs; tx must be a transaction.
	ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]shared.OutboxJob, error)
	MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, cause error, retryAt time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, messageID uuid.UUID, body []byte) error
}

// Relay moves committed notification jobs to the broker. Delivery is at
// least once: a crash between publish and commit republishes the job.
type Relay struct {
	uow    shared.UnitOfWork
	store  JobStore
	pub    Publisher
	clock  clock.Clock
	cfg    config.BrokerConfig
	logger *slog.Logger
}

func NewRelay(uow shared.UnitOfWork, store JobStore, pub Publisher, clk clock.Clock, cfg config.BrokerConfig, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{uow: uow, store: store, pub: pub, clock: clk, cfg: cfg, logger: logger}
}

type DrainStats struct {
	Sent    int
	Retried int
	Failed  int
}

// DrainOnce publishes one batch of due jobs. A publish failure is recorded
// on the job and does not abort the batch.
func (r *Relay) DrainOnce(ctx context.Context) (DrainStats, error) {
	var stats DrainStats
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stats = DrainStats{}
		now := r.clock.Now()

		jobs, err := r.store.ClaimDue(ctx, tx.DB(), now, r.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			pubErr := r.pub.Publish(ctx, job.Topic, job.ID, job.Payload)
			if pubErr == nil {
				if err := r.store.MarkSent(ctx, tx.DB(), job.ID); err != nil {
					return err
				}
				stats.Sent++
				continue
			}

			retryAt := r.nextAttemptAt(job, now)
			if retryAt.IsZero() {
				stats.Failed++
				r.logger.Error("notification job failed permanently",
					"job_id", job.ID.String(),
					"topic", job.Topic,
					"attempts", job.Attempts+1,
					"error", pubErr.Error())
			} else {
				stats.Retried++
				r.logger.Warn("notification job publish failed, retrying",
					"job_id", job.ID.String(),
					"topic", job.Topic,
					"retry_at", retryAt)
			}
			if err := r.store.MarkFailed(ctx, tx.DB(), job.ID, pubErr, retryAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return DrainStats{}, errs.Wrap(err, "drain outbox")
	}
	return stats, nil
}

// Run drains on every poll tick until ctx is canceled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		stats, err := r.DrainOnce(ctx)
		if err != nil {
			r.logger.Error("outbox drain failed", "error", err.Error())
		} else if stats.Sent+stats.Retried+stats.Failed > 0 {
			r.logger.Info("outbox drained",
				"sent", stats.Sent,
				"retried", stats.Retried,
				"failed", stats.Failed)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// nextAttemptAt doubles the delay per attempt. Zero means give up.
func (r *Relay) nextAttemptAt(job shared.OutboxJob, now time.Time) time.Time {
	attempts := job.Attempts + 1
	if r.cfg.MaxAttempts > 0 && attempts >= r.cfg.MaxAttempts {
		return time.Time{}
	}
	return now.Add(RetryDelay(attempts))
}

func RetryDelay(attempts int32) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	if attempts > 16 {
		return maxRetryDelay
	}
	d := time.Second << (attempts - 1)
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}
