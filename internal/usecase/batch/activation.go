package batch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pool-booking/internal/domain/booking"
	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/infra"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/pkg/tracing"
	"pool-booking/internal/usecase/commands"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/google/uuid"
)

const defaultActivationBatchSize = 500

type ActivationStore interface {
	// ListDueReserved returns reserved bookings whose start is at or before now.
	ListDueReserved(ctx context.Context, now time.Time, limit int) ([]*booking.Booking, error)
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx ActivationTx) error) error
}

type ActivationTx interface {
	LockAsset(ctx context.Context, assetID uuid.UUID) error
	BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus persists b when its stored status still equals expected.
	UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error
	AppendEvent(ctx context.Context, bookingID uuid.UUID, tr booking.Transition) error
	EnqueueJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// TaskNotifier is the part of the Step Functions client the batch reports to.
type TaskNotifier interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
	SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error)
}

type ActivationOptions struct {
	// TaskToken is reported back to Step Functions. Empty disables the callback.
	TaskToken string
	BatchSize int
	Tracing   bool
}

type ActivatedBooking struct {
	BookingID   uuid.UUID `json:"bookingId"`
	AssetID     uuid.UUID `json:"assetId"`
	EmployeeID  uuid.UUID `json:"employeeId"`
	StartDate   time.Time `json:"startDate"`
	ActivatedAt time.Time `json:"activatedAt"`
}

type ActivationReport struct {
	Activated []ActivatedBooking `json:"activated"`
	Skipped   int                `json:"skipped"`
	Failed    int                `json:"failed"`
}

// ActivationService moves reserved bookings to active once their start has
// passed. Each booking commits in its own transaction, so one failure
// leaves the rest of the batch unaffected.
type ActivationService struct {
	store      ActivationStore
	controller *lifecycle.Controller
	clock      clock.Clock
	notifier   TaskNotifier
	opts       ActivationOptions
	logger     *slog.Logger
}

// NewActivationService accepts a nil notifier for local runs.
func NewActivationService(
	store ActivationStore,
	controller *lifecycle.Controller,
	clk clock.Clock,
	notifier TaskNotifier,
	opts ActivationOptions,
	logger *slog.Logger,
) *ActivationService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultActivationBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivationService{
		store:      store,
		controller: controller,
		clock:      clk,
		notifier:   notifier,
		opts:       opts,
		logger:     logger,
	}
}

func (s *ActivationService) Run(ctx context.Context) (err error) {
	ctx, span := tracing.Start(ctx, s.opts.Tracing, "ActivationService.Run")
	defer func() { span.End(err) }()

	started := s.clock.Now()

	report, err := s.ActivateDue(ctx)
	if err != nil {
		return errs.Wrap(err, "activate due bookings")
	}

	if err := s.sendTaskSuccess(ctx, report); err != nil {
		return errs.Wrap(err, "send task success")
	}

	duration := s.clock.Now().Sub(started)
	span.AddMetadata("duration", duration.String())
	span.AddMetadata("activated", len(report.Activated))
	s.logger.Info("activation batch completed",
		"activated", len(report.Activated),
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", duration.String())
	return nil
}

// ActivateDue activates every due reserved booking it can and reports the rest.
func (s *ActivationService) ActivateDue(ctx context.Context) (*ActivationReport, error) {
	due, err := s.store.ListDueReserved(ctx, s.clock.Now(), s.opts.BatchSize)
	if err != nil {
		return nil, err
	}
	s.logger.Info("found due reserved bookings", "count", len(due))

	report := &ActivationReport{Activated: []ActivatedBooking{}}
	for _, candidate := range due {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		activated, err := s.activateOne(ctx, candidate)
		switch {
		case err != nil:
			report.Failed++
			s.logger.Error("failed to activate booking",
				"booking_id", candidate.ID().String(),
				"error", err.Error())
		case activated == nil:
			report.Skipped++
		default:
			report.Activated = append(report.Activated, *activated)
		}
	}
	return report, nil
}

// activateOne returns nil when the booking no longer needs activation.
func (s *ActivationService) activateOne(ctx context.Context, candidate *booking.Booking) (*ActivatedBooking, error) {
	var activated *ActivatedBooking
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ActivationTx) error {
		if err := tx.LockAsset(ctx, candidate.AssetID()); err != nil {
			return err
		}

		b, err := tx.BookingForUpdate(ctx, candidate.ID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, booking.ErrBookingNotFound)
			}
			return err
		}
		if b.Status() != booking.StatusReserved {
			return nil
		}

		res, ok, err := s.controller.ActivateIfDue(b)
		if err != nil || !ok {
			return err
		}

		if err := tx.UpdateStatus(ctx, res.Booking, booking.StatusReserved); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, commands.ErrBookingChanged)
			}
			return err
		}
		if err := tx.AppendEvent(ctx, res.Booking.ID(), res.Transition); err != nil {
			return err
		}

		topic, payload, err := commands.NewBookingEventPayload(res)
		if err != nil {
			return errs.Wrap(err, "encode booking event")
		}
		if err := tx.EnqueueJob(ctx, commands.NotificationKindBookingEvent, topic, payload, res.Transition.OccurredAt); err != nil {
			return err
		}

		activated = &ActivatedBooking{
			BookingID:   res.Booking.ID(),
			AssetID:     res.Booking.AssetID(),
			EmployeeID:  res.Booking.EmployeeID(),
			StartDate:   res.Booking.Period().Start(),
			ActivatedAt: res.Transition.OccurredAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}

func (s *ActivationService) sendTaskSuccess(ctx context.Context, report *ActivationReport) error {
	if s.notifier == nil || s.opts.TaskToken == "" {
		s.logger.Info("no Step Functions task token, skipping task success callback")
		return nil
	}

	output, err := json.Marshal(report)
	if err != nil {
		return errs.Wrap(err, "marshal activation report")
	}

	_, err = s.notifier.SendTaskSuccess(ctx, &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(s.opts.TaskToken),
		Output:    aws.String(string(output)),
	})
	return err
}

// ReportFailure tells Step Functions the batch failed. It is a no-op without a task token.
func (s *ActivationService) ReportFailure(ctx context.Context, cause error) error {
	if s.notifier == nil || s.opts.TaskToken == "" {
		return nil
	}
	_, err := s.notifier.SendTaskFailure(ctx, &sfn.SendTaskFailureInput{
		TaskToken: aws.String(s.opts.TaskToken),
		Error:     aws.String("ActivationBatchFailed"),
		Cause:     aws.String(cause.Error()),
	})
	return err
}
