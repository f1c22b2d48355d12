package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"pool-booking/internal/domain/asset"
	"pool-booking/internal/domain/booking"
	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/infra"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createBookingEndpoint = "POST /api/bookings"
	idempotencyTTL        = 24 * time.Hour
)

var (
	ErrEmployeeNotFound      = errs.New("employee not found")
	ErrIdempotencyInProgress = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused  = errs.New("idempotency key reused with a different request")
	ErrBookingChanged        = errs.New("booking changed concurrently")
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/mock_booking.go -package=commandsmock

type CreateBookingInput struct {
	AssetID    uuid.UUID `json:"assetId"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Purpose    string    `json:"purpose"`
}

type ReturnBookingInput struct {
	Condition string
	Comments  *string
}

type CreateBookingResult struct {
	BookingID  uuid.UUID
	IsReplayed bool
}

type TransitionResult struct {
	BookingID     uuid.UUID
	Status        booking.Status
	ReturnSkipped bool
}

type BookingCommands interface {
	// Create books an asset. A non-nil idempotencyKey makes retries replay the first result.
	Create(ctx context.Context, in CreateBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	Activate(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error)
	Return(ctx context.Context, bookingID uuid.UUID, in ReturnBookingInput) (*TransitionResult, error)
}

type bookingUseCaseImpl struct {
	uow        shared.UnitOfWork
	controller *lifecycle.Controller
	clock      clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, controller *lifecycle.Controller, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:        uow,
		controller: controller,
		clock:      clk,
	}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, in CreateBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error) {
	if _, err := booking.NewTimeRange(in.Start, in.End); err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(in)

	var result *CreateBookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		if idempotencyKey != nil {
			replayed, derr := uc.claimIdempotencyKey(ctx, tx, *idempotencyKey, requestHash)
			if derr != nil {
				return derr
			}
			if replayed != nil {
				result = &CreateBookingResult{BookingID: *replayed, IsReplayed: true}
				return nil
			}
		}

		if derr := uc.ensureBookable(ctx, tx, in.AssetID, in.EmployeeID); derr != nil {
			return derr
		}

		if derr := tx.Bookings().LockAsset(ctx, tx.DB(), in.AssetID); derr != nil {
			return derr
		}

		existing, derr := tx.Reads().HoldingBookings(ctx, in.AssetID, in.Start, in.End)
		if derr != nil {
			return derr
		}

		res, derr := uc.controller.Create(lifecycle.CreateParams{
			AssetID:    in.AssetID,
			EmployeeID: in.EmployeeID,
			Start:      in.Start,
			End:        in.End,
			Purpose:    in.Purpose,
		}, existing)
		if derr != nil {
			return derr
		}

		if derr = tx.Bookings().Create(ctx, tx.DB(), res.Booking); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return errs.Mark(derr, booking.ErrSchedulingConflict)
			}
			return derr
		}

		if derr = uc.record(ctx, tx, res); derr != nil {
			return derr
		}

		if idempotencyKey != nil {
			derr = tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *idempotencyKey, calculateIDHash(res.Booking.ID()), res.Booking.ID())
			if derr != nil {
				return derr
			}
		}

		result = &CreateBookingResult{BookingID: res.Booking.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *bookingUseCaseImpl) Activate(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error) {
	return uc.transition(ctx, bookingID, uc.controller.Activate)
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID uuid.UUID) (*TransitionResult, error) {
	return uc.transition(ctx, bookingID, uc.controller.Cancel)
}

func (uc *bookingUseCaseImpl) Return(ctx context.Context, bookingID uuid.UUID, in ReturnBookingInput) (*TransitionResult, error) {
	// The condition is validated by the aggregate after the state check.
	condition := booking.Condition(in.Condition)

	return uc.transition(ctx, bookingID, func(b *booking.Booking) (*lifecycle.Result, error) {
		return uc.controller.Return(b, condition, in.Comments)
	})
}

func (uc *bookingUseCaseImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	step func(*booking.Booking) (*lifecycle.Result, error),
) (*TransitionResult, error) {
	var result *TransitionResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, booking.ErrBookingNotFound)
			}
			return derr
		}

		expected := b.Status()
		res, derr := step(b)
		if derr != nil {
			return derr
		}

		if derr = tx.Bookings().Update(ctx, tx.DB(), res.Booking, expected); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return errs.Mark(derr, ErrBookingChanged)
			}
			return derr
		}

		if derr = uc.record(ctx, tx, res); derr != nil {
			return derr
		}

		result = &TransitionResult{
			BookingID:     res.Booking.ID(),
			Status:        res.Booking.Status(),
			ReturnSkipped: res.ReturnSkipped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// record appends the audit row and queues the outbox message for one step.
func (uc *bookingUseCaseImpl) record(ctx context.Context, tx shared.Tx, res *lifecycle.Result) error {
	if err := tx.Bookings().AppendEvent(ctx, tx.DB(), res.Booking.ID(), res.Transition); err != nil {
		return err
	}

	topic, payload, err := NewBookingEventPayload(res)
	if err != nil {
		return errs.Wrap(err, "encode booking event")
	}

	return tx.Notifications().CreateJob(ctx, tx.DB(), NotificationKindBookingEvent, topic, payload, uc.clock.Now())
}

func (uc *bookingUseCaseImpl) ensureBookable(ctx context.Context, tx shared.Tx, assetID, employeeID uuid.UUID) error {
	snap, err := tx.Reads().AssetByID(ctx, assetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, asset.ErrAssetNotFound)
		}
		return err
	}

	a, err := asset.NewAsset(snap.ID, snap.Name, snap.IsPoolDevice, snap.Status)
	if err != nil {
		return err
	}
	if err := a.EnsureBookable(); err != nil {
		return err
	}

	if _, err := tx.Reads().EmployeeByID(ctx, employeeID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrEmployeeNotFound)
		}
		return err
	}

	return nil
}

// claimIdempotencyKey returns the booking of a completed earlier request
// with the same key, or nil when this request owns the key.
func (uc *bookingUseCaseImpl) claimIdempotencyKey(ctx context.Context, tx shared.Tx, key uuid.UUID, requestHash string) (*uuid.UUID, error) {
	expiresAt := uc.clock.Now().Add(idempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, createBookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	claimed, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		return existing.ResultBookingID, nil
	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func calculateRequestHash(in CreateBookingInput) string {
	in.Start = in.Start.UTC()
	in.End = in.End.UTC()
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
