package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"pool-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxCommentsLength counts characters, not bytes.
const MaxCommentsLength = 1000

var transitions = map[Status]map[Event]Status{
	StatusReserved: {
		EventActivate: StatusActive,
		EventCancel:   StatusCanceled,
	},
	StatusActive: {
		EventCancel: StatusCanceled,
		EventReturn: StatusCompleted,
	},
}

// Next returns the state reached by applying ev in from.
func Next(from Status, ev Event) (Status, bool) {
	to, ok := transitions[from][ev]
	return to, ok
}

type Booking struct {
	id         uuid.UUID
	assetID    uuid.UUID
	employeeID uuid.UUID
	period     TimeRange
	purpose    Purpose
	status     Status
	returnInfo *ReturnInfo
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(
	assetID, employeeID uuid.UUID,
	period TimeRange,
	purpose Purpose,
	initial Status,
	now time.Time,
) (*Booking, error) {
	if period.IsZero() {
		return nil, ErrInvalidRange
	}
	if initial != StatusReserved && initial != StatusActive {
		return nil, errs.Mark(errs.Newf("initial status %q", initial), ErrInvalidStatus)
	}

	return &Booking{
		id:         uuid.New(),
		assetID:    assetID,
		employeeID: employeeID,
		period:     period,
		purpose:    purpose,
		status:     initial,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, assetID, employeeID uuid.UUID,
	period TimeRange,
	purpose Purpose,
	status Status,
	returnInfo *ReturnInfo,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if returnInfo != nil && returnInfo.Returned && status != StatusCompleted {
		return nil, errs.Mark(errs.Newf("booking %s is returned but %s", id, status), ErrInvalidStatus)
	}
	if status == StatusCanceled && returnInfo != nil {
		return nil, errs.Mark(errs.Newf("canceled booking %s carries return info", id), ErrInvalidStatus)
	}

	return &Booking{
		id:         id,
		assetID:    assetID,
		employeeID: employeeID,
		period:     period,
		purpose:    purpose,
		status:     status,
		returnInfo: returnInfo,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (b *Booking) Activate(now time.Time) (Transition, error) {
	return b.apply(EventActivate, now, nil)
}

func (b *Booking) Cancel(now time.Time) (Transition, error) {
	detail := map[string]any{}
	if b.status == StatusActive {
		detail["returnSkipped"] = true
	}
	return b.apply(EventCancel, now, detail)
}

func (b *Booking) Return(now time.Time, condition Condition, comments *string) (Transition, error) {
	if _, ok := Next(b.status, EventReturn); !ok {
		return Transition{}, &TransitionError{From: b.status, Event: EventReturn}
	}
	if !condition.IsValid() {
		return Transition{}, ErrInvalidCondition
	}

	var trimmed *string
	if comments != nil {
		c := strings.TrimSpace(*comments)
		if utf8.RuneCountInString(c) > MaxCommentsLength {
			return Transition{}, errs.Mark(errs.Newf("comments exceed %d characters", MaxCommentsLength), ErrCommentsTooLong)
		}
		if c != "" {
			trimmed = &c
		}
	}

	t, err := b.apply(EventReturn, now, map[string]any{"condition": condition.String()})
	if err != nil {
		return Transition{}, err
	}
	b.returnInfo = &ReturnInfo{
		Returned:   true,
		ReturnedAt: now,
		Condition:  condition,
		Comments:   trimmed,
	}
	return t, nil
}

func (b *Booking) apply(ev Event, now time.Time, detail map[string]any) (Transition, error) {
	to, ok := Next(b.status, ev)
	if !ok {
		return Transition{}, &TransitionError{From: b.status, Event: ev}
	}
	from := b.status
	b.status = to
	b.updatedAt = now

	if len(detail) == 0 {
		detail = nil
	}
	return Transition{Event: ev, From: &from, To: to, OccurredAt: now, Detail: detail}, nil
}

// CreationTransition is the audit record for a freshly created booking.
func (b *Booking) CreationTransition() Transition {
	return Transition{Event: EventCreate, To: b.status, OccurredAt: b.createdAt}
}

// Occupancy is the range during which the booking blocks its asset for
// availability purposes. Canceled bookings occupy nothing; a booking
// returned before its end only occupies up to the return.
func (b *Booking) Occupancy() (TimeRange, bool) {
	if b.status == StatusCanceled {
		return TimeRange{}, false
	}
	if b.returnInfo == nil || !b.returnInfo.Returned {
		return b.period, true
	}
	end := b.period.end
	if b.returnInfo.ReturnedAt.Before(end) {
		end = b.returnInfo.ReturnedAt
	}
	if !b.period.start.Before(end) {
		return TimeRange{}, false
	}
	return TimeRange{start: b.period.start, end: end}, true
}

// IsDue reports whether a reserved booking should be active at now.
func (b *Booking) IsDue(now time.Time) bool {
	return b.status == StatusReserved && !now.Before(b.period.start)
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) AssetID() uuid.UUID      { return b.assetID }
func (b *Booking) EmployeeID() uuid.UUID   { return b.employeeID }
func (b *Booking) Period() TimeRange       { return b.period }
func (b *Booking) Purpose() Purpose        { return b.purpose }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) ReturnInfo() *ReturnInfo { return b.returnInfo }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
