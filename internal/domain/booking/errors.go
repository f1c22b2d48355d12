package booking

import (
	"fmt"
	"strings"

	"pool-booking/internal/pkg/errs"
)

var (
	ErrInvalidRange       = errs.New("invalid range")
	ErrInvalidTransition  = errs.New("invalid transition")
	ErrSchedulingConflict = errs.New("scheduling conflict")
	ErrBookingNotFound    = errs.New("booking not found")
	ErrInvalidStatus      = errs.New("invalid booking status")
	ErrInvalidCondition   = errs.New("invalid return condition")
	ErrCommentsTooLong    = errs.New("return comments too long")
)

// TransitionError names the rejected event and the state it was attempted from.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s from %s", e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// ConflictError lists the existing bookings that collide with a proposed range.
type ConflictError struct {
	Conflicts []*Booking
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, b := range e.Conflicts {
		ids[i] = b.ID().String()
	}
	return "scheduling conflict with bookings: " + strings.Join(ids, ", ")
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}
