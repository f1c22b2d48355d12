package lifecycle

import (
	"log/slog"
	"time"

	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/booking"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateParams struct {
	AssetID    uuid.UUID
	EmployeeID uuid.UUID
	Start      time.Time
	End        time.Time
	Purpose    string
	// Initial is reserved or active. Empty derives it from the clock.
	Initial booking.Status
}

// Result is the outcome of one lifecycle operation.
type Result struct {
	Booking    *booking.Booking
	Transition booking.Transition
	// ReturnSkipped is set when an active booking was canceled without a
	// recorded return condition.
	ReturnSkipped bool
}

// Controller owns the booking state machine. It mutates only the booking
// passed to it and reads the clock for every timestamp it writes.
type Controller struct {
	clock  clock.Clock
	logger *slog.Logger
}

func NewController(c clock.Clock, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{clock: c, logger: logger}
}

// InitialStatus is active when the booking has already started.
func InitialStatus(start, now time.Time) booking.Status {
	if !start.After(now) {
		return booking.StatusActive
	}
	return booking.StatusReserved
}

// Create builds a new booking after checking existing against the
// proposed range. existing must hold every reserved or active booking of
// the asset that may overlap it.
func (c *Controller) Create(p CreateParams, existing []*booking.Booking) (*Result, error) {
	period, err := booking.NewTimeRange(p.Start, p.End)
	if err != nil {
		return nil, err
	}
	if err := availability.EnsureNoConflict(p.AssetID, period, existing); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	initial := p.Initial
	if initial == "" {
		initial = InitialStatus(p.Start, now)
	}

	b, err := booking.NewBooking(p.AssetID, p.EmployeeID, period, booking.NewPurpose(p.Purpose), initial, now)
	if err != nil {
		return nil, err
	}
	return &Result{Booking: b, Transition: b.CreationTransition()}, nil
}

func (c *Controller) Activate(b *booking.Booking) (*Result, error) {
	t, err := b.Activate(c.clock.Now())
	if err != nil {
		return nil, errs.Wrapf(err, "activate booking %s", b.ID())
	}
	return &Result{Booking: b, Transition: t}, nil
}

// ActivateIfDue activates a reserved booking whose start has passed and
// reports whether it did.
func (c *Controller) ActivateIfDue(b *booking.Booking) (*Result, bool, error) {
	if !b.IsDue(c.clock.Now()) {
		return nil, false, nil
	}
	res, err := c.Activate(b)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (c *Controller) Cancel(b *booking.Booking) (*Result, error) {
	wasActive := b.Status() == booking.StatusActive
	t, err := b.Cancel(c.clock.Now())
	if err != nil {
		return nil, errs.Wrapf(err, "cancel booking %s", b.ID())
	}
	if wasActive {
		c.logger.Warn("active booking canceled without return condition",
			"booking_id", b.ID().String(),
			"asset_id", b.AssetID().String())
	}
	return &Result{Booking: b, Transition: t, ReturnSkipped: wasActive}, nil
}

func (c *Controller) Return(b *booking.Booking, condition booking.Condition, comments *string) (*Result, error) {
	t, err := b.Return(c.clock.Now(), condition, comments)
	if err != nil {
		return nil, errs.Wrapf(err, "return booking %s", b.ID())
	}
	return &Result{Booking: b, Transition: t}, nil
}
