package booking

import (
	"fmt"
	"strings"
	"time"

	"pool-booking/internal/pkg/errs"
)

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) (bool, error) {
	if !aStart.Before(aEnd) || !bStart.Before(bEnd) {
		return false, ErrInvalidRange
	}
	return overlaps(aStart, aEnd, bStart, bEnd), nil
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, errs.Mark(
			errs.Newf("start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)),
			ErrInvalidRange,
		)
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return overlaps(r.start, r.end, other.start, other.end)
}

// Covers reports whether r spans all of other.
func (r TimeRange) Covers(other TimeRange) bool {
	return !r.start.After(other.start) && !r.end.Before(other.end)
}

func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// ToTstzrange renders the range as a PostgreSQL tstzrange literal.
func (r TimeRange) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339Nano), r.end.Format(time.RFC3339Nano))
}

type ReturnInfo struct {
	Returned   bool
	ReturnedAt time.Time
	Condition  Condition
	Comments   *string
}

type Purpose struct {
	value string
}

func NewPurpose(value string) Purpose {
	return Purpose{value: strings.TrimSpace(value)}
}

func (p Purpose) String() string {
	return p.value
}

func (p Purpose) IsEmpty() bool {
	return p.value == ""
}

// Transition is the audit record of one lifecycle step.
type Transition struct {
	Event      Event
	From       *Status
	To         Status
	OccurredAt time.Time
	Detail     map[string]any
}
