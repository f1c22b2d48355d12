package availability

import (
	"time"

	"pool-booking/internal/pkg/errs"
)

const dayLayout = "2006-01-02"

var ErrInvalidDay = errs.New("invalid calendar day")

// Day is a civil date with no time-of-day or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDay(year int, month time.Month, day int) (Day, error) {
	d := Day{Year: year, Month: month, Day: day}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Day{}, errs.Mark(errs.Newf("%04d-%02d-%02d", year, month, day), ErrInvalidDay)
	}
	return d, nil
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, errs.Mark(err, ErrInvalidDay)
	}
	return DayOf(t), nil
}

// DayOf takes the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Bounds returns day@00:00:00.000 and day@23:59:59.999 in loc.
func (d Day) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	end := time.Date(d.Year, d.Month, d.Day, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

func (d Day) AddDays(n int) Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Day) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(dayLayout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysInMonth lists every day of the given month in order.
func DaysInMonth(year int, month time.Month) ([]Day, error) {
	first, err := NewDay(year, month, 1)
	if err != nil {
		return nil, err
	}
	var days []Day
	for d := first; d.Month == month; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days, nil
}
