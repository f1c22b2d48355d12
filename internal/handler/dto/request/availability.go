package request

import (
	"time"

	"pool-booking/internal/domain/availability"
	"pool-booking/internal/pkg/errs"
)

const monthLayout = "2006-01"

var ErrInvalidMonth = errs.New("invalid month")

type DateQuery struct {
	Date string `form:"date"`
}

// Day returns the parsed date and false when the query carries none.
func (q DateQuery) Day() (availability.Day, bool, error) {
	if q.Date == "" {
		return availability.Day{}, false, nil
	}
	d, err := availability.ParseDay(q.Date)
	if err != nil {
		return availability.Day{}, false, err
	}
	return d, true, nil
}

type RequiredDateQuery struct {
	Date string `form:"date" binding:"required"`
}

func (q RequiredDateQuery) Day() (availability.Day, error) {
	return availability.ParseDay(q.Date)
}

type MonthQuery struct {
	Month string `form:"month" binding:"required"`
}

func (q MonthQuery) YearMonth() (int, time.Month, error) {
	t, err := time.Parse(monthLayout, q.Month)
	if err != nil {
		return 0, 0, errs.Mark(err, ErrInvalidMonth)
	}
	return t.Year(), t.Month(), nil
}

type ConflictQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
