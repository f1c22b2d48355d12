//go:build unit || e2e

package builder

import (
	"time"

	"pool-booking/internal/domain/booking"
	reqdto "pool-booking/internal/handler/dto/request"
	"pool-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	AssetID      uuid.UUID
	AssetName    string
	EmployeeID   uuid.UUID
	EmployeeName string
	Start        time.Time
	End          time.Time
	Purpose      string
	Status       booking.Status
	ReturnInfo   *booking.ReturnInfo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:           uuid.New(),
		AssetID:      uuid.New(),
		AssetName:    "Pool Laptop 01",
		EmployeeID:   uuid.New(),
		EmployeeName: "Test Employee",
		Start:        start,
		End:          start.Add(8 * time.Hour),
		Purpose:      "customer visit",
		Status:       booking.StatusReserved,
		CreatedAt:    start.Add(-48 * time.Hour),
		UpdatedAt:    start.Add(-48 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithAsset(id uuid.UUID) *BookingBuilder {
	b.AssetID = id
	return b
}

func (b *BookingBuilder) WithRange(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) Returned(at time.Time, condition booking.Condition) *BookingBuilder {
	b.Status = booking.StatusCompleted
	b.ReturnInfo = &booking.ReturnInfo{Returned: true, ReturnedAt: at, Condition: condition}
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewTimeRange(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		b.ID, b.AssetID, b.EmployeeID,
		period,
		booking.NewPurpose(b.Purpose),
		b.Status,
		b.ReturnInfo,
		b.CreatedAt, b.UpdatedAt,
	)
}

// MustBuildDomain panics on invalid builder state; for table fixtures only.
func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	purpose := b.Purpose
	return reqdto.CreateBookingRequest{
		AssetID:    b.AssetID,
		EmployeeID: b.EmployeeID,
		StartDate:  b.Start,
		EndDate:    b.End,
		Purpose:    &purpose,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	purpose := b.Purpose
	view := &queries.BookingView{
		ID:           b.ID,
		AssetID:      b.AssetID,
		AssetName:    b.AssetName,
		EmployeeID:   b.EmployeeID,
		EmployeeName: b.EmployeeName,
		StartDate:    b.Start,
		EndDate:      b.End,
		Purpose:      &purpose,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.ReturnInfo != nil {
		view.ReturnInfo = &queries.ReturnInfoView{
			Returned:   b.ReturnInfo.Returned,
			ReturnedAt: b.ReturnInfo.ReturnedAt,
			Condition:  b.ReturnInfo.Condition.String(),
			Comments:   b.ReturnInfo.Comments,
		}
	}
	return view
}
