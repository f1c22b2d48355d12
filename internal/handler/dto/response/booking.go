package response

import (
	"time"

	"pool-booking/internal/usecase/commands"
	"pool-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           uuid.UUID           `json:"id"`
	AssetID      uuid.UUID           `json:"assetId"`
	AssetName    string              `json:"assetName"`
	EmployeeID   uuid.UUID           `json:"employeeId"`
	EmployeeName string              `json:"employeeName"`
	StartDate    time.Time           `json:"startDate"`
	EndDate      time.Time           `json:"endDate"`
	Purpose      *string             `json:"purpose,omitempty"`
	Status       string              `json:"status"`
	ReturnInfo   *ReturnInfoResponse `json:"returnInfo,omitempty" copier:"-"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type ReturnInfoResponse struct {
	Returned   bool      `json:"returned"`
	ReturnedAt time.Time `json:"returnedAt"`
	Condition  string    `json:"condition"`
	Comments   *string   `json:"comments,omitempty"`
}

type TransitionResponse struct {
	Booking *BookingResponse `json:"booking"`
	// ReturnSkipped is true when an active booking was canceled without a return condition.
	ReturnSkipped bool `json:"returnSkipped"`
}

type HistoryEntryResponse struct {
	Event      string         `json:"event"`
	From       *string        `json:"from,omitempty"`
	To         string         `json:"to"`
	OccurredAt time.Time      `json:"occurredAt"`
	Detail     map[string]any `json:"detail,omitempty"`
}

// ConflictingBooking is the detail entry of a 409 scheduling conflict.
type ConflictingBooking struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	if v == nil {
		return nil
	}
	var res BookingResponse
	_ = copier.Copy(&res, v)
	if v.ReturnInfo != nil {
		res.ReturnInfo = &ReturnInfoResponse{}
		_ = copier.Copy(res.ReturnInfo, v.ReturnInfo)
	}
	return &res
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		out[i] = FromBookingView(v)
	}
	return out
}

func FromTransition(result *commands.TransitionResult, v *queries.BookingView) *TransitionResponse {
	return &TransitionResponse{
		Booking:       FromBookingView(v),
		ReturnSkipped: result.ReturnSkipped,
	}
}

func FromHistory(ts []*queries.TransitionView) []*HistoryEntryResponse {
	out := make([]*HistoryEntryResponse, 0, len(ts))
	if err := copier.Copy(&out, &ts); err != nil {
		return []*HistoryEntryResponse{}
	}
	return out
}
