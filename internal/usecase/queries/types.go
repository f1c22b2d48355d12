package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID           uuid.UUID       `json:"id"`
	AssetID      uuid.UUID       `json:"assetId"`
	AssetName    string          `json:"assetName"`
	EmployeeID   uuid.UUID       `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Purpose      *string         `json:"purpose,omitempty"`
	Status       string          `json:"status"`
	ReturnInfo   *ReturnInfoView `json:"returnInfo,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ReturnInfoView struct {
	Returned   bool      `json:"returned"`
	ReturnedAt time.Time `json:"returnedAt"`
	Condition  string    `json:"condition"`
	Comments   *string   `json:"comments,omitempty"`
}

// TransitionView is one row of a booking's audit history
type TransitionView struct {
	Event      string         `json:"event"`
	From       *string        `json:"from,omitempty"`
	To         string         `json:"to"`
	OccurredAt time.Time      `json:"occurredAt"`
	Detail     map[string]any `json:"detail,omitempty"`
}

type AssetView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	IsPoolDevice bool      `json:"isPoolDevice"`
	Status       string    `json:"status"`
}

// AssetDayView is the classification of one asset on one calendar day
type AssetDayView struct {
	AssetID  uuid.UUID      `json:"assetId"`
	Date     string         `json:"date"`
	Status   string         `json:"status"`
	Bookings []*BookingView `json:"bookings"`
}

type FleetAssetStatusView struct {
	AssetID   uuid.UUID `json:"assetId"`
	AssetName string    `json:"assetName"`
	Status    string    `json:"status"`
}

type FleetDayView struct {
	Date         string                  `json:"date"`
	Status       string                  `json:"status"`
	BookedCount  int                     `json:"bookedCount"`
	PartialCount int                     `json:"partialCount"`
	FleetSize    int                     `json:"fleetSize"`
	Assets       []*FleetAssetStatusView `json:"assets,omitempty"`
}

type FleetMonthView struct {
	Month string          `json:"month"`
	Days  []*FleetDayView `json:"days"`
}

// ConflictHintView lists bookings that would collide with a proposed range
type ConflictHintView struct {
	AssetID   uuid.UUID      `json:"assetId"`
	Start     time.Time      `json:"start"`
	End       time.Time      `json:"end"`
	Conflicts []*BookingView `json:"conflicts"`
}
