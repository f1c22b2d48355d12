package response

import (
	"time"

	"pool-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AssetDayResponse struct {
	AssetID  uuid.UUID          `json:"assetId"`
	Date     string             `json:"date"`
	Status   string             `json:"status"`
	Bookings []*BookingResponse `json:"bookings" copier:"-"`
}

type FleetAssetStatusResponse struct {
	AssetID   uuid.UUID `json:"assetId"`
	AssetName string    `json:"assetName"`
	Status    string    `json:"status"`
}

type FleetDayResponse struct {
	Date         string                      `json:"date"`
	Status       string                      `json:"status"`
	BookedCount  int                         `json:"bookedCount"`
	PartialCount int                         `json:"partialCount"`
	FleetSize    int                         `json:"fleetSize"`
	Assets       []*FleetAssetStatusResponse `json:"assets,omitempty"`
}

type FleetMonthResponse struct {
	Month string              `json:"month"`
	Days  []*FleetDayResponse `json:"days" copier:"-"`
}

type ConflictHintResponse struct {
	AssetID     uuid.UUID          `json:"assetId"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	HasConflict bool               `json:"hasConflict"`
	Conflicts   []*BookingResponse `json:"conflicts" copier:"-"`
}

func FromAssetDayView(v *queries.AssetDayView) *AssetDayResponse {
	var res AssetDayResponse
	_ = copier.Copy(&res, v)
	res.Bookings = FromBookingViews(v.Bookings)
	return &res
}

func FromFleetDayView(v *queries.FleetDayView) *FleetDayResponse {
	var res FleetDayResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromFleetMonthView(v *queries.FleetMonthView) *FleetMonthResponse {
	res := &FleetMonthResponse{
		Month: v.Month,
		Days:  make([]*FleetDayResponse, len(v.Days)),
	}
	for i, d := range v.Days {
		res.Days[i] = FromFleetDayView(d)
	}
	return res
}

func FromConflictHintView(v *queries.ConflictHintView) *ConflictHintResponse {
	var res ConflictHintResponse
	_ = copier.Copy(&res, v)
	res.Conflicts = FromBookingViews(v.Conflicts)
	res.HasConflict = len(v.Conflicts) > 0
	return &res
}
