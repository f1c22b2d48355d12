package request

import (
	"strings"
	"time"

	"pool-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	AssetID    uuid.UUID `json:"assetId" binding:"required"`
	EmployeeID uuid.UUID `json:"employeeId" binding:"required"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	Purpose    *string   `json:"purpose,omitempty" binding:"omitempty,max=500"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	in := commands.CreateBookingInput{
		AssetID:    r.AssetID,
		EmployeeID: r.EmployeeID,
		Start:      r.StartDate,
		End:        r.EndDate,
	}
	if r.Purpose != nil {
		in.Purpose = strings.TrimSpace(*r.Purpose)
	}
	return in
}

type ReturnBookingRequest struct {
	Condition string  `json:"condition" binding:"required"`
	Comments  *string `json:"comments,omitempty" binding:"omitempty,max=1000"`
}

func (r ReturnBookingRequest) ToInput() commands.ReturnBookingInput {
	in := commands.ReturnBookingInput{Condition: r.Condition}
	if r.Comments != nil {
		trimmed := strings.TrimSpace(*r.Comments)
		if trimmed != "" {
			in.Comments = &trimmed
		}
	}
	return in
}
