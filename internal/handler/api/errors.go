package api

import (
	"net/http"

	"pool-booking/internal/domain/asset"
	"pool-booking/internal/domain/availability"
	"pool-booking/internal/domain/booking"
	reqdto "pool-booking/internal/handler/dto/request"
	resdto "pool-booking/internal/handler/dto/response"
	"pool-booking/internal/handler/httperr"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// abortWithUseCaseError maps a use case error to its HTTP status.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, booking.ErrSchedulingConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Scheduling conflict", conflictDetail(err))
	case errs.Is(err, booking.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", nil)
	case errs.Is(err, commands.ErrBookingChanged):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking was modified concurrently", nil)
	case errs.Is(err, commands.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused with different parameters", nil)
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking request is currently being processed", nil)
	case errs.Is(err, booking.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, asset.ErrAssetNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Asset not found", nil)
	case errs.Is(err, commands.ErrEmployeeNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Employee not found", nil)
	case errs.Is(err, booking.ErrInvalidRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Start date must be before end date", nil)
	case errs.Is(err, booking.ErrInvalidCondition):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid return condition", nil)
	case errs.Is(err, booking.ErrCommentsTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Return comments are too long", nil)
	case errs.Is(err, asset.ErrNotPoolAsset):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Asset is not a pool device", nil)
	case errs.Is(err, availability.ErrInvalidDay), errs.Is(err, reqdto.ErrInvalidMonth):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func conflictDetail(err error) any {
	var ce *booking.ConflictError
	if !errs.As(err, &ce) {
		return nil
	}
	out := make([]resdto.ConflictingBooking, len(ce.Conflicts))
	for i, b := range ce.Conflicts {
		out[i] = resdto.ConflictingBooking{
			ID:        b.ID(),
			StartDate: b.Period().Start(),
			EndDate:   b.Period().End(),
			Status:    b.Status().String(),
		}
	}
	return gin.H{"conflicts": out}
}
