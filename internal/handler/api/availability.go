package api

import (
	"net/http"

	reqdto "pool-booking/internal/handler/dto/request"
	resdto "pool-booking/internal/handler/dto/response"
	"pool-booking/internal/handler/httperr"
	"pool-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Asset bookings
// @Description List bookings of an asset. With date, only bookings occupying that day; without, every booking.
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Param date query string false "Calendar day (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /assets/{id}/bookings [get]
func (h *AvailabilityHandler) AssetBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var query reqdto.DateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	day, hasDay, err := query.Day()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	var views []*queries.BookingView
	if hasDay {
		views, err = h.q.BookingsOnDate(c.Request.Context(), id, day)
	} else {
		views, err = h.q.AssetBookings(c.Request.Context(), id)
	}
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Asset day status
// @Description Classify an asset on a calendar day as available, available-partial or booked
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AssetDayResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /assets/{id}/availability [get]
func (h *AvailabilityHandler) AssetDay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var query reqdto.RequiredDateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	day, err := query.Day()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.AssetDay(c.Request.Context(), id, day)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAssetDayView(view))
}

// @Summary Conflict hint
// @Description Pre-flight check listing bookings that would collide with a proposed range
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Param start query string true "Proposed start (RFC3339)"
// @Param end query string true "Proposed end (RFC3339)"
// @Success 200 {object} resdto.ConflictHintResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /assets/{id}/conflicts [get]
func (h *AvailabilityHandler) Conflicts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var query reqdto.ConflictQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	view, err := h.q.Conflicts(c.Request.Context(), id, query.Start, query.End)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConflictHintView(view))
}

// @Summary Fleet day
// @Description Aggregate the pool fleet on a calendar day into all-available, some-booked or all-booked
// @Tags availability
// @Produce json
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} resdto.FleetDayResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/day [get]
func (h *AvailabilityHandler) FleetDay(c *gin.Context) {
	var query reqdto.RequiredDateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	day, err := query.Day()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.FleetDay(c.Request.Context(), day)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFleetDayView(view))
}

// @Summary Fleet month
// @Description Fleet aggregation for every day of a month, for calendar views
// @Tags availability
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} resdto.FleetMonthResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/month [get]
func (h *AvailabilityHandler) FleetMonth(c *gin.Context) {
	var query reqdto.MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	year, month, err := query.YearMonth()
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view, err := h.q.FleetMonth(c.Request.Context(), year, month)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFleetMonthView(view))
}
