package api

import (
	"net/http"

	reqdto "coachdesk/internal/handler/dto/request"
	resdto "coachdesk/internal/handler/dto/response"
	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CallHandler struct {
	cmds commands.BookingCommands
	q    queries.AvailabilityQueries
}

func NewCallHandler(cmds commands.BookingCommands, q queries.AvailabilityQueries) *CallHandler {
	return &CallHandler{cmds: cmds, q: q}
}

// @Summary Free call slots
// @Description List free slots for a date in the coach's time zone
// @Tags calls
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /calls/slots [get]
func (h *CallHandler) Slots(c *gin.Context) {
	view, err := h.q.FreeSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(view))
}

// @Summary Book a call
// @Description Book one free slot with a redeemed call access token
// @Tags calls
// @Accept json
// @Produce json
// @Param X-Access-Token header string true "Access token from redemption"
// @Param request body reqdto.BookCallRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /calls/bookings [post]
func (h *CallHandler) Book(c *gin.Context) {
	var req reqdto.BookCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	start, err := req.StartTime()
	if err != nil {
		httperr.Abort(c, errs.Mark(err, commands.ErrInvalidStart), nil)
		return
	}

	result, err := h.cmds.BookCall(c.Request.Context(), middleware.GetAccessToken(c), start)
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(result))
}
