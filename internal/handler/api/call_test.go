//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"coachdesk/internal/domain/slot"
	"coachdesk/internal/handler/api"
	resdto "coachdesk/internal/handler/dto/response"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"
	"coachdesk/tests/common/builder"
	"coachdesk/tests/common/httptest"
	commandsmock "coachdesk/tests/mock/commands"
	queriesmock "coachdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CallHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockAvailabilityQueries
	token        string
}

func (s *CallHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.token = builder.NewAccessBuilder().Token

	h := api.NewCallHandler(s.mockCommands, s.mockQueries)
	s.router.GET("/calls/slots", h.Slots)
	s.router.POST("/calls/bookings", middleware.RequireAccessToken(), h.Book)
}

func TestCallHandlerSuite(t *testing.T) {
	suite.Run(t, new(CallHandlerTestSuite))
}

func (s *CallHandlerTestSuite) TestSlots() {
	s.Run("success: lists free slots for the date", func() {
		start := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().FreeSlots(gomock.Any(), "2025-03-11").Return(&queries.AvailabilityView{
			Date:     "2025-03-11",
			TimeZone: "UTC",
			Slots:    []slot.Slot{{Start: start, End: start.Add(30 * time.Minute)}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calls/slots?date=2025-03-11", nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2025-03-11", response.Date)
		s.Require().Len(response.Slots, 1)
		s.True(response.Slots[0].Start.Equal(start))
	})

	s.Run("success: a fully booked day is an empty list, not null", func() {
		s.mockQueries.EXPECT().FreeSlots(gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{Date: "2025-03-11", TimeZone: "UTC"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calls/slots?date=2025-03-11", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"slots":[]`)
	})

	s.Run("error: statuses", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"bad date", queries.ErrInvalidDate, http.StatusBadRequest},
			{"calendar down", errs.Mark(errors.New("timeout"), errs.ErrUpstream), http.StatusServiceUnavailable},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().FreeSlots(gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calls/slots?date=x", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})
}

func (s *CallHandlerTestSuite) TestBook() {
	url := "/calls/bookings"
	headers := map[string]string{middleware.AccessTokenHeader: builder.NewAccessBuilder().Token}
	start := time.Date(2025, 3, 11, 10, 30, 0, 0, time.UTC)

	s.Run("success: 201 Created", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().BookCall(gomock.Any(), s.token, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, got time.Time) (*commands.BookingResult, error) {
				s.True(got.Equal(start))
				return &commands.BookingResult{BookingID: id, Start: start, End: start.Add(30 * time.Minute), EventID: "evt-1"}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
			map[string]string{"start": "2025-03-11T19:30:00+09:00"}, headers)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(id.String(), response.ID)
		s.Equal("evt-1", response.EventID)
	})

	s.Run("error: missing access token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"start": start.Format(time.RFC3339)}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: start is not RFC3339", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, map[string]string{"start": "tomorrow 10am"}, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: usecase statuses", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"slot taken", commands.ErrSlotUnavailable, http.StatusConflict},
			{"already booked", commands.ErrAlreadyBooked, http.StatusConflict},
			{"expired credential", queries.ErrCredentialExpired, http.StatusGone},
			{"unknown credential", queries.ErrCredentialInvalid, http.StatusUnauthorized},
			{"download credential", queries.ErrWrongKind, http.StatusForbidden},
			{"calendar down", errs.Mark(errors.New("503"), errs.ErrUpstream), http.StatusServiceUnavailable},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().BookCall(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url,
					map[string]string{"start": start.Format(time.RFC3339)}, headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})
}
