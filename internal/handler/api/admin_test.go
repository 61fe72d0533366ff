//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"coachdesk/internal/handler/api"
	resdto "coachdesk/internal/handler/dto/response"
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

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRedemptionCommands
	mockQueries  *queriesmock.MockRedemptionQueries
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRedemptionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRedemptionQueries(s.mockCtrl)

	h := api.NewAdminHandler(s.mockCommands, s.mockQueries)
	s.router.GET("/admin/redemptions", h.ListRedemptions)
	s.router.POST("/admin/redemptions", h.IssueGiftCode)
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestListRedemptions() {
	s.Run("success: page with a next cursor", func() {
		used := builder.NewRedemptionBuilder().UsedAtTime(builder.BaseTime).BuildListItem()
		fresh := builder.NewRedemptionBuilder().AsCall().BuildListItem()
		s.mockQueries.EXPECT().List(gomock.Any(), &queries.Cursor{After: "abc"}, 2).
			Return([]*queries.RedemptionListItem{used, fresh}, &queries.Cursor{After: "next"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/redemptions?limit=2&after=abc", nil, "")

		var response resdto.RedemptionListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Items, 2)
		s.Equal(used.ID, response.Items[0].ID)
		s.True(response.Items[0].Used)
		s.NotNil(response.Items[0].UsedAt)
		s.Equal("call", response.Items[1].Kind)
		s.Equal("next", response.NextCursor)
	})

	s.Run("success: defaults and clamps the limit", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), (*queries.Cursor)(nil), queries.DefaultListLimit).Return(nil, nil, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/redemptions", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"items":[]`)

		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), queries.MaxListLimit).Return(nil, nil, nil)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/redemptions?limit=5000", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: invalid limit", func() {
		for _, v := range []string{"0", "-1", "ten"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/redemptions?limit="+v, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: invalid cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, queries.ErrInvalidCursor)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/redemptions?after=!!", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AdminHandlerTestSuite) TestIssueGiftCode() {
	s.Run("success: the code is returned to the admin", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Issue(gomock.Any(), commands.IssueParams{
			Email: "friend@example.com", Kind: "call", Notify: false,
		}).Return(&commands.IssueResult{
			TokenID: id, Code: "ABCD-EFGH-JKMN", Email: "friend@example.com", Kind: "call",
			Resource: "free-call", ExpiresAt: builder.BaseTime,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/redemptions",
			map[string]any{"email": "friend@example.com", "kind": "call"}, "")

		var response resdto.GiftCodeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(id, response.ID)
		s.Equal("ABCD-EFGH-JKMN", response.Code)
		s.False(response.Notified)
	})

	s.Run("success: notify mails the code too", func() {
		s.mockCommands.EXPECT().Issue(gomock.Any(), commands.IssueParams{
			Email: "friend@example.com", Kind: "download", Resource: "guides/starter.pdf", Notify: true,
		}).Return(&commands.IssueResult{Code: "ABCD-EFGH-JKMN", Kind: "download", Notified: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/redemptions",
			map[string]any{"email": "friend@example.com", "kind": "download", "resource": "guides/starter.pdf", "notify": true}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: unknown product", func() {
		s.mockCommands.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, commands.ErrProductNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/redemptions",
			map[string]any{"email": "friend@example.com", "kind": "download", "resource": "nope.pdf"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: invalid body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/redemptions",
			map[string]any{"email": "friend@example.com", "kind": "voucher"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
