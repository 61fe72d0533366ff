package api

import (
	"log/slog"
	"net/http"
	"strconv"

	reqdto "coachdesk/internal/handler/dto/request"
	resdto "coachdesk/internal/handler/dto/response"
	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidLimit = errs.Mark(errs.New("limit must be a positive integer"), errs.ErrValidation)

type AdminHandler struct {
	cmds commands.RedemptionCommands
	q    queries.RedemptionQueries
}

func NewAdminHandler(cmds commands.RedemptionCommands, q queries.RedemptionQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary List redemption tokens
// @Description Newest first, keyset paginated
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.RedemptionListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/redemptions [get]
func (h *AdminHandler) ListRedemptions(c *gin.Context) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httperr.Abort(c, errInvalidLimit, nil)
			return
		}
		limit = queries.ValidateLimit(n)
	}

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.List(c.Request.Context(), cursor, limit)
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}

	resp, err := resdto.FromRedemptionList(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Issue a gift code
// @Description Issue a code without the public flow; the code is returned in the response
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.GiftCodeRequest true "Gift code request"
// @Success 201 {object} resdto.GiftCodeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/redemptions [post]
func (h *AdminHandler) IssueGiftCode(c *gin.Context) {
	var req reqdto.GiftCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Issue(c.Request.Context(), commands.IssueParams{
		Email:    req.Email,
		Kind:     req.Kind,
		Resource: req.Resource,
		Notify:   req.Notify,
	})
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}

	if p, ok := middleware.GetPrincipal(c); ok {
		slog.Info("gift code issued", "admin_id", p.UserID, "token_id", result.TokenID, "kind", result.Kind)
	}
	c.JSON(http.StatusCreated, resdto.FromGiftCode(result))
}
