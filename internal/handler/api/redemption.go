package api

import (
	"net/http"

	reqdto "coachdesk/internal/handler/dto/request"
	resdto "coachdesk/internal/handler/dto/response"
	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Machine-readable reasons for a failed redemption.
const (
	RedeemNotFound = "NOT_FOUND"
	RedeemExpired  = "EXPIRED"
	RedeemInvalid  = "INVALID"
)

type RedemptionHandler struct {
	cmds commands.RedemptionCommands
}

func NewRedemptionHandler(cmds commands.RedemptionCommands) *RedemptionHandler {
	return &RedemptionHandler{cmds: cmds}
}

// @Summary Request a code
// @Description Issue a single-use code and mail it to the given address
// @Tags redemptions
// @Accept json
// @Produce json
// @Param request body reqdto.RequestCodeRequest true "Code request"
// @Success 202 {object} resdto.CodeRequestedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /redemptions [post]
func (h *RedemptionHandler) RequestCode(c *gin.Context) {
	var req reqdto.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Issue(c.Request.Context(), commands.IssueParams{
		Email:    req.Email,
		Kind:     req.Kind,
		Resource: req.Resource,
		Notify:   true,
	})
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}

	c.JSON(http.StatusAccepted, resdto.FromIssueResult(result))
}

// @Summary Redeem a code
// @Description Exchange a code for an access token. Redeeming the same code again returns the same token while it is valid.
// @Tags redemptions
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemRequest true "Redeem request"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /redemptions/redeem [post]
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", gin.H{"code": RedeemInvalid})
		return
	}

	result, err := h.cmds.Redeem(c.Request.Context(), req.Code)
	if err != nil {
		httperr.Abort(c, err, redeemDetail(err))
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}

func redeemDetail(err error) any {
	switch {
	case errs.Is(err, errs.ErrTokenNotFound):
		return gin.H{"code": RedeemNotFound}
	case errs.Is(err, errs.ErrTokenExpired):
		return gin.H{"code": RedeemExpired}
	case errs.Is(err, errs.ErrValidation):
		return gin.H{"code": RedeemInvalid}
	default:
		return nil
	}
}
