package api

import (
	"net/http"

	resdto "coachdesk/internal/handler/dto/response"
	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AccessHandler struct {
	q queries.AccessQueries
}

func NewAccessHandler(q queries.AccessQueries) *AccessHandler {
	return &AccessHandler{q: q}
}

// @Summary Verify access token
// @Tags access
// @Produce json
// @Param X-Access-Token header string true "Access token from redemption"
// @Success 200 {object} resdto.VerifyResponse
// @Failure 401 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /access/verify [get]
func (h *AccessHandler) Verify(c *gin.Context) {
	view, err := h.q.Verify(c.Request.Context(), middleware.GetAccessToken(c))
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAccessView(view))
}

// @Summary Download link
// @Description Presigned link to the product the access token was issued for
// @Tags access
// @Produce json
// @Param X-Access-Token header string true "Access token from redemption"
// @Success 200 {object} resdto.DownloadResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /downloads [get]
func (h *AccessHandler) Download(c *gin.Context) {
	view, err := h.q.DownloadURL(c.Request.Context(), middleware.GetAccessToken(c))
	if err != nil {
		httperr.Abort(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDownload(view))
}
