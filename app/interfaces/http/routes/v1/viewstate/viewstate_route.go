package viewstate

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/viewstate"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
)

type ViewStateRoute struct {
	authService  *auth.AuthService
	scrollKeeper *viewstate.ScrollKeeper
}

func NewViewStateRoute(authService *auth.AuthService, scrollKeeper *viewstate.ScrollKeeper) *ViewStateRoute {
	return &ViewStateRoute{authService, scrollKeeper}
}

func (r *ViewStateRoute) RegisterRouter(router gin.IRouter) {
	viewstateRouter := router.Group("/viewstate", r.authService.JWTAuthMiddleware())
	viewstateRouter.PUT("/scroll", r.sample)
	viewstateRouter.GET("/scroll", r.restore)
}

type SampleRequest struct {
	SessionID string                 `json:"session_id" binding:"required"`
	Y         float64                `json:"y" binding:"gte=0"`
	Reason    viewstate.SampleReason `json:"reason" binding:"required,oneof=interval visibility blur"`
}

type RestoreResponse struct {
	Restore bool    `json:"restore"`
	Y       float64 `json:"y"`
}

// @Summary Record a scroll position sample
// @Tags ViewState
// @Security BearerAuth
// @Accept json
// @Param request body SampleRequest true "Request body"
// @Success 204 "No Content"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/viewstate/scroll [put]
func (r *ViewStateRoute) sample(reqCtx *gin.Context) {
	var request SampleRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "c3b2a190-8f7e-4d6c-b5a4-93827160f501", err)
		return
	}
	if err := r.scrollKeeper.Sample(reqCtx.Request.Context(), request.SessionID, request.Y, request.Reason); err != nil {
		helpers.AbortWithError(reqCtx, "c3b2a190-8f7e-4d6c-b5a4-93827160f502", err)
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// restore answers ?session_id=&page_load_id=&width=.
// @Summary Get the scroll position to restore
// @Tags ViewState
// @Security BearerAuth
// @Produce json
// @Param session_id query string true "Browser session ID"
// @Param page_load_id query string true "Page load ID"
// @Param width query int true "Viewport width in pixels"
// @Success 200 {object} RestoreResponse
// @Failure 400 {object} responses.ErrorResponse "width must be an integer"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/viewstate/scroll [get]
func (r *ViewStateRoute) restore(reqCtx *gin.Context) {
	width, err := strconv.Atoi(reqCtx.Query("width"))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c3b2a190-8f7e-4d6c-b5a4-93827160f503",
			Error: "width must be an integer",
		})
		return
	}
	pos, ok := r.scrollKeeper.Restore(reqCtx.Request.Context(), reqCtx.Query("session_id"), reqCtx.Query("page_load_id"), width)
	reqCtx.JSON(http.StatusOK, RestoreResponse{Restore: ok, Y: pos.Y})
}
