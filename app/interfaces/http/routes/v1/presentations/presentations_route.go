package presentations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/presentation"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/utils/functional"
)

const SessionIDParam = "session_id"

type PresentationsRoute struct {
	authService         *auth.AuthService
	presentationService *presentation.PresentationService
}

func NewPresentationsRoute(authService *auth.AuthService, presentationService *presentation.PresentationService) *PresentationsRoute {
	return &PresentationsRoute{authService, presentationService}
}

func (r *PresentationsRoute) RegisterRouter(router gin.IRouter) {
	presentationsRouter := router.Group("/presentations", r.authService.JWTAuthMiddleware())
	presentationsRouter.POST("", r.open)
	presentationsRouter.GET("/:"+SessionIDParam, r.get)
	presentationsRouter.POST("/:"+SessionIDParam+"/events", r.apply)
	presentationsRouter.DELETE("/:"+SessionIDParam, r.end)
}

type SlideResponse struct {
	ID       string  `json:"id"`
	Position int     `json:"position"`
	Title    *string `json:"title"`
	Section  *string `json:"section"`
	ImageURL string  `json:"image_url"`
}

type MenuEntryResponse struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
}

type SessionResponse struct {
	ID           string              `json:"id"`
	DeckKey      string              `json:"deck_key"`
	Slides       []SlideResponse     `json:"slides"`
	Menu         []MenuEntryResponse `json:"menu"`
	State        presentation.State  `json:"state"`
	ScrollLocked bool                `json:"scroll_locked"`
}

type StateResponse struct {
	State        presentation.State `json:"state"`
	Moved        bool               `json:"moved"`
	ScrollLocked bool               `json:"scroll_locked"`
}

type OpenRequest struct {
	DeckKey string `json:"deck_key" binding:"required"`
}

type EventRequest struct {
	Type    presentation.EventType    `json:"type" binding:"required"`
	Index   int                       `json:"index" binding:"gte=0"`
	DX      float64                   `json:"dx"`
	DY      float64                   `json:"dy"`
	Trigger presentation.CloseTrigger `json:"trigger"`
}

func newSessionResponse(s *presentation.Session) *SessionResponse {
	return &SessionResponse{
		ID:      s.ID,
		DeckKey: s.DeckKey,
		Slides: functional.Map(s.Slides, func(sl *presentation.Slide) SlideResponse {
			return SlideResponse{ID: sl.ID, Position: sl.Position, Title: sl.Title, Section: sl.Section, ImageURL: sl.ImageURL}
		}),
		Menu: functional.Map(s.Menu, func(m presentation.MenuEntry) MenuEntryResponse {
			return MenuEntryResponse{Section: m.Section, Index: m.Index}
		}),
		State:        s.Navigator.State(),
		ScrollLocked: s.Scroll.Locked(),
	}
}

// @Summary Open a presentation session
// @Tags Presentations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body OpenRequest true "Request body"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Deck not found"
// @Router /v1/presentations [post]
func (r *PresentationsRoute) open(reqCtx *gin.Context) {
	var request OpenRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b01", err)
		return
	}
	session, err := r.presentationService.Open(reqCtx.Request.Context(), request.DeckKey)
	if err != nil {
		helpers.AbortWithError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b02", err)
		return
	}
	reqCtx.JSON(http.StatusCreated, newSessionResponse(session))
}

// @Summary Get a presentation session
// @Tags Presentations
// @Security BearerAuth
// @Produce json
// @Param session_id path string true "Presentation session ID"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Router /v1/presentations/{session_id} [get]
func (r *PresentationsRoute) get(reqCtx *gin.Context) {
	session, err := r.presentationService.Get(reqCtx.Param(SessionIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b03", err)
		return
	}
	reqCtx.JSON(http.StatusOK, newSessionResponse(session))
}

// @Summary Apply a navigation event
// @Tags Presentations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param session_id path string true "Presentation session ID"
// @Param request body EventRequest true "Navigation event"
// @Success 200 {object} StateResponse "moved is false when the state did not change"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Router /v1/presentations/{session_id}/events [post]
func (r *PresentationsRoute) apply(reqCtx *gin.Context) {
	var request EventRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b04", err)
		return
	}
	id := reqCtx.Param(SessionIDParam)
	state, moved, err := r.presentationService.Apply(id, presentation.Event{
		Type:    request.Type,
		Index:   request.Index,
		DX:      request.DX,
		DY:      request.DY,
		Trigger: request.Trigger,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b05", err)
		return
	}
	session, err := r.presentationService.Get(id)
	if err != nil {
		helpers.AbortWithError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b06", err)
		return
	}
	reqCtx.JSON(http.StatusOK, StateResponse{State: state, Moved: moved, ScrollLocked: session.Scroll.Locked()})
}

// @Summary End a presentation session
// @Tags Presentations
// @Security BearerAuth
// @Param session_id path string true "Presentation session ID"
// @Success 204 "No Content"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Router /v1/presentations/{session_id} [delete]
func (r *PresentationsRoute) end(reqCtx *gin.Context) {
	if err := r.presentationService.End(reqCtx.Param(SessionIDParam)); err != nil {
		helpers.AbortWithError(reqCtx, "e2a4c6f8-1b3d-4e5f-9a7c-8d6e4f2a0b07", err)
		return
	}
	reqCtx.Status(http.StatusNoContent)
}
