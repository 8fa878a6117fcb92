package weddings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/domain/query"
	"vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/domain/wedding"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
	"vowboard.io/planner-gateway/app/utils/functional"
)

const (
	WeddingIDParam   = "wedding_id"
	weddingEntityKey = "WeddingContextKeyEntity"
)

type WeddingsRoute struct {
	authService      *auth.AuthService
	weddingService   *wedding.WeddingService
	taskService      *task.TaskService
	boardService     *task.BoardService
	taskGroupService *taskgroup.TaskGroupService
	documentService  *document.DocumentService
	activity         *activitylog.ActivityLogService
	noteSaver        *preference.NoteSaver
}

func NewWeddingsRoute(
	authService *auth.AuthService,
	weddingService *wedding.WeddingService,
	taskService *task.TaskService,
	boardService *task.BoardService,
	taskGroupService *taskgroup.TaskGroupService,
	documentService *document.DocumentService,
	activity *activitylog.ActivityLogService,
	noteSaver *preference.NoteSaver,
) *WeddingsRoute {
	return &WeddingsRoute{
		authService:      authService,
		weddingService:   weddingService,
		taskService:      taskService,
		boardService:     boardService,
		taskGroupService: taskGroupService,
		documentService:  documentService,
		activity:         activity,
		noteSaver:        noteSaver,
	}
}

func (r *WeddingsRoute) RegisterRouter(router gin.IRouter) {
	weddingsRouter := router.Group("/weddings",
		r.authService.JWTAuthMiddleware(),
		r.authService.RegisteredUserMiddleware(),
	)
	weddingsRouter.GET("", r.list)
	weddingsRouter.POST("", r.authService.OrganizerOnlyMiddleware(), r.create)

	weddingRouter := weddingsRouter.Group("/:"+WeddingIDParam, r.weddingMiddleware())
	weddingRouter.GET("", r.get)
	weddingRouter.PATCH("", r.authService.OrganizerOnlyMiddleware(), r.update)
	weddingRouter.DELETE("", r.authService.OrganizerOnlyMiddleware(), r.delete)
	weddingRouter.GET("/notes", r.getNotes)
	weddingRouter.PUT("/notes", r.saveNotes)
	weddingRouter.GET("/logs", r.listLogs)

	r.registerTaskRoutes(weddingRouter.Group("/tasks"))
	r.registerTaskGroupRoutes(weddingRouter.Group("/task-groups"))
	r.registerDocumentRoutes(weddingRouter.Group("/documents"))
}

// weddingMiddleware loads the wedding and rejects callers whose profile may
// not see its client.
func (r *WeddingsRoute) weddingMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		w, err := r.weddingService.FindByID(reqCtx.Request.Context(), reqCtx.Param(WeddingIDParam))
		if err != nil {
			helpers.AbortWithError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f01", err)
			return
		}
		p, _ := auth.GetProfileFromContext(reqCtx)
		if !p.CanAccessClient(w.ClientID) {
			reqCtx.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
				Code:  "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f02",
				Error: "wedding not accessible",
			})
			return
		}
		reqCtx.Set(weddingEntityKey, w)
		reqCtx.Next()
	}
}

func getWedding(reqCtx *gin.Context) *wedding.Wedding {
	v, _ := reqCtx.Get(weddingEntityKey)
	w, _ := v.(*wedding.Wedding)
	return w
}

// viewerID identifies whose drag a reorder belongs to.
func viewerID(reqCtx *gin.Context) string {
	id, _ := auth.GetUserIDFromContext(reqCtx)
	return id
}

type WeddingResponse struct {
	ID          string                `json:"id"`
	ClientID    string                `json:"client_id"`
	Title       string                `json:"title"`
	WeddingDate *string               `json:"wedding_date"`
	Venue       *string               `json:"venue"`
	GuestCount  *int                  `json:"guest_count"`
	Budget      *float64              `json:"budget"`
	Status      wedding.WeddingStatus `json:"status"`
	Notes       *string               `json:"notes"`
	DeckKey     *string               `json:"deck_key"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func NewWeddingResponse(w *wedding.Wedding) *WeddingResponse {
	return &WeddingResponse{
		ID:          w.ID,
		ClientID:    w.ClientID,
		Title:       w.Title,
		WeddingDate: w.WeddingDate,
		Venue:       w.Venue,
		GuestCount:  w.GuestCount,
		Budget:      w.Budget,
		Status:      w.Status,
		Notes:       w.Notes,
		DeckKey:     w.DeckKey,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

type CreateWeddingRequest struct {
	ClientID    string                `json:"client_id" binding:"required"`
	Title       string                `json:"title" binding:"required"`
	WeddingDate *string               `json:"wedding_date"`
	Venue       *string               `json:"venue"`
	GuestCount  *int                  `json:"guest_count" binding:"omitempty,gte=0"`
	Budget      *float64              `json:"budget" binding:"omitempty,gte=0"`
	Status      wedding.WeddingStatus `json:"status" binding:"omitempty,oneof=planning confirmed completed"`
	DeckKey     *string               `json:"deck_key"`
}

type UpdateWeddingRequest struct {
	Title       *string                `json:"title"`
	WeddingDate *string                `json:"wedding_date"`
	Venue       *string                `json:"venue"`
	GuestCount  *int                   `json:"guest_count" binding:"omitempty,gte=0"`
	Budget      *float64               `json:"budget" binding:"omitempty,gte=0"`
	Status      *wedding.WeddingStatus `json:"status" binding:"omitempty,oneof=planning confirmed completed"`
	DeckKey     *string                `json:"deck_key"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type NotesResponse struct {
	Notes   string `json:"notes"`
	Pending bool   `json:"pending"`
}

type ActivityLogResponse struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	UserID     *string        `json:"user_id"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func NewActivityLogResponse(e *activitylog.Entry) *ActivityLogResponse {
	return &ActivityLogResponse{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		UserID:     e.UserID,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}

// list returns the weddings of ?client_id=, defaulting to the caller's own
// client for client profiles.
// @Summary List weddings of a client
// @Tags Weddings
// @Security BearerAuth
// @Produce json
// @Param client_id query string false "Client ID, defaults to the caller's client"
// @Success 200 {object} responses.ListResponse[WeddingResponse]
// @Failure 400 {object} responses.ErrorResponse "client_id is required"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Client not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings [get]
func (r *WeddingsRoute) list(reqCtx *gin.Context) {
	p, _ := auth.GetProfileFromContext(reqCtx)
	clientID := reqCtx.Query("client_id")
	if clientID == "" && p.ClientID != nil {
		clientID = *p.ClientID
	}
	if clientID == "" {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f03",
			Error: "client_id is required",
		})
		return
	}
	if !p.CanAccessClient(clientID) {
		reqCtx.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
			Code:  "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f04",
			Error: "client not accessible",
		})
		return
	}
	weddings, err := r.weddingService.FindByClient(reqCtx.Request.Context(), clientID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f05", err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(weddings, NewWeddingResponse)))
}

// @Summary Create a wedding
// @Tags Weddings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateWeddingRequest true "Request body"
// @Success 201 {object} WeddingResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings [post]
func (r *WeddingsRoute) create(reqCtx *gin.Context) {
	var request CreateWeddingRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f06", err)
		return
	}
	w, err := r.weddingService.Create(reqCtx.Request.Context(), &wedding.Wedding{
		ClientID:    request.ClientID,
		Title:       request.Title,
		WeddingDate: request.WeddingDate,
		Venue:       request.Venue,
		GuestCount:  request.GuestCount,
		Budget:      request.Budget,
		Status:      request.Status,
		DeckKey:     request.DeckKey,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f07", err)
		return
	}
	reqCtx.JSON(http.StatusCreated, NewWeddingResponse(w))
}

// @Summary Get a wedding
// @Tags Weddings
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Success 200 {object} WeddingResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Wedding not found"
// @Router /v1/weddings/{wedding_id} [get]
func (r *WeddingsRoute) get(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, NewWeddingResponse(getWedding(reqCtx)))
}

// @Summary Update a wedding
// @Tags Weddings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body UpdateWeddingRequest true "Request body"
// @Success 200 {object} WeddingResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Wedding not found"
// @Router /v1/weddings/{wedding_id} [patch]
func (r *WeddingsRoute) update(reqCtx *gin.Context) {
	var request UpdateWeddingRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f08", err)
		return
	}
	w, err := r.weddingService.Update(reqCtx.Request.Context(), getWedding(reqCtx).ID, wedding.WeddingPatch{
		Title:       request.Title,
		WeddingDate: request.WeddingDate,
		Venue:       request.Venue,
		GuestCount:  request.GuestCount,
		Budget:      request.Budget,
		Status:      request.Status,
		DeckKey:     request.DeckKey,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f09", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewWeddingResponse(w))
}

// @Summary Delete a wedding
// @Tags Weddings
// @Security BearerAuth
// @Param wedding_id path string true "Wedding ID"
// @Success 204 "No Content"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Wedding not found"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id} [delete]
func (r *WeddingsRoute) delete(reqCtx *gin.Context) {
	w := getWedding(reqCtx)
	if err := r.weddingService.Delete(reqCtx.Request.Context(), w.ID); err != nil {
		helpers.AbortWithError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f0a", err)
		return
	}
	r.boardService.InvalidateWedding(w.ID)
	reqCtx.Status(http.StatusNoContent)
}

// getNotes prefers an edit that is still waiting for its debounce window.
// @Summary Get wedding notes
// @Tags Weddings
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Success 200 {object} NotesResponse
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Wedding not found"
// @Router /v1/weddings/{wedding_id}/notes [get]
func (r *WeddingsRoute) getNotes(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	if text, ok := r.noteSaver.Pending(userID); ok {
		reqCtx.JSON(http.StatusOK, NotesResponse{Notes: text, Pending: true})
		return
	}
	w := getWedding(reqCtx)
	notes := ""
	if w.Notes != nil {
		notes = *w.Notes
	}
	reqCtx.JSON(http.StatusOK, NotesResponse{Notes: notes})
}

// @Summary Save wedding notes after the debounce window
// @Tags Weddings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body NotesRequest true "Request body"
// @Success 202 {object} NotesResponse "Accepted, written once edits settle"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Router /v1/weddings/{wedding_id}/notes [put]
func (r *WeddingsRoute) saveNotes(reqCtx *gin.Context) {
	var request NotesRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f0b", err)
		return
	}
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	r.noteSaver.Save(reqCtx.Request.Context(), userID, getWedding(reqCtx).ID, request.Notes)
	reqCtx.JSON(http.StatusAccepted, NotesResponse{Notes: request.Notes, Pending: true})
}

// @Summary List recent activity
// @Tags Weddings
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param limit query int false "The maximum number of entries to return" default(50)
// @Success 200 {object} responses.ListResponse[ActivityLogResponse]
// @Failure 400 {object} responses.ErrorResponse "Invalid limit"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/logs [get]
func (r *WeddingsRoute) listLogs(reqCtx *gin.Context) {
	pagination, err := query.GetPaginationFromQuery(reqCtx, activitylog.DefaultListLimit, 200)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f0c",
			Error: err.Error(),
		})
		return
	}
	entries, err := r.activity.List(reqCtx.Request.Context(), getWedding(reqCtx).ID, pagination.Limit)
	if err != nil {
		helpers.AbortWithError(reqCtx, "5c0b57d4-8f3e-4c52-b2a9-1d3c6a0e7f0d", err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(entries, NewActivityLogResponse)))
}
