package preferences

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
)

type PreferencesRoute struct {
	authService       *auth.AuthService
	preferenceService *preference.PreferenceService
	noteSaver         *preference.NoteSaver
}

func NewPreferencesRoute(authService *auth.AuthService, preferenceService *preference.PreferenceService, noteSaver *preference.NoteSaver) *PreferencesRoute {
	return &PreferencesRoute{authService, preferenceService, noteSaver}
}

func (r *PreferencesRoute) RegisterRouter(router gin.IRouter) {
	preferencesRouter := router.Group("/preferences", r.authService.JWTAuthMiddleware())
	preferencesRouter.GET("/language", r.getLanguage)
	preferencesRouter.PUT("/language", r.setLanguage)
	preferencesRouter.GET("/notes", r.getNotes)
	preferencesRouter.PUT("/notes", r.saveNotes)
}

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type LanguageResponse struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type NotesResponse struct {
	Notes   string `json:"notes"`
	Pending bool   `json:"pending"`
}

// @Summary Get the interface language
// @Tags Preferences
// @Security BearerAuth
// @Produce json
// @Success 200 {object} LanguageResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/preferences/language [get]
func (r *PreferencesRoute) getLanguage(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	reqCtx.JSON(http.StatusOK, LanguageResponse{
		Language:  r.preferenceService.Language(reqCtx.Request.Context(), userID),
		Supported: preference.SupportedLanguages,
	})
}

// @Summary Set the interface language
// @Tags Preferences
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LanguageRequest true "Request body"
// @Success 200 {object} LanguageResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/preferences/language [put]
func (r *PreferencesRoute) setLanguage(reqCtx *gin.Context) {
	var request LanguageRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "4f1e2d3c-5b6a-4798-8a9b-0c1d2e3f4a01", err)
		return
	}
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	if err := r.preferenceService.SetLanguage(reqCtx.Request.Context(), userID, request.Language); err != nil {
		helpers.AbortWithError(reqCtx, "4f1e2d3c-5b6a-4798-8a9b-0c1d2e3f4a02", err)
		return
	}
	reqCtx.JSON(http.StatusOK, LanguageResponse{Language: request.Language, Supported: preference.SupportedLanguages})
}

// getNotes returns notes kept for a caller who has no wedding yet.
// @Summary Get notes kept before a wedding exists
// @Tags Preferences
// @Security BearerAuth
// @Produce json
// @Success 200 {object} NotesResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/preferences/notes [get]
func (r *PreferencesRoute) getNotes(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	if text, ok := r.noteSaver.Pending(userID); ok {
		reqCtx.JSON(http.StatusOK, NotesResponse{Notes: text, Pending: true})
		return
	}
	text, err := r.preferenceService.LocalNotes(reqCtx.Request.Context(), userID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "4f1e2d3c-5b6a-4798-8a9b-0c1d2e3f4a03", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NotesResponse{Notes: text})
}

// @Summary Save notes after the debounce window
// @Tags Preferences
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body NotesRequest true "Request body"
// @Success 202 {object} NotesResponse "Accepted, written once edits settle"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Router /v1/preferences/notes [put]
func (r *PreferencesRoute) saveNotes(reqCtx *gin.Context) {
	var request NotesRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "4f1e2d3c-5b6a-4798-8a9b-0c1d2e3f4a04", err)
		return
	}
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	r.noteSaver.Save(reqCtx.Request.Context(), userID, "", request.Notes)
	reqCtx.JSON(http.StatusAccepted, NotesResponse{Notes: request.Notes, Pending: true})
}
