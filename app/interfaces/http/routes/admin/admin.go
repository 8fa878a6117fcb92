package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// AdminRoute exposes cache and schema maintenance to organizers.
type AdminRoute struct {
	authService  *auth.AuthService
	cache        cache.CacheService
	capabilities *schema.CapabilityService
}

func NewAdminRoute(authService *auth.AuthService, cacheService cache.CacheService, capabilities *schema.CapabilityService) *AdminRoute {
	return &AdminRoute{
		authService,
		cacheService,
		capabilities,
	}
}

func (adminRoute *AdminRoute) RegisterRouter(router gin.IRouter) {
	if !environment_variables.EnvironmentVariables.ENABLE_ADMIN_API {
		return
	}
	adminRouter := router.Group("/admin",
		adminRoute.authService.JWTAuthMiddleware(),
		adminRoute.authService.RegisteredUserMiddleware(),
		adminRoute.authService.OrganizerOnlyMiddleware(),
	)
	adminRouter.POST("/cache/invalidate", adminRoute.invalidateCache)
	adminRouter.GET("/capabilities", adminRoute.getCapabilities)
	adminRouter.POST("/capabilities/refresh", adminRoute.refreshCapabilities)
}

type InvalidateCacheRequest struct {
	Keys   []string `json:"keys"`
	Prefix string   `json:"prefix"`
}

// @Summary Invalidate cache entries
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param request body InvalidateCacheRequest true "Keys and/or a key prefix"
// @Success 204 "No Content"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Organizer only"
// @Router /admin/cache/invalidate [post]
func (adminRoute *AdminRoute) invalidateCache(reqCtx *gin.Context) {
	var request InvalidateCacheRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b01", err)
		return
	}
	ctx := reqCtx.Request.Context()
	if len(request.Keys) > 0 {
		adminRoute.cache.Invalidate(ctx, request.Keys...)
	}
	if request.Prefix != "" {
		adminRoute.cache.InvalidatePrefix(ctx, request.Prefix)
	}
	reqCtx.Status(http.StatusNoContent)
}

// @Summary Get collection ordering support
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 403 {object} responses.ErrorResponse "Organizer only"
// @Router /admin/capabilities [get]
func (adminRoute *AdminRoute) getCapabilities(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, adminRoute.capabilities.Snapshot())
}

// @Summary Check collection ordering support again
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 403 {object} responses.ErrorResponse "Organizer only"
// @Router /admin/capabilities/refresh [post]
func (adminRoute *AdminRoute) refreshCapabilities(reqCtx *gin.Context) {
	adminRoute.capabilities.Refresh(reqCtx.Request.Context())
	reqCtx.JSON(http.StatusOK, adminRoute.capabilities.Snapshot())
}
