package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/auth"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/clients"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/preferences"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/presentations"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/viewstate"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/v1/weddings"
	"vowboard.io/planner-gateway/config"
)

type V1Route struct {
	authRoute          *auth.AuthRoute
	clientsRoute       *clients.ClientsRoute
	weddingsRoute      *weddings.WeddingsRoute
	presentationsRoute *presentations.PresentationsRoute
	preferencesRoute   *preferences.PreferencesRoute
	viewStateRoute     *viewstate.ViewStateRoute
}

func NewV1Route(
	authRoute *auth.AuthRoute,
	clientsRoute *clients.ClientsRoute,
	weddingsRoute *weddings.WeddingsRoute,
	presentationsRoute *presentations.PresentationsRoute,
	preferencesRoute *preferences.PreferencesRoute,
	viewStateRoute *viewstate.ViewStateRoute,
) *V1Route {
	return &V1Route{
		authRoute,
		clientsRoute,
		weddingsRoute,
		presentationsRoute,
		preferencesRoute,
		viewStateRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.authRoute.RegisterRouter(v1Router)
	v1Route.clientsRoute.RegisterRouter(v1Router)
	v1Route.weddingsRoute.RegisterRouter(v1Router)
	v1Route.presentationsRoute.RegisterRouter(v1Router)
	v1Route.preferencesRoute.RegisterRouter(v1Router)
	v1Route.viewStateRoute.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the API server.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "version info"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
