package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"vowboard.io/planner-gateway/app/domain/healthcheck"
	"vowboard.io/planner-gateway/app/interfaces/http/middleware"
	"vowboard.io/planner-gateway/app/interfaces/http/routes/admin"
	v1 "vowboard.io/planner-gateway/app/interfaces/http/routes/v1"
	"vowboard.io/planner-gateway/app/utils/logger"
	"vowboard.io/planner-gateway/config/environment_variables"
	_ "vowboard.io/planner-gateway/docs"
)

type HttpServer struct {
	engine     *gin.Engine
	v1Route    *v1.V1Route
	adminRoute *admin.AdminRoute
	health     *healthcheck.HealthcheckCrontabService
}

func NewHttpServer(v1Route *v1.V1Route, adminRoute *admin.AdminRoute, health *healthcheck.HealthcheckCrontabService) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:     gin.New(),
		v1Route:    v1Route,
		adminRoute: adminRoute,
		health:     health,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.CORS())
	server.engine.GET("/health-check", server.healthCheck)
	registerSwagger(server.engine)
	server.v1Route.RegisterRouter(server.engine.Group("/"))
	server.adminRoute.RegisterRouter(server.engine.Group("/"))
	return &server
}

// registerSwagger serves the API document at /swagger/doc.json and the UI
// at /swagger/index.html.
func registerSwagger(router gin.IRouter) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (httpServer *HttpServer) Handler() http.Handler {
	return httpServer.engine
}

func (httpServer *HttpServer) healthCheck(c *gin.Context) {
	status := httpServer.health.Status()
	if status.CheckedAt.IsZero() || status.Healthy() {
		c.JSON(http.StatusOK, "ok")
		return
	}
	c.JSON(http.StatusServiceUnavailable, status)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (httpServer *HttpServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", environment_variables.EnvironmentVariables.HTTP_PORT),
		Handler:           httpServer.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.GetLogger().Infof("http server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
