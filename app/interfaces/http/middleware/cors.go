package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// CORS echoes the origin back when it is one of ALLOWED_CORS_HOSTS; "*" in
// the list admits any origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowed := environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS
		if origin != "" && (slices.Contains(allowed, origin) || slices.Contains(allowed, "*")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
