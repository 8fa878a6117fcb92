package middleware

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"vowboard.io/planner-gateway/app/utils/contextkeys"
)

const maxLoggedBody = 4 << 10

var redactedHeaders = []string{"Authorization", "Cookie", "Apikey"}

type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w BodyLogWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// LoggerMiddleware tags the request with an id and logs one line per
// request. Credentials never reach the log: auth headers are redacted and
// bodies of /auth routes are dropped.
func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(c.Request.Context(), contextkeys.RequestId{}, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		sensitive := strings.Contains(c.Request.URL.Path, "/auth/")
		var reqBody []byte
		if c.Request.Body != nil && !sensitive {
			reqBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		blw := &BodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		headers := c.Request.Header.Clone()
		for _, h := range redactedHeaders {
			if headers.Get(h) != "" {
				headers.Set(h, "[redacted]")
			}
		}
		respBody := blw.body.String()
		if sensitive {
			respBody = ""
		}
		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"headers":    headers,
			"req_body":   truncate(string(reqBody)),
			"resp_body":  respBody,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("")
		case c.Writer.Status() >= 400:
			entry.Warn("")
		default:
			entry.Info("")
		}
	}
}

func truncate(s string) string {
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody]
	}
	return s
}
