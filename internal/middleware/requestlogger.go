package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/ctxutil"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("component", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "request_id", td.RequestID)
			if td.TraceID != "" {
				fields = append(fields, "trace_id", td.TraceID)
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			requestLog.Error("Request completed", fields...)
		case status >= 400:
			requestLog.Warn("Request completed", fields...)
		default:
			requestLog.Info("Request completed", fields...)
		}
	}
}
