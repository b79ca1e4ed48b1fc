package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/capitolwatch/capitolwatch-backend/internal/ctxutil"
)

// Trace tags every request with a request id (honoring an inbound
// X-Request-Id) and the otel trace id when a span is recording.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		traceID := ""
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
			traceID = span.SpanContext().TraceID().String()
		}

		ctx := ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: requestID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", requestID)
		c.Next()
	}
}
