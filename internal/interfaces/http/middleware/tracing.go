package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// untracedPaths are probes that would only add noise
var untracedPaths = map[string]bool{
	"/health":      true,
	"/healthz":     true,
	"/ready":       true,
	"/api/v1/ping": true,
}

// Tracing starts one server span per request with otelgin
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return !untracedPaths[r.URL.Path]
		}),
	)
}

// SpanAttributes tags the request span with the request id and, once the
// session is known, the organization, user and role. Error responses mark
// the span as failed. Place it after SessionAuth.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if id := GetRequestID(c); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if tc, ok := GetTenantContext(c); ok {
			span.SetAttributes(
				attribute.String("organization_id", tc.OrganizationID.String()),
				attribute.String("user_id", tc.UserID.String()),
				attribute.String("role", string(tc.Role)),
			)
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
	}
}
