package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/obraerp/backend/internal/interfaces/http/dto"
)

// Gin context keys shared with handlers and the request logger
const (
	RequestIDKey      = "request_id"
	OrganizationIDKey = "organization_id"
	UserIDKey         = "user_id"
	TenantContextKey  = "tenant_context"
	RequestIDHeader   = "X-Request-ID"
)

// GetRequestID returns the id assigned by RequestID, falling back to the
// inbound header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// abort stops the chain with an error envelope
func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message, GetRequestID(c)))
}
