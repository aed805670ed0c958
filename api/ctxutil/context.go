// Package ctxutil bridges gin context values into the request
// context.Context used by the application layer.
package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"

	"remindly/api/response"
	"remindly/infrastructure/persistence"
)

// RequestContext returns the request context with the request id
// attached, so persistence logging can correlate queries.
func RequestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if requestID := c.GetString(response.RequestIDKey); requestID != "" {
		ctx = persistence.ContextWithRequestID(ctx, requestID)
	}
	return ctx
}

// UserID returns the authenticated caller's id set by the identity
// middleware, or "" when absent.
func UserID(c *gin.Context) string {
	return c.GetString(response.UserIDKey)
}
