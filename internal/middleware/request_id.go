// Package middleware provides HTTP middleware components for the quote service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/print-quote-service/internal/logger"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// CorrelationIDHeader is accepted from storefronts that trace orders
	// under that name.
	CorrelationIDHeader = "X-Correlation-ID"
	maxRequestIDLength  = 128
)

// ContextKey namespaces values stored on the gin context.
type ContextKey string

// RequestIDKey is the gin context key of the request ID.
const RequestIDKey ContextKey = "request_id"

// RequestID tags every request with an ID. A well-formed X-Request-ID (or
// X-Correlation-ID) from the client is kept; anything else is replaced by a
// random UUID. The ID is echoed back and attached to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = c.GetHeader(CorrelationIDHeader)
		}
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// validRequestID accepts short tokens of visible ASCII so client IDs cannot
// inject control characters into logs or headers.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	id, _ := c.Get(string(RequestIDKey))
	s, _ := id.(string)
	return s
}
