package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// AuthRoutes builds route groups guarded by bearer tokens.
type AuthRoutes struct {
	verifier service.TokenVerifier
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(verifier service.TokenVerifier) *AuthRoutes {
	return &AuthRoutes{verifier: verifier}
}

// GetProtectedGroup returns a group that requires a valid bearer token and
// rate limits per caller.
func (r *AuthRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.verifier))
	if limiter := cfg.rateLimiter(); limiter != nil {
		protected.Use(limiter.UserRateLimit())
	}
	return protected
}

// GetOptionalGroup returns a group that accepts anonymous callers and
// attaches claims when a valid bearer token is sent.
func (r *AuthRoutes) GetOptionalGroup(rg *gin.RouterGroup) *gin.RouterGroup {
	optional := rg.Group("")
	optional.Use(middleware.OptionalJWTAuth(r.verifier))
	return optional
}
