package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/service"
)

// Roles understood by the service.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

var errMissingRole = errors.New("missing required role")

// AuthorizationConfig configures authorization requirements for a route.
type AuthorizationConfig struct {
	// RequiredRoles lists the roles allowed to access the route; any one is
	// enough. If empty, any authenticated caller can access.
	RequiredRoles []string
	// Recorder, when set, receives an audit event for every denied request.
	Recorder service.AuditRecorder
}

// RequireAuthorization returns a middleware that checks the caller's roles.
// It must run after JWTAuth.
func RequireAuthorization(cfg AuthorizationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}

		if len(cfg.RequiredRoles) > 0 {
			allowed := false
			for _, role := range cfg.RequiredRoles {
				if claims.HasRole(role) {
					allowed = true
					break
				}
			}
			if !allowed {
				AuditLogError(cfg.Recorder, c, model.ActionAccessDenied, "Access denied", errMissingRole,
					map[string]interface{}{"required_roles": cfg.RequiredRoles})
				abortWithError(c, http.StatusForbidden, i18n.ErrKeyForbidden)
				return
			}
		}

		c.Next()
	}
}

// RequireRole is shorthand for RequireAuthorization with the given roles.
func RequireRole(recorder service.AuditRecorder, roles ...string) gin.HandlerFunc {
	return RequireAuthorization(AuthorizationConfig{RequiredRoles: roles, Recorder: recorder})
}
