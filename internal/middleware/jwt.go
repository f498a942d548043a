package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/service"
)

// ClaimsKey is the gin context key holding the verified *dto.Claims.
const ClaimsKey = "user_claims"

const bearerPrefix = "Bearer "

// JWTAuth returns a middleware that validates bearer tokens.
func JWTAuth(verifier service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, key := bearerClaims(c, verifier)
		if key != "" {
			abortWithError(c, http.StatusUnauthorized, key)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalJWTAuth lets requests without an Authorization header through
// anonymously. A header that is present must carry a valid token.
func OptionalJWTAuth(verifier service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, key := bearerClaims(c, verifier)
		if key != "" {
			abortWithError(c, http.StatusUnauthorized, key)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// bearerClaims verifies the bearer token of c. On failure it returns the
// i18n key of the error to report.
func bearerClaims(c *gin.Context, verifier service.TokenVerifier) (*dto.Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, i18n.ErrKeyTokenRequired
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, i18n.ErrKeyInvalidToken
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return nil, i18n.ErrKeyTokenRequired
	}

	claims, err := verifier.Verify(tokenString)
	if err != nil {
		return nil, i18n.ErrKeyInvalidToken
	}
	return claims, ""
}

// GetClaims returns the claims stored by JWTAuth.
func GetClaims(c *gin.Context) (*dto.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok && claims != nil
}

// callerIdentity is the caller's subject if authenticated, otherwise the
// client IP.
func callerIdentity(c *gin.Context) string {
	if claims, ok := GetClaims(c); ok && claims.Subject != "" {
		return "user:" + claims.Subject
	}
	return "ip:" + c.ClientIP()
}
