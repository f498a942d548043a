package middleware

import (
	"crypto/sha256"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/print-quote-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// apiKeySet checks keys against bcrypt hashes. Accepted keys are remembered
// by their SHA-256 digest so bcrypt runs once per key, not once per request.
type apiKeySet struct {
	hashes   [][]byte
	accepted sync.Map
}

func newAPIKeySet(hashes []string) *apiKeySet {
	s := &apiKeySet{}
	for _, h := range hashes {
		if h != "" {
			s.hashes = append(s.hashes, []byte(h))
		}
	}
	return s
}

func (s *apiKeySet) empty() bool {
	return len(s.hashes) == 0
}

func (s *apiKeySet) valid(key string) bool {
	digest := sha256.Sum256([]byte(key))
	if _, ok := s.accepted.Load(digest); ok {
		return true
	}
	for _, h := range s.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(key)) == nil {
			s.accepted.Store(digest, struct{}{})
			return true
		}
	}
	return false
}

// APIKeyAuth returns a middleware that validates API keys against bcrypt
// hashes. It checks the X-API-Key header first, then falls back to the
// api_key query parameter. If no hashes are configured, authentication is
// disabled.
func APIKeyAuth(keyHashes []string) gin.HandlerFunc {
	keys := newAPIKeySet(keyHashes)

	return func(c *gin.Context) {
		if keys.empty() {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}

		if !keys.valid(key) {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Next()
	}
}
