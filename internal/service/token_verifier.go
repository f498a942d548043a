package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
)

var (
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrVerifierNotConfigured is returned when no signing secret is set.
	ErrVerifierNotConfigured = errors.New("token verification not configured")
)

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// TokenVerifier checks bearer tokens issued by the storefront.
type TokenVerifier interface {
	Verify(tokenString string) (*dto.Claims, error)
}

// TokenConfig holds configuration for the token verifier.
type TokenConfig struct {
	SecretKey string
	Issuer    string
	Leeway    time.Duration
}

// HMACTokenVerifier verifies HS256 tokens against a shared secret.
type HMACTokenVerifier struct {
	secretKey []byte
	parser    *jwt.Parser
}

// NewTokenVerifier creates a verifier. An empty secret rejects every token.
func NewTokenVerifier(cfg TokenConfig) *HMACTokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &HMACTokenVerifier{
		secretKey: []byte(cfg.SecretKey),
		parser:    jwt.NewParser(opts...),
	}
}

// Verify validates tokenString and returns its claims.
func (v *HMACTokenVerifier) Verify(tokenString string) (*dto.Claims, error) {
	if len(v.secretKey) == 0 {
		return nil, ErrVerifierNotConfigured
	}

	claims := &ClaimsWithJWT{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.RegisteredClaims.Subject == "" {
		return nil, ErrInvalidToken
	}
	claims.Claims.Subject = claims.RegisteredClaims.Subject
	return &claims.Claims, nil
}

// SignToken issues an HS256 token for claims valid for ttl. Used by tooling
// and tests; production tokens come from the storefront.
func SignToken(secret string, claims dto.Claims, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsWithJWT{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}
