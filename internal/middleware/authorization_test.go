package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

func TestRequireAuthorization(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		claims         interface{}
		requiredRoles  []string
		expectedStatus int
		expectAudit    bool
	}{
		{
			name:           "no claims is unauthorized",
			claims:         nil,
			requiredRoles:  []string{RoleOwner},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "claims of wrong type is unauthorized",
			claims:         map[string]string{"sub": "u1"},
			requiredRoles:  []string{RoleOwner},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "any authenticated caller when no roles required",
			claims:         &dto.Claims{Subject: "u1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "matching role passes",
			claims:         &dto.Claims{Subject: "u1", Roles: []string{"customer", RoleOwner}},
			requiredRoles:  []string{RoleOwner},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "any of several roles passes",
			claims:         &dto.Claims{Subject: "u1", Roles: []string{RoleAdmin}},
			requiredRoles:  []string{RoleOwner, RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing role is forbidden and audited",
			claims:         &dto.Claims{Subject: "u1", ShopID: "shop-1", Roles: []string{"customer"}},
			requiredRoles:  []string{RoleOwner},
			expectedStatus: http.StatusForbidden,
			expectAudit:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &captureRecorder{}
			router := gin.New()
			router.Use(RequestID(), func(c *gin.Context) {
				if tt.claims != nil {
					c.Set(ClaimsKey, tt.claims)
				}
				c.Next()
			})
			router.Use(RequireRole(recorder, tt.requiredRoles...))
			router.PUT("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPut, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if !tt.expectAudit {
				assert.Equal(t, 0, recorder.count())
				return
			}

			event := recorder.last()
			require.NotNil(t, event)
			assert.Equal(t, model.ActionAccessDenied, event.Action)
			assert.Equal(t, "error", event.Level)
			assert.Equal(t, "u1", event.ActorID)
			assert.Equal(t, "shop-1", event.ShopID)
			assert.Equal(t, http.MethodPut, event.Method)
			assert.NotEmpty(t, event.RequestID)
			assert.Equal(t, errMissingRole.Error(), event.Error)
		})
	}
}

func TestRequireAuthorization_NilRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ClaimsKey, &dto.Claims{Subject: "u1"})
		c.Next()
	})
	router.Use(RequireAuthorization(AuthorizationConfig{RequiredRoles: []string{RoleOwner}}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeForbidden)
}
