package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/mocks"
)

func newAuditTestContext(claims *dto.Claims) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPut, "/api/pricing", nil)
	c.Request.Header.Set("User-Agent", "audit-test")
	c.Set(string(RequestIDKey), "req-1")
	if claims != nil {
		c.Set(ClaimsKey, claims)
	}
	return c
}

func TestAuditLog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		claims     *dto.Claims
		fields     map[string]interface{}
		wantActor  string
		wantShop   string
		wantFields int
	}{
		{
			name:       "with caller",
			claims:     &dto.Claims{Subject: "owner-1", ShopID: "shop-9"},
			fields:     map[string]interface{}{"cells": 4},
			wantActor:  "owner-1",
			wantShop:   "shop-9",
			wantFields: 1,
		},
		{
			name:      "caller without shop owns the subject",
			claims:    &dto.Claims{Subject: "owner-2"},
			wantActor: "owner-2",
			wantShop:  "owner-2",
		},
		{
			name: "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &captureRecorder{}
			AuditLog(recorder, newAuditTestContext(tt.claims), "pricing.viewed", "Pricing viewed", tt.fields)

			event := recorder.last()
			require.NotNil(t, event)
			assert.Equal(t, "info", event.Level)
			assert.Equal(t, "pricing.viewed", event.Action)
			assert.Equal(t, "Pricing viewed", event.Message)
			assert.Equal(t, "req-1", event.RequestID)
			assert.Equal(t, http.MethodPut, event.Method)
			assert.Equal(t, "/api/pricing", event.Path)
			assert.Equal(t, "audit-test", event.UserAgent)
			assert.Equal(t, tt.wantActor, event.ActorID)
			assert.Equal(t, tt.wantShop, event.ShopID)
			assert.Len(t, event.Fields, tt.wantFields)
			assert.False(t, event.Timestamp.IsZero())
		})
	}
}

func TestAuditLogError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := new(mocks.MockAuditRecorder)
	recorder.On("Log", mock.MatchedBy(func(e *model.AuditEvent) bool {
		return e.Level == "error" && e.Error == "boom" && e.Action == "pricing.update_failed" && e.ActorID == ""
	})).Return(true).Once()

	AuditLogError(recorder, newAuditTestContext(nil), "pricing.update_failed", "Update failed", errors.New("boom"), nil)
	recorder.AssertExpectations(t)
}

func TestAuditLog_NilRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newAuditTestContext(nil)

	assert.NotPanics(t, func() {
		AuditLog(nil, c, "a", "b", nil)
		AuditLogError(nil, c, "a", "b", errors.New("x"), nil)
	})
}
