package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
)

const testSecret = "test-secret-key-for-quote-service"

func init() {
	gin.SetMode(gin.TestMode)
}

// syncRecorder stores audit events immediately so tests can read them back.
type syncRecorder struct {
	svc service.AuditService
}

func (r syncRecorder) Log(event *model.AuditEvent) bool {
	return r.svc.Record(context.Background(), event) == nil
}

type testServer struct {
	router     *gin.Engine
	pricingSvc *service.PricingServiceImpl
	auditSvc   *service.AuditServiceImpl
}

// newTestServer wires the real services over in-memory stores. withAuth
// enables bearer tokens and the management routes.
func newTestServer(t *testing.T, withAuth bool) *testServer {
	t.Helper()

	auditSvc := service.NewAuditService(repository.NewInMemoryAuditRepository(100))
	recorder := syncRecorder{svc: auditSvc}
	pricingSvc := service.NewPricingService(repository.NewInMemoryPricingRepository(), service.WithPricingAudit(recorder))
	calculator := service.NewPrintCostCalculator()
	quotes := service.NewQuoteService(service.NewPageSelectionResolver(), calculator, pricingSvc,
		service.WithMaxTotalPages(1000))

	handler := NewHandler(quotes, WithDefaultPricing(calculator.Defaults()), WithCurrency("INR"))
	cfg := RouterConfig{
		RequestTimeout:    5 * time.Second,
		EnableIdempotency: true,
		PricingHandler:    NewPricingHandler(pricingSvc, auditSvc, "INR"),
	}
	if withAuth {
		cfg.TokenVerifier = service.NewTokenVerifier(service.TokenConfig{SecretKey: testSecret})
	}

	return &testServer{
		router:     NewRouter(handler, NewHealthHandler(), cfg),
		pricingSvc: pricingSvc,
		auditSvc:   auditSvc,
	}
}

func bearer(t *testing.T, subject string, roles ...string) string {
	t.Helper()
	token, err := service.SignToken(testSecret, dto.Claims{Subject: subject, Roles: roles}, "", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func ownerToken(t *testing.T, shopID string) string {
	return bearer(t, shopID, middleware.RoleOwner)
}

func (s *testServer) do(method, path, body, auth string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a SuccessResponse into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NotEmpty(t, envelope.RequestID)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
