package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/middleware"
)

// pageCountRequest validates itself the way BuildRequestAndValidate expects.
type pageCountRequest struct {
	Pages int `json:"pages"`
}

func (r *pageCountRequest) Validate() error {
	if r.Pages <= 0 {
		return errors.New("pages must be positive")
	}
	return nil
}

func newJSONContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	middleware.RequestID()(c)
	return c, w
}

func TestRequestBuilder_Bind(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedPages int
		expectError   bool
	}{
		{
			name:          "valid request",
			body:          `{"total_pages": 12, "color_mode": "COLOR", "duplex_mode": "SINGLE_SIDED"}`,
			expectedPages: 12,
		},
		{
			name:        "invalid JSON",
			body:        `{"total_pages": invalid}`,
			expectError: true,
		},
		{
			name:        "empty body",
			body:        ``,
			expectError: true,
		},
		{
			name:        "binding rule fails",
			body:        `{"total_pages": 0, "color_mode": "COLOR", "duplex_mode": "SINGLE_SIDED"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(tt.body)

			var request dto.QuoteRequest
			err := NewRequestBuilder(c).Bind(&request)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPages, request.TotalPages)
		})
	}
}

func TestUnmarshalHelpers(t *testing.T) {
	t.Run("from bytes", func(t *testing.T) {
		result, err := UnmarshalFromBytes[dto.QuoteRequest]([]byte(`{"total_pages": 3}`))
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalPages)

		result, err = UnmarshalFromBytes[dto.QuoteRequest]([]byte(`{"total_pages": x}`))
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("from reader", func(t *testing.T) {
		result, err := UnmarshalFromReader[dto.QuoteRequest](bytes.NewBufferString(`{"page_range": "1-2"}`))
		require.NoError(t, err)
		assert.Equal(t, "1-2", result.PageRange)

		result, err = UnmarshalFromReader[dto.QuoteRequest](bytes.NewBufferString(`{`))
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestBuildRequestAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{name: "valid request", body: `{"pages": 4}`},
		{name: "fails validation", body: `{"pages": 0}`, expectError: true},
		{name: "invalid JSON", body: `{"pages": }`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(tt.body)

			result, err := BuildRequestAndValidate[pageCountRequest](c)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, result.Pages)
		})
	}
}

func TestBindingDetails(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		target   func() interface{}
		expected map[string]string
	}{
		{
			name:     "quote request",
			body:     `{"total_pages": -2}`,
			target:   func() interface{} { return &dto.QuoteRequest{} },
			expected: map[string]string{"total_pages": "must be greater than 0", "color_mode": "is required", "duplex_mode": "is required"},
		},
		{
			name:     "nested tier",
			body:     `{"tiers": [{"color_mode": "COLOR", "duplex_mode": "SINGLE_SIDED", "base_limit": -1}]}`,
			target:   func() interface{} { return &dto.UpdatePricingRequest{} },
			expected: map[string]string{"tiers[0].base_limit": "must be at least 0"},
		},
		{
			name:     "syntax error has no details",
			body:     `{`,
			target:   func() interface{} { return &dto.QuoteRequest{} },
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(tt.body)
			err := NewRequestBuilder(c).Bind(tt.target())
			require.Error(t, err)
			assert.Equal(t, tt.expected, bindingDetails(err))
		})
	}
}

func TestResponseBuilder_Success(t *testing.T) {
	tests := []struct {
		name           string
		send           func(*ResponseBuilder)
		expectedStatus int
	}{
		{name: "ok", send: func(b *ResponseBuilder) { b.SuccessOK(map[string]int{"pages": 4}) }, expectedStatus: http.StatusOK},
		{name: "created", send: func(b *ResponseBuilder) { b.SuccessCreated(map[string]int{"pages": 4}) }, expectedStatus: http.StatusCreated},
		{name: "accepted", send: func(b *ResponseBuilder) { b.SuccessAccepted(map[string]int{"pages": 4}) }, expectedStatus: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newJSONContext("")
			tt.send(NewResponseBuilder(c))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp struct {
				Data      map[string]int `json:"data"`
				RequestID string         `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 4, resp.Data["pages"])
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestResponseBuilder_Errors(t *testing.T) {
	tests := []struct {
		name            string
		send            func(*ResponseBuilder)
		expectedStatus  int
		expectedCode    string
		expectedMessage string
		expectedDetails map[string]string
	}{
		{
			name:            "translated key",
			send:            func(b *ResponseBuilder) { b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil) },
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    dto.ErrCodeInvalidRequest,
			expectedMessage: "Invalid request",
		},
		{
			name:            "custom message",
			send:            func(b *ResponseBuilder) { b.ErrorWithMessage(http.StatusBadRequest, "page range is empty", nil) },
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    dto.ErrCodeInvalidRequest,
			expectedMessage: "page range is empty",
		},
		{
			name: "details",
			send: func(b *ResponseBuilder) {
				b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidationTiers,
					map[string]string{"tiers[0]": "prices and base_limit must be non-negative"}, nil)
			},
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    dto.ErrCodeInvalidRequest,
			expectedMessage: "Invalid pricing tiers",
			expectedDetails: map[string]string{"tiers[0]": "prices and base_limit must be non-negative"},
		},
		{
			name:            "server error",
			send:            func(b *ResponseBuilder) { b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, errors.New("boom")) },
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    dto.ErrCodeInternal,
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newJSONContext("")
			tt.send(NewResponseBuilder(c))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, c.IsAborted())

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, tt.expectedDetails, resp.Details)
			assert.NotEmpty(t, resp.RequestID)
			assert.NotZero(t, resp.Timestamp)
		})
	}
}

func TestMarshalHelpers(t *testing.T) {
	data := dto.QuoteRequest{TotalPages: 251, ColorMode: "COLOR"}

	encoded, err := MarshalJSON(data)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"total_pages":251`)

	var buf bytes.Buffer
	require.NoError(t, MarshalToWriter(&buf, data))
	assert.JSONEq(t, string(encoded), buf.String())
}
