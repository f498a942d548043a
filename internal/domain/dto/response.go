package dto

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data.
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"total_pages: must be a positive integer"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// TierResponse is a pricing tier with amounts as JSON numbers.
type TierResponse struct {
	BasePrice  float64 `json:"base_price" example:"2"`
	BaseLimit  int     `json:"base_limit" example:"10"`
	ExtraPrice float64 `json:"extra_price" example:"1"`
} // @name TierResponse

// NewTierResponse converts a tier for display.
func NewTierResponse(t model.PricingTier) TierResponse {
	return TierResponse{
		BasePrice:  t.BasePrice.InexactFloat64(),
		BaseLimit:  t.BaseLimit,
		ExtraPrice: t.ExtraPrice.InexactFloat64(),
	}
}

// QuoteResponse is the price of a print job. Amounts are raw numbers;
// formatting is up to the client.
//
// @Description Computed print job price
type QuoteResponse struct {
	ShopID            string       `json:"shop_id,omitempty" example:"shop-42"`
	TotalPages        int          `json:"total_pages" example:"24"`
	PageRange         string       `json:"page_range,omitempty" example:"1-3,7"`
	ResolvedPageCount int          `json:"resolved_page_count" example:"4"`
	SelectedPages     []int        `json:"selected_pages,omitempty"`
	ColorMode         string       `json:"color_mode" example:"MONOCHROME"`
	DuplexMode        string       `json:"duplex_mode" example:"SINGLE_SIDED"`
	Tier              TierResponse `json:"tier"`
	DefaultTier       bool         `json:"default_tier" example:"false"`
	PricingVersion    int          `json:"pricing_version" example:"3"`
	TotalCost         float64      `json:"total_cost" example:"8"`
	Currency          string       `json:"currency" example:"INR"`
} // @name QuoteResponse

// NewQuoteResponse converts a quote for display.
func NewQuoteResponse(q *model.Quote, currency string) QuoteResponse {
	return QuoteResponse{
		ShopID:            q.ShopID,
		TotalPages:        q.TotalPages,
		PageRange:         q.PageRange,
		ResolvedPageCount: q.ResolvedPageCount,
		SelectedPages:     q.SelectedPages,
		ColorMode:         string(q.ColorMode),
		DuplexMode:        string(q.DuplexMode),
		Tier:              NewTierResponse(q.Tier),
		DefaultTier:       q.TierFromDefaults,
		PricingVersion:    q.PricingVersion,
		TotalCost:         q.TotalCost.InexactFloat64(),
		Currency:          currency,
	}
}

// PricingCellResponse is one cell of a rate card.
type PricingCellResponse struct {
	ColorMode  string  `json:"color_mode" example:"COLOR"`
	DuplexMode string  `json:"duplex_mode" example:"DOUBLE_SIDED"`
	BasePrice  float64 `json:"base_price" example:"20"`
	BaseLimit  int     `json:"base_limit" example:"0"`
	ExtraPrice float64 `json:"extra_price" example:"20"`
	// Default is set when the cell comes from the built-in rates.
	Default bool `json:"default,omitempty" example:"false"`
} // @name PricingCellResponse

// NewPricingCellResponse converts a cell for display.
func NewPricingCellResponse(c model.TierCell, isDefault bool) PricingCellResponse {
	return PricingCellResponse{
		ColorMode:  string(c.ColorMode),
		DuplexMode: string(c.DuplexMode),
		BasePrice:  c.BasePrice.InexactFloat64(),
		BaseLimit:  c.BaseLimit,
		ExtraPrice: c.ExtraPrice.InexactFloat64(),
		Default:    isDefault,
	}
}

// PricingResponse is a rate card.
//
// @Description Rate card applied to quotes
type PricingResponse struct {
	ShopID        string                `json:"shop_id,omitempty" example:"shop-42"`
	Version       int                   `json:"version" example:"3"`
	SystemVersion int                   `json:"system_version,omitempty" example:"1"`
	Currency      string                `json:"currency" example:"INR"`
	Tiers         []PricingCellResponse `json:"tiers"`
} // @name PricingResponse

// NewPricingResponse lists every cell of cfg.
func NewPricingResponse(shopID string, version int, cfg model.PricingConfiguration, currency string) PricingResponse {
	resp := PricingResponse{ShopID: shopID, Version: version, Currency: currency}
	for _, c := range cfg.Cells() {
		resp.Tiers = append(resp.Tiers, NewPricingCellResponse(c, false))
	}
	return resp
}

// PricingVersionResponse is one stored version of a shop's rates.
//
// @Description Stored pricing version
type PricingVersionResponse struct {
	ID        string                `json:"id" example:"1f0c8a4e-8f0b-4b7e-9d55-0a3f5c2c1e77"`
	Version   int                   `json:"version" example:"2"`
	Active    bool                  `json:"active" example:"true"`
	CreatedBy string                `json:"created_by,omitempty" example:"owner-7"`
	CreatedAt time.Time             `json:"created_at" example:"2025-01-28T10:00:00Z"`
	Tiers     []PricingCellResponse `json:"tiers"`
} // @name PricingVersionResponse

// AuditEventsResponse is a page of audit events, newest first.
//
// @Description Page of audit events
type AuditEventsResponse struct {
	Events []model.AuditEvent `json:"events"`
	Total  int64              `json:"total" example:"12"`
	Limit  int                `json:"limit" example:"20"`
	Skip   int                `json:"skip" example:"0"`
} // @name AuditEventsResponse

// AmountString formats an amount with two decimals, for logs and CLIs.
func AmountString(d decimal.Decimal, currency string) string {
	return d.StringFixed(2) + " " + currency
}
