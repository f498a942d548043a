package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// DefaultCurrency is reported with amounts when none is configured.
const DefaultCurrency = "INR"

// Handler provides HTTP handlers for quoting and reading rate cards.
type Handler struct {
	quotes    service.QuoteService
	defaults  model.PricingConfiguration
	currency  string
	ownerRole string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCurrency sets the currency code reported with amounts.
func WithCurrency(currency string) HandlerOption {
	return func(h *Handler) {
		if currency != "" {
			h.currency = currency
		}
	}
}

// WithDefaultPricing sets the rate card served by GetDefaultPricing. It
// should match the calculator's defaults.
func WithDefaultPricing(cfg model.PricingConfiguration) HandlerOption {
	return func(h *Handler) {
		h.defaults = cfg
	}
}

// WithOwnerRole sets the role whose holders are quoted with their own
// shop's rates when a request names no shop.
func WithOwnerRole(role string) HandlerOption {
	return func(h *Handler) {
		if role != "" {
			h.ownerRole = role
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(quotes service.QuoteService, opts ...HandlerOption) *Handler {
	h := &Handler{
		quotes:    quotes,
		defaults:  model.DefaultPricingConfiguration(),
		currency:  DefaultCurrency,
		ownerRole: middleware.RoleOwner,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateQuote handles POST /api/quotes requests.
//
// @Summary      Price a print job
// @Description  Resolves the page selection against the document's page count and prices it with the shop's tier for the requested color and duplex mode. Cells the shop has not configured use the shared or built-in rates. Supports idempotency via Idempotency-Key header.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Accept-Language header string false "Response language (en, hi)"
// @Param        request body dto.QuoteRequest true "Print job"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Computed quote"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid page range, page count or print mode"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid JWT token"
// @Failure      409 {object} dto.ErrorResponse "Idempotency key reused with a different body"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      504 {object} dto.ErrorResponse "Request timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/quotes [post]
func (h *Handler) CreateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := NewRequestBuilder(c).Bind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	color, duplex, err := req.Validate()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	shopID := req.ShopID
	if shopID == "" {
		if claims, ok := middleware.GetClaims(c); ok && claims.HasRole(h.ownerRole) {
			shopID = claims.OwnedShop()
		}
	}

	quote, err := h.quotes.Quote(c.Request.Context(), service.QuoteRequest{
		ShopID:     shopID,
		TotalPages: req.TotalPages,
		PageRange:  req.PageRange,
		ColorMode:  color,
		DuplexMode: duplex,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(dto.NewQuoteResponse(quote, h.currency))
}

// GetPricing handles GET /api/pricing requests.
//
// @Summary      Get a shop's rate card
// @Description  Returns all four cells a shop is quoted with. Cells marked default come from the built-in rates.
// @Tags         Pricing
// @Produce      json
// @Param        shop_id query string false "Shop identifier; empty returns the shared rates"
// @Success      200 {object} dto.SuccessResponse{data=dto.PricingResponse} "Effective rate card"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/pricing [get]
func (h *Handler) GetPricing(c *gin.Context) {
	shopID := c.Query("shop_id")

	pricing, err := h.quotes.EffectivePricing(c.Request.Context(), shopID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := dto.PricingResponse{
		ShopID:        pricing.ShopID,
		Version:       pricing.Version,
		SystemVersion: pricing.SystemVersion,
		Currency:      h.currency,
		Tiers:         make([]dto.PricingCellResponse, 0, len(pricing.Cells)),
	}
	for _, cell := range pricing.Cells {
		resp.Tiers = append(resp.Tiers, dto.NewPricingCellResponse(cell.TierCell, cell.FromDefaults))
	}
	NewResponseBuilder(c).SuccessOK(resp)
}

// GetDefaultPricing handles GET /api/pricing/defaults requests.
//
// @Summary      Get the built-in rate card
// @Tags         Pricing
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.PricingResponse} "Built-in rate card"
// @Router       /api/pricing/defaults [get]
func (h *Handler) GetDefaultPricing(c *gin.Context) {
	resp := dto.NewPricingResponse("", 0, h.defaults, h.currency)
	for i := range resp.Tiers {
		resp.Tiers[i].Default = true
	}
	NewResponseBuilder(c).SuccessOK(resp)
}
