package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// PricingHandler provides HTTP handlers for managing stored rate cards.
// Every route requires verified claims.
type PricingHandler struct {
	pricing  service.PricingService
	audit    service.AuditService
	currency string
}

// NewPricingHandler creates a new PricingHandler. audit may be nil, in which
// case ListAudit reports the store as not configured.
func NewPricingHandler(pricing service.PricingService, audit service.AuditService, currency string) *PricingHandler {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PricingHandler{pricing: pricing, audit: audit, currency: currency}
}

// UpdatePricing handles PUT /api/pricing requests.
//
// @Summary      Replace the caller's rate card
// @Description  Stores the given cells as a new active version for the shop the caller owns. Cells left out fall back to the shared or built-in rates. The previous version stays in the history.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        request body dto.UpdatePricingRequest true "Rate card"
// @Success      200 {object} dto.SuccessResponse{data=dto.PricingVersionResponse} "Stored version"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid tiers"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - owner role required"
// @Failure      503 {object} dto.ErrorResponse "Pricing store unavailable"
// @Security     BearerAuth
// @Router       /api/pricing [put]
func (h *PricingHandler) UpdatePricing(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		writeServiceError(c, service.ErrInvalidToken)
		return
	}
	h.update(c, claims.OwnedShop(), claims.Subject)
}

// UpdateSystemPricing handles PUT /api/pricing/system requests.
//
// @Summary      Replace the shared rate card
// @Description  Stores the given cells as the rates used by every shop that has not configured its own.
// @Tags         Pricing
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        request body dto.UpdatePricingRequest true "Rate card"
// @Success      200 {object} dto.SuccessResponse{data=dto.PricingVersionResponse} "Stored version"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid tiers"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      503 {object} dto.ErrorResponse "Pricing store unavailable"
// @Security     BearerAuth
// @Router       /api/pricing/system [put]
func (h *PricingHandler) UpdateSystemPricing(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		writeServiceError(c, service.ErrInvalidToken)
		return
	}
	h.update(c, repository.SystemOwnerID, claims.Subject)
}

func (h *PricingHandler) update(c *gin.Context, ownerID, updatedBy string) {
	var req dto.UpdatePricingRequest
	if err := NewRequestBuilder(c).Bind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	cfg, err := req.Configuration()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	rec, err := h.pricing.Update(c.Request.Context(), ownerID, cfg, updatedBy)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(newPricingVersionResponse(rec))
}

// ListPricing handles GET /api/pricing/history requests.
//
// @Summary      List stored rate card versions
// @Description  Returns the caller's versions, newest first. Admins may name another shop.
// @Tags         Pricing
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        shop_id query string false "Shop identifier (admin only)"
// @Param        limit query int false "Maximum number of versions" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.PricingVersionResponse} "Versions"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - owner role required"
// @Failure      503 {object} dto.ErrorResponse "Pricing store unavailable"
// @Security     BearerAuth
// @Router       /api/pricing/history [get]
func (h *PricingHandler) ListPricing(c *gin.Context) {
	ownerID, ok := targetShop(c)
	if !ok {
		writeServiceError(c, service.ErrInvalidToken)
		return
	}

	records, err := h.pricing.List(c.Request.Context(), ownerID, queryInt(c, "limit", defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]dto.PricingVersionResponse, 0, len(records))
	for i := range records {
		out = append(out, newPricingVersionResponse(&records[i]))
	}
	NewResponseBuilder(c).SuccessOK(out)
}

// ListAudit handles GET /api/pricing/audit requests.
//
// @Summary      List rate card changes
// @Description  Returns recent pricing update events for the caller's shop, newest first.
// @Tags         Pricing
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        shop_id query string false "Shop identifier (admin only)"
// @Param        limit query int false "Maximum number of events" default(20)
// @Param        skip query int false "Number of events to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditEventsResponse} "Audit events"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - owner role required"
// @Failure      503 {object} dto.ErrorResponse "Audit store unavailable"
// @Security     BearerAuth
// @Router       /api/pricing/audit [get]
func (h *PricingHandler) ListAudit(c *gin.Context) {
	if h.audit == nil {
		writeServiceError(c, service.ErrRepositoryNotConfigured)
		return
	}
	ownerID, ok := targetShop(c)
	if !ok {
		writeServiceError(c, service.ErrInvalidToken)
		return
	}

	q := model.AuditQuery{
		ShopID: ownerID,
		Action: model.ActionPricingUpdate,
		Limit:  queryInt(c, "limit", defaultHistoryLimit, maxHistoryLimit),
		Skip:   queryInt(c, "skip", 0, 0),
	}

	events, err := h.audit.Query(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	total, err := h.audit.Count(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	NewResponseBuilder(c).SuccessOK(dto.AuditEventsResponse{
		Events: events,
		Total:  total,
		Limit:  q.Limit,
		Skip:   q.Skip,
	})
}

// targetShop is the shop named by the shop_id query parameter for admins,
// and the caller's own shop otherwise.
func targetShop(c *gin.Context) (string, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return "", false
	}
	if shopID := c.Query("shop_id"); shopID != "" && claims.HasRole(middleware.RoleAdmin) {
		return shopID, true
	}
	return claims.OwnedShop(), true
}

// queryInt reads a non-negative integer query parameter. Missing or invalid
// values give def; upper > 0 caps the result.
func queryInt(c *gin.Context, name string, def, upper int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return def
	}
	if upper > 0 && v > upper {
		return upper
	}
	return v
}

func newPricingVersionResponse(rec *repository.PricingConfigRecord) dto.PricingVersionResponse {
	resp := dto.PricingVersionResponse{
		ID:        rec.ID,
		Version:   rec.Version,
		Active:    rec.Active,
		CreatedBy: rec.CreatedBy,
		CreatedAt: rec.CreatedAt,
		Tiers:     make([]dto.PricingCellResponse, 0, rec.Configuration.Len()),
	}
	for _, cell := range rec.Configuration.Cells() {
		resp.Tiers = append(resp.Tiers, dto.NewPricingCellResponse(cell, false))
	}
	return resp
}
