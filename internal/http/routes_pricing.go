package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/middleware"
)

// PricingRoutes handles quote and rate card route registration.
type PricingRoutes struct {
	handler        *Handler
	pricingHandler *PricingHandler
}

// NewPricingRoutes creates a new PricingRoutes instance. pricingHandler may
// be nil, in which case no management routes are registered.
func NewPricingRoutes(handler *Handler, pricingHandler *PricingHandler) *PricingRoutes {
	return &PricingRoutes{
		handler:        handler,
		pricingHandler: pricingHandler,
	}
}

// RegisterPublicRoutes registers the quote and rate card read routes.
func (r *PricingRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes", r.handler.CreateQuote)
	rg.GET("/pricing", r.handler.GetPricing)
	rg.GET("/pricing/defaults", r.handler.GetDefaultPricing)
}

// RegisterProtectedRoutes registers rate card management routes. Shop
// owners manage their own rates; admins manage the shared rates and may
// read any shop's history.
func (r *PricingRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	if r.pricingHandler == nil {
		return
	}

	ownerRole := cfg.OwnerRole
	if ownerRole == "" {
		ownerRole = middleware.RoleOwner
	}
	owner := middleware.RequireRole(cfg.Recorder, ownerRole)
	ownerOrAdmin := middleware.RequireRole(cfg.Recorder, ownerRole, middleware.RoleAdmin)
	admin := middleware.RequireRole(cfg.Recorder, middleware.RoleAdmin)

	protected.PUT("/pricing", owner, r.pricingHandler.UpdatePricing)
	protected.PUT("/pricing/system", admin, r.pricingHandler.UpdateSystemPricing)
	protected.GET("/pricing/history", ownerOrAdmin, r.pricingHandler.ListPricing)
	protected.GET("/pricing/audit", ownerOrAdmin, r.pricingHandler.ListAudit)
}

// GetHandler returns the underlying quote handler.
func (r *PricingRoutes) GetHandler() *Handler {
	return r.handler
}
