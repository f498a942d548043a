// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// QuoteRequest represents the JSON request body for the quote endpoint.
//
// @Description Request to price a print job
// @Example {"shop_id": "shop-42", "total_pages": 24, "page_range": "1-3,7", "color_mode": "MONOCHROME", "duplex_mode": "SINGLE_SIDED"}
type QuoteRequest struct {
	// ShopID selects the shop whose rates apply. Empty uses shared rates.
	ShopID string `json:"shop_id,omitempty" example:"shop-42"`
	// TotalPages is the page count of the uploaded document.
	TotalPages int `json:"total_pages" binding:"required,gt=0" example:"24" minimum:"1"`
	// PageRange selects pages to print, e.g. "1-3,7". Empty or "All" prints every page.
	PageRange string `json:"page_range,omitempty" example:"1-3,7"`
	// ColorMode is MONOCHROME or COLOR. Common aliases such as "bw" are accepted.
	ColorMode string `json:"color_mode" binding:"required" example:"MONOCHROME"`
	// DuplexMode is SINGLE_SIDED or DOUBLE_SIDED. Aliases such as "duplex" are accepted.
	DuplexMode string `json:"duplex_mode" binding:"required" example:"SINGLE_SIDED"`
} // @name QuoteRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets callers match validation failures with model.ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return model.ErrInvalidArgument
}

var (
	// ErrInvalidTotalPages is returned when total_pages is invalid.
	ErrInvalidTotalPages = &ValidationError{
		Field:   "total_pages",
		Message: "must be a positive integer",
	}
)

// Validate checks the request and returns the parsed print modes.
func (r *QuoteRequest) Validate() (model.ColorMode, model.DuplexMode, error) {
	if r.TotalPages <= 0 {
		return "", "", ErrInvalidTotalPages
	}
	color, err := model.ParseColorMode(r.ColorMode)
	if err != nil {
		return "", "", &ValidationError{Field: "color_mode", Message: fmt.Sprintf("unknown color mode %q", r.ColorMode)}
	}
	duplex, err := model.ParseDuplexMode(r.DuplexMode)
	if err != nil {
		return "", "", &ValidationError{Field: "duplex_mode", Message: fmt.Sprintf("unknown duplex mode %q", r.DuplexMode)}
	}
	return color, duplex, nil
}

// TierRequest is one cell of a rate card in an update request.
type TierRequest struct {
	ColorMode  string          `json:"color_mode" binding:"required" example:"MONOCHROME"`
	DuplexMode string          `json:"duplex_mode" binding:"required" example:"SINGLE_SIDED"`
	BasePrice  decimal.Decimal `json:"base_price" swaggertype:"number" example:"2"`
	BaseLimit  int             `json:"base_limit" binding:"gte=0" example:"10"`
	ExtraPrice decimal.Decimal `json:"extra_price" swaggertype:"number" example:"1"`
} // @name TierRequest

// UpdatePricingRequest represents the JSON request body for replacing a
// shop's rates. Cells left out fall back to the shared or default rates.
//
// @Description Request to replace the caller's rate card
type UpdatePricingRequest struct {
	Tiers []TierRequest `json:"tiers" binding:"required,min=1,max=4,dive"`
} // @name UpdatePricingRequest

// Configuration validates the request and converts it to a configuration.
func (r *UpdatePricingRequest) Configuration() (model.PricingConfiguration, error) {
	if len(r.Tiers) == 0 {
		return model.PricingConfiguration{}, &ValidationError{Field: "tiers", Message: "at least one tier is required"}
	}
	cells := make([]model.TierCell, 0, len(r.Tiers))
	for i, t := range r.Tiers {
		color, err := model.ParseColorMode(t.ColorMode)
		if err != nil {
			return model.PricingConfiguration{}, &ValidationError{
				Field:   fmt.Sprintf("tiers[%d].color_mode", i),
				Message: fmt.Sprintf("unknown color mode %q", t.ColorMode),
			}
		}
		duplex, err := model.ParseDuplexMode(t.DuplexMode)
		if err != nil {
			return model.PricingConfiguration{}, &ValidationError{
				Field:   fmt.Sprintf("tiers[%d].duplex_mode", i),
				Message: fmt.Sprintf("unknown duplex mode %q", t.DuplexMode),
			}
		}
		tier := model.PricingTier{BasePrice: t.BasePrice, BaseLimit: t.BaseLimit, ExtraPrice: t.ExtraPrice}
		if err := tier.Validate(); err != nil {
			return model.PricingConfiguration{}, &ValidationError{
				Field:   fmt.Sprintf("tiers[%d]", i),
				Message: strings.TrimPrefix(err.Error(), model.ErrInvalidArgument.Error()+": "),
			}
		}
		cells = append(cells, model.TierCell{ColorMode: color, DuplexMode: duplex, PricingTier: tier})
	}

	cfg, err := model.NewPricingConfigurationFromCells(cells)
	if err != nil {
		return model.PricingConfiguration{}, &ValidationError{Field: "tiers", Message: "each color and duplex combination may appear once"}
	}
	return cfg, nil
}
