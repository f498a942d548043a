package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// PrintCostCalculator prices a print job from its page count and modes.
type PrintCostCalculator interface {
	// ComputeCost returns the cost of printing pages pages with the tier for
	// (color, duplex) taken from cfg, or from the calculator's defaults when
	// cfg has no tier for that cell.
	ComputeCost(pages int, color model.ColorMode, duplex model.DuplexMode, cfg model.PricingConfiguration) (decimal.Decimal, error)
	// TierFor returns the tier that ComputeCost would use and whether it came
	// from the defaults.
	TierFor(color model.ColorMode, duplex model.DuplexMode, cfg model.PricingConfiguration) (model.PricingTier, bool, error)
}

// CalculatorOption configures a PrintCostCalculatorService.
type CalculatorOption func(*PrintCostCalculatorService)

// PrintCostCalculatorService implements PrintCostCalculator. It holds no
// mutable state and is safe for concurrent use.
type PrintCostCalculatorService struct {
	defaults model.PricingConfiguration
}

// NewPrintCostCalculator creates a calculator using the built-in rate card
// as fallback unless overridden with WithDefaultPricing.
func NewPrintCostCalculator(opts ...CalculatorOption) *PrintCostCalculatorService {
	s := &PrintCostCalculatorService{
		defaults: model.DefaultPricingConfiguration(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithDefaultPricing replaces the fallback tiers. Cells missing from cfg keep
// the built-in default, so the fallback is always complete.
func WithDefaultPricing(cfg model.PricingConfiguration) CalculatorOption {
	return func(s *PrintCostCalculatorService) {
		s.defaults = model.DefaultPricingConfiguration().Overlay(cfg)
	}
}

// Defaults returns the fallback configuration.
func (s *PrintCostCalculatorService) Defaults() model.PricingConfiguration {
	return s.defaults
}

func (s *PrintCostCalculatorService) TierFor(color model.ColorMode, duplex model.DuplexMode, cfg model.PricingConfiguration) (model.PricingTier, bool, error) {
	key := model.TierKey{Color: color, Duplex: duplex}
	if !key.Valid() {
		return model.PricingTier{}, false, fmt.Errorf("%w: unknown pricing cell %s", model.ErrInvalidArgument, key)
	}
	if tier, ok := cfg.Tier(key); ok {
		return tier, false, nil
	}
	tier, _ := s.defaults.Tier(key)
	return tier, true, nil
}

func (s *PrintCostCalculatorService) ComputeCost(pages int, color model.ColorMode, duplex model.DuplexMode, cfg model.PricingConfiguration) (decimal.Decimal, error) {
	if pages < 0 {
		return decimal.Zero, fmt.Errorf("%w: pages must be non-negative, got %d", model.ErrInvalidArgument, pages)
	}
	tier, _, err := s.TierFor(color, duplex, cfg)
	if err != nil {
		return decimal.Zero, err
	}
	return TierCost(pages, tier), nil
}

// TierCost applies a tier to a non-negative page count. Pages up to BaseLimit
// are charged BasePrice each; the rest ExtraPrice each.
func TierCost(pages int, tier model.PricingTier) decimal.Decimal {
	if pages <= tier.BaseLimit {
		return tier.BasePrice.Mul(decimal.NewFromInt(int64(pages)))
	}
	base := tier.BasePrice.Mul(decimal.NewFromInt(int64(tier.BaseLimit)))
	extra := tier.ExtraPrice.Mul(decimal.NewFromInt(int64(pages - tier.BaseLimit)))
	return base.Add(extra)
}
