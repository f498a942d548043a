package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/logger"
	"github.com/guttosm/print-quote-service/internal/metrics"
)

// QuoteRequest describes a print job to be priced.
type QuoteRequest struct {
	ShopID     string
	TotalPages int
	PageRange  string
	ColorMode  model.ColorMode
	DuplexMode model.DuplexMode
}

// EffectiveCell is one cell of the rate card a shop is quoted with.
type EffectiveCell struct {
	model.TierCell
	FromDefaults bool
}

// EffectivePricing is the complete rate card applied to a shop's quotes.
type EffectivePricing struct {
	ShopID        string
	Version       int
	SystemVersion int
	Cells         []EffectiveCell
}

// QuoteService prices print jobs.
type QuoteService interface {
	Quote(ctx context.Context, req QuoteRequest) (*model.Quote, error)
	EffectivePricing(ctx context.Context, shopID string) (*EffectivePricing, error)
}

// QuoteOption configures a QuoteServiceImpl.
type QuoteOption func(*QuoteServiceImpl)

// WithMaxTotalPages rejects documents longer than n pages. Zero disables the check.
func WithMaxTotalPages(n int) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.maxTotalPages = n
	}
}

// WithQuoteAudit records every computed quote.
func WithQuoteAudit(rec AuditRecorder) QuoteOption {
	return func(s *QuoteServiceImpl) {
		s.audit = rec
	}
}

// QuoteServiceImpl implements QuoteService by composing the page selection
// resolver, the pricing service and the cost calculator.
type QuoteServiceImpl struct {
	pages         PageSelectionResolver
	calculator    PrintCostCalculator
	pricing       PricingService
	audit         AuditRecorder
	maxTotalPages int
}

// NewQuoteService creates a quote service.
func NewQuoteService(pages PageSelectionResolver, calculator PrintCostCalculator, pricing PricingService, opts ...QuoteOption) *QuoteServiceImpl {
	s := &QuoteServiceImpl{
		pages:      pages,
		calculator: calculator,
		pricing:    pricing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuoteServiceImpl) Quote(ctx context.Context, req QuoteRequest) (*model.Quote, error) {
	start := time.Now()
	quote, err := s.quote(ctx, req)

	status := "success"
	pages := 0
	if err != nil {
		status = "error"
	} else {
		pages = quote.ResolvedPageCount
	}
	metrics.RecordQuote(time.Since(start), string(req.ColorMode), string(req.DuplexMode), status, pages)
	if err != nil {
		return nil, err
	}

	if quote.TierFromDefaults {
		metrics.RecordDefaultTierFallback(model.TierKey{Color: quote.ColorMode, Duplex: quote.DuplexMode}.String())
	}

	logger.FromContext(ctx).Debug().
		Str("shop_id", quote.ShopID).
		Int("total_pages", quote.TotalPages).
		Int("pages", quote.ResolvedPageCount).
		Str("color_mode", string(quote.ColorMode)).
		Str("duplex_mode", string(quote.DuplexMode)).
		Str("total_cost", quote.TotalCost.String()).
		Bool("default_tier", quote.TierFromDefaults).
		Msg("Quote computed")

	s.recordAudit(ctx, quote)
	return quote, nil
}

func (s *QuoteServiceImpl) quote(ctx context.Context, req QuoteRequest) (*model.Quote, error) {
	if req.TotalPages < 1 {
		return nil, fmt.Errorf("%w: total pages must be at least 1, got %d", model.ErrInvalidArgument, req.TotalPages)
	}
	if s.maxTotalPages > 0 && req.TotalPages > s.maxTotalPages {
		return nil, fmt.Errorf("%w: total pages %d exceeds the limit of %d", model.ErrInvalidArgument, req.TotalPages, s.maxTotalPages)
	}
	key := model.TierKey{Color: req.ColorMode, Duplex: req.DuplexMode}
	if !key.Valid() {
		return nil, fmt.Errorf("%w: unknown print mode %s", model.ErrInvalidArgument, key)
	}

	resolved, err := s.pricing.Resolve(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}

	pages, err := s.pages.Resolve(req.PageRange, req.TotalPages)
	if err != nil {
		return nil, err
	}
	var selected []int
	if strings.TrimSpace(req.PageRange) != "" {
		if selected, err = s.pages.SelectedPages(req.PageRange, req.TotalPages); err != nil {
			return nil, err
		}
	}

	tier, fromDefaults, err := s.calculator.TierFor(req.ColorMode, req.DuplexMode, resolved.Configuration)
	if err != nil {
		return nil, err
	}
	cost, err := s.calculator.ComputeCost(pages, req.ColorMode, req.DuplexMode, resolved.Configuration)
	if err != nil {
		return nil, err
	}

	return &model.Quote{
		ShopID:            req.ShopID,
		TotalPages:        req.TotalPages,
		PageRange:         req.PageRange,
		ResolvedPageCount: pages,
		SelectedPages:     selected,
		ColorMode:         req.ColorMode,
		DuplexMode:        req.DuplexMode,
		Tier:              tier,
		TierFromDefaults:  fromDefaults,
		PricingVersion:    resolved.Version,
		TotalCost:         cost,
	}, nil
}

func (s *QuoteServiceImpl) EffectivePricing(ctx context.Context, shopID string) (*EffectivePricing, error) {
	resolved, err := s.pricing.Resolve(ctx, shopID)
	if err != nil {
		return nil, err
	}

	out := &EffectivePricing{
		ShopID:        shopID,
		Version:       resolved.Version,
		SystemVersion: resolved.SystemVersion,
		Cells:         make([]EffectiveCell, 0, len(model.AllTierKeys())),
	}
	for _, k := range model.AllTierKeys() {
		tier, fromDefaults, err := s.calculator.TierFor(k.Color, k.Duplex, resolved.Configuration)
		if err != nil {
			return nil, err
		}
		out.Cells = append(out.Cells, EffectiveCell{
			TierCell:     model.TierCell{ColorMode: k.Color, DuplexMode: k.Duplex, PricingTier: tier},
			FromDefaults: fromDefaults,
		})
	}
	return out, nil
}

func (s *QuoteServiceImpl) recordAudit(ctx context.Context, q *model.Quote) {
	if s.audit == nil {
		return
	}
	event := &model.AuditEvent{
		Level:     "info",
		Action:    model.ActionQuote,
		Message:   "quote computed",
		RequestID: logger.RequestIDFromContext(ctx),
		ShopID:    q.ShopID,
	}
	event.WithFields(map[string]interface{}{
		"total_pages":     q.TotalPages,
		"page_range":      q.PageRange,
		"pages":           q.ResolvedPageCount,
		"color_mode":      string(q.ColorMode),
		"duplex_mode":     string(q.DuplexMode),
		"total_cost":      q.TotalCost.String(),
		"default_tier":    q.TierFromDefaults,
		"pricing_version": q.PricingVersion,
	})
	s.audit.Log(event)
}
