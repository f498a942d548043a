// Package model defines the core domain entities for the print quote service.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument is returned for inputs outside the pricing engine's contract,
// such as negative page counts or a document with no pages.
var ErrInvalidArgument = errors.New("invalid argument")

// ColorMode selects monochrome or color printing.
type ColorMode string

// DuplexMode selects single or double sided printing.
type DuplexMode string

const (
	Monochrome ColorMode = "MONOCHROME"
	Color      ColorMode = "COLOR"

	SingleSided DuplexMode = "SINGLE_SIDED"
	DoubleSided DuplexMode = "DOUBLE_SIDED"
)

// Valid reports whether m is one of the known color modes.
func (m ColorMode) Valid() bool {
	return m == Monochrome || m == Color
}

// Valid reports whether m is one of the known duplex modes.
func (m DuplexMode) Valid() bool {
	return m == SingleSided || m == DoubleSided
}

// ParseColorMode accepts the canonical names as well as the short forms
// used by shop terminals ("bw", "color", "colour"). Matching is case-insensitive.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MONOCHROME", "BW", "B/W", "BLACK_WHITE":
		return Monochrome, nil
	case "COLOR", "COLOUR":
		return Color, nil
	}
	return "", fmt.Errorf("%w: unknown color mode %q", ErrInvalidArgument, s)
}

// ParseDuplexMode accepts the canonical names as well as "single" and "double".
func ParseDuplexMode(s string) (DuplexMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SINGLE_SIDED", "SINGLE", "SIMPLEX":
		return SingleSided, nil
	case "DOUBLE_SIDED", "DOUBLE", "DUPLEX":
		return DoubleSided, nil
	}
	return "", fmt.Errorf("%w: unknown duplex mode %q", ErrInvalidArgument, s)
}

// TierKey identifies one cell of the 2x2 pricing grid.
type TierKey struct {
	Color  ColorMode
	Duplex DuplexMode
}

// String renders the key as COLOR/DUPLEX.
func (k TierKey) String() string {
	return string(k.Color) + "/" + string(k.Duplex)
}

// Valid reports whether both halves of the key are known modes.
func (k TierKey) Valid() bool {
	return k.Color.Valid() && k.Duplex.Valid()
}

// AllTierKeys returns the four pricing cells in display order.
func AllTierKeys() []TierKey {
	return []TierKey{
		{Monochrome, SingleSided},
		{Monochrome, DoubleSided},
		{Color, SingleSided},
		{Color, DoubleSided},
	}
}

// PricingTier is a two-step per-page rate: BasePrice for the first BaseLimit
// pages, ExtraPrice for every page after that.
type PricingTier struct {
	BasePrice  decimal.Decimal `json:"base_price" yaml:"base_price"`
	BaseLimit  int             `json:"base_limit" yaml:"base_limit"`
	ExtraPrice decimal.Decimal `json:"extra_price" yaml:"extra_price"`
}

// NewPricingTier builds a tier from float rates. Convenient for tests and defaults.
func NewPricingTier(basePrice float64, baseLimit int, extraPrice float64) PricingTier {
	return PricingTier{
		BasePrice:  decimal.NewFromFloat(basePrice),
		BaseLimit:  baseLimit,
		ExtraPrice: decimal.NewFromFloat(extraPrice),
	}
}

// Price bounds shared by every store. Rates are kept as NUMERIC(12,4).
const (
	MaxPriceDecimals = 4
	MaxBaseLimit     = math.MaxInt32
)

// MaxPrice is the exclusive upper bound of a per-page rate.
var MaxPrice = decimal.New(1, 8)

// Validate checks that every field is non-negative and fits the stored
// precision.
func (t PricingTier) Validate() error {
	if err := validatePrice("base price", t.BasePrice); err != nil {
		return err
	}
	if t.BaseLimit < 0 {
		return fmt.Errorf("%w: base limit must be non-negative, got %d", ErrInvalidArgument, t.BaseLimit)
	}
	if t.BaseLimit > MaxBaseLimit {
		return fmt.Errorf("%w: base limit must be at most %d, got %d", ErrInvalidArgument, MaxBaseLimit, t.BaseLimit)
	}
	return validatePrice("extra price", t.ExtraPrice)
}

func validatePrice(name string, p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return fmt.Errorf("%w: %s must be non-negative, got %s", ErrInvalidArgument, name, p)
	case p.GreaterThanOrEqual(MaxPrice):
		return fmt.Errorf("%w: %s must be below %s, got %s", ErrInvalidArgument, name, MaxPrice, p)
	case !p.Equal(p.Truncate(MaxPriceDecimals)):
		return fmt.Errorf("%w: %s has more than %d decimal places, got %s", ErrInvalidArgument, name, MaxPriceDecimals, p)
	}
	return nil
}

// Equal compares tiers by value.
func (t PricingTier) Equal(o PricingTier) bool {
	return t.BaseLimit == o.BaseLimit && t.BasePrice.Equal(o.BasePrice) && t.ExtraPrice.Equal(o.ExtraPrice)
}

// TierCell is a PricingTier together with the key it is stored under.
// It is the flat representation used on the wire and in storage.
type TierCell struct {
	ColorMode  ColorMode  `json:"color_mode"`
	DuplexMode DuplexMode `json:"duplex_mode"`
	PricingTier
}

// Key returns the cell's grid key.
func (c TierCell) Key() TierKey {
	return TierKey{Color: c.ColorMode, Duplex: c.DuplexMode}
}

// PricingConfiguration maps each TierKey to a PricingTier. The zero value is
// an empty configuration. Values are immutable; use With or Overlay to derive
// a changed copy.
type PricingConfiguration struct {
	tiers map[TierKey]PricingTier
}

// NewPricingConfiguration validates and copies the given tiers.
func NewPricingConfiguration(tiers map[TierKey]PricingTier) (PricingConfiguration, error) {
	out := make(map[TierKey]PricingTier, len(tiers))
	for k, t := range tiers {
		if !k.Valid() {
			return PricingConfiguration{}, fmt.Errorf("%w: unknown pricing cell %s", ErrInvalidArgument, k)
		}
		if err := t.Validate(); err != nil {
			return PricingConfiguration{}, fmt.Errorf("pricing cell %s: %w", k, err)
		}
		out[k] = t
	}
	return PricingConfiguration{tiers: out}, nil
}

// NewPricingConfigurationFromCells builds a configuration from flat cells.
// A key may appear at most once.
func NewPricingConfigurationFromCells(cells []TierCell) (PricingConfiguration, error) {
	tiers := make(map[TierKey]PricingTier, len(cells))
	for _, c := range cells {
		if _, dup := tiers[c.Key()]; dup {
			return PricingConfiguration{}, fmt.Errorf("%w: duplicate pricing cell %s", ErrInvalidArgument, c.Key())
		}
		tiers[c.Key()] = c.PricingTier
	}
	return NewPricingConfiguration(tiers)
}

// MustPricingConfiguration is like NewPricingConfiguration but panics on invalid input.
func MustPricingConfiguration(tiers map[TierKey]PricingTier) PricingConfiguration {
	cfg, err := NewPricingConfiguration(tiers)
	if err != nil {
		panic(err)
	}
	return cfg
}

// DefaultPricingConfiguration returns the built-in rate card. Every call
// returns a fresh value.
func DefaultPricingConfiguration() PricingConfiguration {
	return MustPricingConfiguration(map[TierKey]PricingTier{
		{Monochrome, SingleSided}: NewPricingTier(2, 10, 1),
		{Monochrome, DoubleSided}: NewPricingTier(2, 10, 1.5),
		{Color, SingleSided}:      NewPricingTier(10, 0, 10),
		{Color, DoubleSided}:      NewPricingTier(20, 0, 20),
	})
}

// Tier returns the tier stored for k, if any.
func (c PricingConfiguration) Tier(k TierKey) (PricingTier, bool) {
	t, ok := c.tiers[k]
	return t, ok
}

// Len returns the number of configured cells.
func (c PricingConfiguration) Len() int {
	return len(c.tiers)
}

// Complete reports whether all four cells are present.
func (c PricingConfiguration) Complete() bool {
	for _, k := range AllTierKeys() {
		if _, ok := c.tiers[k]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the keys that have no tier, in display order.
func (c PricingConfiguration) Missing() []TierKey {
	var missing []TierKey
	for _, k := range AllTierKeys() {
		if _, ok := c.tiers[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// With returns a copy of c with k set to t.
func (c PricingConfiguration) With(k TierKey, t PricingTier) (PricingConfiguration, error) {
	tiers := c.Tiers()
	tiers[k] = t
	return NewPricingConfiguration(tiers)
}

// Overlay returns a copy of c where every cell present in o replaces c's cell.
func (c PricingConfiguration) Overlay(o PricingConfiguration) PricingConfiguration {
	tiers := c.Tiers()
	for k, t := range o.tiers {
		tiers[k] = t
	}
	return PricingConfiguration{tiers: tiers}
}

// Tiers returns a copy of the underlying map.
func (c PricingConfiguration) Tiers() map[TierKey]PricingTier {
	out := make(map[TierKey]PricingTier, len(c.tiers))
	for k, t := range c.tiers {
		out[k] = t
	}
	return out
}

// Cells returns the configured cells in display order.
func (c PricingConfiguration) Cells() []TierCell {
	cells := make([]TierCell, 0, len(c.tiers))
	for _, k := range AllTierKeys() {
		if t, ok := c.tiers[k]; ok {
			cells = append(cells, TierCell{ColorMode: k.Color, DuplexMode: k.Duplex, PricingTier: t})
		}
	}
	return cells
}

// Equal compares two configurations cell by cell.
func (c PricingConfiguration) Equal(o PricingConfiguration) bool {
	if len(c.tiers) != len(o.tiers) {
		return false
	}
	for k, t := range c.tiers {
		ot, ok := o.tiers[k]
		if !ok || !t.Equal(ot) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the configuration as a list of cells.
func (c PricingConfiguration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Cells())
}

// UnmarshalJSON decodes a list of cells and validates it.
func (c *PricingConfiguration) UnmarshalJSON(data []byte) error {
	var cells []TierCell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	cfg, err := NewPricingConfigurationFromCells(cells)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}
