package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{"MONOCHROME", Monochrome, false},
		{"bw", Monochrome, false},
		{" B/W ", Monochrome, false},
		{"color", Color, false},
		{"Colour", Color, false},
		{"", "", true},
		{"sepia", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuplexMode(t *testing.T) {
	tests := []struct {
		input   string
		want    DuplexMode
		wantErr bool
	}{
		{"SINGLE_SIDED", SingleSided, false},
		{"single", SingleSided, false},
		{"double", DoubleSided, false},
		{"Duplex", DoubleSided, false},
		{"triple", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuplexMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPricingTier_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tier    PricingTier
		wantErr bool
	}{
		{"valid", NewPricingTier(2, 10, 1), false},
		{"all zero", PricingTier{}, false},
		{"negative base price", NewPricingTier(-1, 10, 1), true},
		{"negative limit", NewPricingTier(2, -1, 1), true},
		{"negative extra price", NewPricingTier(2, 10, -0.5), true},
		{"four decimals", PricingTier{BasePrice: decimal.RequireFromString("0.1234"), ExtraPrice: decimal.RequireFromString("1.50000")}, false},
		{"five decimals", PricingTier{BasePrice: decimal.RequireFromString("0.12345")}, true},
		{"largest price", PricingTier{ExtraPrice: decimal.RequireFromString("99999999.9999")}, false},
		{"price too large", PricingTier{ExtraPrice: decimal.New(1, 8)}, true},
		{"limit too large", PricingTier{BaseLimit: MaxBaseLimit + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tier.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultPricingConfiguration(t *testing.T) {
	cfg := DefaultPricingConfiguration()

	assert.True(t, cfg.Complete())
	assert.Empty(t, cfg.Missing())

	want := []TierCell{
		{Monochrome, SingleSided, NewPricingTier(2, 10, 1)},
		{Monochrome, DoubleSided, NewPricingTier(2, 10, 1.5)},
		{Color, SingleSided, NewPricingTier(10, 0, 10)},
		{Color, DoubleSided, NewPricingTier(20, 0, 20)},
	}
	if diff := cmp.Diff(want, cfg.Cells(), decimalEqual); diff != "" {
		t.Errorf("default cells mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPricingConfiguration_FreshValue(t *testing.T) {
	a := DefaultPricingConfiguration()
	b := DefaultPricingConfiguration()

	tiers := a.Tiers()
	tiers[TierKey{Color, SingleSided}] = NewPricingTier(99, 0, 99)

	assert.True(t, a.Equal(b))
	got, _ := b.Tier(TierKey{Color, SingleSided})
	assert.True(t, got.BasePrice.Equal(decimal.NewFromInt(10)))
}

func TestNewPricingConfiguration(t *testing.T) {
	t.Run("rejects unknown key", func(t *testing.T) {
		_, err := NewPricingConfiguration(map[TierKey]PricingTier{
			{ColorMode("SEPIA"), SingleSided}: NewPricingTier(1, 1, 1),
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rejects invalid tier", func(t *testing.T) {
		_, err := NewPricingConfiguration(map[TierKey]PricingTier{
			{Color, SingleSided}: NewPricingTier(1, -3, 1),
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "COLOR/SINGLE_SIDED")
	})

	t.Run("partial configuration is allowed", func(t *testing.T) {
		cfg, err := NewPricingConfiguration(map[TierKey]PricingTier{
			{Monochrome, SingleSided}: NewPricingTier(3, 5, 2),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Len())
		assert.False(t, cfg.Complete())
		assert.Equal(t, []TierKey{{Monochrome, DoubleSided}, {Color, SingleSided}, {Color, DoubleSided}}, cfg.Missing())
	})

	t.Run("copies input map", func(t *testing.T) {
		in := map[TierKey]PricingTier{{Color, DoubleSided}: NewPricingTier(20, 0, 20)}
		cfg, err := NewPricingConfiguration(in)
		require.NoError(t, err)

		delete(in, TierKey{Color, DoubleSided})
		_, ok := cfg.Tier(TierKey{Color, DoubleSided})
		assert.True(t, ok)
	})
}

func TestNewPricingConfigurationFromCells_Duplicate(t *testing.T) {
	_, err := NewPricingConfigurationFromCells([]TierCell{
		{Color, SingleSided, NewPricingTier(1, 0, 1)},
		{Color, SingleSided, NewPricingTier(2, 0, 2)},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPricingConfiguration_Overlay(t *testing.T) {
	base := DefaultPricingConfiguration()
	override := MustPricingConfiguration(map[TierKey]PricingTier{
		{Monochrome, SingleSided}: NewPricingTier(1.5, 20, 0.75),
	})

	merged := base.Overlay(override)

	got, ok := merged.Tier(TierKey{Monochrome, SingleSided})
	require.True(t, ok)
	assert.True(t, got.Equal(NewPricingTier(1.5, 20, 0.75)))

	untouched, _ := merged.Tier(TierKey{Color, DoubleSided})
	assert.True(t, untouched.Equal(NewPricingTier(20, 0, 20)))

	original, _ := base.Tier(TierKey{Monochrome, SingleSided})
	assert.True(t, original.Equal(NewPricingTier(2, 10, 1)), "overlay must not mutate the receiver")
}

func TestPricingConfiguration_With(t *testing.T) {
	var empty PricingConfiguration

	cfg, err := empty.With(TierKey{Color, SingleSided}, NewPricingTier(8, 0, 8))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, cfg.Len())

	_, err = cfg.With(TierKey{Color, SingleSided}, NewPricingTier(-8, 0, 8))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPricingConfiguration_JSON(t *testing.T) {
	cfg := MustPricingConfiguration(map[TierKey]PricingTier{
		{Monochrome, DoubleSided}: NewPricingTier(2, 10, 1.5),
	})

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"color_mode":"MONOCHROME","duplex_mode":"DOUBLE_SIDED","base_price":"2","base_limit":10,"extra_price":"1.5"}]`, string(data))

	var decoded PricingConfiguration
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, cfg.Equal(decoded))

	err = json.Unmarshal([]byte(`[{"color_mode":"COLOR","duplex_mode":"SINGLE_SIDED","base_price":"-1","base_limit":0,"extra_price":"1"}]`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
