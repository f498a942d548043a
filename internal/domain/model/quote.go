package model

import "github.com/shopspring/decimal"

// Quote is the price of a pending print job, computed before payment.
// It is handed to the order flow as plain data and is never stored here.
type Quote struct {
	ShopID            string
	TotalPages        int
	PageRange         string
	ResolvedPageCount int
	// SelectedPages lists the pages to print, ascending. Nil when no range
	// was given and the whole document prints.
	SelectedPages []int
	ColorMode         ColorMode
	DuplexMode        DuplexMode
	Tier              PricingTier
	// TierFromDefaults is set when the shop had no rate for this cell.
	TierFromDefaults bool
	PricingVersion   int
	TotalCost        decimal.Decimal
}
