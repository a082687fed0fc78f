package domain

import "github.com/shopspring/decimal"

// Canonical scales for the two families of decimal values handled by the
// ledger. Monetary amounts and asset quantities are kept at 2 decimal
// places, market prices at 8.
const (
	AmountScale = 2
	PriceScale  = 8
)

// TruncateAmount normalizes a monetary amount or quantity to the canonical
// 2-decimal scale, truncating toward zero (never rounding up). Intermediate
// arithmetic may run at higher precision, but every value exposed by a query
// must pass through this before leaving the domain.
func TruncateAmount(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(AmountScale)
}

// TruncatePrice normalizes a market price to the canonical 8-decimal scale,
// truncating toward zero.
func TruncatePrice(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(PriceScale)
}

// ZeroAmount is the canonical zero for amounts and quantities.
func ZeroAmount() decimal.Decimal {
	return decimal.Zero.Truncate(AmountScale)
}
