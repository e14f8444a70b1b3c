package payment

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// MinorUnits converts a decimal major-unit amount to integer minor units
// (kobo, cents) the gateway expects. Rounding is half away from zero, so
// 19.995 becomes 2000. Callers recompute this from the source amount on
// every call rather than caching the converted value.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(oneHundred).Round(0).IntPart()
}

// MajorUnits converts an integer minor-unit amount back to a decimal
// major-unit value.
func MajorUnits(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(oneHundred)
}
