package helpers

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DebtAmount converts a raw ledger amount into displayed currency:
// amount * ratio / 100, rounded half-up to two decimals. Raw ledger units and
// the per-game ratio are both integers; rounding happens here and nowhere
// else.
func DebtAmount(amount, ratio int64) decimal.Decimal {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(ratio)).
		DivRound(hundred, 2)
}

// DisplayAmount formats a raw ledger amount as a currency string.
func DisplayAmount(amount, ratio int64) string {
	return DebtAmount(amount, ratio).StringFixed(2)
}
