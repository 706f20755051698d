package utils

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is prefixed to every rendered amount unless configured otherwise
const DefaultCurrencySymbol = "₹"

// FormatMoney renders an amount with a fixed symbol prefix and two decimals.
// There is no currency conversion.
func FormatMoney(symbol string, amount decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	if amount.IsNegative() {
		return "-" + symbol + amount.Neg().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
