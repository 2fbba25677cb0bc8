package validation

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Wallet addresses: 0x followed by 40 hex chars. Addresses are asserted by
// the caller and only checked syntactically; there is no authentication.
var addressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func IsValidAddress(address string) bool {
	return addressRe.MatchString(address)
}

// IsPositiveAmount rejects zero, negatives, NaN comparisons aside.
func IsPositiveAmount(amount float64) bool {
	return amount > 0
}

// ParsePrice parses a decimal price string. Prices travel as strings to avoid
// floating-point precision loss; only positive values are accepted.
func ParsePrice(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
