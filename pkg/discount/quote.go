package discount

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("discount amount must not be negative")
	ErrExceedsLimit   = errors.New("discount exceeds partner limit or order total")
)

// Quote returns min(partner max value, total). A negative total quotes zero.
func Quote(total decimal.Decimal, p Partner) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(p.MaxValue(), total)
}

// Validate checks a client-claimed discount against the partner rules.
func Validate(total decimal.Decimal, p Partner, claimed decimal.Decimal) error {
	if claimed.IsNegative() {
		return ErrNegativeAmount
	}
	if claimed.GreaterThan(Quote(total, p)) {
		return ErrExceedsLimit
	}
	return nil
}
