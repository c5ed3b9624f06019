package pricing

import (
	"aguagas/internal/domain"
	"github.com/shopspring/decimal"
)

// LoyaltyCycle is the number of orders per discount; every LoyaltyCycle-th order qualifies.
const LoyaltyCycle = 10

// IsLoyaltyOrder reports whether the next order, given the stamps collected so
// far, is the 10th, 20th, ... order for the supplier.
func IsLoyaltyOrder(stamps int) bool {
	return (stamps+1)%LoyaltyCycle == 0
}

// StampsToNext is how many more orders are needed to reach the next discount boundary.
func StampsToNext(stamps int) int {
	return LoyaltyCycle - stamps%LoyaltyCycle
}

// LoyaltyDiscount returns the discount for subtotal and whether it applies.
// Disabled loyalty never applies.
func LoyaltyDiscount(subtotal decimal.Decimal, loyalty domain.LoyaltySettings, stamps int) (decimal.Decimal, bool) {
	if !loyalty.Enabled || !IsLoyaltyOrder(stamps) {
		return decimal.Zero, false
	}
	return Percent(subtotal, loyalty.DiscountPercent), true
}

// Percent is p% of amount rounded to cents.
func Percent(amount decimal.Decimal, p int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(p))).Div(decimal.NewFromInt(100)).Round(2)
}
