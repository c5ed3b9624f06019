package pricing

import (
	"aguagas/internal/domain"
	"github.com/shopspring/decimal"
)

// Quote is the priced breakdown of a cart for one supplier at a given stamp count.
type Quote struct {
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	FinalSubtotal   decimal.Decimal
	PlatformFee     decimal.Decimal
	Total           decimal.Decimal
	StampsBefore    int
	DiscountPercent *int
}

// QuoteCart prices items for supplier. The platform fee is computed from the
// undiscounted cart and never added to the customer total; delivery is free.
func QuoteCart(items []domain.CartItem, supplier domain.Supplier, stamps int) (Quote, error) {
	fee, err := PlatformFee(items)
	if err != nil {
		return Quote{}, err
	}
	subtotal := Subtotal(items)
	discount, applied := LoyaltyDiscount(subtotal, supplier.Settings.Loyalty, stamps)
	final := subtotal.Sub(discount)

	q := Quote{
		Subtotal:      subtotal,
		Discount:      discount,
		FinalSubtotal: final,
		PlatformFee:   fee,
		Total:         final,
		StampsBefore:  stamps,
	}
	if applied {
		pct := supplier.Settings.Loyalty.DiscountPercent
		q.DiscountPercent = &pct
	}
	return q, nil
}

// Zero is the quote of an empty cart.
func Zero(stamps int) Quote {
	return Quote{
		Subtotal:      decimal.Zero,
		Discount:      decimal.Zero,
		FinalSubtotal: decimal.Zero,
		PlatformFee:   decimal.Zero,
		Total:         decimal.Zero,
		StampsBefore:  stamps,
	}
}
