// Package pricing holds the order pricing, loyalty and cancellation rules.
// Everything here is pure: callers pass in the cart, supplier settings, stamp
// counts and the current time.
package pricing

import (
	"fmt"

	"aguagas/internal/domain"
	"github.com/shopspring/decimal"
)

// FeeRule charges Fee once per order when the kind's total quantity reaches Threshold.
type FeeRule struct {
	Threshold int
	Fee       decimal.Decimal
}

// FeeRules is the platform fee table, keyed by product kind.
var FeeRules = map[domain.Kind]FeeRule{
	domain.KindBottle500ml: {Threshold: 10, Fee: decimal.NewFromInt(1)},
	domain.KindJug20L:      {Threshold: 1, Fee: decimal.NewFromInt(1)},
	domain.KindGas13kg:     {Threshold: 1, Fee: decimal.NewFromInt(5)},
	domain.KindGas45kg:     {Threshold: 1, Fee: decimal.NewFromInt(10)},
}

// QuantitiesByKind sums item quantities per kind, across sizes.
func QuantitiesByKind(items []domain.CartItem) (map[domain.Kind]int, error) {
	qty := make(map[domain.Kind]int, len(FeeRules))
	for _, item := range items {
		if _, ok := FeeRules[item.Product.Kind]; !ok {
			return nil, fmt.Errorf("%w: %q (product %s)", domain.ErrUnknownKind, item.Product.Kind, item.Product.ID)
		}
		qty[item.Product.Kind] += item.Quantity
	}
	return qty, nil
}

// PlatformFee is the fee charged to the supplier for an order with these items.
// Fees are additive per kind and do not scale with quantity above the threshold.
func PlatformFee(items []domain.CartItem) (decimal.Decimal, error) {
	qty, err := QuantitiesByKind(items)
	if err != nil {
		return decimal.Zero, err
	}
	fee := decimal.Zero
	for _, kind := range domain.Kinds {
		rule := FeeRules[kind]
		if qty[kind] >= rule.Threshold {
			fee = fee.Add(rule.Fee)
		}
	}
	return fee, nil
}

// Subtotal is the sum of unit price times quantity over the items.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Payout splits an order subtotal between the platform and the supplier.
type Payout struct {
	PlatformFee    decimal.Decimal `json:"platformFee"`
	SupplierAmount decimal.Decimal `json:"supplierAmount"`
}

func PayoutSplit(subtotal, platformFee decimal.Decimal) Payout {
	return Payout{
		PlatformFee:    platformFee,
		SupplierAmount: subtotal.Sub(platformFee),
	}
}
