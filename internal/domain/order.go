package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderApproved   OrderStatus = "approved"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Next is the fulfillment successor of s. Terminal and cancelled orders have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderPending:
		return OrderApproved, true
	case OrderApproved:
		return OrderDelivering, true
	case OrderDelivering:
		return OrderDelivered, true
	default:
		return "", false
	}
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderApproved, OrderDelivering, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// LoyaltyRecord captures the stamp count seen at checkout and the discount
// percent actually applied, if any.
type LoyaltyRecord struct {
	StampCountBefore       int  `json:"stampCountBefore"`
	DiscountAppliedPercent *int `json:"discountAppliedPercent,omitempty"`
}

type Order struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplier"`
	Items        []CartItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	PlatformFee  decimal.Decimal `json:"platformFee"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	CancelUntil  time.Time       `json:"cancelUntil"`
	Loyalty      LoyaltyRecord   `json:"loyalty"`
}
