package httpserver

import (
	"time"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"aguagas/internal/service/cart"
	"aguagas/internal/service/dashboard"
	"aguagas/internal/service/order"
	"aguagas/internal/session"
	"github.com/shopspring/decimal"
)

// Money is rendered as a fixed two-decimal string, e.g. "103.20".
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type sessionResponse struct {
	ID         string         `json:"id"`
	Role       domain.Role    `json:"role"`
	SupplierID string         `json:"supplierId,omitempty"`
	CartItems  int            `json:"cartItems"`
	Orders     int            `json:"orders"`
	Stamps     map[string]int `json:"stamps"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func toSessionResponse(s session.Session) sessionResponse {
	stamps := s.Stamps
	if stamps == nil {
		stamps = map[string]int{}
	}
	return sessionResponse{
		ID:         s.ID,
		Role:       s.Role,
		SupplierID: s.SupplierID,
		CartItems:  s.Cart.TotalQuantity(),
		Orders:     len(s.Orders),
		Stamps:     stamps,
		CreatedAt:  s.CreatedAt,
	}
}

type productResponse struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplierId"`
	Name         string          `json:"name"`
	Price        string          `json:"price"`
	Image        string          `json:"image,omitempty"`
	Category     domain.Category `json:"category"`
	Kind         domain.Kind     `json:"kind"`
	Sizes        []string        `json:"sizes"`
	DeliveryTime string          `json:"deliveryTime,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return productResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		Name:         p.Name,
		Price:        money(p.Price),
		Image:        p.Image,
		Category:     p.Category,
		Kind:         p.Kind,
		Sizes:        sizes,
		DeliveryTime: p.DeliveryTime,
	}
}

type supplierResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Rating       float64                 `json:"rating"`
	DeliveryTime string                  `json:"deliveryTime"`
	Distance     string                  `json:"distance"`
	Settings     domain.SupplierSettings `json:"settings"`
	Products     []productResponse       `json:"products"`
	Stamps       *int                    `json:"stamps,omitempty"`
	StampsToNext *int                    `json:"stampsToNext,omitempty"`
}

func toSupplierResponse(s domain.Supplier) supplierResponse {
	products := make([]productResponse, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, toProductResponse(p))
	}
	return supplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Rating:       s.Rating,
		DeliveryTime: s.DeliveryTime,
		Distance:     s.Distance,
		Settings:     s.Settings,
		Products:     products,
	}
}

type lineItemResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Kind      domain.Kind `json:"kind"`
	Size      string      `json:"size"`
	Quantity  int         `json:"quantity"`
	UnitPrice string      `json:"unitPrice"`
	LineTotal string      `json:"lineTotal"`
}

func toLineItems(items []domain.CartItem) []lineItemResponse {
	out := make([]lineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemResponse{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Kind:      it.Product.Kind,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: money(it.Product.Price),
			LineTotal: money(it.LineTotal()),
		})
	}
	return out
}

type cartResponse struct {
	Version         int                `json:"version"`
	SupplierID      string             `json:"supplierId,omitempty"`
	LineItems       []lineItemResponse `json:"lineItems"`
	TotalQuantity   int                `json:"totalLineItemQuantity"`
	Subtotal        string             `json:"subtotal"`
	Discount        string             `json:"discount"`
	DiscountPercent *int               `json:"discountPercent,omitempty"`
	FinalSubtotal   string             `json:"finalSubtotal"`
	PlatformFee     string             `json:"platformFee"`
	Total           string             `json:"total"`
	Stamps          int                `json:"stamps"`
	StampsToNext    int                `json:"stampsToNext"`
	LoyaltyOrder    bool               `json:"loyaltyOrder"`
}

func toCartResponse(v *cart.View) cartResponse {
	qty := 0
	for _, it := range v.Items {
		qty += it.Quantity
	}
	return cartResponse{
		Version:         v.Version,
		SupplierID:      v.SupplierID,
		LineItems:       toLineItems(v.Items),
		TotalQuantity:   qty,
		Subtotal:        money(v.Quote.Subtotal),
		Discount:        money(v.Quote.Discount),
		DiscountPercent: v.Quote.DiscountPercent,
		FinalSubtotal:   money(v.Quote.FinalSubtotal),
		PlatformFee:     money(v.Quote.PlatformFee),
		Total:           money(v.Quote.Total),
		Stamps:          v.Stamps,
		StampsToNext:    v.StampsToNext,
		LoyaltyOrder:    v.Quote.DiscountPercent != nil,
	}
}

type orderResponse struct {
	ID               string               `json:"id"`
	DisplayNumber    string               `json:"displayNumber"`
	SupplierID       string               `json:"supplierId"`
	Supplier         string               `json:"supplier"`
	LineItems        []lineItemResponse   `json:"lineItems"`
	Subtotal         string               `json:"subtotal"`
	PlatformFee      string               `json:"platformFee"`
	Total            string               `json:"total"`
	Status           domain.OrderStatus   `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
	CancelUntil      time.Time            `json:"cancelUntil"`
	Loyalty          domain.LoyaltyRecord `json:"loyalty"`
	CanCancel        bool                 `json:"canCancel"`
	RemainingSeconds int                  `json:"remainingSeconds"`
	Countdown        string               `json:"countdown"`
	CanChat          bool                 `json:"canChat"`
}

func toOrderResponse(t order.Tracking) orderResponse {
	o := t.Order
	return orderResponse{
		ID:               o.ID,
		DisplayNumber:    t.DisplayNumber,
		SupplierID:       o.SupplierID,
		Supplier:         o.SupplierName,
		LineItems:        toLineItems(o.Items),
		Subtotal:         money(o.Subtotal),
		PlatformFee:      money(o.PlatformFee),
		Total:            money(o.Total),
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		CancelUntil:      o.CancelUntil,
		Loyalty:          o.Loyalty,
		CanCancel:        t.CanCancel,
		RemainingSeconds: t.RemainingSeconds,
		Countdown:        t.Countdown,
		CanChat:          t.CanChat,
	}
}

// trackingAt builds tracking for an order just returned by a mutation, where
// no stored countdown snapshot is at hand.
func trackingAt(o domain.Order, now time.Time) order.Tracking {
	remaining := 0
	if o.Status == domain.OrderPending {
		remaining = pricing.Remaining(o, now)
	}
	return order.Tracking{
		Order:            o,
		DisplayNumber:    pricing.DisplayNumber(o.ID),
		CanCancel:        pricing.CanCancel(o, now),
		RemainingSeconds: remaining,
		Countdown:        pricing.FormatCountdown(remaining),
		CanChat:          pricing.CanSendMessage(o.Status),
	}
}

type dashboardResponse struct {
	SupplierID   string                     `json:"supplierId"`
	Supplier     string                     `json:"supplier"`
	Orders       int                        `json:"orders"`
	Active       int                        `json:"active"`
	Cancelled    int                        `json:"cancelled"`
	ByStatus     map[domain.OrderStatus]int `json:"byStatus"`
	Gross        string                     `json:"gross"`
	PlatformFees string                     `json:"platformFees"`
	Payout       string                     `json:"payout"`
}

func toDashboardResponse(s *dashboard.Summary) dashboardResponse {
	return dashboardResponse{
		SupplierID:   s.SupplierID,
		Supplier:     s.SupplierName,
		Orders:       s.Orders,
		Active:       s.Active,
		Cancelled:    s.Cancelled,
		ByStatus:     s.ByStatus,
		Gross:        money(s.Gross),
		PlatformFees: money(s.PlatformFees),
		Payout:       money(s.Payout),
	}
}
