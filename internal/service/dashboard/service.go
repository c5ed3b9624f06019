// Package dashboard summarizes a supplier's orders in a session.
package dashboard

import (
	"context"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"aguagas/internal/session"
	"github.com/shopspring/decimal"
)

type Service struct {
	store   sessionStore
	catalog supplierReader
}

type sessionStore interface {
	Get(id string) (session.Session, error)
}

type supplierReader interface {
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
}

func New(store sessionStore, catalog supplierReader) *Service {
	return &Service{store: store, catalog: catalog}
}

type Summary struct {
	SupplierID   string
	SupplierName string
	Orders       int
	Active       int
	Cancelled    int
	ByStatus     map[domain.OrderStatus]int
	Gross        decimal.Decimal
	PlatformFees decimal.Decimal
	Payout       decimal.Decimal
}

// Summary aggregates the supplier's orders. Cancelled orders are counted but
// excluded from the money figures.
func (s *Service) Summary(ctx context.Context, sessionID, supplierID string) (*Summary, error) {
	supplier, err := s.catalog.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		ByStatus:     make(map[domain.OrderStatus]int),
		Gross:        decimal.Zero,
		PlatformFees: decimal.Zero,
		Payout:       decimal.Zero,
	}
	for _, o := range sess.Orders {
		if o.SupplierID != supplier.ID {
			continue
		}
		sum.Orders++
		sum.ByStatus[o.Status]++
		if o.Status == domain.OrderCancelled {
			sum.Cancelled++
			continue
		}
		if !o.Status.Terminal() {
			sum.Active++
		}
		split := pricing.PayoutSplit(o.Subtotal, o.PlatformFee)
		sum.Gross = sum.Gross.Add(o.Subtotal)
		sum.PlatformFees = sum.PlatformFees.Add(split.PlatformFee)
		sum.Payout = sum.Payout.Add(split.SupplierAmount)
	}
	return sum, nil
}
