package dashboard

import (
	"context"
	"errors"
	"testing"

	"aguagas/internal/domain"
	"aguagas/internal/session"
	"github.com/shopspring/decimal"
)

type stubStore struct {
	sess session.Session
}

func (s stubStore) Get(id string) (session.Session, error) {
	if id != s.sess.ID {
		return session.Session{}, domain.ErrNotFound
	}
	return s.sess, nil
}

type stubCatalog struct{}

func (stubCatalog) GetSupplier(_ context.Context, id string) (*domain.Supplier, error) {
	if id != "water" {
		return nil, domain.ErrNotFound
	}
	return &domain.Supplier{ID: "water", Name: "Water Co"}, nil
}

func order(id, supplier string, status domain.OrderStatus, subtotal, fee string) domain.Order {
	return domain.Order{
		ID:          id,
		SupplierID:  supplier,
		Status:      status,
		Subtotal:    decimal.RequireFromString(subtotal),
		PlatformFee: decimal.RequireFromString(fee),
		Total:       decimal.RequireFromString(subtotal),
	}
}

func TestServiceSummary(t *testing.T) {
	store := stubStore{sess: session.Session{
		ID: "s1",
		Orders: []domain.Order{
			order("a", "water", domain.OrderPending, "25.80", "1"),
			order("b", "water", domain.OrderDelivered, "100.00", "2"),
			order("c", "water", domain.OrderCancelled, "50.00", "1"),
			order("d", "gas", domain.OrderPending, "95.00", "5"),
		},
	}}
	svc := New(store, stubCatalog{})

	sum, err := svc.Summary(context.Background(), "s1", "water")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Orders != 3 || sum.Active != 1 || sum.Cancelled != 1 {
		t.Fatalf("unexpected counts %+v", sum)
	}
	if sum.ByStatus[domain.OrderDelivered] != 1 {
		t.Fatalf("unexpected by-status %v", sum.ByStatus)
	}
	if !sum.Gross.Equal(decimal.RequireFromString("125.80")) {
		t.Fatalf("unexpected gross %s", sum.Gross)
	}
	if !sum.PlatformFees.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("unexpected fees %s", sum.PlatformFees)
	}
	if !sum.Payout.Equal(decimal.RequireFromString("122.80")) {
		t.Fatalf("unexpected payout %s", sum.Payout)
	}
}

func TestServiceSummaryNotFound(t *testing.T) {
	svc := New(stubStore{sess: session.Session{ID: "s1"}}, stubCatalog{})
	if _, err := svc.Summary(context.Background(), "s1", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Summary(context.Background(), "s2", "water"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
