package order

import (
	"context"
	"time"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"aguagas/internal/session"
	"go.uber.org/zap"
)

type Service struct {
	store   sessionStore
	catalog supplierReader
	ids     pricing.IDGenerator
	now     func() time.Time
	logger  *zap.Logger
}

type sessionStore interface {
	Get(id string) (session.Session, error)
	Update(id string, fn func(*session.Session) error) (session.Session, error)
	UpdateAll(fn func(*session.Session))
}

type supplierReader interface {
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
}

func New(store sessionStore, catalog supplierReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		catalog: catalog,
		ids:     pricing.UUIDGenerator{},
		now:     time.Now,
		logger:  logger,
	}
}

// Tracking is an order together with its live cancellation and chat state.
type Tracking struct {
	Order            domain.Order
	DisplayNumber    string
	CanCancel        bool
	RemainingSeconds int
	Countdown        string
	CanChat          bool
}

// Create checks out the session's cart with the selected supplier. On any
// failure the session is left untouched: no order, no stamp, no countdown.
func (s *Service) Create(ctx context.Context, sessionID string) (*domain.Order, error) {
	current, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if current.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if current.SupplierID == "" {
		return nil, domain.ErrNoSupplier
	}
	supplier, err := s.catalog.GetSupplier(ctx, current.SupplierID)
	if err != nil {
		return nil, err
	}

	var created domain.Order
	_, err = s.store.Update(sessionID, func(sess *session.Session) error {
		if sess.Cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		if sess.SupplierID != supplier.ID {
			return domain.ErrNoSupplier
		}
		stamps := sess.Stamps[supplier.ID]
		quote, err := pricing.QuoteCart(sess.Cart.Items, *supplier, stamps)
		if err != nil {
			return err
		}

		now := s.now()
		created = domain.Order{
			ID:           s.ids.NewID(),
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			Items:        append([]domain.CartItem(nil), sess.Cart.Items...),
			Subtotal:     quote.FinalSubtotal,
			PlatformFee:  quote.PlatformFee,
			Total:        quote.Total,
			Status:       domain.OrderPending,
			CreatedAt:    now,
			CancelUntil:  pricing.CancelDeadline(now),
			Loyalty: domain.LoyaltyRecord{
				StampCountBefore:       stamps,
				DiscountAppliedPercent: quote.DiscountPercent,
			},
		}
		sess.Orders = append(sess.Orders, created)
		sess.Stamps[supplier.ID] = stamps + 1
		sess.Countdowns[created.ID] = pricing.CancelWindowSeconds
		sess.Cart = domain.Cart{Version: sess.Cart.Version + 1}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.String("order_id", created.ID),
		zap.String("supplier_id", created.SupplierID),
		zap.String("total", created.Total.StringFixed(2)),
		zap.String("platform_fee", created.PlatformFee.StringFixed(2)),
		zap.Int("stamps_before", created.Loyalty.StampCountBefore),
	}
	if created.Loyalty.DiscountAppliedPercent != nil {
		fields = append(fields, zap.Int("loyalty_percent", *created.Loyalty.DiscountAppliedPercent))
	}
	s.logger.Info("order created", fields...)
	return &created, nil
}

// Cancel moves a pending order to cancelled while its window is open. The
// loyalty stamp earned at creation is kept.
func (s *Service) Cancel(_ context.Context, sessionID, orderID string) (*domain.Order, error) {
	var cancelled domain.Order
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		idx := sess.Order(orderID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		if !pricing.CanCancel(sess.Orders[idx], s.now()) {
			return domain.ErrNotCancellable
		}
		sess.Orders[idx].Status = domain.OrderCancelled
		delete(sess.Countdowns, orderID)
		cancelled = sess.Orders[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order cancelled", zap.String("session_id", sessionID), zap.String("order_id", orderID))
	return &cancelled, nil
}

// Advance applies one fulfillment step: pending→approved→delivering→delivered.
func (s *Service) Advance(_ context.Context, sessionID, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	var updated domain.Order
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		idx := sess.Order(orderID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		next, ok := sess.Orders[idx].Status.Next()
		if !ok || next != to {
			return domain.ErrInvalidTransition
		}
		sess.Orders[idx].Status = next
		delete(sess.Countdowns, orderID)
		updated = sess.Orders[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order advanced",
		zap.String("session_id", sessionID),
		zap.String("order_id", orderID),
		zap.String("status", string(updated.Status)),
	)
	return &updated, nil
}

func (s *Service) List(_ context.Context, sessionID string) ([]Tracking, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	result := make([]Tracking, 0, len(sess.Orders))
	for _, o := range sess.Orders {
		result = append(result, track(sess, o, now))
	}
	return result, nil
}

func (s *Service) Get(_ context.Context, sessionID, orderID string) (*Tracking, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	idx := sess.Order(orderID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	t := track(sess, sess.Orders[idx], s.now())
	return &t, nil
}

// track reads the countdown from cancel_until for pending orders so it always
// agrees with CanCancel, even between ticks.
func track(sess session.Session, o domain.Order, now time.Time) Tracking {
	remaining := 0
	if _, ok := sess.Countdowns[o.ID]; ok && o.Status == domain.OrderPending {
		remaining = pricing.Remaining(o, now)
	}
	return Tracking{
		Order:            o,
		DisplayNumber:    pricing.DisplayNumber(o.ID),
		CanCancel:        pricing.CanCancel(o, now),
		RemainingSeconds: remaining,
		Countdown:        pricing.FormatCountdown(remaining),
		CanChat:          pricing.CanSendMessage(o.Status),
	}
}
