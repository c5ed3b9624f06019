package order

import (
	"context"
	"time"

	"aguagas/internal/pricing"
	"aguagas/internal/session"
	"go.uber.org/zap"
)

// Tick refreshes every active countdown. Countdowns of known orders are set
// from cancel_until, so they reach zero exactly when cancellation closes
// whatever the ticker's phase. Entries without an order just count down to zero.
func (s *Service) Tick() {
	now := s.now()
	s.store.UpdateAll(func(sess *session.Session) {
		for id, left := range sess.Countdowns {
			if idx := sess.Order(id); idx >= 0 {
				sess.Countdowns[id] = pricing.Remaining(sess.Orders[idx], now)
				continue
			}
			if left > 0 {
				sess.Countdowns[id] = left - 1
			}
		}
	})
}

// Run ticks every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("countdown ticker started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("countdown ticker stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}
