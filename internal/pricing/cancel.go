package pricing

import (
	"fmt"
	"time"

	"aguagas/internal/domain"
)

// CancelWindow is how long after creation a pending order may be cancelled.
const CancelWindow = 10 * time.Minute

// CancelWindowSeconds seeds the per-order display countdown.
const CancelWindowSeconds = int(CancelWindow / time.Second)

// CancelDeadline is the cancel_until timestamp for an order created at createdAt.
func CancelDeadline(createdAt time.Time) time.Time {
	return createdAt.Add(CancelWindow)
}

// CanCancel is the authoritative cancellation gate.
func CanCancel(order domain.Order, now time.Time) bool {
	return order.Status == domain.OrderPending &&
		!order.CancelUntil.IsZero() &&
		now.Before(order.CancelUntil)
}

// Remaining is the number of whole seconds (rounded up) left in the
// cancellation window at now, never negative.
func Remaining(order domain.Order, now time.Time) int {
	if !now.Before(order.CancelUntil) {
		return 0
	}
	left := order.CancelUntil.Sub(now)
	return int((left + time.Second - 1) / time.Second)
}

// FormatCountdown renders seconds as M:SS.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// CanSendMessage gates chat: closed once an order is delivered or cancelled.
func CanSendMessage(status domain.OrderStatus) bool {
	return status != domain.OrderDelivered && status != domain.OrderCancelled
}
