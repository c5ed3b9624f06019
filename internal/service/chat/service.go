package chat

import (
	"context"
	"strings"
	"time"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"aguagas/internal/session"
	"go.uber.org/zap"
)

type Service struct {
	store  sessionStore
	ids    pricing.IDGenerator
	now    func() time.Time
	logger *zap.Logger
}

type sessionStore interface {
	Get(id string) (session.Session, error)
	Update(id string, fn func(*session.Session) error) (session.Session, error)
}

func New(store sessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, ids: pricing.UUIDGenerator{}, now: time.Now, logger: logger}
}

type SendInput struct {
	Text  string `json:"message"`
	Image string `json:"image"`
}

// Send posts a message on an order as the session's current role. Delivered
// and cancelled orders no longer accept messages.
func (s *Service) Send(_ context.Context, sessionID, orderID string, in SendInput) (*domain.ChatMessage, error) {
	text := strings.TrimSpace(in.Text)
	image := strings.TrimSpace(in.Image)
	if text == "" && image == "" {
		return nil, domain.ErrEmptyMessage
	}

	var msg domain.ChatMessage
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		idx := sess.Order(orderID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		if !pricing.CanSendMessage(sess.Orders[idx].Status) {
			return domain.ErrChatClosed
		}
		msg = domain.ChatMessage{
			ID:        s.ids.NewID(),
			OrderID:   orderID,
			Sender:    sess.Role,
			Text:      text,
			Image:     image,
			Timestamp: s.now(),
		}
		sess.Messages = append(sess.Messages, msg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("chat message sent",
		zap.String("session_id", sessionID),
		zap.String("order_id", orderID),
		zap.String("sender", string(msg.Sender)),
	)
	return &msg, nil
}

// List returns the order's messages in send order.
func (s *Service) List(_ context.Context, sessionID, orderID string) ([]domain.ChatMessage, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Order(orderID) < 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.ChatMessage, 0)
	for _, m := range sess.Messages {
		if m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}
