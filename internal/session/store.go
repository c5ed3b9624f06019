// Package session keeps each client's in-memory ordering state: role,
// selected supplier, cart, orders, loyalty stamps, cancellation countdowns
// and chat messages.
package session

import (
	"sync"
	"time"

	"aguagas/internal/domain"
	"github.com/google/uuid"
)

// Session is one client's state. Values handed out by the Store are copies;
// mutate through Store.Update.
type Session struct {
	ID         string
	Role       domain.Role
	SupplierID string
	Cart       domain.Cart
	Orders     []domain.Order
	Stamps     map[string]int
	Countdowns map[string]int
	Messages   []domain.ChatMessage
	CreatedAt  time.Time
}

// Order returns the index of the order with id, or -1.
func (s *Session) Order(id string) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) clone() *Session {
	c := *s
	c.Cart.Items = append([]domain.CartItem(nil), s.Cart.Items...)
	c.Orders = make([]domain.Order, len(s.Orders))
	for i, o := range s.Orders {
		o.Items = append([]domain.CartItem(nil), o.Items...)
		c.Orders[i] = o
	}
	c.Stamps = make(map[string]int, len(s.Stamps))
	for k, v := range s.Stamps {
		c.Stamps[k] = v
	}
	c.Countdowns = make(map[string]int, len(s.Countdowns))
	for k, v := range s.Countdowns {
		c.Countdowns[k] = v
	}
	c.Messages = append([]domain.ChatMessage(nil), s.Messages...)
	return &c
}

// Store is the single owner of all sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create opens a new session for role.
func (s *Store) Create(role domain.Role) (Session, error) {
	if !role.Valid() {
		return Session{}, domain.ErrInvalidRole
	}
	sess := &Session{
		ID:         uuid.NewString(),
		Role:       role,
		Stamps:     make(map[string]int),
		Countdowns: make(map[string]int),
		CreatedAt:  s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return *sess.clone(), nil
}

func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, domain.ErrNotFound
	}
	return *sess.clone(), nil
}

// Update applies fn to a working copy of the session and commits it only when
// fn succeeds, so a rejected operation leaves no partial state behind.
func (s *Store) Update(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, domain.ErrNotFound
	}
	work := sess.clone()
	if err := fn(work); err != nil {
		return Session{}, err
	}
	s.sessions[id] = work
	return *work.clone(), nil
}

// UpdateAll runs fn over every session under the store lock.
func (s *Store) UpdateAll(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		fn(sess)
	}
}

// SetRole switches the session between customer and supplier views.
func (s *Store) SetRole(id string, role domain.Role) (Session, error) {
	if !role.Valid() {
		return Session{}, domain.ErrInvalidRole
	}
	return s.Update(id, func(sess *Session) error {
		sess.Role = role
		return nil
	})
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
