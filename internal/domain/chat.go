package domain

import "time"

// Role is the session's selected user type.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

type ChatMessage struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Sender    Role      `json:"sender"`
	Text      string    `json:"message"`
	Image     string    `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
