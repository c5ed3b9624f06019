package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoSupplier        = errors.New("no supplier selected")
	ErrSupplierMismatch  = errors.New("cart belongs to another supplier")
	ErrUnknownKind       = errors.New("unknown product kind")
	ErrInvalidDiscount   = errors.New("loyalty discount percent must be between 1 and 100")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 999")
	ErrVersionConflict   = errors.New("cart version does not match")
	ErrInvalidSize       = errors.New("size not offered for product")
	ErrInvalidRole       = errors.New("invalid role")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrChatClosed        = errors.New("chat is closed for this order")
	ErrEmptyMessage      = errors.New("message text or image required")

	// ErrInvalidInput marks malformed requests; wrap it with the detail.
	ErrInvalidInput = errors.New("invalid input")
)
