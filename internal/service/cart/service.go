package cart

import (
	"context"
	"fmt"
	"strings"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"aguagas/internal/session"
	"go.uber.org/zap"
)

type Service struct {
	store   sessionStore
	catalog supplierReader
	logger  *zap.Logger
}

type sessionStore interface {
	Get(id string) (session.Session, error)
	Update(id string, fn func(*session.Session) error) (session.Session, error)
}

type supplierReader interface {
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
}

func New(store sessionStore, catalog supplierReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, catalog: catalog, logger: logger}
}

const (
	ActionAdd    = "addlineitem"
	ActionChange = "changelineitemquantity"
	ActionRemove = "removelineitem"
)

// UpdateInput is a batch of cart actions. A non-zero Version must match the
// current cart version or the whole batch is rejected.
type UpdateInput struct {
	Version int            `json:"version"`
	Actions []UpdateAction `json:"actions"`
}

type UpdateAction struct {
	Action     string `json:"action"`
	SupplierID string `json:"supplierId,omitempty"`
	ProductID  string `json:"productId,omitempty"`
	Size       string `json:"size,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
}

// View is the cart with its live price breakdown.
type View struct {
	Version      int
	SupplierID   string
	Items        []domain.CartItem
	Quote        pricing.Quote
	Stamps       int
	StampsToNext int
}

// resolved is an action with its product looked up from the catalog.
type resolved struct {
	kind     string
	supplier *domain.Supplier
	product  domain.Product
	id       string
	size     string
	qty      int
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sess)
}

// SelectSupplier marks the supplier the customer is browsing. It is refused
// while the cart holds another supplier's products.
func (s *Service) SelectSupplier(ctx context.Context, sessionID, supplierID string) (*View, error) {
	sup, err := s.catalog.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.Update(sessionID, func(sess *session.Session) error {
		if !sess.Cart.IsEmpty() && sess.Cart.SupplierID != sup.ID {
			return domain.ErrSupplierMismatch
		}
		sess.SupplierID = sup.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sess)
}

func (s *Service) AddItem(ctx context.Context, sessionID, supplierID, productID, size string, quantity int) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{
		Action: ActionAdd, SupplierID: supplierID, ProductID: productID, Size: size, Quantity: quantity,
	}}})
}

// ChangeQuantity sets a line's quantity; zero removes the line.
func (s *Service) ChangeQuantity(ctx context.Context, sessionID, productID, size string, quantity int) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{
		Action: ActionChange, ProductID: productID, Size: size, Quantity: quantity,
	}}})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, size string) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{
		Action: ActionRemove, ProductID: productID, Size: size,
	}}})
}

// Update applies all actions atomically: either every action succeeds or the
// cart is left as it was.
func (s *Service) Update(ctx context.Context, sessionID string, in UpdateInput) (*View, error) {
	if len(in.Actions) == 0 {
		return nil, fmt.Errorf("%w: actions required", domain.ErrInvalidInput)
	}
	current, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	steps := make([]resolved, 0, len(in.Actions))
	for _, action := range in.Actions {
		step, err := s.resolve(ctx, current, action)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	sess, err := s.store.Update(sessionID, func(sess *session.Session) error {
		if in.Version != 0 && in.Version != sess.Cart.Version {
			return fmt.Errorf("%w: expected %d, cart is at %d", domain.ErrVersionConflict, in.Version, sess.Cart.Version)
		}
		for _, step := range steps {
			if err := apply(sess, step); err != nil {
				return err
			}
		}
		sess.Cart.Version++
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("cart updated",
		zap.String("session_id", sessionID),
		zap.Int("actions", len(steps)),
		zap.Int("lines", len(sess.Cart.Items)),
	)
	return s.view(ctx, sess)
}

func (s *Service) resolve(ctx context.Context, sess session.Session, action UpdateAction) (resolved, error) {
	kind := strings.ToLower(strings.TrimSpace(action.Action))
	productID := strings.TrimSpace(action.ProductID)
	size := strings.TrimSpace(action.Size)
	if productID == "" {
		return resolved{}, fmt.Errorf("%w: productId required", domain.ErrInvalidInput)
	}
	if action.Quantity < 0 || action.Quantity > domain.MaxLineQuantity {
		return resolved{}, domain.ErrInvalidQuantity
	}

	switch kind {
	case ActionAdd:
		supplierID := strings.TrimSpace(action.SupplierID)
		if supplierID == "" {
			supplierID = sess.SupplierID
		}
		if supplierID == "" {
			return resolved{}, domain.ErrNoSupplier
		}
		sup, err := s.catalog.GetSupplier(ctx, supplierID)
		if err != nil {
			return resolved{}, err
		}
		product, ok := sup.Product(productID)
		if !ok {
			return resolved{}, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		if size == "" {
			size = product.DefaultSize()
		}
		if len(product.Sizes) > 0 && !product.HasSize(size) {
			return resolved{}, fmt.Errorf("%w: %q", domain.ErrInvalidSize, size)
		}
		qty := action.Quantity
		if qty == 0 {
			qty = 1
		}
		return resolved{kind: kind, supplier: sup, product: product, id: productID, size: size, qty: qty}, nil
	case ActionChange, ActionRemove:
		return resolved{kind: kind, id: productID, size: size, qty: action.Quantity}, nil
	default:
		return resolved{}, fmt.Errorf("%w: unsupported action", domain.ErrInvalidInput)
	}
}

func apply(sess *session.Session, step resolved) error {
	cart := &sess.Cart
	switch step.kind {
	case ActionAdd:
		if !cart.IsEmpty() && cart.SupplierID != step.supplier.ID {
			return domain.ErrSupplierMismatch
		}
		cart.SupplierID = step.supplier.ID
		sess.SupplierID = step.supplier.ID
		if idx := cart.Index(step.id, step.size); idx >= 0 {
			if cart.Items[idx].Quantity > domain.MaxLineQuantity-step.qty {
				return domain.ErrInvalidQuantity
			}
			cart.Items[idx].Quantity += step.qty
			return nil
		}
		cart.Items = append(cart.Items, domain.CartItem{Product: step.product, Size: step.size, Quantity: step.qty})
		return nil
	case ActionChange:
		idx := lineIndex(*cart, step.id, step.size)
		if idx < 0 {
			return fmt.Errorf("cart line %s: %w", step.id, domain.ErrNotFound)
		}
		if step.qty == 0 {
			removeLine(cart, idx)
			return nil
		}
		cart.Items[idx].Quantity = step.qty
		return nil
	case ActionRemove:
		idx := lineIndex(*cart, step.id, step.size)
		if idx < 0 {
			return fmt.Errorf("cart line %s: %w", step.id, domain.ErrNotFound)
		}
		removeLine(cart, idx)
		return nil
	}
	return fmt.Errorf("%w: unsupported action", domain.ErrInvalidInput)
}

// lineIndex matches by product and size; an empty size matches the product's first line.
func lineIndex(cart domain.Cart, productID, size string) int {
	if size != "" {
		return cart.Index(productID, size)
	}
	for i, item := range cart.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func removeLine(cart *domain.Cart, idx int) {
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	if cart.IsEmpty() {
		cart.SupplierID = ""
	}
}

func (s *Service) view(ctx context.Context, sess session.Session) (*View, error) {
	v := &View{
		Version:    sess.Cart.Version,
		SupplierID: sess.SupplierID,
		Items:      sess.Cart.Items,
	}
	if v.Items == nil {
		v.Items = []domain.CartItem{}
	}
	if sess.SupplierID == "" {
		v.Quote = pricing.Zero(0)
		v.StampsToNext = pricing.StampsToNext(0)
		return v, nil
	}
	sup, err := s.catalog.GetSupplier(ctx, sess.SupplierID)
	if err != nil {
		return nil, err
	}
	v.Stamps = sess.Stamps[sup.ID]
	v.StampsToNext = pricing.StampsToNext(v.Stamps)
	if sess.Cart.IsEmpty() {
		v.Quote = pricing.Zero(v.Stamps)
		return v, nil
	}
	if v.Quote, err = pricing.QuoteCart(sess.Cart.Items, *sup, v.Stamps); err != nil {
		return nil, err
	}
	return v, nil
}
