package catalog

import (
	"context"
	"fmt"

	"aguagas/internal/domain"
)

// Repository is the read-only supplier catalog.
type Repository interface {
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
}

// Writer upserts catalog data; used by the seed and importer commands.
type Writer interface {
	UpsertSupplier(ctx context.Context, s domain.Supplier) error
	UpsertProduct(ctx context.Context, p domain.Product, position int) error
}

// Validate rejects supplier data the pricing rules cannot work with.
func Validate(s domain.Supplier) error {
	if s.ID == "" || s.Name == "" {
		return fmt.Errorf("supplier %q: id and name required", s.ID)
	}
	if l := s.Settings.Loyalty; l.Enabled && (l.DiscountPercent < 1 || l.DiscountPercent > 100) {
		return fmt.Errorf("supplier %s: %w (got %d)", s.ID, domain.ErrInvalidDiscount, l.DiscountPercent)
	}
	seen := make(map[string]struct{}, len(s.Products))
	for _, p := range s.Products {
		if err := ValidateProduct(p); err != nil {
			return fmt.Errorf("supplier %s: %w", s.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("supplier %s: duplicate product id %s", s.ID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func ValidateProduct(p domain.Product) error {
	if p.ID == "" || p.Name == "" {
		return fmt.Errorf("product %q: id and name required", p.ID)
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("product %s: %w %q", p.ID, domain.ErrUnknownKind, p.Kind)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product %s: negative price", p.ID)
	}
	return nil
}
