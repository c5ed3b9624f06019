package seed

import (
	"context"
	"fmt"

	"aguagas/internal/domain"
	"aguagas/internal/repository/catalog"
)

// Apply upserts the built-in supplier catalog. It is idempotent.
func Apply(ctx context.Context, w catalog.Writer) error {
	return ApplySuppliers(ctx, w, catalog.DefaultSuppliers())
}

// ApplySuppliers upserts each supplier followed by its products in listing order.
func ApplySuppliers(ctx context.Context, w catalog.Writer, suppliers []domain.Supplier) error {
	for _, s := range suppliers {
		if err := w.UpsertSupplier(ctx, s); err != nil {
			return fmt.Errorf("seed supplier %s: %w", s.ID, err)
		}
		for i, p := range s.Products {
			p.SupplierID = s.ID
			if err := w.UpsertProduct(ctx, p, i); err != nil {
				return fmt.Errorf("seed product %s/%s: %w", s.ID, p.ID, err)
			}
		}
	}
	return nil
}
