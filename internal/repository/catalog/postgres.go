package catalog

import (
	"context"
	"errors"
	"fmt"

	"aguagas/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// PostgresRepo serves and upserts the catalog stored in Postgres.
type PostgresRepo interface {
	Repository
	Writer
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) PostgresRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("catalog")}
}

const supplierColumns = `id, name, rating, delivery_time, distance, hide_phone, loyalty_enabled, loyalty_discount_percent`

func scanSupplier(row pgx.Row, s *domain.Supplier) error {
	return row.Scan(
		&s.ID,
		&s.Name,
		&s.Rating,
		&s.DeliveryTime,
		&s.Distance,
		&s.Settings.HidePhone,
		&s.Settings.Loyalty.Enabled,
		&s.Settings.Loyalty.DiscountPercent,
	)
}

func (r *postgresRepo) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
	if err != nil {
		r.logger.Error("list suppliers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	index := make(map[string]int)
	for rows.Next() {
		var s domain.Supplier
		if err := scanSupplier(rows, &s); err != nil {
			return nil, err
		}
		index[s.ID] = len(suppliers)
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	products, err := r.products(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if i, ok := index[p.SupplierID]; ok {
			suppliers[i].Products = append(suppliers[i].Products, p)
		}
	}
	for _, s := range suppliers {
		if err := Validate(s); err != nil {
			r.logger.Error("invalid supplier row", zap.String("supplier_id", s.ID), zap.Error(err))
			return nil, err
		}
	}
	r.logger.Debug("list suppliers", zap.Int("count", len(suppliers)))
	return suppliers, nil
}

func (r *postgresRepo) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := scanSupplier(r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get supplier", zap.String("supplier_id", id), zap.Error(err))
		return nil, err
	}
	if s.Products, err = r.products(ctx, id); err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) products(ctx context.Context, supplierID string) ([]domain.Product, error) {
	const q = `
SELECT id, supplier_id, name, price_cents, COALESCE(image, ''), category, kind, sizes, delivery_time
FROM products
WHERE $1 = '' OR supplier_id = $1
ORDER BY supplier_id, position, id
`
	rows, err := r.pool.Query(ctx, q, supplierID)
	if err != nil {
		r.logger.Error("list products", zap.String("supplier_id", supplierID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var (
			p     domain.Product
			cents int64
		)
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Name, &cents, &p.Image, &p.Category, &p.Kind, &p.Sizes, &p.DeliveryTime); err != nil {
			return nil, err
		}
		p.Price = decimal.New(cents, -2)
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpsertSupplier(ctx context.Context, s domain.Supplier) error {
	const q = `
INSERT INTO suppliers (` + supplierColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    rating = EXCLUDED.rating,
    delivery_time = EXCLUDED.delivery_time,
    distance = EXCLUDED.distance,
    hide_phone = EXCLUDED.hide_phone,
    loyalty_enabled = EXCLUDED.loyalty_enabled,
    loyalty_discount_percent = EXCLUDED.loyalty_discount_percent
`
	s.Products = nil
	if err := Validate(s); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, q,
		s.ID,
		s.Name,
		s.Rating,
		s.DeliveryTime,
		s.Distance,
		s.Settings.HidePhone,
		s.Settings.Loyalty.Enabled,
		s.Settings.Loyalty.DiscountPercent,
	)
	if err != nil {
		r.logger.Error("upsert supplier", zap.String("supplier_id", s.ID), zap.Error(err))
		return fmt.Errorf("upsert supplier %s: %w", s.ID, err)
	}
	r.logger.Info("upserted supplier", zap.String("supplier_id", s.ID))
	return nil
}

func (r *postgresRepo) UpsertProduct(ctx context.Context, p domain.Product, position int) error {
	const q = `
INSERT INTO products (id, supplier_id, name, price_cents, image, category, kind, sizes, delivery_time, position)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)
ON CONFLICT (supplier_id, id) DO UPDATE SET
    name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    image = EXCLUDED.image,
    category = EXCLUDED.category,
    kind = EXCLUDED.kind,
    sizes = EXCLUDED.sizes,
    delivery_time = EXCLUDED.delivery_time,
    position = EXCLUDED.position
`
	if err := ValidateProduct(p); err != nil {
		return err
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	_, err := r.pool.Exec(ctx, q,
		p.ID,
		p.SupplierID,
		p.Name,
		Cents(p.Price),
		p.Image,
		string(p.Category),
		string(p.Kind),
		sizes,
		p.DeliveryTime,
		position,
	)
	if err != nil {
		r.logger.Error("upsert product", zap.String("supplier_id", p.SupplierID), zap.String("product_id", p.ID), zap.Error(err))
		return fmt.Errorf("upsert product %s/%s: %w", p.SupplierID, p.ID, err)
	}
	r.logger.Info("upserted product", zap.String("supplier_id", p.SupplierID), zap.String("product_id", p.ID))
	return nil
}

// Cents converts a currency amount to integer cents, rounding to 2 places.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}
