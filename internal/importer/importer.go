package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"aguagas/internal/domain"
	"aguagas/internal/repository/catalog"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	UpsertProduct(ctx context.Context, p domain.Product, position int) error
}

// CSVImporter reads product CSV exports and inserts/updates catalog products.
// Expected columns: supplier_id,id,name,price,category,kind,sizes,delivery_time,image.
// Sizes are ';'-separated. A row with no id continues the previous product and
// contributes extra sizes.
type CSVImporter struct {
	reader *csv.Reader
	repo   ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo}
}

// Run parses CSV rows and upserts products in file order. Positions are
// assigned per supplier in the order products first appear.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current   *domain.Product
		imported  int
		positions = make(map[string]int)
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		pos := positions[current.SupplierID]
		if err := i.save(ctx, current, pos); err != nil {
			return err
		}
		positions[current.SupplierID] = pos + 1
		imported++
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		id := pick(record, index, "id")
		sizes := splitSizes(pick(record, index, "sizes"))
		if id == "" {
			// Continuation rows carry extra sizes for the current product.
			if current != nil {
				current.Sizes = append(current.Sizes, sizes...)
			}
			continue
		}

		if err := flush(); err != nil {
			return imported, err
		}
		current, err = parseRow(record, index, id, sizes)
		if err != nil {
			return imported, err
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product, position int) error {
	if err := catalog.ValidateProduct(*p); err != nil {
		return fmt.Errorf("invalid product row %q: %w", p.ID, err)
	}
	if err := i.repo.UpsertProduct(ctx, *p, position); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.ID, err)
	}
	return nil
}

func parseRow(record []string, index map[string]int, id string, sizes []string) (*domain.Product, error) {
	supplierID := pick(record, index, "supplier_id")
	name := pick(record, index, "name")
	if supplierID == "" || name == "" {
		return nil, fmt.Errorf("invalid product row (missing required fields) for id %q", id)
	}
	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price for id %q: %w", id, err)
	}
	return &domain.Product{
		ID:           id,
		SupplierID:   supplierID,
		Name:         name,
		Price:        price,
		Image:        pick(record, index, "image"),
		Category:     domain.Category(strings.ToLower(pick(record, index, "category"))),
		Kind:         domain.Kind(pick(record, index, "kind")),
		Sizes:        sizes,
		DeliveryTime: pick(record, index, "delivery_time"),
	}, nil
}

func splitSizes(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
