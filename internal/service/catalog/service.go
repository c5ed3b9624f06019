package catalog

import (
	"context"
	"strings"

	"aguagas/internal/domain"
	catalogrepo "aguagas/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Filter narrows the supplier list. Category "" or "all" matches every supplier.
type Filter struct {
	Query    string
	Category string
}

// List returns suppliers whose name contains the query (case-insensitive) and
// that sell at least one product in the category.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Supplier, error) {
	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	result := make([]domain.Supplier, 0, len(suppliers))
	for _, sup := range suppliers {
		if query != "" && !strings.Contains(strings.ToLower(sup.Name), query) {
			continue
		}
		if category != "" && category != "all" && !sup.Offers(domain.Category(category)) {
			continue
		}
		result = append(result, sup)
	}
	return result, nil
}

func (s *Service) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.repo.GetSupplier(ctx, strings.TrimSpace(id))
}
