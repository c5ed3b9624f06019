package catalog

import (
	"context"

	"aguagas/internal/domain"
	"github.com/shopspring/decimal"
)

type memoryRepo struct {
	suppliers []domain.Supplier
	byID      map[string]int
}

// NewMemory validates suppliers and serves them from memory.
func NewMemory(suppliers []domain.Supplier) (Repository, error) {
	repo := &memoryRepo{byID: make(map[string]int, len(suppliers))}
	for _, s := range suppliers {
		if err := Validate(s); err != nil {
			return nil, err
		}
		for i := range s.Products {
			s.Products[i].SupplierID = s.ID
		}
		repo.byID[s.ID] = len(repo.suppliers)
		repo.suppliers = append(repo.suppliers, s)
	}
	return repo, nil
}

func (r *memoryRepo) ListSuppliers(_ context.Context) ([]domain.Supplier, error) {
	out := make([]domain.Supplier, len(r.suppliers))
	copy(out, r.suppliers)
	return out, nil
}

func (r *memoryRepo) GetSupplier(_ context.Context, id string) (*domain.Supplier, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s := r.suppliers[idx]
	return &s, nil
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

const (
	waterImage = "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400&h=400&fit=crop"
	smallImage = "https://images.unsplash.com/photo-1523362628745-0c100150b504?w=400&h=400&fit=crop"
	gasImage   = "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=400&fit=crop"
)

// DefaultSuppliers is the built-in demo catalog.
func DefaultSuppliers() []domain.Supplier {
	return []domain.Supplier{
		{
			ID:           "1",
			Name:         "Água Cristal Express",
			Rating:       4.8,
			DeliveryTime: "30-45 min",
			Distance:     "1.2 km",
			Settings: domain.SupplierSettings{
				HidePhone: true,
				Loyalty:   domain.LoyaltySettings{Enabled: true, DiscountPercent: 20},
			},
			Products: []domain.Product{
				{ID: "1", SupplierID: "1", Name: "Garrafão Água Mineral 20L", Price: price("12.90"), Image: waterImage, Category: domain.CategoryWater, Kind: domain.KindJug20L, Sizes: []string{"20L"}, DeliveryTime: "30 min"},
				{ID: "2", SupplierID: "1", Name: "Água Mineral 500ml", Price: price("2.50"), Image: smallImage, Category: domain.CategoryWater, Kind: domain.KindBottle500ml, Sizes: []string{"500ml"}, DeliveryTime: "30 min"},
			},
		},
		{
			ID:           "2",
			Name:         "Gás Rápido 24h",
			Rating:       4.6,
			DeliveryTime: "45-60 min",
			Distance:     "2.1 km",
			Settings: domain.SupplierSettings{
				HidePhone: true,
				Loyalty:   domain.LoyaltySettings{Enabled: true, DiscountPercent: 15},
			},
			Products: []domain.Product{
				{ID: "3", SupplierID: "2", Name: "Botijão de Gás 13kg", Price: price("95.00"), Image: gasImage, Category: domain.CategoryGas, Kind: domain.KindGas13kg, Sizes: []string{"13kg"}, DeliveryTime: "45 min"},
				{ID: "4", SupplierID: "2", Name: "Botijão de Gás 45kg", Price: price("280.00"), Image: gasImage, Category: domain.CategoryGas, Kind: domain.KindGas45kg, Sizes: []string{"45kg"}, DeliveryTime: "45 min"},
			},
		},
		{
			ID:           "3",
			Name:         "Distribuidora Águas do Vale",
			Rating:       4.7,
			DeliveryTime: "20-35 min",
			Distance:     "0.8 km",
			Settings: domain.SupplierSettings{
				HidePhone: true,
				Loyalty:   domain.LoyaltySettings{Enabled: true, DiscountPercent: 25},
			},
			Products: []domain.Product{
				{ID: "5", SupplierID: "3", Name: "Garrafão Água Mineral 20L Premium", Price: price("15.90"), Image: waterImage, Category: domain.CategoryWater, Kind: domain.KindJug20L, Sizes: []string{"20L"}, DeliveryTime: "25 min"},
				{ID: "6", SupplierID: "3", Name: "Pack Água 500ml (12 unidades)", Price: price("28.90"), Image: smallImage, Category: domain.CategoryWater, Kind: domain.KindBottle500ml, Sizes: []string{"500ml x12"}, DeliveryTime: "25 min"},
			},
		},
		{
			ID:           "4",
			Name:         "Gás & Cia Industrial",
			Rating:       4.5,
			DeliveryTime: "60-90 min",
			Distance:     "3.5 km",
			Settings: domain.SupplierSettings{
				HidePhone: true,
				Loyalty:   domain.LoyaltySettings{Enabled: false},
			},
			Products: []domain.Product{
				{ID: "7", SupplierID: "4", Name: "Botijão de Gás 13kg Ultragaz", Price: price("98.00"), Image: gasImage, Category: domain.CategoryGas, Kind: domain.KindGas13kg, Sizes: []string{"13kg"}, DeliveryTime: "60 min"},
				{ID: "8", SupplierID: "4", Name: "Botijão de Gás 45kg Industrial", Price: price("295.00"), Image: gasImage, Category: domain.CategoryGas, Kind: domain.KindGas45kg, Sizes: []string{"45kg"}, DeliveryTime: "75 min"},
			},
		},
	}
}
