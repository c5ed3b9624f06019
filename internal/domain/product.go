package domain

import "github.com/shopspring/decimal"

// Category groups products for supplier browsing.
type Category string

const (
	CategoryWater Category = "water"
	CategoryGas   Category = "gas"
)

// Kind is the fee-relevant SKU class of a product, independent of its display size.
type Kind string

const (
	KindBottle500ml Kind = "500ml"
	KindJug20L      Kind = "galao20L"
	KindGas13kg     Kind = "gas13kg"
	KindGas45kg     Kind = "gas45kg"
)

// Kinds lists every known product kind in fee-table order.
var Kinds = []Kind{KindBottle500ml, KindJug20L, KindGas13kg, KindGas45kg}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

func (c Category) Valid() bool {
	return c == CategoryWater || c == CategoryGas
}

type Product struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplierId"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image,omitempty"`
	Category     Category        `json:"category"`
	Kind         Kind            `json:"kind"`
	Sizes        []string        `json:"sizes"`
	DeliveryTime string          `json:"deliveryTime"`
}

// HasSize reports whether size is one of the product's offered sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// DefaultSize is the first offered size, or "" when the product lists none.
func (p Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0]
}
