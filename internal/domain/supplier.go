package domain

// LoyaltySettings configures the every-10th-order discount. DiscountPercent is
// only meaningful when Enabled is true.
type LoyaltySettings struct {
	Enabled         bool `json:"enabled"`
	DiscountPercent int  `json:"discountPercent"`
}

type SupplierSettings struct {
	HidePhone bool            `json:"hidePhone"`
	Loyalty   LoyaltySettings `json:"loyalty"`
}

type Supplier struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Rating       float64          `json:"rating"`
	DeliveryTime string           `json:"deliveryTime"`
	Distance     string           `json:"distance"`
	Products     []Product        `json:"products"`
	Settings     SupplierSettings `json:"settings"`
}

// Product returns the supplier's product with the given id.
func (s Supplier) Product(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Offers reports whether any of the supplier's products is in the category.
func (s Supplier) Offers(c Category) bool {
	for _, p := range s.Products {
		if p.Category == c {
			return true
		}
	}
	return false
}
