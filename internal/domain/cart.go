package domain

import "github.com/shopspring/decimal"

// CartItem is one (product, size) line. Quantity is always at least 1.
type CartItem struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 999

// Cart holds the lines of a single supplier. Version increases on every
// successful change and survives checkout.
type Cart struct {
	SupplierID string     `json:"supplierId,omitempty"`
	Items      []CartItem `json:"items"`
	Version    int        `json:"version"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Index returns the position of the (productID, size) line, or -1.
func (c Cart) Index(productID, size string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

// TotalQuantity sums quantities over all lines.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
