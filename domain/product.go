// Package domain defines core business types for the inventory system.
package domain

import "time"

// LowStockThreshold is the stock level at or below which a product needs restocking.
const LowStockThreshold = 5

// Product represents an inventory product
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Unit          string    `json:"unit"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	PurchasePrice *float64  `json:"purchasePrice,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CostBasis returns the weighted-average purchase price, or 0 if the product never received stock.
func (p Product) CostBasis() float64 {
	if p.PurchasePrice == nil {
		return 0
	}
	return *p.PurchasePrice
}

// IsLowStock reports whether the product is at or below LowStockThreshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= LowStockThreshold
}

// NewProduct carries the caller-supplied fields of a product to create.
type NewProduct struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

// ProductUpdate is a partial update; nil fields are left untouched.
// Stock and purchase price are owned by stock intake and sales.
type ProductUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// Apply merges the non-nil fields of u into p.
func (u ProductUpdate) Apply(p Product) Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Unit != nil {
		p.Unit = *u.Unit
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	return p
}

// ValidateProduct checks the caller-editable fields of a product.
func ValidateProduct(p Product) error {
	if isBlank(p.Name) {
		return NewInvalidFieldError("product", "name", "cannot be empty", p.Name)
	}
	if err := ValidatePrice("product", "price", p.Price); err != nil {
		return err
	}
	if p.Stock < 0 {
		return NewInvalidFieldError("product", "stock", "must be non-negative", p.Stock)
	}
	return nil
}
