package domain

import (
	"math"
	"time"
)

// StockEntry records a single intake of stock. Entries are never updated or deleted.
type StockEntry struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	Quantity      int       `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	TotalCost     float64   `json:"totalCost"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Sale records a single sale. ProductName and PurchasePrice are snapshots
// taken when the sale was recorded.
type Sale struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Quantity      int       `json:"quantity"`
	SellingPrice  float64   `json:"sellingPrice"`
	PurchasePrice float64   `json:"purchasePrice"`
	TotalRevenue  float64   `json:"totalRevenue"`
	Profit        float64   `json:"profit"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Summary is the dashboard aggregate derived from the current collections.
type Summary struct {
	TotalProducts    int       `json:"totalProducts"`
	TotalCategories  int       `json:"totalCategories"`
	TotalStock       int       `json:"totalStock"`
	TotalSales       int       `json:"totalSales"`
	TotalRevenue     float64   `json:"totalRevenue"`
	TotalProfit      float64   `json:"totalProfit"`
	LowStockProducts []Product `json:"lowStockProducts"`
}

// ValidateQuantity checks an intake or sale quantity.
func ValidateQuantity(entity string, qty int) error {
	if qty <= 0 {
		return NewInvalidFieldError(entity, "quantity", "must be positive", qty)
	}
	return nil
}

// ValidatePrice checks a per-unit price.
func ValidatePrice(entity, field string, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return NewInvalidFieldError(entity, field, "must be a finite number", price)
	}
	if price < 0 {
		return NewInvalidFieldError(entity, field, "must be non-negative", price)
	}
	return nil
}
