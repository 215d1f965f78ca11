package inventory

import (
	"math"

	"inventory_manager/domain"
)

// Summary recomputes the dashboard aggregate from the current collections.
func (inv *Inventory) Summary() domain.Summary {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return Summarize(inv.products, inv.categories, inv.sales)
}

// Summarize derives a Summary. LowStockProducts is never nil.
func Summarize(products []domain.Product, categories []domain.Category, sales []domain.Sale) domain.Summary {
	s := domain.Summary{
		TotalProducts:    len(products),
		TotalCategories:  len(categories),
		TotalSales:       len(sales),
		LowStockProducts: make([]domain.Product, 0),
	}
	for _, p := range products {
		// saturate rather than wrap; each product is individually bounded
		if p.Stock > math.MaxInt-s.TotalStock {
			s.TotalStock = math.MaxInt
		} else {
			s.TotalStock += p.Stock
		}
		if p.IsLowStock() {
			s.LowStockProducts = append(s.LowStockProducts, cloneProduct(p))
		}
	}
	for _, sale := range sales {
		s.TotalRevenue += sale.TotalRevenue
		s.TotalProfit += sale.Profit
	}
	return s
}
