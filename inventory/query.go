package inventory

import (
	"cmp"
	"slices"
	"strings"

	"inventory_manager/domain"
)

// Products returns a copy of all products in insertion order.
func (inv *Inventory) Products() []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return cloneProducts(inv.products)
}

// Categories returns a copy of all categories in insertion order.
func (inv *Inventory) Categories() []domain.Category {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return append([]domain.Category{}, inv.categories...)
}

// StockEntries returns a copy of the intake ledger in insertion order.
func (inv *Inventory) StockEntries() []domain.StockEntry {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return append([]domain.StockEntry{}, inv.stockEntries...)
}

// Sales returns a copy of the sales ledger in insertion order.
func (inv *Inventory) Sales() []domain.Sale {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return append([]domain.Sale{}, inv.sales...)
}

// Product looks up a product by id.
func (inv *Inventory) Product(id string) (domain.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	idx := inv.productIndex(id)
	if idx < 0 {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return cloneProduct(inv.products[idx]), nil
}

// Category looks up a category by id.
func (inv *Inventory) Category(id string) (domain.Category, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	idx := inv.categoryIndex(id)
	if idx < 0 {
		return domain.Category{}, domain.NewCategoryNotFoundError(id)
	}
	return inv.categories[idx], nil
}

// ListProducts filters products by search term, category and stock, then sorts.
func (inv *Inventory) ListProducts(filter domain.ListFilter) []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.InStock && p.Stock <= 0 {
			continue
		}
		if term != "" && !containsFold(p.Name, term) && !containsFold(p.Category, term) {
			continue
		}
		out = append(out, cloneProduct(p))
	}

	var compare func(a, b domain.Product) int
	switch filter.SortBy {
	case "name":
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Name, b.Name) }
	case "price":
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case "stock":
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Stock, b.Stock) }
	case "created":
		compare = func(a, b domain.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	if compare != nil {
		if filter.Order == "desc" {
			slices.SortStableFunc(out, func(a, b domain.Product) int { return compare(b, a) })
		} else {
			slices.SortStableFunc(out, compare)
		}
	}
	return out
}

// AvailableProducts returns products that can be sold right now (stock > 0).
func (inv *Inventory) AvailableProducts() []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		if p.Stock > 0 {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// ListStockEntries returns intake records, optionally for one product id.
func (inv *Inventory) ListStockEntries(productID string) []domain.StockEntry {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]domain.StockEntry, 0, len(inv.stockEntries))
	for _, e := range inv.stockEntries {
		if productID == "" || e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

// ListSales matches the search term against the product name snapshot and the
// current category of the sold product. Sales of deleted products have no category.
func (inv *Inventory) ListSales(filter domain.SaleFilter) []domain.Sale {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	categoryOf := make(map[string]string, len(inv.products))
	for _, p := range inv.products {
		categoryOf[p.ID] = p.Category
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Sale, 0, len(inv.sales))
	for _, s := range inv.sales {
		category, known := categoryOf[s.ProductID]
		if filter.Category != "" && (!known || category != filter.Category) {
			continue
		}
		if term != "" && !containsFold(s.ProductName, term) && !(known && containsFold(category, term)) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// RecentSales returns up to n sales, newest first.
func (inv *Inventory) RecentSales(n int) []domain.Sale {
	out := inv.Sales()
	slices.SortStableFunc(out, func(a, b domain.Sale) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}
