package domain

// ListFilter allows filtering and sorting product listings
type ListFilter struct {
	Search   string // case-insensitive match on name or category
	Category string
	SortBy   string // "name", "price", "stock", "created"
	Order    string // "asc" or "desc"
	InStock  bool   // only products with stock > 0
}

// SaleFilter narrows sale listings. Category resolves through the sold product.
type SaleFilter struct {
	Search   string
	Category string
}
