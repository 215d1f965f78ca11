// Package store provides the persistent key-value backends for the inventory system.
package store

import "context"

// Logical collection keys. Every backend stores one blob per key.
const (
	KeyProducts     = "products"
	KeyCategories   = "categories"
	KeyStockEntries = "stock-entries"
	KeySales        = "sales"
)

// Keys lists the four collection keys in load order.
var Keys = []string{KeyProducts, KeyCategories, KeyStockEntries, KeySales}

// BlobStore is a format-oblivious durable blob keeper.
// Load returns nil, nil when nothing is stored under key.
// Save replaces whatever is stored under key.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
