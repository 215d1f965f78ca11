package store

import (
	"bytes"
	"context"
	"encoding/json"

	"inventory_manager/domain"
)

// Collections encodes the four inventory collections onto a BlobStore as JSON arrays.
type Collections struct {
	blobs BlobStore
}

// NewCollections wraps a BlobStore.
func NewCollections(blobs BlobStore) *Collections {
	return &Collections{blobs: blobs}
}

// Close closes the underlying BlobStore.
func (c *Collections) Close() error {
	return c.blobs.Close()
}

func (c *Collections) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return load[domain.Product](ctx, c.blobs, KeyProducts)
}

func (c *Collections) SaveProducts(ctx context.Context, products []domain.Product) error {
	return save(ctx, c.blobs, KeyProducts, products)
}

func (c *Collections) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	return load[domain.Category](ctx, c.blobs, KeyCategories)
}

func (c *Collections) SaveCategories(ctx context.Context, categories []domain.Category) error {
	return save(ctx, c.blobs, KeyCategories, categories)
}

func (c *Collections) LoadStockEntries(ctx context.Context) ([]domain.StockEntry, error) {
	return load[domain.StockEntry](ctx, c.blobs, KeyStockEntries)
}

func (c *Collections) SaveStockEntries(ctx context.Context, entries []domain.StockEntry) error {
	return save(ctx, c.blobs, KeyStockEntries, entries)
}

func (c *Collections) LoadSales(ctx context.Context) ([]domain.Sale, error) {
	return load[domain.Sale](ctx, c.blobs, KeySales)
}

func (c *Collections) SaveSales(ctx context.Context, sales []domain.Sale) error {
	return save(ctx, c.blobs, KeySales, sales)
}

// load never returns a nil slice so empty collections encode as [] again.
func load[T any](ctx context.Context, blobs BlobStore, key string) ([]T, error) {
	b, err := blobs.Load(ctx, key)
	if err != nil {
		return nil, domain.NewStorageError("load", key, err)
	}
	out := make([]T, 0)
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, domain.NewStorageError("decode", key, err)
	}
	return out, nil
}

func save[T any](ctx context.Context, blobs BlobStore, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return domain.NewStorageError("encode", key, err)
	}
	if err := blobs.Save(ctx, key, b); err != nil {
		return domain.NewStorageError("save", key, err)
	}
	return nil
}
