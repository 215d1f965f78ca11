// Package inventory is the authoritative in-memory state of products, categories,
// stock intake and sales. Every mutation is written through to the persistent
// store before it becomes visible.
package inventory

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"inventory_manager/domain"
	"inventory_manager/util"
)

// Repository persists whole collections. *store.Collections implements it.
type Repository interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
	SaveProducts(ctx context.Context, products []domain.Product) error
	LoadCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategories(ctx context.Context, categories []domain.Category) error
	LoadStockEntries(ctx context.Context) ([]domain.StockEntry, error)
	SaveStockEntries(ctx context.Context, entries []domain.StockEntry) error
	LoadSales(ctx context.Context) ([]domain.Sale, error)
	SaveSales(ctx context.Context, sales []domain.Sale) error
}

// Inventory owns the four collections. Collections are replaced, never
// mutated in place, so a failed write leaves the previous state intact.
type Inventory struct {
	mu     sync.RWMutex
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  util.IDGenerator

	products     []domain.Product
	categories   []domain.Category
	stockEntries []domain.StockEntry
	sales        []domain.Sale
}

// Option customizes an Inventory.
type Option func(*Inventory)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(inv *Inventory) {
		if l != nil {
			inv.logger = l
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(inv *Inventory) { inv.now = now }
}

// WithIDGenerator overrides identity generation.
func WithIDGenerator(gen util.IDGenerator) Option {
	return func(inv *Inventory) { inv.newID = gen }
}

// New loads all four collections from repo.
func New(ctx context.Context, repo Repository, opts ...Option) (*Inventory, error) {
	inv := &Inventory{
		repo:   repo,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  util.NewID,
	}
	for _, opt := range opts {
		opt(inv)
	}

	var err error
	if inv.products, err = repo.LoadProducts(ctx); err != nil {
		return nil, err
	}
	if inv.categories, err = repo.LoadCategories(ctx); err != nil {
		return nil, err
	}
	if inv.stockEntries, err = repo.LoadStockEntries(ctx); err != nil {
		return nil, err
	}
	if inv.sales, err = repo.LoadSales(ctx); err != nil {
		return nil, err
	}

	inv.logger.Info("inventory loaded",
		zap.Int("products", len(inv.products)),
		zap.Int("categories", len(inv.categories)),
		zap.Int("stock_entries", len(inv.stockEntries)),
		zap.Int("sales", len(inv.sales)))
	return inv, nil
}

// ---- Products ----

// CreateProduct appends a product with zero stock and no purchase price.
// Duplicate names are allowed.
func (inv *Inventory) CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error) {
	start := time.Now()
	p := domain.Product{
		ID:        inv.newID(),
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		Price:     in.Price,
		Stock:     0,
		CreatedAt: inv.now(),
	}
	if err := domain.ValidateProduct(p); err != nil {
		return domain.Product{}, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	next := append(slices.Clone(inv.products), p)
	if err := inv.repo.SaveProducts(ctx, next); err != nil {
		inv.logger.Error("create product failed", zap.String("product_id", p.ID), zap.Error(err))
		return domain.Product{}, err
	}
	inv.products = next

	inv.logger.Info("product created", zap.String("product_id", p.ID), zap.Duration("duration", time.Since(start)))
	return cloneProduct(p), nil
}

// UpdateProduct merges u into the product with the given id.
func (inv *Inventory) UpdateProduct(ctx context.Context, id string, u domain.ProductUpdate) (domain.Product, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	idx := inv.productIndex(id)
	if idx < 0 {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	updated := u.Apply(inv.products[idx])
	if err := domain.ValidateProduct(updated); err != nil {
		return domain.Product{}, err
	}

	next := slices.Clone(inv.products)
	next[idx] = updated
	if err := inv.repo.SaveProducts(ctx, next); err != nil {
		inv.logger.Error("update product failed", zap.String("product_id", id), zap.Error(err))
		return domain.Product{}, err
	}
	inv.products = next

	inv.logger.Info("product updated", zap.String("product_id", id))
	return cloneProduct(updated), nil
}

// DeleteProduct removes the product. Stock entries and sales referencing it are kept.
func (inv *Inventory) DeleteProduct(ctx context.Context, id string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	idx := inv.productIndex(id)
	if idx < 0 {
		return domain.NewProductNotFoundError(id)
	}

	next := slices.Delete(slices.Clone(inv.products), idx, idx+1)
	if err := inv.repo.SaveProducts(ctx, next); err != nil {
		inv.logger.Error("delete product failed", zap.String("product_id", id), zap.Error(err))
		return err
	}
	inv.products = next

	inv.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// ---- Categories ----

// CreateCategory appends a category.
func (inv *Inventory) CreateCategory(ctx context.Context, in domain.NewCategory) (domain.Category, error) {
	c := domain.Category{
		ID:          inv.newID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   inv.now(),
	}
	if err := domain.ValidateCategory(c); err != nil {
		return domain.Category{}, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	next := append(slices.Clone(inv.categories), c)
	if err := inv.repo.SaveCategories(ctx, next); err != nil {
		inv.logger.Error("create category failed", zap.String("category_id", c.ID), zap.Error(err))
		return domain.Category{}, err
	}
	inv.categories = next

	inv.logger.Info("category created", zap.String("category_id", c.ID))
	return c, nil
}

// UpdateCategory merges u into the category. Products keep their category text.
func (inv *Inventory) UpdateCategory(ctx context.Context, id string, u domain.CategoryUpdate) (domain.Category, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	idx := inv.categoryIndex(id)
	if idx < 0 {
		return domain.Category{}, domain.NewCategoryNotFoundError(id)
	}
	updated := u.Apply(inv.categories[idx])
	if err := domain.ValidateCategory(updated); err != nil {
		return domain.Category{}, err
	}

	next := slices.Clone(inv.categories)
	next[idx] = updated
	if err := inv.repo.SaveCategories(ctx, next); err != nil {
		inv.logger.Error("update category failed", zap.String("category_id", id), zap.Error(err))
		return domain.Category{}, err
	}
	inv.categories = next

	inv.logger.Info("category updated", zap.String("category_id", id))
	return updated, nil
}

// DeleteCategory removes the category without touching products that name it.
func (inv *Inventory) DeleteCategory(ctx context.Context, id string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	idx := inv.categoryIndex(id)
	if idx < 0 {
		return domain.NewCategoryNotFoundError(id)
	}

	next := slices.Delete(slices.Clone(inv.categories), idx, idx+1)
	if err := inv.repo.SaveCategories(ctx, next); err != nil {
		inv.logger.Error("delete category failed", zap.String("category_id", id), zap.Error(err))
		return err
	}
	inv.categories = next

	inv.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

// ---- Stock intake and sales ----

// AddStock records an intake and folds it into the product's stock and
// weighted-average purchase price.
func (inv *Inventory) AddStock(ctx context.Context, productID string, quantity int, purchasePrice float64) (domain.StockEntry, error) {
	if err := domain.ValidateQuantity("stock entry", quantity); err != nil {
		return domain.StockEntry{}, err
	}
	if err := domain.ValidatePrice("stock entry", "purchasePrice", purchasePrice); err != nil {
		return domain.StockEntry{}, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	idx := inv.productIndex(productID)
	if idx < 0 {
		inv.logger.Warn("stock intake for unknown product", zap.String("product_id", productID))
		return domain.StockEntry{}, domain.NewProductNotFoundError(productID)
	}
	if quantity > math.MaxInt-inv.products[idx].Stock {
		return domain.StockEntry{}, domain.NewInvalidFieldError("stock entry", "quantity", "would overflow stock", quantity)
	}

	entry := domain.StockEntry{
		ID:            inv.newID(),
		ProductID:     productID,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		TotalCost:     TotalCost(quantity, purchasePrice),
		CreatedAt:     inv.now(),
	}

	nextProducts := slices.Clone(inv.products)
	nextProducts[idx] = ApplyIntake(nextProducts[idx], quantity, purchasePrice)
	nextEntries := append(slices.Clone(inv.stockEntries), entry)

	err := inv.persistWithLedger(ctx,
		func(ctx context.Context) error { return inv.repo.SaveStockEntries(ctx, nextEntries) },
		func(ctx context.Context) error { return inv.repo.SaveStockEntries(ctx, inv.stockEntries) },
		func(ctx context.Context) error { return inv.repo.SaveProducts(ctx, nextProducts) },
	)
	if err != nil {
		inv.logger.Error("add stock failed", zap.String("product_id", productID), zap.Error(err))
		return domain.StockEntry{}, err
	}
	inv.products = nextProducts
	inv.stockEntries = nextEntries

	p := nextProducts[idx]
	inv.logger.Info("stock added",
		zap.String("product_id", productID),
		zap.String("entry_id", entry.ID),
		zap.Int("quantity", quantity),
		zap.Int("stock", p.Stock),
		zap.Float64("purchase_price", p.CostBasis()))
	return entry, nil
}

// RecordSale sells quantity units at sellingPrice, using the product's current
// weighted-average purchase price as the cost basis.
func (inv *Inventory) RecordSale(ctx context.Context, productID string, quantity int, sellingPrice float64) (domain.Sale, error) {
	if err := domain.ValidateQuantity("sale", quantity); err != nil {
		return domain.Sale{}, err
	}
	if err := domain.ValidatePrice("sale", "sellingPrice", sellingPrice); err != nil {
		return domain.Sale{}, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	idx := inv.productIndex(productID)
	if idx < 0 {
		inv.logger.Warn("sale for unknown product", zap.String("product_id", productID))
		return domain.Sale{}, domain.NewProductNotFoundError(productID)
	}
	product := inv.products[idx]
	if product.Stock < quantity {
		inv.logger.Warn("sale rejected",
			zap.String("product_id", productID),
			zap.Int("requested", quantity),
			zap.Int("available", product.Stock))
		return domain.Sale{}, domain.NewInsufficientStockError(productID, quantity, product.Stock)
	}

	cost := product.CostBasis()
	sale := domain.Sale{
		ID:            inv.newID(),
		ProductID:     productID,
		ProductName:   product.Name,
		Quantity:      quantity,
		SellingPrice:  sellingPrice,
		PurchasePrice: cost,
		TotalRevenue:  Revenue(quantity, sellingPrice),
		Profit:        Profit(quantity, sellingPrice, cost),
		CreatedAt:     inv.now(),
	}

	nextProducts := slices.Clone(inv.products)
	nextProducts[idx].Stock -= quantity
	nextSales := append(slices.Clone(inv.sales), sale)

	err := inv.persistWithLedger(ctx,
		func(ctx context.Context) error { return inv.repo.SaveSales(ctx, nextSales) },
		func(ctx context.Context) error { return inv.repo.SaveSales(ctx, inv.sales) },
		func(ctx context.Context) error { return inv.repo.SaveProducts(ctx, nextProducts) },
	)
	if err != nil {
		inv.logger.Error("record sale failed", zap.String("product_id", productID), zap.Error(err))
		return domain.Sale{}, err
	}
	inv.products = nextProducts
	inv.sales = nextSales

	inv.logger.Info("sale recorded",
		zap.String("product_id", productID),
		zap.String("sale_id", sale.ID),
		zap.Int("quantity", quantity),
		zap.Float64("revenue", sale.TotalRevenue),
		zap.Float64("profit", sale.Profit))
	return sale, nil
}

// persistWithLedger writes the ledger collection first, then products. If the
// products write fails the ledger is put back to its previous contents.
func (inv *Inventory) persistWithLedger(ctx context.Context, saveLedger, restoreLedger, saveProducts func(context.Context) error) error {
	if err := saveLedger(ctx); err != nil {
		return err
	}
	if err := saveProducts(ctx); err != nil {
		if rerr := restoreLedger(context.WithoutCancel(ctx)); rerr != nil {
			inv.logger.Error("ledger restore failed; store holds an orphan ledger record", zap.Error(rerr))
		}
		return err
	}
	return nil
}

func (inv *Inventory) productIndex(id string) int {
	return slices.IndexFunc(inv.products, func(p domain.Product) bool { return p.ID == id })
}

func (inv *Inventory) categoryIndex(id string) int {
	return slices.IndexFunc(inv.categories, func(c domain.Category) bool { return c.ID == id })
}

func cloneProduct(p domain.Product) domain.Product {
	if p.PurchasePrice != nil {
		v := *p.PurchasePrice
		p.PurchasePrice = &v
	}
	return p
}
