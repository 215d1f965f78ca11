package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"inventory_manager/domain"
	"inventory_manager/store"
)

type fixture struct {
	inv   *Inventory
	blobs *store.InMemoryStore
	repo  *store.Collections
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func steppingClock() func() time.Time {
	t0 := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Minute)
	}
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	blobs := store.NewInMemoryStore()
	repo := store.NewCollections(blobs)
	inv, err := New(context.Background(), repo, WithIDGenerator(sequentialIDs()), WithClock(steppingClock()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return fixture{inv: inv, blobs: blobs, repo: repo}
}

func mustCreateProduct(t *testing.T, inv *Inventory, name string, price float64) domain.Product {
	t.Helper()
	p, err := inv.CreateProduct(context.Background(), domain.NewProduct{Name: name, Category: "General", Unit: "piece", Price: price})
	if err != nil {
		t.Fatalf("CreateProduct(%s) failed: %v", name, err)
	}
	return p
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.inv.CreateProduct(ctx, domain.NewProduct{Name: "Rice", Category: "Food", Unit: "kg", Price: 10})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID == "" || p.Stock != 0 || p.PurchasePrice != nil || p.CreatedAt.IsZero() {
		t.Fatalf("unexpected new product: %+v", p)
	}

	// duplicates are permitted and get distinct identities
	dup, err := f.inv.CreateProduct(ctx, domain.NewProduct{Name: "Rice", Category: "Food", Unit: "kg", Price: 11})
	if err != nil {
		t.Fatalf("duplicate name should be allowed: %v", err)
	}
	if dup.ID == p.ID {
		t.Fatal("expected fresh identity for duplicate name")
	}

	// write-through
	stored, err := f.repo.LoadProducts(ctx)
	if err != nil || len(stored) != 2 {
		t.Fatalf("expected 2 persisted products, got %d, %v", len(stored), err)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name  string
		in    domain.NewProduct
		field string
	}{
		{"empty name", domain.NewProduct{Name: " ", Price: 1}, "name"},
		{"negative price", domain.NewProduct{Name: "X", Price: -1}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.inv.CreateProduct(context.Background(), tc.in)
			var ife *domain.InvalidFieldError
			if !errors.As(err, &ife) || ife.Field != tc.field {
				t.Fatalf("expected invalid %s, got %v", tc.field, err)
			}
		})
	}
	if n := len(f.inv.Products()); n != 0 {
		t.Fatalf("invalid creates must not mutate, got %d products", n)
	}
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Tea", 3)
	if _, err := f.inv.AddStock(ctx, p.ID, 4, 1.5); err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	name, price := "Green Tea", 3.25
	got, err := f.inv.UpdateProduct(ctx, p.ID, domain.ProductUpdate{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Name != name || got.Price != price || got.Category != "General" {
		t.Fatalf("unexpected updated product: %+v", got)
	}
	if got.Stock != 4 || got.CostBasis() != 1.5 {
		t.Fatalf("update must not touch stock or cost: %+v", got)
	}

	stored, _ := f.repo.LoadProducts(ctx)
	if stored[0].Name != name {
		t.Fatalf("update not persisted: %+v", stored[0])
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.inv.UpdateProduct(ctx, "missing", domain.ProductUpdate{Name: &name})
		if !domain.IsProductNotFoundError(err) {
			t.Fatalf("expected ProductNotFoundError, got %v", err)
		}
	})

	t.Run("invalid merge", func(t *testing.T) {
		blank := ""
		_, err := f.inv.UpdateProduct(ctx, p.ID, domain.ProductUpdate{Name: &blank})
		if !domain.IsInvalidFieldError(err) {
			t.Fatalf("expected InvalidFieldError, got %v", err)
		}
		cur, _ := f.inv.Product(p.ID)
		if cur.Name != name {
			t.Fatalf("invalid update mutated product: %+v", cur)
		}
	})
}

func TestDeleteProduct_KeepsOrphanLedgerRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Soap", 2)
	if _, err := f.inv.AddStock(ctx, p.ID, 3, 1); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if _, err := f.inv.RecordSale(ctx, p.ID, 1, 2); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if err := f.inv.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.inv.Product(p.ID); !domain.IsProductNotFoundError(err) {
		t.Fatalf("deleted product still readable: %v", err)
	}
	if len(f.inv.Products()) != 0 {
		t.Fatal("deleted product still listed")
	}
	if len(f.inv.StockEntries()) != 1 || f.inv.StockEntries()[0].ProductID != p.ID {
		t.Fatal("stock entry referencing deleted product must remain")
	}
	if len(f.inv.Sales()) != 1 || f.inv.Sales()[0].ProductID != p.ID {
		t.Fatal("sale referencing deleted product must remain")
	}

	if err := f.inv.DeleteProduct(ctx, p.ID); !domain.IsProductNotFoundError(err) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.inv.CreateCategory(ctx, domain.NewCategory{Name: "Food", Description: "edible"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := f.inv.CreateProduct(ctx, domain.NewProduct{Name: "Rice", Category: "Food", Price: 1}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	renamed := "Groceries"
	got, err := f.inv.UpdateCategory(ctx, c.ID, domain.CategoryUpdate{Name: &renamed})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if got.Name != renamed || got.Description != "edible" {
		t.Fatalf("unexpected category: %+v", got)
	}
	// category text on products is not cascaded
	if f.inv.Products()[0].Category != "Food" {
		t.Fatal("renaming a category must not rewrite product category text")
	}

	if err := f.inv.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if len(f.inv.Categories()) != 0 || len(f.inv.Products()) != 1 {
		t.Fatal("delete category must not cascade to products")
	}
	stored, _ := f.repo.LoadCategories(ctx)
	if len(stored) != 0 {
		t.Fatalf("category delete not persisted: %+v", stored)
	}

	if _, err := f.inv.UpdateCategory(ctx, c.ID, domain.CategoryUpdate{Name: &renamed}); !domain.IsCategoryNotFoundError(err) {
		t.Fatalf("expected CategoryNotFoundError, got %v", err)
	}
	if err := f.inv.DeleteCategory(ctx, "missing"); !domain.IsCategoryNotFoundError(err) {
		t.Fatalf("expected CategoryNotFoundError, got %v", err)
	}
	if _, err := f.inv.CreateCategory(ctx, domain.NewCategory{}); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
}

func TestScenario_IntakeIntakeSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "P", 10)

	entry, err := f.inv.AddStock(ctx, p.ID, 10, 4.00)
	if err != nil {
		t.Fatalf("first intake: %v", err)
	}
	if entry.TotalCost != 40 {
		t.Fatalf("expected totalCost 40, got %v", entry.TotalCost)
	}
	got, _ := f.inv.Product(p.ID)
	if got.Stock != 10 || got.CostBasis() != 4.00 {
		t.Fatalf("after first intake: stock=%d cost=%v", got.Stock, got.CostBasis())
	}

	if _, err := f.inv.AddStock(ctx, p.ID, 10, 6.00); err != nil {
		t.Fatalf("second intake: %v", err)
	}
	got, _ = f.inv.Product(p.ID)
	if got.Stock != 20 || got.CostBasis() != 5.00 {
		t.Fatalf("after second intake: stock=%d cost=%v", got.Stock, got.CostBasis())
	}

	sale, err := f.inv.RecordSale(ctx, p.ID, 5, 12.00)
	if err != nil {
		t.Fatalf("sale: %v", err)
	}
	got, _ = f.inv.Product(p.ID)
	if got.Stock != 15 {
		t.Fatalf("expected stock 15, got %d", got.Stock)
	}
	if sale.TotalRevenue != 60.00 || sale.Profit != 35.00 {
		t.Fatalf("expected revenue 60 profit 35, got %v / %v", sale.TotalRevenue, sale.Profit)
	}
	if sale.PurchasePrice != 5.00 || sale.ProductName != "P" || sale.SellingPrice != 12 {
		t.Fatalf("unexpected sale snapshot: %+v", sale)
	}

	// write-through of both collections
	storedProducts, _ := f.repo.LoadProducts(ctx)
	storedSales, _ := f.repo.LoadSales(ctx)
	storedEntries, _ := f.repo.LoadStockEntries(ctx)
	if storedProducts[0].Stock != 15 || len(storedSales) != 1 || len(storedEntries) != 2 {
		t.Fatalf("store out of sync: products=%+v sales=%d entries=%d", storedProducts, len(storedSales), len(storedEntries))
	}
}

func TestScenario_SaleFromEmptyStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Empty", 10)
	before := f.inv.Products()

	_, err := f.inv.RecordSale(ctx, p.ID, 1, 10)
	var ise *domain.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.Requested != 1 || ise.Available != 0 {
		t.Fatalf("unexpected error detail: %+v", ise)
	}
	if !reflect.DeepEqual(before, f.inv.Products()) || len(f.inv.Sales()) != 0 {
		t.Fatal("failed sale must not mutate state")
	}
	stored, _ := f.repo.LoadSales(ctx)
	if len(stored) != 0 {
		t.Fatal("failed sale must not be persisted")
	}
}

func TestRecordSale_NeverDrivesStockNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Nails", 1)
	if _, err := f.inv.AddStock(ctx, p.ID, 3, 0.5); err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	for _, qty := range []int{4, 10} {
		if _, err := f.inv.RecordSale(ctx, p.ID, qty, 1); !domain.IsInsufficientStockError(err) {
			t.Fatalf("qty %d: expected InsufficientStockError, got %v", qty, err)
		}
	}
	got, _ := f.inv.Product(p.ID)
	if got.Stock != 3 {
		t.Fatalf("stock changed after rejected sales: %d", got.Stock)
	}

	// selling exactly the stock is allowed
	if _, err := f.inv.RecordSale(ctx, p.ID, 3, 1); err != nil {
		t.Fatalf("selling all stock failed: %v", err)
	}
	got, _ = f.inv.Product(p.ID)
	if got.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", got.Stock)
	}
}

func TestRecordSale_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Pen", 1)

	if _, err := f.inv.RecordSale(ctx, "missing", 1, 1); !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if _, err := f.inv.RecordSale(ctx, p.ID, 0, 1); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError for zero quantity, got %v", err)
	}
	if _, err := f.inv.RecordSale(ctx, p.ID, 1, -1); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError for negative price, got %v", err)
	}
}

func TestRecordSale_WithoutIntakeUsesZeroCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// stock only arrives through AddStock, so seed the store directly
	_ = f.repo.SaveProducts(ctx, []domain.Product{{ID: "legacy", Name: "Legacy", Stock: 2, Price: 3}})
	inv, err := New(ctx, f.repo)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	sale, err := inv.RecordSale(ctx, "legacy", 2, 3)
	if err != nil {
		t.Fatalf("sale: %v", err)
	}
	if sale.PurchasePrice != 0 || sale.Profit != 6 {
		t.Fatalf("expected zero cost basis, got %+v", sale)
	}
}

func TestAddStock_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Flour", 2)

	if _, err := f.inv.AddStock(ctx, "missing", 5, 1); !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if _, err := f.inv.AddStock(ctx, p.ID, -1, 1); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
	if _, err := f.inv.AddStock(ctx, p.ID, 1, -0.5); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
	if _, err := f.inv.AddStock(ctx, p.ID, 1, math.NaN()); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError for NaN price, got %v", err)
	}
	if _, err := f.inv.AddStock(ctx, p.ID, 1, math.Inf(1)); !domain.IsInvalidFieldError(err) {
		t.Fatalf("expected InvalidFieldError for infinite price, got %v", err)
	}
	if len(f.inv.StockEntries()) != 0 {
		t.Fatal("rejected intakes must not be recorded")
	}
}

func TestAddStock_RejectsStockOverflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Bolts", 1)

	if _, err := f.inv.AddStock(ctx, p.ID, math.MaxInt, 1); err != nil {
		t.Fatalf("AddStock up to the limit: %v", err)
	}
	_, err := f.inv.AddStock(ctx, p.ID, 1, 1)
	var ife *domain.InvalidFieldError
	if !errors.As(err, &ife) || ife.Field != "quantity" {
		t.Fatalf("expected invalid quantity, got %v", err)
	}

	got, _ := f.inv.Product(p.ID)
	if got.Stock != math.MaxInt {
		t.Fatalf("stock changed after rejected intake: %d", got.Stock)
	}
	if n := len(f.inv.StockEntries()); n != 1 {
		t.Fatalf("expected 1 stock entry, got %d", n)
	}
	if s := f.inv.Summary(); s.TotalStock != math.MaxInt {
		t.Fatalf("unexpected total stock %d", s.TotalStock)
	}
}

func TestAddStock_WeightedAverageProperty(t *testing.T) {
	intakes := []struct {
		qty   int
		price float64
	}{
		{3, 2.10}, {7, 3.35}, {1, 9.99}, {12, 0.75}, {5, 4.00}, {2, 0},
	}

	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Mixed", 5)

	totalQty := 0
	totalValue := 0.0
	for _, in := range intakes {
		if _, err := f.inv.AddStock(ctx, p.ID, in.qty, in.price); err != nil {
			t.Fatalf("AddStock: %v", err)
		}
		totalQty += in.qty
		totalValue += float64(in.qty) * in.price
	}

	got, _ := f.inv.Product(p.ID)
	if got.Stock != totalQty {
		t.Fatalf("expected stock %d, got %d", totalQty, got.Stock)
	}
	if want := totalValue / float64(totalQty); !approxEqual(got.CostBasis(), want) {
		t.Fatalf("expected weighted average %v, got %v", want, got.CostBasis())
	}
	for _, e := range f.inv.StockEntries() {
		if e.TotalCost != float64(e.Quantity)*e.PurchasePrice {
			t.Fatalf("entry total cost mismatch: %+v", e)
		}
	}
}

func TestSaleArithmeticIsExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Odd", 1)
	if _, err := f.inv.AddStock(ctx, p.ID, 7, 0.1); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if _, err := f.inv.AddStock(ctx, p.ID, 3, 0.7); err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	for _, sp := range []float64{0.3, 1.1, 0.07} {
		s, err := f.inv.RecordSale(ctx, p.ID, 3, sp)
		if err != nil {
			t.Fatalf("RecordSale: %v", err)
		}
		if s.TotalRevenue != float64(s.Quantity)*s.SellingPrice {
			t.Errorf("revenue %v != %d * %v", s.TotalRevenue, s.Quantity, s.SellingPrice)
		}
		if s.Profit != float64(s.Quantity)*(s.SellingPrice-s.PurchasePrice) {
			t.Errorf("profit %v != %d * (%v - %v)", s.Profit, s.Quantity, s.SellingPrice, s.PurchasePrice)
		}
	}
}

func TestNew_ReloadsPersistedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Beans", 4)
	if _, err := f.inv.CreateCategory(ctx, domain.NewCategory{Name: "General"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := f.inv.AddStock(ctx, p.ID, 8, 2); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if _, err := f.inv.RecordSale(ctx, p.ID, 2, 4); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	reloaded, err := New(ctx, store.NewCollections(f.blobs))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Products(), f.inv.Products()) ||
		!reflect.DeepEqual(reloaded.Categories(), f.inv.Categories()) ||
		!reflect.DeepEqual(reloaded.StockEntries(), f.inv.StockEntries()) ||
		!reflect.DeepEqual(reloaded.Sales(), f.inv.Sales()) {
		t.Fatal("reloaded state differs from written state")
	}
}

func TestNew_EmptyStore(t *testing.T) {
	inv, err := New(context.Background(), store.NewCollections(store.NewInMemoryStore()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(inv.Products())+len(inv.Categories())+len(inv.StockEntries())+len(inv.Sales()) != 0 {
		t.Fatal("expected empty collections")
	}
}

func TestNew_CorruptStore(t *testing.T) {
	blobs := store.NewInMemoryStore()
	_ = blobs.Save(context.Background(), store.KeySales, []byte("{"))
	if _, err := New(context.Background(), store.NewCollections(blobs)); !domain.IsStorageError(err) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreateProduct(t, f.inv, "Copy", 1)
	if _, err := f.inv.AddStock(ctx, p.ID, 1, 2); err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	products := f.inv.Products()
	products[0].Stock = 999
	*products[0].PurchasePrice = 999

	got, _ := f.inv.Product(p.ID)
	if got.Stock != 1 || got.CostBasis() != 2 {
		t.Fatalf("internal state leaked through accessor: %+v", got)
	}
}
