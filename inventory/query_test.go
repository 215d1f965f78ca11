package inventory

import (
	"context"
	"testing"

	"inventory_manager/domain"
)

func seedCatalog(t *testing.T) *Inventory {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	items := []struct {
		name, category string
		price          float64
		stock          int
	}{
		{"Banana", "Fruit", 2, 12},
		{"Apple", "Fruit", 3, 0},
		{"Cheddar", "Dairy", 9, 4},
		{"Milk", "Dairy", 1.5, 20},
	}
	for _, it := range items {
		p, err := f.inv.CreateProduct(ctx, domain.NewProduct{Name: it.name, Category: it.category, Unit: "piece", Price: it.price})
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		if it.stock > 0 {
			if _, err := f.inv.AddStock(ctx, p.ID, it.stock, it.price/2); err != nil {
				t.Fatalf("AddStock: %v", err)
			}
		}
	}
	return f.inv
}

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListProducts(t *testing.T) {
	inv := seedCatalog(t)
	tests := []struct {
		name   string
		filter domain.ListFilter
		want   []string
	}{
		{"no filter keeps insertion order", domain.ListFilter{}, []string{"Banana", "Apple", "Cheddar", "Milk"}},
		{"category", domain.ListFilter{Category: "Dairy"}, []string{"Cheddar", "Milk"}},
		{"search is case insensitive", domain.ListFilter{Search: "AN"}, []string{"Banana"}},
		{"search matches category", domain.ListFilter{Search: "dair"}, []string{"Cheddar", "Milk"}},
		{"sort by name", domain.ListFilter{SortBy: "name"}, []string{"Apple", "Banana", "Cheddar", "Milk"}},
		{"sort by price desc", domain.ListFilter{SortBy: "price", Order: "desc"}, []string{"Cheddar", "Apple", "Banana", "Milk"}},
		{"sort by stock", domain.ListFilter{SortBy: "stock"}, []string{"Apple", "Cheddar", "Banana", "Milk"}},
		{"sort by created desc", domain.ListFilter{SortBy: "created", Order: "desc"}, []string{"Milk", "Cheddar", "Apple", "Banana"}},
		{"unknown sort key ignored", domain.ListFilter{SortBy: "colour"}, []string{"Banana", "Apple", "Cheddar", "Milk"}},
		{"in stock only", domain.ListFilter{InStock: true, SortBy: "name"}, []string{"Banana", "Cheddar", "Milk"}},
		{"no match", domain.ListFilter{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := names(inv.ListProducts(tt.filter)); !equalStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableProducts(t *testing.T) {
	inv := seedCatalog(t)
	got := names(inv.AvailableProducts())
	if want := []string{"Banana", "Cheddar", "Milk"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestListStockEntries(t *testing.T) {
	inv := seedCatalog(t)
	all := inv.ListStockEntries("")
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	banana := inv.ListProducts(domain.ListFilter{Search: "banana"})[0]
	only := inv.ListStockEntries(banana.ID)
	if len(only) != 1 || only[0].Quantity != 12 {
		t.Fatalf("unexpected entries for banana: %+v", only)
	}
	if len(inv.ListStockEntries("missing")) != 0 {
		t.Fatal("expected no entries for unknown product")
	}
}

func TestListSalesAndRecentSales(t *testing.T) {
	inv := seedCatalog(t)
	ctx := context.Background()
	byName := map[string]domain.Product{}
	for _, p := range inv.Products() {
		byName[p.Name] = p
	}

	for _, s := range []struct {
		name string
		qty  int
	}{{"Banana", 1}, {"Milk", 2}, {"Cheddar", 1}, {"Banana", 3}} {
		if _, err := inv.RecordSale(ctx, byName[s.name].ID, s.qty, 5); err != nil {
			t.Fatalf("RecordSale(%s): %v", s.name, err)
		}
	}
	// sales of deleted products keep their name snapshot but lose the category
	if err := inv.DeleteProduct(ctx, byName["Cheddar"].ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if got := inv.ListSales(domain.SaleFilter{}); len(got) != 4 {
		t.Fatalf("expected 4 sales, got %d", len(got))
	}
	if got := inv.ListSales(domain.SaleFilter{Category: "Fruit"}); len(got) != 2 {
		t.Fatalf("expected 2 fruit sales, got %d", len(got))
	}
	if got := inv.ListSales(domain.SaleFilter{Category: "Dairy"}); len(got) != 1 || got[0].ProductName != "Milk" {
		t.Fatalf("expected only the milk sale, got %+v", got)
	}
	if got := inv.ListSales(domain.SaleFilter{Search: "chedd"}); len(got) != 1 {
		t.Fatalf("expected name snapshot search to match, got %d", len(got))
	}

	recent := inv.RecentSales(2)
	if len(recent) != 2 || recent[0].Quantity != 3 || recent[1].ProductName != "Cheddar" {
		t.Fatalf("unexpected recent sales: %+v", recent)
	}
	if len(inv.RecentSales(10)) != 4 {
		t.Fatal("RecentSales should cap at the number of sales")
	}
	if len(inv.RecentSales(0)) != 0 {
		t.Fatal("RecentSales(0) should be empty")
	}
}

func TestLookupByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.inv.CreateCategory(ctx, domain.NewCategory{Name: "Tools"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	got, err := f.inv.Category(c.ID)
	if err != nil || got.Name != "Tools" {
		t.Fatalf("Category lookup: %+v, %v", got, err)
	}
	if _, err := f.inv.Category("missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.inv.Product("missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
