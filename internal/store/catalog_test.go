package store

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/amstore/amstore-system/internal/model"
	"github.com/amstore/amstore-system/internal/storage"
)

func newTestCatalog(t *testing.T, initial []model.Product) (*Catalog, *storage.MemoryKV) {
	t.Helper()

	kv := storage.NewMemoryKV()
	c, err := NewCatalog(context.Background(), kv, initial)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c, kv
}

func TestCatalogAdd_AssignsIDAndPlaceholder(t *testing.T) {
	c, _ := newTestCatalog(t, nil)

	p, err := c.Add(context.Background(), model.Product{Name: "ساعة", Price: 1000, Category: "Classic"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if p.ID == "" {
		t.Fatalf("Add did not assign an id")
	}
	if !strings.HasPrefix(p.Image, "https://picsum.photos/") {
		t.Fatalf("Add did not assign placeholder image, got %q", p.Image)
	}
}

func TestCatalogAdd_KeepsProvidedImage(t *testing.T) {
	c, _ := newTestCatalog(t, nil)

	p, err := c.Add(context.Background(), model.Product{Name: "ساعة", Image: "https://example.com/w.jpg"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.Image != "https://example.com/w.jpg" {
		t.Fatalf("image = %q, want provided image", p.Image)
	}
}

func TestCatalogAdd_UniqueIDs(t *testing.T) {
	c, _ := newTestCatalog(t, nil)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		p, err := c.Add(ctx, model.Product{Name: "x"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if _, dup := seen[p.ID]; dup {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
}

func TestCatalogUpdate(t *testing.T) {
	c, _ := newTestCatalog(t, nil)
	ctx := context.Background()

	p, err := c.Add(ctx, model.Product{Name: "старое", Price: 100})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	p.Name = "новое"
	p.Price = 200
	if err := c.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, ok := c.Get(p.ID)
	if !ok {
		t.Fatalf("product disappeared after update")
	}
	if got.Name != "новое" || got.Price != 200 {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestCatalogUpdate_UnknownID(t *testing.T) {
	c, _ := newTestCatalog(t, nil)

	err := c.Update(context.Background(), model.Product{ID: "missing", Name: "x"})
	if err != ErrProductNotFound {
		t.Fatalf("Update unknown id: err = %v, want ErrProductNotFound", err)
	}
}

func TestCatalogRemove_Idempotent(t *testing.T) {
	c, _ := newTestCatalog(t, nil)
	ctx := context.Background()

	p, err := c.Add(ctx, model.Product{Name: "x"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := c.Remove(ctx, p.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove(ctx, p.ID); err != nil {
		t.Fatalf("second Remove must be a no-op, got %v", err)
	}
	if c.Count() != 0 {
		t.Fatalf("Count = %d, want 0", c.Count())
	}
}

func TestCatalogList_FilterAndSort(t *testing.T) {
	initial := []model.Product{
		{ID: "1", Name: "a", Price: 300, Category: "Luxury"},
		{ID: "2", Name: "b", Price: 100, Category: "Sport"},
		{ID: "3", Name: "c", Price: 200, Category: "Luxury"},
		{ID: "4", Name: "d", Price: 100, Category: "Classic"},
	}
	c, _ := newTestCatalog(t, initial)

	tests := []struct {
		name     string
		category string
		order    SortOrder
		wantIDs  []string
	}{
		{"all default", CategoryAll, SortDefault, []string{"1", "2", "3", "4"}},
		{"filter category", "Luxury", SortDefault, []string{"1", "3"}},
		{"price asc stable", CategoryAll, SortPriceAsc, []string{"2", "4", "3", "1"}},
		{"price desc", CategoryAll, SortPriceDesc, []string{"1", "3", "2", "4"}},
		{"filter plus sort", "Luxury", SortPriceAsc, []string{"3", "1"}},
		{"unknown category", "Digital", SortDefault, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.List(tt.category, tt.order)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("position %d: id = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCatalogList_DoesNotMutateStore(t *testing.T) {
	initial := []model.Product{
		{ID: "1", Price: 300},
		{ID: "2", Price: 100},
	}
	c, _ := newTestCatalog(t, initial)

	_ = c.List(CategoryAll, SortPriceAsc)

	got := c.List(CategoryAll, SortDefault)
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("insertion order lost after sorted view: %+v", got)
	}
}

func TestCatalogList_Repeatable(t *testing.T) {
	initial := []model.Product{
		{ID: "1", Price: 300, Category: "Luxury"},
		{ID: "2", Price: 100, Category: "Sport"},
	}
	c, _ := newTestCatalog(t, initial)

	first := c.List("Luxury", SortPriceAsc)
	second := c.List("Luxury", SortPriceAsc)

	if len(first) != len(second) {
		t.Fatalf("repeated calls differ in length")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated calls differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCatalogCategories(t *testing.T) {
	initial := []model.Product{
		{ID: "1", Category: "Luxury"},
		{ID: "2", Category: "Sport"},
		{ID: "3", Category: "Luxury"},
		{ID: "4", Category: "Classic"},
	}
	c, _ := newTestCatalog(t, initial)

	got := c.Categories()
	want := []string{CategoryAll, "Luxury", "Sport", "Classic"}

	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", got, want)
		}
	}
}

func TestCatalog_WriteThroughAndHydration(t *testing.T) {
	ctx := context.Background()
	c, kv := newTestCatalog(t, nil)

	p, err := c.Add(ctx, model.Product{Name: "ساعة", Price: 45000, Category: "Luxury"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Мутация должна быть видна во внешнем хранилище сразу.
	data, err := kv.Get(ctx, storage.KeyProducts)
	if err != nil {
		t.Fatalf("Get persisted products: %v", err)
	}
	var persisted []model.Product
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("decode persisted products: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != p.ID {
		t.Fatalf("persisted = %+v, want one product with id %q", persisted, p.ID)
	}

	// Новый каталог поверх того же хранилища видит ту же коллекцию.
	reloaded, err := NewCatalog(ctx, kv, nil)
	if err != nil {
		t.Fatalf("NewCatalog reload: %v", err)
	}
	got, ok := reloaded.Get(p.ID)
	if !ok {
		t.Fatalf("product lost after reload")
	}
	if got != p {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, p)
	}
}

func TestCatalog_SeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	c, err := NewCatalog(ctx, kv, SeedProducts())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if c.Count() != 3 {
		t.Fatalf("Count = %d, want 3 seeded products", c.Count())
	}

	if err := c.Remove(ctx, "1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	// Повторная загрузка не должна возвращать удалённый товар из сида.
	reloaded, err := NewCatalog(ctx, kv, SeedProducts())
	if err != nil {
		t.Fatalf("NewCatalog reload: %v", err)
	}
	if reloaded.Count() != 2 {
		t.Fatalf("Count after reload = %d, want 2", reloaded.Count())
	}
}
