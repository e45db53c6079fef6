package catalog

import (
	"testing"

	"example.com/obra-budget/backend/internal/models"
)

// TestLookupExactMatch проверяет поиск по точному описанию.
func TestLookupExactMatch(t *testing.T) {
	entry, ok := Lookup("Tijolo cerâmico furado 9x19x19cm")
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if entry.PriceSeinfra != 0.68 || entry.PriceMercado != 0.62 {
		t.Fatalf("unexpected prices: %v / %v", entry.PriceSeinfra, entry.PriceMercado)
	}
}

// TestLookupMiss проверяет промах без ошибки.
func TestLookupMiss(t *testing.T) {
	if _, ok := Lookup("tijolo cerâmico furado 9x19x19cm"); ok {
		t.Fatal("lookup must be case sensitive")
	}
}

// TestPriceBySource проверяет выбор цены по источнику; оценочный
// источник падает на SEINFRA.
func TestPriceBySource(t *testing.T) {
	entry, _ := Lookup("Tijolo cerâmico furado 9x19x19cm")

	if got := entry.Price(models.SourceSeinfra); got != 0.68 {
		t.Fatalf("expected 0.68, got %v", got)
	}
	if got := entry.Price(models.SourceMercado); got != 0.62 {
		t.Fatalf("expected 0.62, got %v", got)
	}
	if got := entry.Price(models.SourceEstimado); got != 0.68 {
		t.Fatalf("expected fallback 0.68, got %v", got)
	}
}

// TestProductivityPtr проверяет nil для записей без ориентира выработки.
func TestProductivityPtr(t *testing.T) {
	entry, _ := Lookup("Tijolo cerâmico furado 9x19x19cm")
	if entry.ProductivityPtr() != nil {
		t.Fatal("expected nil productivity")
	}

	entry, _ = Lookup("Pintura látex PVA em parede, duas demãos")
	ptr := entry.ProductivityPtr()
	if ptr == nil || *ptr != 30 {
		t.Fatalf("expected productivity 30, got %v", ptr)
	}
}

// TestSearch проверяет поиск по подстроке без учета регистра.
func TestSearch(t *testing.T) {
	results := Search("PORCELANATO")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "cat-017" {
		t.Fatalf("unexpected entry: %s", results[0].ID)
	}

	if results := Search("   "); results != nil {
		t.Fatalf("expected nil for blank query, got %v", results)
	}
}

// TestLookupByID проверяет поиск по идентификатору справочника.
func TestLookupByID(t *testing.T) {
	entry, ok := LookupByID("cat-023")
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if entry.Unit != "h" || entry.Kind != models.KindLabor {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, ok := LookupByID("cat-999"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

// TestEntriesCategoriesKnown проверяет, что все записи ссылаются на
// известные этапы строительства.
func TestEntriesCategoriesKnown(t *testing.T) {
	for _, entry := range Entries() {
		if !models.IsKnownCategory(entry.Category) {
			t.Fatalf("entry %s has unknown category %q", entry.ID, entry.Category)
		}
	}
}
