package budget

import (
	"math"
	"testing"

	"example.com/obra-budget/backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// TestUpdateRecomputesTotal проверяет пересчет итога при смене количества
// или цены за единицу.
func TestUpdateRecomputesTotal(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{ID: "item-1", Description: "Alvenaria", Quantity: 10, UnitPrice: 58.20, Total: 582.00})

	item, ok := store.Update("item-1", ItemPatch{Quantity: floatPtr(20)})
	if !ok {
		t.Fatal("expected item to be found")
	}
	if item.Total != 20*58.20 {
		t.Fatalf("expected total %v, got %v", 20*58.20, item.Total)
	}

	item, ok = store.Update("item-1", ItemPatch{UnitPrice: floatPtr(60)})
	if !ok {
		t.Fatal("expected item to be found")
	}
	if item.Total != 1200 {
		t.Fatalf("expected total 1200, got %v", item.Total)
	}
}

// TestUpdateWithoutPriceFieldsKeepsTotal проверяет, что правка описания
// не трогает итог.
func TestUpdateWithoutPriceFieldsKeepsTotal(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{ID: "item-1", Description: "Reboco", Quantity: 5, UnitPrice: 28.50, Total: 142.50})

	item, ok := store.Update("item-1", ItemPatch{Description: strPtr("Reboco interno")})
	if !ok {
		t.Fatal("expected item to be found")
	}
	if item.Total != 142.50 {
		t.Fatalf("expected total 142.50, got %v", item.Total)
	}
	if item.Description != "Reboco interno" {
		t.Fatalf("unexpected description: %s", item.Description)
	}
}

// TestUpdateUnknownID проверяет тихий no-op на неизвестном идентификаторе.
func TestUpdateUnknownID(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{ID: "item-1"})

	if _, ok := store.Update("missing", ItemPatch{Quantity: floatPtr(1)}); ok {
		t.Fatal("expected not found")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", store.Len())
	}
}

// TestDelete проверяет удаление и no-op на отсутствующей позиции.
func TestDelete(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{ID: "item-1"})
	store.Add(models.LineItem{ID: "item-2"})

	if !store.Delete("item-1") {
		t.Fatal("expected delete to succeed")
	}
	if store.Delete("item-1") {
		t.Fatal("expected second delete to be a no-op")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", store.Len())
	}
}

// TestGrandTotal проверяет сумму итогов, включая отрицательные позиции.
func TestGrandTotal(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{ID: "item-1", Total: 1500.00})
	store.Add(models.LineItem{ID: "item-2", Total: 37.40})
	store.Add(models.LineItem{ID: "item-3", Total: -37.40})

	if got := store.GrandTotal(); math.Abs(got-1500.00) > 1e-9 {
		t.Fatalf("expected 1500.00, got %v", got)
	}
}

// TestItemsReturnsCopy проверяет, что изменение выдачи не влияет на хранилище.
func TestItemsReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{ID: "item-1", Description: "original"})

	items := store.Items()
	items[0].Description = "mutated"

	stored, _ := store.Get("item-1")
	if stored.Description != "original" {
		t.Fatalf("store was mutated through the copy: %s", stored.Description)
	}
}
