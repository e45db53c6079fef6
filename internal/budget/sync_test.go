package budget

import (
	"math"
	"testing"

	"example.com/obra-budget/backend/internal/models"
)

func tijoloItem() models.LineItem {
	return models.LineItem{
		ID:          "item-tijolo",
		Description: "Tijolo cerâmico furado 9x19x19cm",
		Unit:        "un",
		Quantity:    1000,
		UnitPrice:   0.68,
		Total:       680.00,
		Source:      models.SourceSeinfra,
		Kind:        models.KindMaterial,
		Category:    "ALVENARIA E VEDAÇÕES",
	}
}

// TestSyncPricesSwitchesSource проверяет пересчет цены и итога при
// переключении источника: тысяча тижоло по 0.68 становится тысячей по 0.62.
func TestSyncPricesSwitchesSource(t *testing.T) {
	store := NewStore()
	store.Add(tijoloItem())

	SyncPrices(store, models.SourceMercado)

	item, _ := store.Get("item-tijolo")
	if item.UnitPrice != 0.62 {
		t.Fatalf("expected unit price 0.62, got %v", item.UnitPrice)
	}
	if math.Abs(item.Total-620.00) > 1e-9 {
		t.Fatalf("expected total 620.00, got %v", item.Total)
	}
	if item.Source != models.SourceMercado {
		t.Fatalf("expected source MERCADO, got %s", item.Source)
	}
}

// TestSyncPricesRoundTrip проверяет, что двойное переключение источника
// возвращает исходное состояние.
func TestSyncPricesRoundTrip(t *testing.T) {
	store := NewStore()
	store.Add(tijoloItem())

	SyncPrices(store, models.SourceMercado)
	SyncPrices(store, models.SourceSeinfra)

	item, _ := store.Get("item-tijolo")
	if item.UnitPrice != 0.68 {
		t.Fatalf("expected unit price 0.68, got %v", item.UnitPrice)
	}
	if math.Abs(item.Total-680.00) > 1e-9 {
		t.Fatalf("expected total 680.00, got %v", item.Total)
	}
}

// TestSyncPricesSkipsUnmatched проверяет, что позиции без пары в
// справочнике сохраняют оценочную цену.
func TestSyncPricesSkipsUnmatched(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{
		ID:          "item-custom",
		Description: "Serviço especial sob medida",
		Quantity:    1,
		UnitPrice:   250.00,
		Total:       250.00,
		Source:      models.SourceEstimado,
	})

	SyncPrices(store, models.SourceMercado)

	item, _ := store.Get("item-custom")
	if item.UnitPrice != 250.00 {
		t.Fatalf("expected unit price 250.00, got %v", item.UnitPrice)
	}
	if item.Source != models.SourceEstimado {
		t.Fatalf("expected source ESTIMADO, got %s", item.Source)
	}
}

// TestSyncPricesSkipsOptimized проверяет, что оптимизированные позиции
// не пересинхронизируются и скидка не затирается.
func TestSyncPricesSkipsOptimized(t *testing.T) {
	store := NewStore()
	item := tijoloItem()
	item.UnitPrice = 0.58
	item.Total = 580.00
	item.Optimized = true
	store.Add(item)

	SyncPrices(store, models.SourceMercado)

	got, _ := store.Get("item-tijolo")
	if got.UnitPrice != 0.58 {
		t.Fatalf("expected optimized price 0.58 untouched, got %v", got.UnitPrice)
	}
	if got.Source != models.SourceSeinfra {
		t.Fatalf("expected source unchanged, got %s", got.Source)
	}
}

// TestSyncPricesFillsProductivity проверяет подстановку производительности
// из справочника при совпадении описания.
func TestSyncPricesFillsProductivity(t *testing.T) {
	store := NewStore()
	store.Add(models.LineItem{
		ID:          "item-pintura",
		Description: "Pintura látex PVA em parede, duas demãos",
		Quantity:    300,
		UnitPrice:   15.00,
		Total:       4500.00,
		Source:      models.SourceEstimado,
		Kind:        models.KindLabor,
		Category:    "PINTURA",
	})

	SyncPrices(store, models.SourceSeinfra)

	item, _ := store.Get("item-pintura")
	if item.DailyProductivity == nil || *item.DailyProductivity != 30 {
		t.Fatalf("expected productivity 30, got %v", item.DailyProductivity)
	}
	if item.UnitPrice != 12.80 {
		t.Fatalf("expected catalog price 12.80, got %v", item.UnitPrice)
	}
}
