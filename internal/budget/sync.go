package budget

import (
	"example.com/obra-budget/backend/internal/catalog"
	"example.com/obra-budget/backend/internal/models"
)

// SyncPrices пересчитывает цены всех позиций под выбранный источник
// справочника. Полный повторный вывод, не инкрементальный дифф: для
// каждой позиции берется точное совпадение описания в справочнике.
// Оптимизированные позиции и позиции без пары в справочнике не
// трогаются, поэтому двойное переключение источника возвращает
// исходное состояние.
func SyncPrices(s *Store, source models.PriceSource) {
	for i := range s.items {
		item := &s.items[i]

		entry, ok := catalog.Lookup(item.Description)
		if !ok || item.Optimized {
			continue
		}

		price := entry.Price(source)
		item.UnitPrice = price
		item.Total = item.Quantity * price
		item.Source = source
		// Производительность всегда берется из справочника.
		item.DailyProductivity = entry.ProductivityPtr()
	}
}
