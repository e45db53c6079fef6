package budget

import (
	"example.com/obra-budget/backend/internal/models"
)

// Store — упорядоченная коллекция позиций активной сметы. Хранится в
// памяти, один логический писатель (Workspace сериализует вызовы).
type Store struct {
	items []models.LineItem
}

// NewStore создает пустое хранилище позиций.
func NewStore() *Store {
	return &Store{}
}

// ItemPatch — частичное обновление позиции. Ненулевые поля применяются,
// остальные не трогаются.
type ItemPatch struct {
	Description       *string
	Unit              *string
	Quantity          *float64
	UnitPrice         *float64
	Category          *string
	Kind              *models.ItemKind
	Source            *models.PriceSource
	DailyProductivity *float64
}

// Add добавляет позицию в конец. Дубликаты описаний допустимы.
func (s *Store) Add(item models.LineItem) {
	s.items = append(s.items, item)
}

// Get возвращает позицию по идентификатору.
func (s *Store) Get(id string) (models.LineItem, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.LineItem{}, false
}

// Update применяет частичное обновление. Если меняется количество или
// цена за единицу, итог пересчитывается как quantity * unitPrice.
// Неизвестный идентификатор — тихий no-op.
func (s *Store) Update(id string, patch ItemPatch) (models.LineItem, bool) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}

		item := &s.items[i]
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.Unit != nil {
			item.Unit = *patch.Unit
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		}
		if patch.Kind != nil {
			item.Kind = *patch.Kind
		}
		if patch.Source != nil {
			item.Source = *patch.Source
		}
		if patch.DailyProductivity != nil {
			value := *patch.DailyProductivity
			item.DailyProductivity = &value
		}
		if patch.Quantity != nil || patch.UnitPrice != nil {
			if patch.Quantity != nil {
				item.Quantity = *patch.Quantity
			}
			if patch.UnitPrice != nil {
				item.UnitPrice = *patch.UnitPrice
			}
			item.Total = item.Quantity * item.UnitPrice
		}

		return *item, true
	}

	return models.LineItem{}, false
}

// Delete удаляет позицию; отсутствующий идентификатор — no-op.
func (s *Store) Delete(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAll заменяет коллекцию целиком (загрузка сохраненной сметы).
func (s *Store) ReplaceAll(items []models.LineItem) {
	s.items = make([]models.LineItem, len(items))
	copy(s.items, items)
}

// Items возвращает копию позиций в порядке добавления.
func (s *Store) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len возвращает число позиций.
func (s *Store) Len() int {
	return len(s.items)
}

// GrandTotal возвращает сумму итогов всех позиций.
func (s *Store) GrandTotal() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Total
	}
	return total
}
