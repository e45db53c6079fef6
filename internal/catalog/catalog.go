package catalog

import (
	"strings"

	"example.com/obra-budget/backend/internal/models"
)

// Entry — запись справочника цен с двумя источниками и ориентиром
// дневной производительности (TCPO/SEINFRA).
type Entry struct {
	ID                string           `json:"id"`
	Description       string           `json:"description"`
	Unit              string           `json:"unit"`
	PriceSeinfra      float64          `json:"price_seinfra"`
	PriceMercado      float64          `json:"price_mercado"`
	Kind              models.ItemKind  `json:"kind"`
	Category          string           `json:"category"`
	DailyProductivity float64          `json:"daily_productivity,omitempty"`
}

// Price возвращает цену записи для выбранного источника.
func (e Entry) Price(source models.PriceSource) float64 {
	if source == models.SourceMercado {
		return e.PriceMercado
	}
	return e.PriceSeinfra
}

// ProductivityPtr возвращает производительность как указатель;
// nil, когда ориентир для записи не задан.
func (e Entry) ProductivityPtr() *float64 {
	if e.DailyProductivity <= 0 {
		return nil
	}
	value := e.DailyProductivity
	return &value
}

var entries = []Entry{
	{ID: "cat-001", Description: "Limpeza manual do terreno", Unit: "m²", PriceSeinfra: 2.10, PriceMercado: 2.45, Kind: models.KindLabor, Category: "SERVIÇOS PRELIMINARES", DailyProductivity: 50},
	{ID: "cat-002", Description: "Locação da obra com gabarito de madeira", Unit: "m²", PriceSeinfra: 3.85, PriceMercado: 4.10, Kind: models.KindLabor, Category: "SERVIÇOS PRELIMINARES", DailyProductivity: 40},
	{ID: "cat-003", Description: "Escavação manual de valas até 1,5m", Unit: "m³", PriceSeinfra: 38.50, PriceMercado: 42.00, Kind: models.KindLabor, Category: "INFRAESTRUTURA / FUNDAÇÃO", DailyProductivity: 3},
	{ID: "cat-004", Description: "Concreto usinado FCK 25MPa lançado em fundação", Unit: "m³", PriceSeinfra: 415.00, PriceMercado: 398.00, Kind: models.KindMaterial, Category: "INFRAESTRUTURA / FUNDAÇÃO", DailyProductivity: 3},
	{ID: "cat-005", Description: "Armação de aço CA-50 cortada e dobrada", Unit: "kg", PriceSeinfra: 9.80, PriceMercado: 10.40, Kind: models.KindMaterial, Category: "SUPERESTRUTURA"},
	{ID: "cat-006", Description: "Forma de madeira para pilares e vigas", Unit: "m²", PriceSeinfra: 52.30, PriceMercado: 48.90, Kind: models.KindLabor, Category: "SUPERESTRUTURA", DailyProductivity: 4},
	{ID: "cat-007", Description: "Tijolo cerâmico furado 9x19x19cm", Unit: "un", PriceSeinfra: 0.68, PriceMercado: 0.62, Kind: models.KindMaterial, Category: "ALVENARIA E VEDAÇÕES"},
	{ID: "cat-008", Description: "Alvenaria de vedação com tijolo cerâmico", Unit: "m²", PriceSeinfra: 58.20, PriceMercado: 61.70, Kind: models.KindLabor, Category: "ALVENARIA E VEDAÇÕES", DailyProductivity: 8},
	{ID: "cat-009", Description: "Porta de madeira semi-oca 80x210cm", Unit: "un", PriceSeinfra: 285.00, PriceMercado: 310.00, Kind: models.KindMaterial, Category: "ESQUADRIAS", DailyProductivity: 5},
	{ID: "cat-010", Description: "Janela de alumínio de correr 120x100cm", Unit: "un", PriceSeinfra: 420.00, PriceMercado: 445.50, Kind: models.KindMaterial, Category: "ESQUADRIAS", DailyProductivity: 4},
	{ID: "cat-011", Description: "Telha cerâmica Tipo A colonial", Unit: "m²", PriceSeinfra: 38.40, PriceMercado: 35.90, Kind: models.KindMaterial, Category: "COBERTURA", DailyProductivity: 15},
	{ID: "cat-012", Description: "Estrutura de madeira para telhado", Unit: "m²", PriceSeinfra: 68.00, PriceMercado: 72.30, Kind: models.KindLabor, Category: "COBERTURA", DailyProductivity: 12},
	{ID: "cat-013", Description: "Ponto de tomada 2P+T completo", Unit: "pt", PriceSeinfra: 95.00, PriceMercado: 88.50, Kind: models.KindLabor, Category: "INSTALAÇÕES ELÉTRICAS", DailyProductivity: 6},
	{ID: "cat-014", Description: "Ponto de água fria embutido", Unit: "pt", PriceSeinfra: 132.00, PriceMercado: 140.00, Kind: models.KindLabor, Category: "INSTALAÇÕES HIDROSSANITÁRIAS", DailyProductivity: 4},
	{ID: "cat-015", Description: "Chapisco em parede interna", Unit: "m²", PriceSeinfra: 6.90, PriceMercado: 7.40, Kind: models.KindLabor, Category: "REVESTIMENTOS DE PAREDE", DailyProductivity: 25},
	{ID: "cat-016", Description: "Reboco em parede interna e=2cm", Unit: "m²", PriceSeinfra: 28.50, PriceMercado: 26.80, Kind: models.KindLabor, Category: "REVESTIMENTOS DE PAREDE", DailyProductivity: 12},
	{ID: "cat-017", Description: "Porcelanato Premium acetinado 60x60cm", Unit: "m²", PriceSeinfra: 89.90, PriceMercado: 79.90, Kind: models.KindMaterial, Category: "REVESTIMENTOS DE PISO", DailyProductivity: 10},
	{ID: "cat-018", Description: "Piso cerâmico esmaltado 45x45cm", Unit: "m²", PriceSeinfra: 32.40, PriceMercado: 29.90, Kind: models.KindMaterial, Category: "REVESTIMENTOS DE PISO", DailyProductivity: 12},
	{ID: "cat-019", Description: "Forro de gesso acartonado liso", Unit: "m²", PriceSeinfra: 55.00, PriceMercado: 49.80, Kind: models.KindLabor, Category: "FORROS", DailyProductivity: 15},
	{ID: "cat-020", Description: "Pintura látex PVA em parede, duas demãos", Unit: "m²", PriceSeinfra: 12.80, PriceMercado: 11.50, Kind: models.KindLabor, Category: "PINTURA", DailyProductivity: 30},
	{ID: "cat-021", Description: "Vaso sanitário com caixa acoplada", Unit: "un", PriceSeinfra: 389.00, PriceMercado: 359.00, Kind: models.KindMaterial, Category: "LOUÇAS E METAIS", DailyProductivity: 8},
	{ID: "cat-022", Description: "Limpeza final da obra", Unit: "m²", PriceSeinfra: 4.20, PriceMercado: 4.80, Kind: models.KindLabor, Category: "SERVIÇOS COMPLEMENTARES", DailyProductivity: 20},
	{ID: "cat-023", Description: "Pedreiro profissional", Unit: "h", PriceSeinfra: 28.00, PriceMercado: 32.00, Kind: models.KindLabor, Category: "SERVIÇOS COMPLEMENTARES"},
	{ID: "cat-024", Description: "Servente de obra", Unit: "h", PriceSeinfra: 18.00, PriceMercado: 21.00, Kind: models.KindLabor, Category: "SERVIÇOS COMPLEMENTARES"},
}

var byDescription = buildDescriptionIndex()

func buildDescriptionIndex() map[string]Entry {
	index := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		index[entry.Description] = entry
	}
	return index
}

// Lookup ищет запись по точному совпадению описания. Промах — не ошибка:
// позиции, набранные вручную или сгенерированные AI, законно не имеют пары.
func Lookup(description string) (Entry, bool) {
	entry, ok := byDescription[description]
	return entry, ok
}

// LookupByID ищет запись по идентификатору справочника.
func LookupByID(id string) (Entry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// Search ищет записи по подстроке описания без учета регистра.
func Search(query string) []Entry {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}

	var results []Entry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Description), normalized) {
			results = append(results, entry)
		}
	}
	return results
}

// Entries возвращает копию всего справочника.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
