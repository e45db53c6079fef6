package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"example.com/obra-budget/backend/internal/models"
)

type fakeClient struct {
	content string
	err     error
}

func (f *fakeClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.content, []byte(f.content), nil
}

// TestGenerateItemsParsesResponse проверяет разбор ответа модели и сборку
// позиций с производным итогом.
func TestGenerateItemsParsesResponse(t *testing.T) {
	client := &fakeClient{content: `{
		"items": [
			{"description": "Aplicação de massa corrida", "unit": "m²", "quantity": 50, "unit_price": 9.50, "kind": "MAO_DE_OBRA", "category": "PINTURA", "daily_productivity": 25}
		]
	}`}
	service := NewService(client)

	items, _, _, err := service.GenerateItems(context.Background(), GenerateInput{
		Description:     "Pintura interna de apartamento",
		Source:          models.SourceSeinfra,
		IncludeMaterial: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Total != 50*9.50 {
		t.Fatalf("expected total %v, got %v", 50*9.50, item.Total)
	}
	if item.Source != models.SourceEstimado {
		t.Fatalf("expected ESTIMADO for unmatched item, got %s", item.Source)
	}
	if item.DailyProductivity == nil || *item.DailyProductivity != 25 {
		t.Fatalf("expected productivity 25, got %v", item.DailyProductivity)
	}
}

// TestGenerateItemsPricesFromCatalog проверяет, что совпавшие со
// справочником описания получают цену активного источника.
func TestGenerateItemsPricesFromCatalog(t *testing.T) {
	client := &fakeClient{content: `{
		"items": [
			{"description": "Tijolo cerâmico furado 9x19x19cm", "unit": "un", "quantity": 1000, "unit_price": 1.50, "kind": "MATERIAL", "category": "ALVENARIA E VEDAÇÕES"}
		]
	}`}
	service := NewService(client)

	items, _, _, err := service.GenerateItems(context.Background(), GenerateInput{
		Description:     "Levantar paredes",
		Source:          models.SourceMercado,
		IncludeMaterial: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := items[0]
	if item.UnitPrice != 0.62 {
		t.Fatalf("expected catalog price 0.62, got %v", item.UnitPrice)
	}
	if item.Source != models.SourceMercado {
		t.Fatalf("expected MERCADO, got %s", item.Source)
	}
}

// TestGenerateItemsFiltersMaterial проверяет исключение материалов в
// режиме "только работа".
func TestGenerateItemsFiltersMaterial(t *testing.T) {
	client := &fakeClient{content: `{
		"items": [
			{"description": "Cimento CP-II 50kg", "unit": "un", "quantity": 10, "unit_price": 32.00, "kind": "MATERIAL", "category": "OUTROS"},
			{"description": "Assentamento de alvenaria", "unit": "m²", "quantity": 20, "unit_price": 45.00, "kind": "MAO_DE_OBRA", "category": "ALVENARIA E VEDAÇÕES"}
		]
	}`}
	service := NewService(client)

	items, _, _, err := service.GenerateItems(context.Background(), GenerateInput{
		Description:     "Alvenaria",
		Source:          models.SourceSeinfra,
		IncludeMaterial: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected material filtered out, got %d items", len(items))
	}
	if items[0].Kind != models.KindLabor {
		t.Fatalf("expected MAO_DE_OBRA, got %s", items[0].Kind)
	}
}

// TestGenerateItemsUnknownCategory проверяет перенос неизвестного этапа
// в OUTROS.
func TestGenerateItemsUnknownCategory(t *testing.T) {
	client := &fakeClient{content: `{
		"items": [
			{"description": "Serviço diverso", "unit": "vb", "quantity": 1, "unit_price": 100.00, "kind": "VERBA", "category": "ETAPA INVENTADA"}
		]
	}`}
	service := NewService(client)

	items, _, _, err := service.GenerateItems(context.Background(), GenerateInput{
		Description: "Serviços",
		Source:      models.SourceSeinfra,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Category != models.CategoryOther {
		t.Fatalf("expected OUTROS, got %s", items[0].Category)
	}
}

// TestGenerateItemsRejectsInvalidKind проверяет ошибку на неизвестном
// типе позиции: частичный результат не возвращается.
func TestGenerateItemsRejectsInvalidKind(t *testing.T) {
	client := &fakeClient{content: `{
		"items": [
			{"description": "Item válido", "unit": "vb", "quantity": 1, "unit_price": 10.00, "kind": "VERBA", "category": "OUTROS"},
			{"description": "Item quebrado", "unit": "vb", "quantity": 1, "unit_price": 10.00, "kind": "EQUIPAMENTO", "category": "OUTROS"}
		]
	}`}
	service := NewService(client)

	items, _, _, err := service.GenerateItems(context.Background(), GenerateInput{
		Description: "Serviços",
		Source:      models.SourceSeinfra,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if items != nil {
		t.Fatal("expected no items on validation failure")
	}
}

// TestGenerateItemsClientError проверяет проброс ошибки транспорта.
func TestGenerateItemsClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream timeout")}
	service := NewService(client)

	if _, _, _, err := service.GenerateItems(context.Background(), GenerateInput{
		Description: "Pintura",
		Source:      models.SourceSeinfra,
	}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

// TestExtractJSONStripsFences проверяет извлечение JSON из ответа в
// кодовых ограждениях.
func TestExtractJSONStripsFences(t *testing.T) {
	input := "```json\n{\"items\": []}\n```"
	got := extractJSON(input)
	if got != `{"items": []}` {
		t.Fatalf("unexpected extraction: %q", got)
	}

	if got := extractJSON("sem json aqui"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

// TestBuildItemsPromptScope проверяет, что режим "только работа" меняет
// инструкцию по составу.
func TestBuildItemsPromptScope(t *testing.T) {
	withMaterial, err := buildItemsPrompt(GenerateInput{Description: "Obra", IncludeMaterial: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	laborOnly, err := buildItemsPrompt(GenerateInput{Description: "Obra", IncludeMaterial: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(withMaterial, "MATERIAL and MAO_DE_OBRA") {
		t.Fatal("expected material scope in prompt")
	}
	if !strings.Contains(laborOnly, "no MATERIAL items") {
		t.Fatal("expected labor-only scope in prompt")
	}
}
