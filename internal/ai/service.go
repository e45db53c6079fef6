package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"example.com/obra-budget/backend/internal/catalog"
	"example.com/obra-budget/backend/internal/models"
)

const maxGeneratedItems = 30

type Service struct {
	client Client
}

// NewService создает сервис генерации позиций сметы.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// GenerateInput — описание услуги и конфигурация генерации.
type GenerateInput struct {
	Description     string
	Source          models.PriceSource
	IncludeMaterial bool
}

type generatedItem struct {
	Description       string  `json:"description"`
	Unit              string  `json:"unit"`
	Quantity          float64 `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	Kind              string  `json:"kind"`
	Category          string  `json:"category"`
	DailyProductivity float64 `json:"daily_productivity,omitempty"`
}

type itemsResponse struct {
	Items []generatedItem `json:"items"`
}

// GenerateItems запрашивает у модели состав сметы по текстовому описанию,
// валидирует ответ и возвращает позиции, приценённые по справочнику там,
// где описание совпало. Любая ошибка возвращается целиком: частично
// разобранные позиции наружу не выходят.
func (s *Service) GenerateItems(ctx context.Context, input GenerateInput) ([]models.LineItem, string, []byte, error) {
	prompt, err := buildItemsPrompt(input)
	if err != nil {
		return nil, "", nil, err
	}

	messages := []Message{
		{Role: "system", Content: "You are a construction cost estimator. Respond with JSON only, without extra text."},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return nil, prompt, raw, err
	}

	var response itemsResponse
	if err := parseJSON(content, &response); err != nil {
		return nil, prompt, raw, err
	}

	items, err := buildLineItems(response, input)
	if err != nil {
		return nil, prompt, raw, err
	}

	return items, prompt, raw, nil
}

func buildItemsPrompt(input GenerateInput) (string, error) {
	payload, err := json.MarshalIndent(map[string]interface{}{
		"service_description": input.Description,
		"include_material":    input.IncludeMaterial,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	scope := "Include both MATERIAL and MAO_DE_OBRA items."
	if !input.IncludeMaterial {
		scope = "Include MAO_DE_OBRA and VERBA items only, no MATERIAL items."
	}

	prompt := fmt.Sprintf(`Break a construction service down into priced budget line items as JSON.

Requirements:
- Output JSON only, no code fences, no extra text.
- Use Brazilian Portuguese for all descriptions.
- Schema:
{
  "items": [
    {
      "description": string,
      "unit": string,
      "quantity": number,
      "unit_price": number,
      "kind": "MATERIAL" | "MAO_DE_OBRA" | "VERBA",
      "category": string,
      "daily_productivity": number
    }
  ]
}
- category must be one of: %s. Use "OUTROS" when nothing fits.
- unit is a short measure like "m²", "m³", "un", "h", "vb".
- quantity must be >= 0, unit_price must be >= 0 in BRL.
- daily_productivity is units a standard team executes per day; omit when unknown.
- %s
- Provide between 1 and 20 items.
- Keep descriptions short (<= 120 chars).

Input:
%s`, strings.Join(models.ConstructionCategories, ", "), scope, string(payload))

	return prompt, nil
}

// buildLineItems проверяет ответ модели и собирает позиции. Совпавшие со
// справочником описания получают цену активного источника, остальные
// остаются оценочными.
func buildLineItems(response itemsResponse, input GenerateInput) ([]models.LineItem, error) {
	if len(response.Items) == 0 {
		return nil, errors.New("generated items are required")
	}
	if len(response.Items) > maxGeneratedItems {
		return nil, errors.New("too many generated items")
	}

	items := make([]models.LineItem, 0, len(response.Items))
	for _, generated := range response.Items {
		description := strings.TrimSpace(generated.Description)
		if description == "" {
			return nil, errors.New("item description is required")
		}
		if len(description) > 200 {
			return nil, errors.New("item description is too long")
		}

		unit := strings.TrimSpace(generated.Unit)
		if unit == "" {
			return nil, errors.New("item unit is required")
		}

		if generated.Quantity < 0 {
			return nil, errors.New("item quantity must not be negative")
		}
		if generated.UnitPrice < 0 {
			return nil, errors.New("item unit_price must not be negative")
		}

		kind := models.ItemKind(strings.TrimSpace(generated.Kind))
		if !models.IsValidKind(kind) {
			return nil, fmt.Errorf("invalid item kind: %s", generated.Kind)
		}

		if !input.IncludeMaterial && kind == models.KindMaterial {
			continue
		}

		category := strings.TrimSpace(generated.Category)
		if !models.IsKnownCategory(category) {
			category = models.CategoryOther
		}

		item := models.LineItem{
			ID:          uuid.NewString(),
			Description: description,
			Unit:        unit,
			Quantity:    generated.Quantity,
			UnitPrice:   generated.UnitPrice,
			Total:       generated.Quantity * generated.UnitPrice,
			Source:      models.SourceEstimado,
			Kind:        kind,
			Category:    category,
		}

		if generated.DailyProductivity > 0 {
			value := generated.DailyProductivity
			item.DailyProductivity = &value
		}

		if entry, ok := catalog.Lookup(description); ok {
			price := entry.Price(input.Source)
			item.Unit = entry.Unit
			item.UnitPrice = price
			item.Total = item.Quantity * price
			item.Source = input.Source
			item.Kind = entry.Kind
			item.Category = entry.Category
			item.DailyProductivity = entry.ProductivityPtr()
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, errors.New("no items left after filtering")
	}

	return items, nil
}

func parseJSON(input string, target interface{}) error {
	payload := extractJSON(input)
	if payload == "" {
		return errors.New("ai response does not contain json")
	}

	return json.Unmarshal([]byte(payload), target)
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}
