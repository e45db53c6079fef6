package optimize

import (
	"fmt"
	"math"
	"regexp"

	"github.com/google/uuid"

	"example.com/obra-budget/backend/internal/models"
)

const (
	materialSwapRate  = 0.15
	laborDiscountRate = 0.05
	roundingBase      = 100.0
	roundingThreshold = 500.0
	standardLabel     = "Standard"
)

// premiumPattern распознает материалы премиальной линейки.
var premiumPattern = regexp.MustCompile(`(?i)premium|tipo a|porcelanato`)

// Scan просматривает смету и строит список предложений экономии.
// Чистая функция: позиции не изменяются, стратегии пересчитываются с
// нуля при каждом вызове. Оптимизированные позиции пропускаются;
// округление оценивается по текущему общему итогу и может предлагаться
// повторно.
func Scan(items []models.LineItem) []models.OptimizationStrategy {
	var strategies []models.OptimizationStrategy
	var grandTotal float64
	for _, item := range items {
		grandTotal += item.Total
	}

	for _, item := range items {
		if item.Kind != models.KindMaterial || item.Optimized {
			continue
		}
		if !premiumPattern.MatchString(item.Description) {
			continue
		}

		strategies = append(strategies, models.OptimizationStrategy{
			ID:          "swap-" + item.ID,
			Kind:        models.StrategyMaterialSwap,
			Title:       "Substituição: " + item.Description,
			Description: "Trocar por linha Standard equivalente com melhor custo-benefício (-15%).",
			Savings:     item.Total * materialSwapRate,
			Selected:    true,
			TargetIDs:   []string{item.ID},
		})
	}

	var laborTotal float64
	var laborIDs []string
	for _, item := range items {
		if item.Kind == models.KindLabor && !item.Optimized {
			laborTotal += item.Total
			laborIDs = append(laborIDs, item.ID)
		}
	}
	if len(laborIDs) > 0 {
		strategies = append(strategies, models.OptimizationStrategy{
			ID:          "labor-bdi",
			Kind:        models.StrategyLaborDiscount,
			Title:       "Ajuste de BDI (Mão de Obra)",
			Description: "Redução estratégica de 5% na margem de mão de obra para competitividade.",
			Savings:     laborTotal * laborDiscountRate,
			Selected:    true,
			TargetIDs:   laborIDs,
		})
	}

	remainder := math.Mod(grandTotal, roundingBase)
	if remainder > 0 && grandTotal > roundingThreshold {
		strategies = append(strategies, models.OptimizationStrategy{
			ID:          "rounding",
			Kind:        models.StrategyRounding,
			Title:       "Arredondamento Técnico",
			Description: fmt.Sprintf("Desconto comercial para fechar o valor em R$ %.2f.", grandTotal-remainder),
			Savings:     remainder,
			Selected:    true,
		})
	}

	return strategies
}

// Apply применяет выбранные стратегии и возвращает новый список позиций.
// Замена материала и скидка на работу помечают позиции оптимизированными,
// округление добавляет синтетическую позицию коммерческой скидки.
func Apply(items []models.LineItem, strategies []models.OptimizationStrategy) []models.LineItem {
	result := make([]models.LineItem, len(items))
	copy(result, items)

	for _, strategy := range strategies {
		if !strategy.Selected {
			continue
		}

		switch strategy.Kind {
		case models.StrategyMaterialSwap:
			applyToTargets(result, strategy.TargetIDs, func(item *models.LineItem) {
				item.Description = premiumPattern.ReplaceAllString(item.Description, standardLabel)
				item.UnitPrice *= 1 - materialSwapRate
				item.Total *= 1 - materialSwapRate
				item.Optimized = true
			})
		case models.StrategyLaborDiscount:
			applyToTargets(result, strategy.TargetIDs, func(item *models.LineItem) {
				item.UnitPrice *= 1 - laborDiscountRate
				item.Total *= 1 - laborDiscountRate
				item.Optimized = true
			})
		case models.StrategyRounding:
			result = append(result, discountItem(strategy.Savings))
		}
	}

	return result
}

func applyToTargets(items []models.LineItem, targetIDs []string, apply func(*models.LineItem)) {
	targets := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = struct{}{}
	}

	for i := range items {
		if _, ok := targets[items[i].ID]; ok {
			apply(&items[i])
		}
	}
}

// discountItem строит позицию коммерческой скидки с отрицательным итогом.
func discountItem(savings float64) models.LineItem {
	return models.LineItem{
		ID:          uuid.NewString(),
		Description: "Desconto Comercial (Arredondamento)",
		Unit:        "vb",
		Quantity:    1,
		UnitPrice:   -savings,
		Total:       -savings,
		Source:      models.SourceEstimado,
		Kind:        models.KindLumpSum,
		Category:    "SERVIÇOS COMPLEMENTARES",
		Optimized:   true,
	}
}
