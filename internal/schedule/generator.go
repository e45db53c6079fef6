package schedule

import (
	"math"
	"sort"
	"strings"
	"time"

	"example.com/obra-budget/backend/internal/catalog"
	"example.com/obra-budget/backend/internal/models"
)

const (
	hoursPerWorkday     = 8.0
	defaultProductivity = 10.0
	minTaskDays         = 1
	// Буфер между задачами: следующая начинается через день после
	// окончания предыдущей. Выходные не учитываются.
	taskGapDays = 1
)

// productivityBenchmarks — ориентиры выработки по этапам (единиц в день).
var productivityBenchmarks = map[string]float64{
	"SERVIÇOS PRELIMINARES":        50, // m²/день (limpeza/locação)
	"INFRAESTRUTURA / FUNDAÇÃO":    3,  // m³/день (concreto)
	"SUPERESTRUTURA":               3,  // m³/день
	"ALVENARIA E VEDAÇÕES":         8,  // m²/день
	"ESQUADRIAS":                   5,  // un/день
	"COBERTURA":                    15, // m²/день
	"INSTALAÇÕES ELÉTRICAS":        6,  // pts/день
	"INSTALAÇÕES HIDROSSANITÁRIAS": 4,  // pts/день
	"REVESTIMENTOS DE PAREDE":      12, // m²/день
	"REVESTIMENTOS DE PISO":        10, // m²/день
	"FORROS":                       15, // m²/день
	"PINTURA":                      30, // m²/день
	"LOUÇAS E METAIS":              8,  // un/день
	"SERVIÇOS COMPLEMENTARES":      20,
}

// Generate строит каскадный график: позиции сортируются по рангу этапа,
// каждая задача начинается через день после окончания предыдущей.
// Генератор чистый и повторяемый: та же смета и то же "сейчас" дают
// идентичную относительную структуру.
func Generate(items []models.LineItem, now time.Time) []models.ScheduleTask {
	sorted := make([]models.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return models.CategoryRank(sorted[i].Category) < models.CategoryRank(sorted[j].Category)
	})

	cursor := models.NewDate(now)
	tasks := make([]models.ScheduleTask, 0, len(sorted))

	for _, item := range sorted {
		days := taskDuration(item)

		start := cursor
		end := start.AddDays(days)

		tasks = append(tasks, models.ScheduleTask{
			ID:           "task-" + item.ID,
			BudgetItemID: item.ID,
			Description:  item.Description,
			Category:     item.Category,
			StartDate:    start,
			EndDate:      end,
			DurationDays: days,
			Status:       models.TaskPlanned,
		})

		cursor = end.AddDays(taskGapDays)
	}

	return tasks
}

// taskDuration оценивает длительность позиции в днях, минимум один день.
// Часовые единицы считаются из восьмичасового рабочего дня, остальные —
// из дневной производительности.
func taskDuration(item models.LineItem) int {
	unit := strings.ToLower(item.Unit)
	if unit == "h" || unit == "horas" {
		return clampDays(math.Ceil(item.Quantity / hoursPerWorkday))
	}

	return clampDays(math.Ceil(item.Quantity / resolveProductivity(item)))
}

// resolveProductivity: собственное значение позиции, затем справочник по
// точному описанию, затем ориентир этапа.
func resolveProductivity(item models.LineItem) float64 {
	if item.DailyProductivity != nil && *item.DailyProductivity > 0 {
		return *item.DailyProductivity
	}

	if entry, ok := catalog.Lookup(item.Description); ok && entry.DailyProductivity > 0 {
		return entry.DailyProductivity
	}

	if benchmark, ok := productivityBenchmarks[item.Category]; ok {
		return benchmark
	}
	return defaultProductivity
}

func clampDays(days float64) int {
	if days < minTaskDays || math.IsNaN(days) || math.IsInf(days, 0) {
		return minTaskDays
	}
	return int(days)
}
