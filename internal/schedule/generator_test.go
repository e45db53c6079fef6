package schedule

import (
	"testing"
	"time"

	"example.com/obra-budget/backend/internal/models"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

// TestGenerateDurationFromProductivity: 300 m² покраски при выработке
// 30 m²/день дают десятидневную задачу.
func TestGenerateDurationFromProductivity(t *testing.T) {
	items := []models.LineItem{
		{
			ID:                "item-pintura",
			Description:       "Pintura externa",
			Unit:              "m²",
			Quantity:          300,
			Category:          "PINTURA",
			DailyProductivity: floatPtr(30),
		},
	}

	tasks := Generate(items, testNow)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].DurationDays != 10 {
		t.Fatalf("expected 10 days, got %d", tasks[0].DurationDays)
	}
}

// TestGenerateDurationFromHours: 40 часов при восьмичасовом дне дают
// пять дней.
func TestGenerateDurationFromHours(t *testing.T) {
	items := []models.LineItem{
		{ID: "item-pedreiro", Description: "Pedreiro profissional", Unit: "h", Quantity: 40, Category: "SERVIÇOS COMPLEMENTARES"},
	}

	tasks := Generate(items, testNow)
	if tasks[0].DurationDays != 5 {
		t.Fatalf("expected 5 days, got %d", tasks[0].DurationDays)
	}
}

// TestGenerateMinimumDuration проверяет минимум в один день на нулевом
// и дробном объеме.
func TestGenerateMinimumDuration(t *testing.T) {
	items := []models.LineItem{
		{ID: "a", Unit: "m²", Quantity: 0, Category: "PINTURA"},
		{ID: "b", Unit: "m²", Quantity: 2, Category: "PINTURA"},
	}

	tasks := Generate(items, testNow)
	for _, task := range tasks {
		if task.DurationDays != 1 {
			t.Fatalf("expected 1 day for task %s, got %d", task.ID, task.DurationDays)
		}
	}
}

// TestGenerateWaterfall проверяет каскад: каждая задача начинается через
// день после окончания предыдущей.
func TestGenerateWaterfall(t *testing.T) {
	items := []models.LineItem{
		{ID: "a", Unit: "m²", Quantity: 50, Category: "SERVIÇOS PRELIMINARES", DailyProductivity: floatPtr(50)},
		{ID: "b", Unit: "m²", Quantity: 80, Category: "ALVENARIA E VEDAÇÕES", DailyProductivity: floatPtr(8)},
		{ID: "c", Unit: "m²", Quantity: 300, Category: "PINTURA", DailyProductivity: floatPtr(30)},
	}

	tasks := Generate(items, testNow)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	for i := 1; i < len(tasks); i++ {
		wantStart := tasks[i-1].EndDate.AddDays(1)
		if !tasks[i].StartDate.Equal(wantStart.Time) {
			t.Fatalf("task %d start %s, expected %s", i, tasks[i].StartDate, wantStart)
		}
	}
}

// TestGenerateOrdersByCategory проверяет сортировку по этапам
// строительства независимо от порядка позиций.
func TestGenerateOrdersByCategory(t *testing.T) {
	items := []models.LineItem{
		{ID: "paint", Unit: "m²", Quantity: 30, Category: "PINTURA"},
		{ID: "cleanup", Unit: "m²", Quantity: 50, Category: "SERVIÇOS PRELIMINARES"},
		{ID: "walls", Unit: "m²", Quantity: 16, Category: "ALVENARIA E VEDAÇÕES"},
	}

	tasks := Generate(items, testNow)
	want := []string{"task-cleanup", "task-walls", "task-paint"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, tasks[i].ID)
		}
	}
}

// TestGenerateUnknownCategoryLast проверяет, что неизвестный этап
// планируется после всех известных, со стабильным порядком вставки.
func TestGenerateUnknownCategoryLast(t *testing.T) {
	items := []models.LineItem{
		{ID: "x", Unit: "vb", Quantity: 1, Category: "OUTROS"},
		{ID: "y", Unit: "m²", Quantity: 20, Category: "SERVIÇOS COMPLEMENTARES"},
		{ID: "z", Unit: "vb", Quantity: 1, Category: "OUTROS"},
	}

	tasks := Generate(items, testNow)
	want := []string{"task-y", "task-x", "task-z"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, tasks[i].ID)
		}
	}
}

// TestGenerateUsesCatalogProductivity проверяет подхват выработки из
// справочника по точному описанию, когда у позиции она не задана.
func TestGenerateUsesCatalogProductivity(t *testing.T) {
	items := []models.LineItem{
		{ID: "item-pintura", Description: "Pintura látex PVA em parede, duas demãos", Unit: "m²", Quantity: 300, Category: "PINTURA"},
	}

	tasks := Generate(items, testNow)
	if tasks[0].DurationDays != 10 {
		t.Fatalf("expected 10 days from catalog productivity, got %d", tasks[0].DurationDays)
	}
}

// TestGenerateBenchmarkFallback проверяет ориентир этапа, когда ни
// позиция, ни справочник выработку не дают.
func TestGenerateBenchmarkFallback(t *testing.T) {
	items := []models.LineItem{
		{ID: "item-forro", Description: "Forro especial", Unit: "m²", Quantity: 45, Category: "FORROS"},
	}

	tasks := Generate(items, testNow)
	if tasks[0].DurationDays != 3 {
		t.Fatalf("expected 3 days (45/15), got %d", tasks[0].DurationDays)
	}
}

// TestGenerateStartsToday проверяет, что первая задача начинается в день
// генерации с отброшенным временем суток.
func TestGenerateStartsToday(t *testing.T) {
	items := []models.LineItem{
		{ID: "a", Unit: "m²", Quantity: 10, Category: "PINTURA"},
	}

	tasks := Generate(items, testNow)
	want := models.NewDate(testNow)
	if !tasks[0].StartDate.Equal(want.Time) {
		t.Fatalf("expected start %s, got %s", want, tasks[0].StartDate)
	}
	if tasks[0].Status != models.TaskPlanned {
		t.Fatalf("expected status PLANEJADO, got %s", tasks[0].Status)
	}
}
