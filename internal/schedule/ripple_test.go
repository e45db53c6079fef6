package schedule

import (
	"testing"

	"example.com/obra-budget/backend/internal/models"
)

func rippleFixture(t *testing.T) []models.ScheduleTask {
	t.Helper()

	items := []models.LineItem{
		{ID: "a", Unit: "m²", Quantity: 50, Category: "SERVIÇOS PRELIMINARES", DailyProductivity: floatPtr(50)},
		{ID: "b", Unit: "m²", Quantity: 80, Category: "ALVENARIA E VEDAÇÕES", DailyProductivity: floatPtr(8)},
		{ID: "c", Unit: "m²", Quantity: 300, Category: "PINTURA", DailyProductivity: floatPtr(30)},
	}
	return Generate(items, testNow)
}

// TestApplyDelayExtendsImpactedTask проверяет продление задержанной
// задачи и смену статуса на ATRASADO.
func TestApplyDelayExtendsImpactedTask(t *testing.T) {
	tasks := rippleFixture(t)
	before := tasks[1]

	if !ApplyDelay(tasks, "task-b", 3) {
		t.Fatal("expected delay to apply")
	}

	after := tasks[1]
	if !after.StartDate.Equal(before.StartDate.Time) {
		t.Fatalf("impacted task start moved: %s", after.StartDate)
	}
	if !after.EndDate.Equal(before.EndDate.AddDays(3).Time) {
		t.Fatalf("expected end %s, got %s", before.EndDate.AddDays(3), after.EndDate)
	}
	if after.DurationDays != before.DurationDays+3 {
		t.Fatalf("expected duration %d, got %d", before.DurationDays+3, after.DurationDays)
	}
	if after.Status != models.TaskDelayed {
		t.Fatalf("expected status ATRASADO, got %s", after.Status)
	}
}

// TestApplyDelayShiftsDownstream проверяет сдвиг последующих задач без
// изменения их длительности и статуса.
func TestApplyDelayShiftsDownstream(t *testing.T) {
	tasks := rippleFixture(t)
	before := tasks[2]

	ApplyDelay(tasks, "task-b", 3)

	after := tasks[2]
	if !after.StartDate.Equal(before.StartDate.AddDays(3).Time) {
		t.Fatalf("expected start %s, got %s", before.StartDate.AddDays(3), after.StartDate)
	}
	if !after.EndDate.Equal(before.EndDate.AddDays(3).Time) {
		t.Fatalf("expected end %s, got %s", before.EndDate.AddDays(3), after.EndDate)
	}
	if after.DurationDays != before.DurationDays {
		t.Fatalf("downstream duration changed: %d", after.DurationDays)
	}
	if after.Status != models.TaskPlanned {
		t.Fatalf("downstream status changed: %s", after.Status)
	}
}

// TestApplyDelayKeepsUpstream проверяет, что задачи до задержанной не
// трогаются.
func TestApplyDelayKeepsUpstream(t *testing.T) {
	tasks := rippleFixture(t)
	before := tasks[0]

	ApplyDelay(tasks, "task-b", 3)

	after := tasks[0]
	if !after.StartDate.Equal(before.StartDate.Time) || !after.EndDate.Equal(before.EndDate.Time) {
		t.Fatal("upstream task was shifted")
	}
}

// TestApplyDelayUnknownTask проверяет no-op на неизвестной задаче.
func TestApplyDelayUnknownTask(t *testing.T) {
	tasks := rippleFixture(t)
	if ApplyDelay(tasks, "task-missing", 3) {
		t.Fatal("expected no-op for unknown task")
	}
}

// TestApplyDelayNonPositive проверяет отказ на нулевой и отрицательной
// задержке.
func TestApplyDelayNonPositive(t *testing.T) {
	tasks := rippleFixture(t)
	if ApplyDelay(tasks, "task-b", 0) {
		t.Fatal("expected no-op for zero delay")
	}
	if ApplyDelay(tasks, "task-b", -2) {
		t.Fatal("expected no-op for negative delay")
	}
}
