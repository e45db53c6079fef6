package schedule

import (
	"example.com/obra-budget/backend/internal/models"
)

// ApplyDelay продлевает задержанную задачу и сдвигает все последующие
// задачи на ту же величину ("эффект домино"). Длительность последующих
// задач не меняется — двигается только окно. Обход строго по порядку
// индексов. Неизвестный идентификатор — no-op.
func ApplyDelay(tasks []models.ScheduleTask, taskID string, delayDays int) bool {
	if delayDays <= 0 {
		return false
	}

	index := -1
	for i := range tasks {
		if tasks[i].ID == taskID {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	impacted := &tasks[index]
	impacted.EndDate = impacted.EndDate.AddDays(delayDays)
	impacted.DurationDays += delayDays
	impacted.Status = models.TaskDelayed

	for i := index + 1; i < len(tasks); i++ {
		tasks[i].StartDate = tasks[i].StartDate.AddDays(delayDays)
		tasks[i].EndDate = tasks[i].EndDate.AddDays(delayDays)
	}

	return true
}
