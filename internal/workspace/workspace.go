package workspace

import (
	"sync"
	"time"

	"example.com/obra-budget/backend/internal/budget"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/optimize"
	"example.com/obra-budget/backend/internal/schedule"
)

// DefaultPaymentTerms — условия оплаты, подставляемые в новую смету.
const DefaultPaymentTerms = `FORMA DE PAGAMENTO:
Pagamento via PIX, 70% no início e 30% na entrega, ou valor integral com 4% de desconto, ou medições semanais conforme o avanço da obra, disposto no cronograma de acompanhamento.`

// Workspace — активная смета пользователя: позиции, график работ,
// источник цен и условия оплаты. Все операции выполняются под одним
// мьютексом: ровно один логический писатель, каждая операция атомарна
// с точки зрения вызывающего.
type Workspace struct {
	mu           sync.Mutex
	store        *budget.Store
	tasks        []models.ScheduleTask
	source       models.PriceSource
	includeMat   bool
	paymentTerms string
}

// New создает рабочую область с источником SEINFRA по умолчанию.
func New() *Workspace {
	return &Workspace{
		store:        budget.NewStore(),
		source:       models.SourceSeinfra,
		includeMat:   true,
		paymentTerms: DefaultPaymentTerms,
	}
}

// State — снимок рабочей области для выдачи наружу.
type State struct {
	Items           []models.LineItem     `json:"items"`
	Schedule        []models.ScheduleTask `json:"schedule"`
	Source          models.PriceSource    `json:"source"`
	IncludeMaterial bool                  `json:"include_material"`
	PaymentTerms    string                `json:"payment_terms"`
	GrandTotal      float64               `json:"grand_total"`
}

// State возвращает согласованный снимок: итоги уже пересчитаны, ничего
// не досчитывается лениво после выдачи.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	return State{
		Items:           w.store.Items(),
		Schedule:        w.copyTasks(),
		Source:          w.source,
		IncludeMaterial: w.includeMat,
		PaymentTerms:    w.paymentTerms,
		GrandTotal:      w.store.GrandTotal(),
	}
}

// SetSource переключает источник цен и синхронизирует все позиции.
// Эффект применяется полностью до возврата: последующие чтения видят
// уже пересчитанную смету.
func (w *Workspace) SetSource(source models.PriceSource) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.source = source
	budget.SyncPrices(w.store, source)
}

// Source возвращает активный источник цен.
func (w *Workspace) Source() models.PriceSource {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.source
}

// SetIncludeMaterial задает режим состава сметы (только работа или
// работа с материалом); влияет на генерацию через AI.
func (w *Workspace) SetIncludeMaterial(include bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.includeMat = include
}

// IncludeMaterial возвращает текущий режим состава сметы.
func (w *Workspace) IncludeMaterial() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.includeMat
}

// SetPaymentTerms заменяет текст условий оплаты.
func (w *Workspace) SetPaymentTerms(terms string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paymentTerms = terms
}

// AddItem добавляет позицию в смету.
func (w *Workspace) AddItem(item models.LineItem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.store.Add(item)
}

// AddItems добавляет пакет позиций (результат генерации) одной операцией.
func (w *Workspace) AddItems(items []models.LineItem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range items {
		w.store.Add(item)
	}
}

// UpdateItem применяет частичное обновление позиции.
func (w *Workspace) UpdateItem(id string, patch budget.ItemPatch) (models.LineItem, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Update(id, patch)
}

// DeleteItem удаляет позицию из сметы.
func (w *Workspace) DeleteItem(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Delete(id)
}

// Items возвращает копию позиций сметы.
func (w *Workspace) Items() []models.LineItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Items()
}

// GrandTotal возвращает текущий итог сметы.
func (w *Workspace) GrandTotal() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.GrandTotal()
}

// Schedule возвращает график работ, генерируя его при первом обращении,
// когда для активной сметы графика еще нет.
func (w *Workspace) Schedule(now time.Time) []models.ScheduleTask {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ensureSchedule(now)
	return w.copyTasks()
}

// RegenerateSchedule строит график заново из текущих позиций.
func (w *Workspace) RegenerateSchedule(now time.Time) []models.ScheduleTask {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tasks = schedule.Generate(w.store.Items(), now)
	return w.copyTasks()
}

// TaskPatch — частичное обновление задачи графика.
type TaskPatch struct {
	Description  *string
	Status       *models.TaskStatus
	StartDate    *models.Date
	EndDate      *models.Date
	DurationDays *int
}

// UpdateTask применяет частичное обновление задачи графика.
func (w *Workspace) UpdateTask(taskID string, patch TaskPatch) (models.ScheduleTask, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.tasks {
		if w.tasks[i].ID != taskID {
			continue
		}

		task := &w.tasks[i]
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.StartDate != nil {
			task.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			task.EndDate = *patch.EndDate
		}
		if patch.DurationDays != nil {
			task.DurationDays = *patch.DurationDays
		}
		return *task, true
	}

	return models.ScheduleTask{}, false
}

// ReportDelay продлевает задачу и сдвигает все последующие на ту же
// величину. Возвращает false, когда задача не найдена.
func (w *Workspace) ReportDelay(taskID string, delayDays int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return schedule.ApplyDelay(w.tasks, taskID, delayDays)
}

// ScanStrategies пересчитывает предложения экономии по текущей смете.
func (w *Workspace) ScanStrategies() []models.OptimizationStrategy {
	w.mu.Lock()
	defer w.mu.Unlock()

	return optimize.Scan(w.store.Items())
}

// ApplyStrategies применяет выбранные стратегии к смете.
func (w *Workspace) ApplyStrategies(strategies []models.OptimizationStrategy) []models.LineItem {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.store.ReplaceAll(optimize.Apply(w.store.Items(), strategies))
	return w.store.Items()
}

// BuildBudget собирает снимок для сохранения: график при необходимости
// генерируется, итог пересчитан.
func (w *Workspace) BuildBudget(clientName string, now time.Time) models.Budget {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ensureSchedule(now)

	return models.Budget{
		ClientName:   clientName,
		Items:        w.store.Items(),
		TotalValue:   w.store.GrandTotal(),
		Status:       models.BudgetDraft,
		PaymentTerms: w.paymentTerms,
		Schedule:     w.copyTasks(),
	}
}

// Load заменяет рабочую область содержимым сохраненной сметы. График
// без снимка генерируется заново из загруженных позиций.
func (w *Workspace) Load(saved models.Budget, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.store.ReplaceAll(saved.Items)

	if len(saved.Schedule) > 0 {
		w.tasks = make([]models.ScheduleTask, len(saved.Schedule))
		copy(w.tasks, saved.Schedule)
	} else {
		w.tasks = schedule.Generate(w.store.Items(), now)
	}

	if saved.PaymentTerms != "" {
		w.paymentTerms = saved.PaymentTerms
	} else {
		w.paymentTerms = DefaultPaymentTerms
	}
}

func (w *Workspace) ensureSchedule(now time.Time) {
	if len(w.tasks) == 0 && w.store.Len() > 0 {
		w.tasks = schedule.Generate(w.store.Items(), now)
	}
}

func (w *Workspace) copyTasks() []models.ScheduleTask {
	out := make([]models.ScheduleTask, len(w.tasks))
	copy(out, w.tasks)
	return out
}
