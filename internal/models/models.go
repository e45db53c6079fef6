package models

import (
	"time"

	"github.com/google/uuid"
)

type PriceSource string

type ItemKind string

type TaskStatus string

type BudgetStatus string

type StrategyKind string

const (
	SourceSeinfra  PriceSource = "SEINFRA"
	SourceMercado  PriceSource = "MERCADO"
	SourceEstimado PriceSource = "ESTIMADO"

	KindMaterial ItemKind = "MATERIAL"
	KindLabor    ItemKind = "MAO_DE_OBRA"
	KindLumpSum  ItemKind = "VERBA"

	TaskPlanned    TaskStatus = "PLANEJADO"
	TaskInProgress TaskStatus = "EM_ANDAMENTO"
	TaskDone       TaskStatus = "CONCLUIDO"
	TaskDelayed    TaskStatus = "ATRASADO"

	BudgetDraft    BudgetStatus = "Rascunho"
	BudgetSent     BudgetStatus = "Enviado"
	BudgetApproved BudgetStatus = "Aprovado"

	StrategyMaterialSwap  StrategyKind = "MATERIAL_SWAP"
	StrategyLaborDiscount StrategyKind = "LABOR_DISCOUNT"
	StrategyRounding      StrategyKind = "ROUNDING"
)

// CategoryOther принимает позиции вне фиксированных этапов строительства.
const CategoryOther = "OUTROS"

// ConstructionCategories — фиксированный порядок этапов строительства.
var ConstructionCategories = []string{
	"SERVIÇOS PRELIMINARES",
	"INFRAESTRUTURA / FUNDAÇÃO",
	"SUPERESTRUTURA",
	"ALVENARIA E VEDAÇÕES",
	"ESQUADRIAS",
	"COBERTURA",
	"INSTALAÇÕES ELÉTRICAS",
	"INSTALAÇÕES HIDROSSANITÁRIAS",
	"REVESTIMENTOS DE PAREDE",
	"REVESTIMENTOS DE PISO",
	"FORROS",
	"PINTURA",
	"LOUÇAS E METAIS",
	"SERVIÇOS COMPLEMENTARES",
}

var categoryRanks = buildCategoryRanks()

func buildCategoryRanks() map[string]int {
	ranks := make(map[string]int, len(ConstructionCategories))
	for i, category := range ConstructionCategories {
		ranks[category] = i
	}
	return ranks
}

// CategoryRank возвращает порядковый номер этапа; неизвестные этапы
// получают одинаковый ранг после всех известных.
func CategoryRank(category string) int {
	if rank, ok := categoryRanks[category]; ok {
		return rank
	}
	return len(ConstructionCategories)
}

// IsKnownCategory сообщает, входит ли этап в фиксированный список.
func IsKnownCategory(category string) bool {
	_, ok := categoryRanks[category]
	return ok
}

// IsValidKind проверяет тип позиции сметы.
func IsValidKind(kind ItemKind) bool {
	switch kind {
	case KindMaterial, KindLabor, KindLumpSum:
		return true
	default:
		return false
	}
}

// IsValidTaskStatus проверяет статус задачи графика работ.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskPlanned, TaskInProgress, TaskDone, TaskDelayed:
		return true
	default:
		return false
	}
}

// IsValidBudgetStatus проверяет статус сохраненной сметы.
func IsValidBudgetStatus(status BudgetStatus) bool {
	switch status {
	case BudgetDraft, BudgetSent, BudgetApproved:
		return true
	default:
		return false
	}
}

// Date — календарная дата без времени суток, в JSON как "2006-01-02".
type Date struct {
	time.Time
}

// NewDate отбрасывает время суток, оставляя дату в UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает дату в формате "2006-01-02".
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return Date{}, err
	}
	return Date{parsed}, nil
}

// AddDays возвращает дату, сдвинутую на days календарных дней.
func (d Date) AddDays(days int) Date {
	return Date{d.Time.AddDate(0, 0, days)}
}

// String возвращает дату в формате "2006-01-02".
func (d Date) String() string {
	return d.Time.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == "null" || value == `""` {
		return nil
	}
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// LineItem — одна позиция сметы: материал, работа или фиксированная сумма.
type LineItem struct {
	ID                string      `json:"id"`
	Description       string      `json:"description"`
	Unit              string      `json:"unit"`
	Quantity          float64     `json:"quantity"`
	UnitPrice         float64     `json:"unit_price"`
	Total             float64     `json:"total"`
	Source            PriceSource `json:"source"`
	Kind              ItemKind    `json:"kind"`
	Category          string      `json:"category"`
	Optimized         bool        `json:"optimized"`
	DailyProductivity *float64    `json:"daily_productivity,omitempty"`
}

// ScheduleTask — окно выполнения одной позиции в каскадном графике работ.
type ScheduleTask struct {
	ID           string     `json:"id"`
	BudgetItemID string     `json:"budget_item_id,omitempty"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	StartDate    Date       `json:"start_date"`
	EndDate      Date       `json:"end_date"`
	DurationDays int        `json:"duration_days"`
	Status       TaskStatus `json:"status"`
}

// OptimizationStrategy — эфемерное предложение экономии; не сохраняется.
type OptimizationStrategy struct {
	ID          string       `json:"id"`
	Kind        StrategyKind `json:"kind"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Savings     float64      `json:"savings"`
	Selected    bool         `json:"selected"`
	TargetIDs   []string     `json:"target_ids,omitempty"`
}

// Budget — именованный снимок сметы вместе с графиком работ.
type Budget struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	ClientName   string         `json:"client_name"`
	Items        []LineItem     `json:"items"`
	TotalValue   float64        `json:"total_value"`
	Status       BudgetStatus   `json:"status"`
	PaymentTerms string         `json:"payment_terms"`
	Schedule     []ScheduleTask `json:"schedule"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
