package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/obra-budget/backend/internal/models"
)

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewBudgetRepository создает репозиторий сохраненных смет.
func NewBudgetRepository(db *pgxpool.Pool, logger *slog.Logger) *BudgetRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetRepository{db: db, logger: logger}
}

// Create сохраняет снимок сметы. Позиции и график хранятся как JSONB.
func (r *BudgetRepository) Create(ctx context.Context, budget models.Budget) (models.Budget, error) {
	itemsPayload, err := json.Marshal(budget.Items)
	if err != nil {
		return budget, err
	}

	schedulePayload, err := json.Marshal(budget.Schedule)
	if err != nil {
		return budget, err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO budgets (id, user_id, client_name, items, total_value, status, payment_terms, schedule)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		uuid.New(), budget.UserID, budget.ClientName, itemsPayload, budget.TotalValue, budget.Status, budget.PaymentTerms, schedulePayload,
	).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return budget, err
	}

	return budget, nil
}

// List возвращает сметы пользователя от новых к старым. Строки с
// испорченными снимками пропускаются с записью в лог, загрузка не
// прерывается.
func (r *BudgetRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, client_name, items, total_value, status, payment_terms, schedule, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			r.logger.Error("skipping corrupt budget snapshot", slog.String("error", err.Error()))
			continue
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return budgets, nil
}

// GetByID возвращает смету пользователя по идентификатору.
func (r *BudgetRepository) GetByID(ctx context.Context, userID, budgetID uuid.UUID) (models.Budget, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, client_name, items, total_value, status, payment_terms, schedule, created_at, updated_at
		 FROM budgets
		 WHERE id = $1 AND user_id = $2`,
		budgetID, userID,
	)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}

// UpdateStatus меняет статус сохраненной сметы.
func (r *BudgetRepository) UpdateStatus(ctx context.Context, userID, budgetID uuid.UUID, status models.BudgetStatus) (models.Budget, error) {
	_, err := r.db.Exec(ctx,
		`UPDATE budgets
		 SET status = $3,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		budgetID, userID, status,
	)
	if err != nil {
		return models.Budget{}, err
	}

	return r.GetByID(ctx, userID, budgetID)
}

// Delete удаляет смету пользователя.
func (r *BudgetRepository) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM budgets
		 WHERE id = $1 AND user_id = $2`,
		budgetID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var budget models.Budget
	var itemsPayload []byte
	var schedulePayload []byte

	err := row.Scan(
		&budget.ID,
		&budget.UserID,
		&budget.ClientName,
		&itemsPayload,
		&budget.TotalValue,
		&budget.Status,
		&budget.PaymentTerms,
		&schedulePayload,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	)
	if err != nil {
		return budget, err
	}

	if err := json.Unmarshal(itemsPayload, &budget.Items); err != nil {
		return budget, err
	}
	if len(schedulePayload) > 0 {
		if err := json.Unmarshal(schedulePayload, &budget.Schedule); err != nil {
			return budget, err
		}
	}

	return budget, nil
}
