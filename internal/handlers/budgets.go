package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/auth"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/notifications"
	"example.com/obra-budget/backend/internal/repository"
	"example.com/obra-budget/backend/internal/workspace"
)

type BudgetHandler struct {
	Sessions *workspace.Sessions
	Budgets  *repository.BudgetRepository
	Notifier *notifications.Hub
}

// NewBudgetHandler создает обработчик сохраненных смет.
func NewBudgetHandler(sessions *workspace.Sessions, budgets *repository.BudgetRepository, notifier *notifications.Hub) *BudgetHandler {
	return &BudgetHandler{
		Sessions: sessions,
		Budgets:  budgets,
		Notifier: notifier,
	}
}

type SaveBudgetRequest struct {
	ClientName string `json:"client_name" validate:"required,max=200"`
}

type UpdateBudgetStatusRequest struct {
	Status models.BudgetStatus `json:"status" validate:"required,oneof=Rascunho Enviado Aprovado"`
}

type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
}

// Save сохраняет снимок активной сметы под именем клиента. Пустую смету
// сохранить нельзя.
func (h *BudgetHandler) Save(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	ws := h.Sessions.Get(userID)

	var req SaveBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return badRequest(c, "client name is required")
	}

	snapshot := ws.BuildBudget(clientName, time.Now())
	if len(snapshot.Items) == 0 {
		return badRequest(c, "budget has no items to save")
	}
	snapshot.UserID = userID

	saved, err := h.Budgets.Create(c.Request().Context(), snapshot)
	if err != nil {
		return serverError(c)
	}

	publishBudgetSaved(h.Notifier, userID, saved.ID, saved.TotalValue)

	return c.JSON(http.StatusCreated, saved)
}

// List возвращает сохраненные сметы пользователя от новых к старым.
func (h *BudgetHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgets, err := h.Budgets.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetListResponse{Budgets: budgets})
}

// Get возвращает сохраненную смету по идентификатору.
func (h *BudgetHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return badRequest(c, "invalid budget id")
	}

	budget, err := h.Budgets.GetByID(c.Request().Context(), userID, budgetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, budget)
}

// Load заменяет активную смету содержимым сохраненной.
func (h *BudgetHandler) Load(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return badRequest(c, "invalid budget id")
	}

	budget, err := h.Budgets.GetByID(c.Request().Context(), userID, budgetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	ws := h.Sessions.Get(userID)
	ws.Load(budget, time.Now())

	return c.JSON(http.StatusOK, ws.State())
}

// UpdateStatus меняет статус сохраненной сметы.
func (h *BudgetHandler) UpdateStatus(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return badRequest(c, "invalid budget id")
	}

	var req UpdateBudgetStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	budget, err := h.Budgets.UpdateStatus(c.Request().Context(), userID, budgetID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, budget)
}

// Delete удаляет сохраненную смету.
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return badRequest(c, "invalid budget id")
	}

	if err := h.Budgets.Delete(c.Request().Context(), userID, budgetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
