package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/auth"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/notifications"
	"example.com/obra-budget/backend/internal/workspace"
)

type ScheduleHandler struct {
	Sessions *workspace.Sessions
	Notifier *notifications.Hub
}

// NewScheduleHandler создает обработчик графика работ.
func NewScheduleHandler(sessions *workspace.Sessions, notifier *notifications.Hub) *ScheduleHandler {
	return &ScheduleHandler{Sessions: sessions, Notifier: notifier}
}

type UpdateTaskRequest struct {
	Description  *string            `json:"description" validate:"omitempty,max=200"`
	Status       *models.TaskStatus `json:"status" validate:"omitempty,oneof=PLANEJADO EM_ANDAMENTO CONCLUIDO ATRASADO"`
	StartDate    *string            `json:"start_date"`
	EndDate      *string            `json:"end_date"`
	DurationDays *int               `json:"duration_days" validate:"omitempty,gte=1"`
}

type ReportDelayRequest struct {
	Days   int    `json:"days" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required,max=500"`
}

type ScheduleResponse struct {
	Schedule []models.ScheduleTask `json:"schedule"`
}

type DelayResponse struct {
	Schedule []models.ScheduleTask `json:"schedule"`
	Message  string                `json:"message"`
}

// Get возвращает график, генерируя его при первом обращении.
func (h *ScheduleHandler) Get(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	return c.JSON(http.StatusOK, ScheduleResponse{Schedule: ws.Schedule(time.Now())})
}

// Regenerate строит график заново из текущих позиций сметы.
func (h *ScheduleHandler) Regenerate(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	return c.JSON(http.StatusOK, ScheduleResponse{Schedule: ws.RegenerateSchedule(time.Now())})
}

// UpdateTask применяет частичное обновление задачи графика.
func (h *ScheduleHandler) UpdateTask(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	patch := workspace.TaskPatch{
		Description:  req.Description,
		Status:       req.Status,
		DurationDays: req.DurationDays,
	}

	if req.StartDate != nil {
		parsed, err := models.ParseDate(*req.StartDate)
		if err != nil {
			return badRequest(c, "invalid start date")
		}
		patch.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := models.ParseDate(*req.EndDate)
		if err != nil {
			return badRequest(c, "invalid end date")
		}
		patch.EndDate = &parsed
	}

	task, found := ws.UpdateTask(c.Param("taskId"), patch)
	if !found {
		return notFound(c, "task not found")
	}

	return c.JSON(http.StatusOK, task)
}

// ReportDelay регистрирует задержку: задача продлевается, все
// последующие задачи сдвигаются на ту же величину.
func (h *ScheduleHandler) ReportDelay(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	ws := h.Sessions.Get(userID)

	var req ReportDelayRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return badRequest(c, "reason is required")
	}

	taskID := c.Param("taskId")
	if !ws.ReportDelay(taskID, req.Days) {
		return notFound(c, "task not found")
	}

	message := fmt.Sprintf("Cronograma atualizado! Ocorrência %q adicionou %d dias ao prazo final.", reason, req.Days)
	publishScheduleDelay(h.Notifier, userID, taskID, req.Days, reason)

	return c.JSON(http.StatusOK, DelayResponse{
		Schedule: ws.Schedule(time.Now()),
		Message:  message,
	})
}

func (h *ScheduleHandler) workspaceFromContext(c echo.Context) (*workspace.Workspace, bool) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return nil, false
	}
	return h.Sessions.Get(userID), true
}
