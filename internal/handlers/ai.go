package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/ai"
	"example.com/obra-budget/backend/internal/auth"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/notifications"
	"example.com/obra-budget/backend/internal/workspace"
)

type AIHandler struct {
	Sessions *workspace.Sessions
	Service  *ai.Service
	Notifier *notifications.Hub
	Logger   *slog.Logger
}

// NewAIHandler создает обработчик генерации сметы.
func NewAIHandler(sessions *workspace.Sessions, service *ai.Service, notifier *notifications.Hub, logger *slog.Logger) *AIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AIHandler{
		Sessions: sessions,
		Service:  service,
		Notifier: notifier,
		Logger:   logger,
	}
}

type GenerateItemsRequest struct {
	Description string `json:"description" validate:"required,max=2000"`
}

type GenerateItemsResponse struct {
	Items      []models.LineItem `json:"items"`
	GrandTotal float64           `json:"grand_total"`
}

// GenerateItems разбивает описание услуги на позиции сметы через модель.
// Позиции добавляются в рабочую смету только при полном успехе: при
// любой ошибке генерации смета не меняется.
func (h *AIHandler) GenerateItems(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	ws := h.Sessions.Get(userID)

	var req GenerateItemsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return badRequest(c, "description is required")
	}

	input := ai.GenerateInput{
		Description:     description,
		Source:          ws.Source(),
		IncludeMaterial: ws.IncludeMaterial(),
	}

	items, _, _, err := h.Service.GenerateItems(c.Request().Context(), input)
	if err != nil {
		h.Logger.Error("ai generation failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "generation failed, try again"})
	}

	ws.AddItems(items)
	publishItemsGenerated(h.Notifier, userID, len(items))

	return c.JSON(http.StatusOK, GenerateItemsResponse{
		Items:      items,
		GrandTotal: ws.GrandTotal(),
	})
}
