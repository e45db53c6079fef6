package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/auth"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/workspace"
)

type OptimizeHandler struct {
	Sessions *workspace.Sessions
}

// NewOptimizeHandler создает обработчик оптимизации сметы.
func NewOptimizeHandler(sessions *workspace.Sessions) *OptimizeHandler {
	return &OptimizeHandler{Sessions: sessions}
}

type ScanResponse struct {
	Strategies []models.OptimizationStrategy `json:"strategies"`
}

type ApplyStrategiesRequest struct {
	Strategies []models.OptimizationStrategy `json:"strategies" validate:"required,min=1"`
}

type ApplyStrategiesResponse struct {
	Items      []models.LineItem `json:"items"`
	GrandTotal float64           `json:"grand_total"`
}

// Scan пересчитывает предложения экономии по текущей смете. Уже
// оптимизированные позиции в предложения не попадают.
func (h *OptimizeHandler) Scan(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if len(ws.Items()) == 0 {
		return badRequest(c, "budget has no items to analyze")
	}

	strategies := ws.ScanStrategies()
	if strategies == nil {
		strategies = []models.OptimizationStrategy{}
	}

	return c.JSON(http.StatusOK, ScanResponse{Strategies: strategies})
}

// Apply применяет выбранные стратегии и возвращает обновленную смету.
func (h *OptimizeHandler) Apply(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ApplyStrategiesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	items := ws.ApplyStrategies(req.Strategies)

	return c.JSON(http.StatusOK, ApplyStrategiesResponse{
		Items:      items,
		GrandTotal: ws.GrandTotal(),
	})
}

func (h *OptimizeHandler) workspaceFromContext(c echo.Context) (*workspace.Workspace, bool) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return nil, false
	}
	return h.Sessions.Get(userID), true
}
