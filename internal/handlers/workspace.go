package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/auth"
	"example.com/obra-budget/backend/internal/budget"
	"example.com/obra-budget/backend/internal/catalog"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/workspace"
)

type WorkspaceHandler struct {
	Sessions *workspace.Sessions
}

// NewWorkspaceHandler создает обработчик активной сметы.
func NewWorkspaceHandler(sessions *workspace.Sessions) *WorkspaceHandler {
	return &WorkspaceHandler{Sessions: sessions}
}

type UpdateConfigRequest struct {
	Source          *models.PriceSource `json:"source" validate:"omitempty,oneof=SEINFRA MERCADO"`
	IncludeMaterial *bool               `json:"include_material"`
}

type UpdatePaymentTermsRequest struct {
	PaymentTerms string `json:"payment_terms" validate:"required,max=2000"`
}

type AddItemRequest struct {
	CatalogID   string `json:"catalog_id"`
	Description string `json:"description" validate:"omitempty,max=200"`
	Category    string `json:"category" validate:"omitempty,max=100"`
}

type UpdateItemRequest struct {
	Description       *string          `json:"description" validate:"omitempty,max=200"`
	Unit              *string          `json:"unit" validate:"omitempty,max=20"`
	Quantity          *float64         `json:"quantity" validate:"omitempty,gte=0"`
	UnitPrice         *float64         `json:"unit_price"`
	Category          *string          `json:"category" validate:"omitempty,max=100"`
	Kind              *models.ItemKind `json:"kind" validate:"omitempty,oneof=MATERIAL MAO_DE_OBRA VERBA"`
	DailyProductivity *float64         `json:"daily_productivity" validate:"omitempty,gt=0"`
}

type CatalogSearchResponse struct {
	Entries []catalog.Entry `json:"entries"`
}

// State возвращает полный снимок активной сметы.
func (h *WorkspaceHandler) State(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	return c.JSON(http.StatusOK, ws.State())
}

// UpdateConfig переключает источник цен и режим состава сметы.
// Смена источника сразу синхронизирует цены всех позиций.
func (h *WorkspaceHandler) UpdateConfig(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateConfigRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if req.Source != nil {
		ws.SetSource(*req.Source)
	}
	if req.IncludeMaterial != nil {
		ws.SetIncludeMaterial(*req.IncludeMaterial)
	}

	return c.JSON(http.StatusOK, ws.State())
}

// UpdatePaymentTerms заменяет текст условий оплаты.
func (h *WorkspaceHandler) UpdatePaymentTerms(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdatePaymentTermsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ws.SetPaymentTerms(req.PaymentTerms)
	return c.NoContent(http.StatusNoContent)
}

// AddItem добавляет позицию: из справочника по catalog_id либо вручную
// по описанию с нулевой оценочной ценой.
func (h *WorkspaceHandler) AddItem(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if req.CatalogID != "" {
		entry, found := catalog.LookupByID(req.CatalogID)
		if !found {
			return notFound(c, "catalog entry not found")
		}

		source := ws.Source()
		price := entry.Price(source)
		item := models.LineItem{
			ID:                uuid.NewString(),
			Description:       entry.Description,
			Unit:              entry.Unit,
			Quantity:          1,
			UnitPrice:         price,
			Total:             price,
			Source:            source,
			Kind:              entry.Kind,
			Category:          entry.Category,
			DailyProductivity: entry.ProductivityPtr(),
		}
		ws.AddItem(item)
		return c.JSON(http.StatusCreated, item)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return badRequest(c, "description is required")
	}

	category := strings.TrimSpace(req.Category)
	if !models.IsKnownCategory(category) {
		category = models.CategoryOther
	}

	productivity := 1.0
	item := models.LineItem{
		ID:                uuid.NewString(),
		Description:       description,
		Unit:              "vb",
		Quantity:          1,
		UnitPrice:         0,
		Total:             0,
		Source:            models.SourceEstimado,
		Kind:              models.KindLumpSum,
		Category:          category,
		DailyProductivity: &productivity,
	}
	ws.AddItem(item)
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem применяет частичное обновление позиции. Итог
// пересчитывается при смене количества или цены за единицу.
func (h *WorkspaceHandler) UpdateItem(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	patch := budget.ItemPatch{
		Description:       req.Description,
		Unit:              req.Unit,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		Category:          req.Category,
		Kind:              req.Kind,
		DailyProductivity: req.DailyProductivity,
	}

	item, found := ws.UpdateItem(c.Param("itemId"), patch)
	if !found {
		return notFound(c, "item not found")
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem удаляет позицию; отсутствующая позиция — no-op.
func (h *WorkspaceHandler) DeleteItem(c echo.Context) error {
	ws, ok := h.workspaceFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ws.DeleteItem(c.Param("itemId"))
	return c.NoContent(http.StatusNoContent)
}

// SearchCatalog ищет записи справочника по подстроке описания.
func (h *WorkspaceHandler) SearchCatalog(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return badRequest(c, "query is required")
	}

	entries := catalog.Search(query)
	if entries == nil {
		entries = []catalog.Entry{}
	}

	return c.JSON(http.StatusOK, CatalogSearchResponse{Entries: entries})
}

func (h *WorkspaceHandler) workspaceFromContext(c echo.Context) (*workspace.Workspace, bool) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return nil, false
	}
	return h.Sessions.Get(userID), true
}
