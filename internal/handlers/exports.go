package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/auth"
	"example.com/obra-budget/backend/internal/models"
	"example.com/obra-budget/backend/internal/repository"
)

const (
	exportTypeItems    = "items"
	exportTypeSchedule = "schedule"
)

// ExportJSON выгружает сохраненную смету в JSON-файл.
func (h *BudgetHandler) ExportJSON(c echo.Context) error {
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

	filename := "orcamento-" + budget.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, budget)
}

// ExportCSV выгружает позиции или график сохраненной сметы в CSV-файл.
func (h *BudgetHandler) ExportCSV(c echo.Context) error {
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

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeItems
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeItems:
		if err := writeItemsCSV(writer, budget); err != nil {
			return serverError(c)
		}
	case exportTypeSchedule:
		if err := writeScheduleCSV(writer, budget); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "orcamento-" + budget.ID.String() + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeItemsCSV(writer *csv.Writer, budget models.Budget) error {
	header := []string{
		"budget_id",
		"client_name",
		"item_id",
		"description",
		"unit",
		"quantity",
		"unit_price",
		"total",
		"source",
		"kind",
		"category",
		"optimized",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, item := range budget.Items {
		record := []string{
			budget.ID.String(),
			budget.ClientName,
			item.ID,
			item.Description,
			item.Unit,
			formatFloat(item.Quantity),
			formatFloat(item.UnitPrice),
			formatFloat(item.Total),
			string(item.Source),
			string(item.Kind),
			item.Category,
			formatBool(item.Optimized),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeScheduleCSV(writer *csv.Writer, budget models.Budget) error {
	header := []string{
		"budget_id",
		"client_name",
		"task_id",
		"budget_item_id",
		"description",
		"category",
		"start_date",
		"end_date",
		"duration_days",
		"status",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, task := range budget.Schedule {
		record := []string{
			budget.ID.String(),
			budget.ClientName,
			task.ID,
			task.BudgetItemID,
			task.Description,
			task.Category,
			task.StartDate.String(),
			task.EndDate.String(),
			formatInt(task.DurationDays),
			string(task.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}

func formatBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
