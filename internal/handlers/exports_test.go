package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/obra-budget/backend/internal/models"
)

func exportFixture() models.Budget {
	start := models.NewDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	return models.Budget{
		ID:         uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		ClientName: "Cliente Teste",
		Items: []models.LineItem{
			{
				ID:          "item-1",
				Description: "Tijolo cerâmico furado 9x19x19cm",
				Unit:        "un",
				Quantity:    1000,
				UnitPrice:   0.68,
				Total:       680.00,
				Source:      models.SourceSeinfra,
				Kind:        models.KindMaterial,
				Category:    "ALVENARIA E VEDAÇÕES",
			},
		},
		Schedule: []models.ScheduleTask{
			{
				ID:           "task-item-1",
				BudgetItemID: "item-1",
				Description:  "Tijolo cerâmico furado 9x19x19cm",
				Category:     "ALVENARIA E VEDAÇÕES",
				StartDate:    start,
				EndDate:      start.AddDays(2),
				DurationDays: 2,
				Status:       models.TaskPlanned,
			},
		},
	}
}

// TestWriteItemsCSV проверяет выгрузку позиций с форматированием сумм.
func TestWriteItemsCSV(t *testing.T) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeItemsCSV(writer, exportFixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one record, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "680.00") {
		t.Fatalf("expected formatted total, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "SEINFRA") {
		t.Fatalf("expected source column, got %q", lines[1])
	}
}

// TestWriteScheduleCSV проверяет выгрузку графика с датами без времени.
func TestWriteScheduleCSV(t *testing.T) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeScheduleCSV(writer, exportFixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one record, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "2025-03-10") {
		t.Fatalf("expected start date, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "PLANEJADO") {
		t.Fatalf("expected status column, got %q", lines[1])
	}
}

// TestFormatHelpers проверяет форматирование значений для CSV.
func TestFormatHelpers(t *testing.T) {
	if got := formatFloat(0.5); got != "0.50" {
		t.Fatalf("expected 0.50, got %s", got)
	}
	if got := formatInt(12); got != "12" {
		t.Fatalf("expected 12, got %s", got)
	}
	if got := formatBool(true); got != "true" {
		t.Fatalf("expected true, got %s", got)
	}
}
