package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestCategoryRank проверяет порядок этапов и ранг неизвестного этапа.
func TestCategoryRank(t *testing.T) {
	if rank := CategoryRank("SERVIÇOS PRELIMINARES"); rank != 0 {
		t.Fatalf("expected rank 0, got %d", rank)
	}
	if CategoryRank("PINTURA") >= CategoryRank("SERVIÇOS COMPLEMENTARES") {
		t.Fatal("expected PINTURA before SERVIÇOS COMPLEMENTARES")
	}
	if rank := CategoryRank("OUTROS"); rank != len(ConstructionCategories) {
		t.Fatalf("expected unknown rank %d, got %d", len(ConstructionCategories), rank)
	}
}

// TestNewDateDropsTime проверяет отбрасывание времени суток.
func TestNewDateDropsTime(t *testing.T) {
	date := NewDate(time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC))
	if date.String() != "2025-03-10" {
		t.Fatalf("expected 2025-03-10, got %s", date)
	}
	if date.Hour() != 0 || date.Minute() != 0 {
		t.Fatal("expected midnight")
	}
}

// TestDateAddDays проверяет календарный сдвиг через границу месяца.
func TestDateAddDays(t *testing.T) {
	date, err := ParseDate("2025-03-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := date.AddDays(3).String(); got != "2025-04-02" {
		t.Fatalf("expected 2025-04-02, got %s", got)
	}
}

// TestDateJSON проверяет сериализацию даты без времени суток.
func TestDateJSON(t *testing.T) {
	date, _ := ParseDate("2025-03-10")

	payload, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `"2025-03-10"` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	var decoded Date
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(date.Time) {
		t.Fatalf("roundtrip mismatch: %s", decoded)
	}
}

// TestValidators проверяет допустимые и недопустимые значения перечислений.
func TestValidators(t *testing.T) {
	if !IsValidKind(KindLabor) || IsValidKind("EQUIPAMENTO") {
		t.Fatal("kind validation broken")
	}
	if !IsValidTaskStatus(TaskDelayed) || IsValidTaskStatus("PAUSADO") {
		t.Fatal("task status validation broken")
	}
	if !IsValidBudgetStatus(BudgetApproved) || IsValidBudgetStatus("Cancelado") {
		t.Fatal("budget status validation broken")
	}
	if !IsKnownCategory("PINTURA") || IsKnownCategory("OUTROS") {
		t.Fatal("category validation broken")
	}
}
