package google

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hisab/internal/core"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{CredentialsJSON: "{}"})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := New(context.Background(), Options{SpreadsheetID: "test-id"})
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "test-id", CredentialsFile: "/non/existent/sa.json"})
	if err == nil {
		t.Fatal("expected error for missing credentials file")
	}
	if !strings.Contains(err.Error(), "read service account file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAppendStats_Uninitialized(t *testing.T) {
	c := &Client{spreadsheetID: "x", sheetBase: "Stats"}
	if _, err := c.AppendStats(context.Background(), 1, time.Now(), core.Stats{}); err == nil {
		t.Error("expected error when service is nil")
	}
}

func TestStatsRow(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	s := core.Stats{
		TotalIncome:      decimal.NewFromInt(5000),
		TotalOnlyExpense: decimal.NewFromInt(1200),
		TotalOnlyBills:   decimal.NewFromInt(300),
		TotalExpense:     decimal.NewFromInt(1500),
		Balance:          decimal.NewFromInt(3500),
		TotalReceivable:  decimal.RequireFromString("600.5"),
	}

	row := statsRow(12, at, s)
	if len(row) != len(Header) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(Header))
	}
	want := []any{"2024-05-01T09:30:00Z", int64(12), "5000.00", "1200.00", "300.00", "1500.00", "3500.00", "600.50", "0.00"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %v = %v, want %v", Header[i], row[i], want[i])
		}
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		baseName string
		year     int
		expected string
	}{
		{"Stats", 2025, "2025 Stats"},
		{"", 2023, ""}, // Empty base returns empty
		{"Monthly Stats", 2022, "2022 Monthly Stats"},
		{"2025 Already Prefixed", 2024, "2025 Already Prefixed"}, // Already has year prefix
	}

	for _, tt := range tests {
		got := yearPrefixedName(tt.baseName, tt.year)
		if got != tt.expected {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q",
				tt.baseName, tt.year, got, tt.expected)
		}
	}
}
