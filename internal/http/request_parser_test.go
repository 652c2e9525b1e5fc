package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hisab/internal/core"
)

func postForm(t *testing.T, values url.Values) *formReader {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	f, err := newFormReader(req, core.Date("2024-05-01"))
	if err != nil {
		t.Fatalf("newFormReader: %v", err)
	}
	return f
}

func TestParseIncome(t *testing.T) {
	f := postForm(t, url.Values{
		"amount":   {"12,50"},
		"category": {"  বেতন\x00 "},
		"note":     {"মে মাস"},
	})
	in := parseIncome(f, "id-1")

	if f.Err() != nil {
		t.Fatalf("unexpected error: %v", f.Err())
	}
	if in.ID != "id-1" || in.Amount.String() != "12.5" {
		t.Errorf("income = %+v", in)
	}
	if in.Category != "বেতন" {
		t.Errorf("category = %q, want sanitized", in.Category)
	}
	if in.Date != "2024-05-01" {
		t.Errorf("date = %q, want default today", in.Date)
	}
}

func TestParseExpenseAmountDefaultsToQuantityTimesPrice(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"blank amount", url.Values{"quantity": {"2"}, "unitPrice": {"45.5"}}, "91"},
		{"explicit amount wins", url.Values{"quantity": {"2"}, "unitPrice": {"45.5"}, "amount": {"80"}}, "80"},
		{"nothing given", url.Values{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := postForm(t, tt.values)
			e := parseExpense(f, "")
			if f.Err() != nil {
				t.Fatalf("unexpected error: %v", f.Err())
			}
			if e.Amount.String() != tt.want {
				t.Errorf("amount = %s, want %s", e.Amount, tt.want)
			}
		})
	}
}

func TestParseBadAmount(t *testing.T) {
	f := postForm(t, url.Values{"amount": {"abc"}})
	_ = parseBill(f, "")
	if !errors.Is(f.Err(), core.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", f.Err())
	}
	if !strings.Contains(f.Err().Error(), "amount") {
		t.Errorf("err %q does not name the field", f.Err())
	}
}

func TestParseLoanDefaults(t *testing.T) {
	f := postForm(t, url.Values{
		"personName": {"করিম"},
		"amount":     {"1000"},
		"type":       {"unknown"},
	})
	l := parseLoan(f, "")

	if l.Type != core.LoanGiven {
		t.Errorf("type = %q, want given", l.Type)
	}
	if l.Status != core.StatusPending {
		t.Errorf("status = %q, want pending", l.Status)
	}
	if !l.DueDate.IsEmpty() {
		t.Errorf("due date = %q, want empty", l.DueDate)
	}
	if !l.PaidAmount.IsZero() {
		t.Errorf("paid = %s, want 0", l.PaidAmount)
	}
}

func TestParseLoanTaken(t *testing.T) {
	f := postForm(t, url.Values{
		"type":       {string(core.LoanTaken)},
		"status":     {"paid"},
		"paidAmount": {"৫০০"},
		"dueDate":    {"2024-06-30"},
	})
	l := parseLoan(f, "x")

	if l.Type != core.LoanTaken || l.Status != core.StatusPaid {
		t.Errorf("loan = %+v", l)
	}
	if l.PaidAmount.String() != "500" {
		t.Errorf("paid = %s, want 500", l.PaidAmount)
	}
	if l.DueDate != "2024-06-30" {
		t.Errorf("due = %q", l.DueDate)
	}
}

func TestParseMarketItem(t *testing.T) {
	f := postForm(t, url.Values{
		"name":           {"চাল"},
		"quantity":       {"5"},
		"unit":           {string(core.UnitKilogram)},
		"estimatedPrice": {"350"},
	})
	it := parseMarketItem(f, "")

	if it.Name != "চাল" || it.Unit != core.UnitKilogram || it.IsPurchased {
		t.Errorf("item = %+v", it)
	}
	if it.EstimatedPrice.String() != "350" {
		t.Errorf("price = %s", it.EstimatedPrice)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  hello  ", "hello"},
		{"a\x01b", "ab"},
		{"line\nbreak", "line\nbreak"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
