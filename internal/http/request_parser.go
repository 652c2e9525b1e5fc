// Package http provides HTTP server and handler implementations.
//
// This file turns submitted forms into ledger records. Fields are not
// validated beyond parsing numbers; the ledger accepts whatever the user
// typed.

package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"hisab/internal/core"
)

// formReader reads one submitted form. The first amount that fails to parse
// is kept in Err.
type formReader struct {
	values url.Values
	today  core.Date
	err    error
}

func newFormReader(r *http.Request, today core.Date) (*formReader, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &formReader{values: r.PostForm, today: today}, nil
}

// String returns the sanitized value of key.
func (f *formReader) String(key string) string {
	return sanitizeInput(f.values.Get(key))
}

// Blank reports whether key is missing or only whitespace.
func (f *formReader) Blank(key string) bool {
	return f.String(key) == ""
}

// Amount parses key with core.ParseAmount. Blank is zero.
func (f *formReader) Amount(key string) decimal.Decimal {
	d, err := core.ParseAmount(f.values.Get(key))
	if err != nil {
		if f.err == nil {
			f.err = fmt.Errorf("%s: %w", key, err)
		}
		return decimal.Zero
	}
	return d
}

// Date returns key, or today when blank.
func (f *formReader) Date(key string) core.Date {
	if v := f.String(key); v != "" {
		return core.Date(v)
	}
	return f.today
}

// OptionalDate returns key as given; blank stays blank.
func (f *formReader) OptionalDate(key string) core.Date {
	return core.Date(f.String(key))
}

func (f *formReader) Status(key string) core.Status {
	if s, ok := core.ParseStatus(f.String(key)); ok {
		return s
	}
	return core.StatusPending
}

func (f *formReader) Err() error {
	return f.err
}

func parseIncome(f *formReader, id string) core.Income {
	return core.Income{
		ID:       id,
		Amount:   f.Amount("amount"),
		Category: f.String("category"),
		Date:     f.Date("date"),
		Note:     f.String("note"),
	}
}

// parseExpense fills a blank amount with quantity times unit price.
func parseExpense(f *formReader, id string) core.Expense {
	e := core.Expense{
		ID:        id,
		ItemName:  f.String("itemName"),
		Category:  f.String("category"),
		Date:      f.Date("date"),
		Quantity:  f.Amount("quantity"),
		Unit:      core.ParseUnit(f.String("unit")),
		UnitPrice: f.Amount("unitPrice"),
		Note:      f.String("note"),
	}
	if f.Blank("amount") {
		e.Amount = e.Quantity.Mul(e.UnitPrice)
	} else {
		e.Amount = f.Amount("amount")
	}
	return e
}

func parseBill(f *formReader, id string) core.Bill {
	return core.Bill{
		ID:          id,
		Title:       f.String("title"),
		Amount:      f.Amount("amount"),
		Category:    core.ParseBillCategory(f.String("category")),
		Date:        f.Date("date"),
		Status:      f.Status("status"),
		PhoneNumber: f.String("phoneNumber"),
		Note:        f.String("note"),
	}
}

func parseLoan(f *formReader, id string) core.Loan {
	typ, ok := core.ParseLoanType(f.String("type"))
	if !ok {
		typ = core.LoanGiven
	}
	return core.Loan{
		ID:          id,
		PersonName:  f.String("personName"),
		PhoneNumber: f.String("phoneNumber"),
		Amount:      f.Amount("amount"),
		PaidAmount:  f.Amount("paidAmount"),
		Type:        typ,
		Date:        f.Date("date"),
		DueDate:     f.OptionalDate("dueDate"),
		Status:      f.Status("status"),
		Note:        f.String("note"),
	}
}

func parseMarketItem(f *formReader, id string) core.MarketItem {
	return core.MarketItem{
		ID:             id,
		Name:           f.String("name"),
		Quantity:       f.Amount("quantity"),
		Unit:           core.ParseUnit(f.String("unit")),
		EstimatedPrice: f.Amount("estimatedPrice"),
		IsPurchased:    f.String("isPurchased") == "on" || f.String("isPurchased") == "true",
	}
}
