package core

import "github.com/shopspring/decimal"

// Stats is the dashboard summary derived from AppData.
type Stats struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	TotalOnlyExpense decimal.Decimal `json:"totalOnlyExpense"`
	TotalOnlyBills   decimal.Decimal `json:"totalOnlyBills"`
	Balance          decimal.Decimal `json:"balance"`
	TotalReceivable  decimal.Decimal `json:"totalReceivable"`
	TotalPayable     decimal.Decimal `json:"totalPayable"`
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// ComputeStats sums the collections. Bills count toward expense whatever
// their status; loans count only while pending.
func ComputeStats(data AppData) Stats {
	var s Stats
	for _, i := range data.Incomes {
		s.TotalIncome = s.TotalIncome.Add(i.Amount)
	}
	for _, e := range data.Expenses {
		s.TotalOnlyExpense = s.TotalOnlyExpense.Add(e.Amount)
	}
	for _, b := range data.Bills {
		s.TotalOnlyBills = s.TotalOnlyBills.Add(b.Amount)
	}
	for _, l := range data.Loans {
		if l.Status != StatusPending {
			continue
		}
		switch l.Type {
		case LoanGiven:
			s.TotalReceivable = s.TotalReceivable.Add(l.Outstanding())
		case LoanTaken:
			s.TotalPayable = s.TotalPayable.Add(l.Outstanding())
		}
	}
	s.TotalExpense = s.TotalOnlyExpense.Add(s.TotalOnlyBills)
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// ExpensesByCategory sums expense amounts per category in order of first
// appearance.
func ExpensesByCategory(data AppData) []CategoryAmount {
	idx := make(map[string]int)
	var out []CategoryAmount
	for _, e := range data.Expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, CategoryAmount{Name: e.Category})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}
