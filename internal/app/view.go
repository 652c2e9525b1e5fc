package app

import (
	"github.com/shopspring/decimal"

	"hisab/internal/core"
)

// View is what the active tab renders. Only the collections the tab shows
// are filled in.
type View struct {
	Tab   Tab
	Stats core.Stats

	Incomes     []core.Income
	Expenses    []core.Expense
	Bills       []core.Bill
	Loans       []core.Loan
	MarketItems []core.MarketItem

	// Dashboard only.
	ExpensesByCategory []core.CategoryAmount
	PendingBills       []core.Bill

	// Market only: estimated cost of items not yet bought.
	MarketRemaining decimal.Decimal
}

// View renders the active tab.
func (c *Controller) View() View {
	return c.ViewOf(c.ActiveTab())
}

// ViewOf renders t without changing the active tab.
func (c *Controller) ViewOf(t Tab) View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d := c.data.Clone()
	v := View{Tab: t, Stats: core.ComputeStats(d)}

	switch t {
	case TabIncome:
		v.Incomes = d.Incomes
	case TabExpense:
		v.Expenses = d.Expenses
	case TabBill:
		v.Bills = d.Bills
	case TabLoan:
		v.Loans = d.Loans
	case TabMarket:
		v.MarketItems = d.MarketItems
		for _, it := range d.MarketItems {
			if !it.IsPurchased {
				v.MarketRemaining = v.MarketRemaining.Add(it.EstimatedPrice)
			}
		}
	default:
		v.Tab = TabDashboard
		v.Incomes = d.Incomes
		v.Expenses = d.Expenses
		v.Bills = d.Bills
		v.ExpensesByCategory = core.ExpensesByCategory(d)
		for _, b := range d.Bills {
			if b.Status == core.StatusPending {
				v.PendingBills = append(v.PendingBills, b)
			}
		}
	}
	return v
}
