package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s = %s, want %s", field, got, want)
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(NewAppData())
	for name, v := range map[string]decimal.Decimal{
		"TotalIncome":      s.TotalIncome,
		"TotalExpense":     s.TotalExpense,
		"TotalOnlyExpense": s.TotalOnlyExpense,
		"TotalOnlyBills":   s.TotalOnlyBills,
		"Balance":          s.Balance,
		"TotalReceivable":  s.TotalReceivable,
		"TotalPayable":     s.TotalPayable,
	} {
		assertDec(t, "0", v, name)
	}

	// nil collections behave like empty ones
	s = ComputeStats(AppData{})
	assertDec(t, "0", s.Balance, "Balance")
}

func TestComputeStats_Balance(t *testing.T) {
	data := NewAppData()
	data.Incomes = []Income{{ID: "i1", Amount: dec("5000")}}
	data.Expenses = []Expense{{ID: "e1", Amount: dec("1200")}}
	data.Bills = []Bill{{ID: "b1", Amount: dec("300"), Status: StatusPending}}

	s := ComputeStats(data)
	assertDec(t, "5000", s.TotalIncome, "TotalIncome")
	assertDec(t, "1200", s.TotalOnlyExpense, "TotalOnlyExpense")
	assertDec(t, "300", s.TotalOnlyBills, "TotalOnlyBills")
	assertDec(t, "1500", s.TotalExpense, "TotalExpense")
	assertDec(t, "3500", s.Balance, "Balance")
}

func TestComputeStats_BillsCountRegardlessOfStatus(t *testing.T) {
	data := NewAppData()
	data.Bills = []Bill{
		{ID: "b1", Amount: dec("100"), Status: StatusPaid},
		{ID: "b2", Amount: dec("50.5"), Status: StatusPending},
	}
	assertDec(t, "150.5", ComputeStats(data).TotalOnlyBills, "TotalOnlyBills")
}

func TestComputeStats_IncomeOrderInvariant(t *testing.T) {
	a := NewAppData()
	a.Incomes = []Income{{ID: "1", Amount: dec("10.10")}, {ID: "2", Amount: dec("20")}, {ID: "3", Amount: dec("-5")}}
	b := NewAppData()
	b.Incomes = []Income{a.Incomes[2], a.Incomes[0], a.Incomes[1]}

	assertDec(t, "25.10", ComputeStats(a).TotalIncome, "a.TotalIncome")
	assert.True(t, ComputeStats(a).TotalIncome.Equal(ComputeStats(b).TotalIncome))
}

func TestComputeStats_Loans(t *testing.T) {
	tests := []struct {
		name           string
		loan           Loan
		wantReceivable string
		wantPayable    string
	}{
		{
			name:           "given pending counts outstanding",
			loan:           Loan{Type: LoanGiven, Status: StatusPending, Amount: dec("1000"), PaidAmount: dec("400")},
			wantReceivable: "600",
			wantPayable:    "0",
		},
		{
			name:           "given paid contributes nothing",
			loan:           Loan{Type: LoanGiven, Status: StatusPaid, Amount: dec("1000"), PaidAmount: dec("400")},
			wantReceivable: "0",
			wantPayable:    "0",
		},
		{
			name:           "taken pending counts payable",
			loan:           Loan{Type: LoanTaken, Status: StatusPending, Amount: dec("750"), PaidAmount: dec("0")},
			wantReceivable: "0",
			wantPayable:    "750",
		},
		{
			name:           "overpaid loan goes negative",
			loan:           Loan{Type: LoanTaken, Status: StatusPending, Amount: dec("100"), PaidAmount: dec("150")},
			wantReceivable: "0",
			wantPayable:    "-50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewAppData()
			data.Loans = []Loan{tt.loan}
			s := ComputeStats(data)
			assertDec(t, tt.wantReceivable, s.TotalReceivable, "TotalReceivable")
			assertDec(t, tt.wantPayable, s.TotalPayable, "TotalPayable")
			assertDec(t, "0", s.Balance, "Balance")
		})
	}
}

func TestExpensesByCategory(t *testing.T) {
	data := NewAppData()
	data.Expenses = []Expense{
		{ID: "1", Category: "বাজার", Amount: dec("100")},
		{ID: "2", Category: "শিক্ষা", Amount: dec("40")},
		{ID: "3", Category: "বাজার", Amount: dec("25.5")},
	}

	got := ExpensesByCategory(data)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "বাজার", got[0].Name)
		assertDec(t, "125.5", got[0].Amount, "বাজার")
		assert.Equal(t, "শিক্ষা", got[1].Name)
		assertDec(t, "40", got[1].Amount, "শিক্ষা")
	}
	assert.Empty(t, ExpensesByCategory(NewAppData()))
}
