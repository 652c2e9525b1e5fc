package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisab/internal/core"
)

func income(id, amount string) core.Income {
	return core.Income{ID: id, Amount: decimal.RequireFromString(amount), Category: "বেতন", Date: "2024-01-01"}
}

func ids[T Record](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.RecordID())
	}
	return out
}

func TestCollection_AddPrepends(t *testing.T) {
	c := Collection[core.Income]{income("a", "1")}
	got := c.Add(income("b", "2"))

	assert.Equal(t, []string{"b", "a"}, ids(got))
	assert.Equal(t, []string{"a"}, ids(c))
}

func TestCollection_AddDoesNotCheckDuplicates(t *testing.T) {
	c := Collection[core.Income]{income("a", "1")}
	got := c.Add(income("a", "2"))
	assert.Equal(t, []string{"a", "a"}, ids(got))
}

func TestCollection_Update(t *testing.T) {
	c := Collection[core.Income]{income("a", "1"), income("b", "2")}

	got := c.Update(income("b", "20"))
	require.Len(t, got, 2)
	assert.Equal(t, "20", got[1].Amount.String())
	assert.Equal(t, "2", c[1].Amount.String(), "input mutated")

	missing := c.Update(income("zzz", "99"))
	assert.Equal(t, ids(c), ids(missing))
	assert.Equal(t, "1", missing[0].Amount.String())
	assert.Equal(t, "2", missing[1].Amount.String())
}

func TestCollection_Delete(t *testing.T) {
	c := Collection[core.Income]{income("a", "1"), income("b", "2"), income("a", "3")}

	assert.Equal(t, []string{"b"}, ids(c.Delete("a")))
	assert.Equal(t, []string{"a", "b", "a"}, ids(c.Delete("missing")))
	assert.Len(t, c, 3)
}

func TestCollection_Find(t *testing.T) {
	c := Collection[core.Income]{income("a", "1")}
	got, ok := c.Find("a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.ID)
	_, ok = c.Find("b")
	assert.False(t, ok)
}

func TestIncomes_AddThenDeleteRestoresState(t *testing.T) {
	before := core.NewAppData()
	before.Incomes = []core.Income{income("old", "10")}

	rec := income("new", "5000")
	after := Incomes.Delete(Incomes.Add(before, rec), rec.ID)

	assert.Equal(t, ids(before.Incomes), ids(after.Incomes))
	assert.Len(t, before.Incomes, 1)
}

func TestEditors_TouchOnlyTheirCollection(t *testing.T) {
	d := core.NewAppData()
	d = Expenses.Add(d, core.Expense{ID: "e1", ItemName: "চাল"})
	d = Bills.Add(d, core.Bill{ID: "b1", Title: "বিদ্যুৎ", Status: core.StatusPending})

	assert.Equal(t, []string{"e1"}, ids(d.Expenses))
	assert.Equal(t, []string{"b1"}, ids(d.Bills))
	assert.Empty(t, d.Incomes)

	d = Bills.Update(d, core.Bill{ID: "b1", Title: "বিদ্যুৎ", Status: core.StatusPaid})
	assert.Equal(t, core.StatusPaid, d.Bills[0].Status)

	d = Expenses.Delete(d, "e1")
	assert.Empty(t, d.Expenses)
	assert.Len(t, d.Bills, 1)
}

func TestLoans_AddAndUpdate(t *testing.T) {
	d := Loans.Add(core.NewAppData(), core.Loan{
		ID:         "l1",
		PersonName: "করিম",
		Amount:     decimal.NewFromInt(1000),
		PaidAmount: decimal.Zero,
		Type:       core.LoanGiven,
		Status:     core.StatusPending,
	})
	require.Len(t, d.Loans, 1)

	l := d.Loans[0]
	l.PaidAmount = decimal.NewFromInt(1000)
	d2 := Loans.Update(d, l)

	assert.Equal(t, "1000", d2.Loans[0].PaidAmount.String())
	assert.Equal(t, core.StatusPending, d2.Loans[0].Status, "status never changes on its own")
	assert.Equal(t, "0", d.Loans[0].PaidAmount.String())
}

func TestMarket_ToggleTwiceIsIdentity(t *testing.T) {
	d := core.NewAppData()
	d = Market.Add(d, core.MarketItem{ID: "m1", Name: "ডাল"})
	d = Market.Add(d, core.MarketItem{ID: "m2", Name: "তেল"})

	once := Market.Toggle(d, "m1")
	assert.True(t, once.MarketItems[1].IsPurchased)
	assert.False(t, once.MarketItems[0].IsPurchased)
	assert.False(t, d.MarketItems[1].IsPurchased, "input mutated")

	twice := Market.Toggle(once, "m1")
	assert.Equal(t, d.MarketItems, twice.MarketItems)

	assert.Equal(t, d.MarketItems, Market.Toggle(d, "missing").MarketItems)
}

func TestMarket_Delete(t *testing.T) {
	d := Market.Add(core.NewAppData(), core.MarketItem{ID: "m1"})
	d = Market.Delete(d, "m1")
	assert.Empty(t, d.MarketItems)
}
