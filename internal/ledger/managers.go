package ledger

import "hisab/internal/core"

// lens focuses one collection of AppData.
type lens[T Record] struct {
	get func(core.AppData) []T
	set func(core.AppData, []T) core.AppData
}

func (l lens[T]) apply(d core.AppData, fn func(Collection[T]) Collection[T]) core.AppData {
	return l.set(d, fn(Collection[T](l.get(d))))
}

// Editor exposes add, update and delete over one collection.
type Editor[T Record] struct {
	lens[T]
}

func (e Editor[T]) Add(d core.AppData, rec T) core.AppData {
	return e.apply(d, func(c Collection[T]) Collection[T] { return c.Add(rec) })
}

func (e Editor[T]) Update(d core.AppData, rec T) core.AppData {
	return e.apply(d, func(c Collection[T]) Collection[T] { return c.Update(rec) })
}

func (e Editor[T]) Delete(d core.AppData, id string) core.AppData {
	return e.apply(d, func(c Collection[T]) Collection[T] { return c.Delete(id) })
}

// LoanBook manages loans. Loans can be added and updated but never removed.
type LoanBook struct {
	lens[core.Loan]
}

func (b LoanBook) Add(d core.AppData, l core.Loan) core.AppData {
	return b.apply(d, func(c Collection[core.Loan]) Collection[core.Loan] { return c.Add(l) })
}

func (b LoanBook) Update(d core.AppData, l core.Loan) core.AppData {
	return b.apply(d, func(c Collection[core.Loan]) Collection[core.Loan] { return c.Update(l) })
}

// MarketList manages the shopping list: add, toggle and delete.
type MarketList struct {
	lens[core.MarketItem]
}

func (m MarketList) Add(d core.AppData, it core.MarketItem) core.AppData {
	return m.apply(d, func(c Collection[core.MarketItem]) Collection[core.MarketItem] { return c.Add(it) })
}

// Toggle flips the purchased flag of the item with id.
func (m MarketList) Toggle(d core.AppData, id string) core.AppData {
	return m.apply(d, func(c Collection[core.MarketItem]) Collection[core.MarketItem] {
		return c.Map(id, func(it core.MarketItem) core.MarketItem {
			it.IsPurchased = !it.IsPurchased
			return it
		})
	})
}

func (m MarketList) Delete(d core.AppData, id string) core.AppData {
	return m.apply(d, func(c Collection[core.MarketItem]) Collection[core.MarketItem] { return c.Delete(id) })
}

var (
	Incomes = Editor[core.Income]{lens[core.Income]{
		get: func(d core.AppData) []core.Income { return d.Incomes },
		set: func(d core.AppData, v []core.Income) core.AppData { d.Incomes = v; return d },
	}}
	Expenses = Editor[core.Expense]{lens[core.Expense]{
		get: func(d core.AppData) []core.Expense { return d.Expenses },
		set: func(d core.AppData, v []core.Expense) core.AppData { d.Expenses = v; return d },
	}}
	Bills = Editor[core.Bill]{lens[core.Bill]{
		get: func(d core.AppData) []core.Bill { return d.Bills },
		set: func(d core.AppData, v []core.Bill) core.AppData { d.Bills = v; return d },
	}}
	Loans = LoanBook{lens[core.Loan]{
		get: func(d core.AppData) []core.Loan { return d.Loans },
		set: func(d core.AppData, v []core.Loan) core.AppData { d.Loans = v; return d },
	}}
	Market = MarketList{lens[core.MarketItem]{
		get: func(d core.AppData) []core.MarketItem { return d.MarketItems },
		set: func(d core.AppData, v []core.MarketItem) core.AppData { d.MarketItems = v; return d },
	}}
)
