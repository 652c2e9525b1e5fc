package app

import "strings"

// Tab is one of the six screens of the app.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabIncome    Tab = "income"
	TabExpense   Tab = "expense"
	TabBill      Tab = "bill"
	TabLoan      Tab = "loan"
	TabMarket    Tab = "market"
)

// Tabs lists the tabs in navigation order.
var Tabs = []Tab{TabDashboard, TabIncome, TabExpense, TabBill, TabLoan, TabMarket}

func ParseTab(s string) (Tab, bool) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Label is the bottom navigation caption.
func (t Tab) Label() string {
	switch t {
	case TabDashboard:
		return "ড্যাশবোর্ড"
	case TabIncome:
		return "আয়"
	case TabExpense:
		return "ব্যয়"
	case TabBill:
		return "বিল/কিস্তি"
	case TabLoan:
		return "লেনদেন"
	case TabMarket:
		return "বাজার"
	}
	return string(t)
}
