package core

import "strings"

// Category sets offered by the entry forms. The model stores categories as
// free text; these lists only drive the select inputs.
var (
	IncomeCategories  = []string{"বেতন", "ব্যবসা", "ভাড়া", "অন্যান্য"}
	ExpenseCategories = []string{"বাজার", "শিক্ষা", "চিকিৎসা", "অন্যান্য"}
	BillCategories    = []BillCategory{BillElectricity, BillHouseRent, BillBankEMI, BillSamityEMI, BillInternet, BillGas, BillOther}
	Units             = []Unit{UnitKilogram, UnitGram, UnitPiece, UnitLitre}
	LoanTypes         = []LoanType{LoanGiven, LoanTaken}
	Statuses          = []Status{StatusPending, StatusPaid}
)

// ParseLoanType accepts the persisted label or its English name.
func ParseLoanType(s string) (LoanType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(LoanGiven), "given":
		return LoanGiven, true
	case string(LoanTaken), "taken":
		return LoanTaken, true
	}
	return "", false
}

// ParseStatus accepts "Paid" or "Pending" in any case.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return StatusPaid, true
	case "pending":
		return StatusPending, true
	}
	return "", false
}

// ParseBillCategory returns the matching bill category, or BillOther.
func ParseBillCategory(s string) BillCategory {
	s = strings.TrimSpace(s)
	for _, c := range BillCategories {
		if string(c) == s {
			return c
		}
	}
	return BillOther
}

// ParseUnit returns the matching unit, or UnitPiece.
func ParseUnit(s string) Unit {
	s = strings.TrimSpace(s)
	for _, u := range Units {
		if string(u) == s {
			return u
		}
	}
	return UnitPiece
}

// Label is the human readable name of the loan direction.
func (t LoanType) Label() string {
	switch t {
	case LoanGiven:
		return "দিয়েছি (পাওনা)"
	case LoanTaken:
		return "নিয়েছি (দেনা)"
	}
	return string(t)
}

// Label is the status in Bengali.
func (s Status) Label() string {
	switch s {
	case StatusPaid:
		return "পরিশোধিত"
	case StatusPending:
		return "বাকি"
	}
	return string(s)
}
