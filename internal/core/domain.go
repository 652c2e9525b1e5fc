package core

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Blobs written by earlier versions carry amounts as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"

	// Loan types keep the labels used in persisted data.
	LoanGiven LoanType = "দিয়েছি"
	LoanTaken LoanType = "নিয়েছি"

	UnitKilogram Unit = "কেজি"
	UnitGram     Unit = "গ্রাম"
	UnitPiece    Unit = "পিস"
	UnitLitre    Unit = "লিটার"

	BillElectricity BillCategory = "বিদ্যুৎ বিল"
	BillHouseRent   BillCategory = "বাসা ভাড়া"
	BillBankEMI     BillCategory = "ব্যাংকের কিস্তি"
	BillSamityEMI   BillCategory = "সমিতির কিস্তি"
	BillInternet    BillCategory = "ইন্টারনেট বিল"
	BillGas         BillCategory = "গ্যাস বিল"
	BillOther       BillCategory = "অন্যান্য"
)

const dateLayout = "2006-01-02"

type (
	Status       string
	LoanType     string
	Unit         string
	BillCategory string

	// Date is a calendar day as entered in a form, YYYY-MM-DD.
	Date string

	Income struct {
		ID       string          `json:"id"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		Date     Date            `json:"date"`
		Note     string          `json:"note,omitempty"`
	}

	Expense struct {
		ID        string          `json:"id"`
		ItemName  string          `json:"itemName"`
		Amount    decimal.Decimal `json:"amount"`
		Category  string          `json:"category"`
		Date      Date            `json:"date"`
		Quantity  decimal.Decimal `json:"quantity"`
		Unit      Unit            `json:"unit"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
		Note      string          `json:"note,omitempty"`
	}

	Bill struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Amount      decimal.Decimal `json:"amount"`
		Category    BillCategory    `json:"category"`
		Date        Date            `json:"date"`
		Status      Status          `json:"status"`
		PhoneNumber string          `json:"phoneNumber,omitempty"`
		Note        string          `json:"note,omitempty"`
	}

	Loan struct {
		ID          string          `json:"id"`
		PersonName  string          `json:"personName"`
		PhoneNumber string          `json:"phoneNumber,omitempty"`
		Amount      decimal.Decimal `json:"amount"`
		PaidAmount  decimal.Decimal `json:"paidAmount"`
		Type        LoanType        `json:"type"`
		Date        Date            `json:"date"`
		DueDate     Date            `json:"dueDate,omitempty"`
		Status      Status          `json:"status"`
		Note        string          `json:"note,omitempty"`
	}

	MarketItem struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Quantity       decimal.Decimal `json:"quantity"`
		Unit           Unit            `json:"unit"`
		EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
		IsPurchased    bool            `json:"isPurchased"`
	}

	// AppData is the aggregate root. Each collection is ordered newest first.
	AppData struct {
		Incomes     []Income     `json:"incomes"`
		Expenses    []Expense    `json:"expenses"`
		Bills       []Bill       `json:"bills"`
		Loans       []Loan       `json:"loans"`
		MarketItems []MarketItem `json:"marketItems"`
	}
)

func (i Income) RecordID() string     { return i.ID }
func (e Expense) RecordID() string    { return e.ID }
func (b Bill) RecordID() string       { return b.ID }
func (l Loan) RecordID() string       { return l.ID }
func (m MarketItem) RecordID() string { return m.ID }

// NewAppData returns the default state: five empty collections.
func NewAppData() AppData {
	return AppData{
		Incomes:     []Income{},
		Expenses:    []Expense{},
		Bills:       []Bill{},
		Loans:       []Loan{},
		MarketItems: []MarketItem{},
	}
}

// Normalize replaces nil collections with empty ones.
func (d AppData) Normalize() AppData {
	if d.Incomes == nil {
		d.Incomes = []Income{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.Bills == nil {
		d.Bills = []Bill{}
	}
	if d.Loans == nil {
		d.Loans = []Loan{}
	}
	if d.MarketItems == nil {
		d.MarketItems = []MarketItem{}
	}
	return d
}

// Clone returns a copy that shares no backing arrays with d.
func (d AppData) Clone() AppData {
	return AppData{
		Incomes:     append([]Income{}, d.Incomes...),
		Expenses:    append([]Expense{}, d.Expenses...),
		Bills:       append([]Bill{}, d.Bills...),
		Loans:       append([]Loan{}, d.Loans...),
		MarketItems: append([]MarketItem{}, d.MarketItems...),
	}
}

// Outstanding is the unpaid part of the loan.
func (l Loan) Outstanding() decimal.Decimal {
	return l.Amount.Sub(l.PaidAmount)
}

// Today returns the current local day.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf formats t as a Date.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time parses the date. ok is false for empty or malformed values.
func (d Date) Time() (t time.Time, ok bool) {
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		// Some clients store full ISO timestamps.
		t, err = time.Parse(time.RFC3339, string(d))
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// IsEmpty reports whether no date was given.
func (d Date) IsEmpty() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}

// Display renders the date as DD/MM/YYYY, or the raw value if it does not parse.
func (d Date) Display() string {
	t, ok := d.Time()
	if !ok {
		return string(d)
	}
	return t.Format("02/01/2006")
}
