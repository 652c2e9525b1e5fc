package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppDataIsEmptyNotNil(t *testing.T) {
	d := NewAppData()
	assert.NotNil(t, d.Incomes)
	assert.NotNil(t, d.Expenses)
	assert.NotNil(t, d.Bills)
	assert.NotNil(t, d.Loans)
	assert.NotNil(t, d.MarketItems)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"incomes":[],"expenses":[],"bills":[],"loans":[],"marketItems":[]}`, string(raw))
}

func TestNormalize(t *testing.T) {
	d := AppData{Incomes: []Income{{ID: "x"}}}.Normalize()
	assert.Len(t, d.Incomes, 1)
	assert.NotNil(t, d.Expenses)
	assert.NotNil(t, d.MarketItems)
}

func TestCloneDoesNotShareBackingArrays(t *testing.T) {
	d := NewAppData()
	d.Incomes = []Income{{ID: "a", Category: "বেতন"}}
	c := d.Clone()
	c.Incomes[0].Category = "changed"
	assert.Equal(t, "বেতন", d.Incomes[0].Category)
}

func TestLoanJSONUsesPersistedLabels(t *testing.T) {
	l := Loan{
		ID:         "l1",
		PersonName: "Rahim",
		Amount:     dec("1000"),
		PaidAmount: dec("400"),
		Type:       LoanGiven,
		Date:       "2024-05-01",
		Status:     StatusPending,
	}
	raw, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"l1","personName":"Rahim","amount":1000,"paidAmount":400,"type":"দিয়েছি","date":"2024-05-01","status":"Pending"}`, string(raw))

	var back Loan
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, LoanGiven, back.Type)
	assert.True(t, back.Outstanding().Equal(dec("600")))
}

func TestDecodeOriginalNumbers(t *testing.T) {
	var m MarketItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m","name":"চাল","quantity":2.5,"unit":"কেজি","estimatedPrice":150,"isPurchased":false}`), &m))
	assert.True(t, m.Quantity.Equal(dec("2.5")))
	assert.Equal(t, UnitKilogram, m.Unit)
}

func TestDate(t *testing.T) {
	d := DateOf(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, Date("2024-03-09"), d)
	assert.Equal(t, "09/03/2024", d.Display())

	_, ok := Date("").Time()
	assert.False(t, ok)
	assert.True(t, Date("").IsEmpty())

	iso := Date("2024-03-09T10:00:00Z")
	tm, ok := iso.Time()
	assert.True(t, ok)
	assert.Equal(t, 9, tm.Day())

	assert.Equal(t, "garbage", Date("garbage").Display())
}

func TestParseLabels(t *testing.T) {
	lt, ok := ParseLoanType("Given")
	assert.True(t, ok)
	assert.Equal(t, LoanGiven, lt)
	lt, ok = ParseLoanType("নিয়েছি")
	assert.True(t, ok)
	assert.Equal(t, LoanTaken, lt)
	_, ok = ParseLoanType("borrowed")
	assert.False(t, ok)

	st, ok := ParseStatus("paid")
	assert.True(t, ok)
	assert.Equal(t, StatusPaid, st)

	assert.Equal(t, BillGas, ParseBillCategory("গ্যাস বিল"))
	assert.Equal(t, BillOther, ParseBillCategory("unknown"))
	assert.Equal(t, UnitLitre, ParseUnit("লিটার"))
	assert.Equal(t, UnitPiece, ParseUnit(""))
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
