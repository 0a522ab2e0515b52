package accounts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepfinance-dev/deepfinance/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func bal(name, amount string) model.AccountBalance {
	return model.AccountBalance{AccountName: name, Balance: dec(amount)}
}

func TestNetWorth_Empty(t *testing.T) {
	assert.True(t, NetWorth(nil).IsZero())
	assert.True(t, NetWorth([]model.AccountBalance{}).IsZero())
}

func TestNetWorth_OrderInvariant(t *testing.T) {
	a := []model.AccountBalance{bal("a", "100.50"), bal("b", "-25.25"), bal("c", "0.75")}
	b := []model.AccountBalance{a[2], a[0], a[1]}
	assert.True(t, NetWorth(a).Equal(NetWorth(b)))
	assert.True(t, NetWorth(a).Equal(dec("76.00")))
}

func TestTypeBreakdown(t *testing.T) {
	cards := []model.AccountBalance{{CardName: "Visa", Balance: dec("-1200")}}
	cash := []model.AccountBalance{bal("Checking", "3000")}
	investments := []model.AccountBalance{bal("Brokerage", "-10")}

	out := TypeBreakdown(cards, cash, investments)
	require.Len(t, out, 2, "negative investment total must be omitted")
	assert.Equal(t, TypeCreditCards, out[0].Type)
	assert.True(t, out[0].Amount.Equal(dec("1200")), "card debt reported as magnitude")
	assert.Equal(t, TypeCash, out[1].Type)
}

func TestTypeBreakdown_AllEmpty(t *testing.T) {
	assert.Empty(t, TypeBreakdown(nil, nil, nil))
}

func TestPendingCashAdjustment(t *testing.T) {
	txns := []model.Transaction{
		// Counted: pending checking inflow and outflow.
		{Status: model.StatusPending, AccountType: model.AccountTypeBank, AccountSubtype: "checking", Amount: dec("500")},
		{Status: model.StatusPending, AccountType: model.AccountTypeBank, AccountName: "Total Checking", Amount: dec("-120")},
		// Not counted: settled, wrong account type, savings subtype.
		{Status: "POSTED", AccountType: model.AccountTypeBank, AccountSubtype: "checking", Amount: dec("999")},
		{Status: model.StatusPending, AccountType: model.AccountTypeCredit, AccountSubtype: "checking", Amount: dec("999")},
		{Status: model.StatusPending, AccountType: model.AccountTypeBank, AccountSubtype: "savings", AccountName: "Savings", Amount: dec("999")},
	}
	assert.True(t, PendingCashAdjustment(txns).Equal(dec("380")))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	cards := []model.AccountBalance{{CardName: "Visa", Balance: dec("-400")}}
	cash := []model.AccountBalance{bal("Checking", "2000")}
	investments := []model.AccountBalance{bal("Brokerage", "5000")}
	txns := []model.Transaction{
		{Date: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), Amount: dec("-150"), Category: "Food"},
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Amount: dec("-999"), Category: "Food"}, // prior month
		{Date: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC), Amount: dec("300"), Category: "Payroll"},
	}

	s := Summarize(cards, cash, investments, txns, now)
	assert.True(t, s.CashBalance.Equal(dec("2000")))
	assert.True(t, s.CreditCardDebt.Equal(dec("400")))
	assert.True(t, s.InvestmentBalance.Equal(dec("5000")))
	assert.True(t, s.NetWorth.Equal(dec("6600")))
	assert.True(t, s.MonthSpending.Equal(dec("150")))
}
