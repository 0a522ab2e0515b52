// Package accounts aggregates balance snapshots into net figures and
// type breakdowns for the overview cards.
package accounts

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Breakdown category labels.
const (
	TypeCreditCards = "Credit Cards"
	TypeCash        = "Cash & Banking"
	TypeInvestments = "Investments"
)

// TypeTotal is one slice of the account-type breakdown.
type TypeTotal struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary holds the overview metrics for the stats cards.
type Summary struct {
	NetWorth          decimal.Decimal `json:"net_worth"`
	CashBalance       decimal.Decimal `json:"cash_balance"`
	InvestmentBalance decimal.Decimal `json:"investment_balance"`
	CreditCardDebt    decimal.Decimal `json:"credit_card_debt"`
	MonthSpending     decimal.Decimal `json:"month_spending"`
}

// NetWorth sums balances across a list of accounts. An empty list yields zero
// and order never matters.
func NetWorth(balances []model.AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	return total
}

// TypeBreakdown totals card, cash, and investment balances per category.
// Card debt is reported as a positive magnitude. Categories with a
// non-positive total carry no visual weight and are omitted.
func TypeBreakdown(cards, cash, investments []model.AccountBalance) []TypeTotal {
	candidates := []TypeTotal{
		{Type: TypeCreditCards, Amount: NetWorth(cards).Abs()},
		{Type: TypeCash, Amount: NetWorth(cash)},
		{Type: TypeInvestments, Amount: NetWorth(investments)},
	}

	var out []TypeTotal
	for _, c := range candidates {
		if c.Amount.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}

// PendingCashAdjustment sums pending checking-account transactions (both
// inflow and outflow) that the settled cash snapshot does not yet reflect.
func PendingCashAdjustment(txns []model.Transaction) decimal.Decimal {
	adj := decimal.Zero
	for _, t := range txns {
		if t.Status != model.StatusPending || t.AccountType != model.AccountTypeBank {
			continue
		}
		if !isCheckingLike(t) {
			continue
		}
		adj = adj.Add(t.Amount)
	}
	return adj
}

func isCheckingLike(t model.Transaction) bool {
	if strings.EqualFold(t.AccountSubtype, "checking") {
		return true
	}
	return strings.Contains(strings.ToLower(t.AccountName), "checking")
}

// Summarize computes the overview metrics: cash (pending-adjusted),
// investments, credit debt, their combined net worth, and spending in the
// calendar month containing now.
func Summarize(cards, cash, investments []model.AccountBalance, txns []model.Transaction, now time.Time) Summary {
	cashBalance := NetWorth(cash).Add(PendingCashAdjustment(txns))
	investmentBalance := NetWorth(investments)
	creditDebt := NetWorth(cards).Abs()

	thisMonth := period.MonthKey(now)
	monthSpending := decimal.Zero
	for _, t := range txns {
		if period.MonthKey(t.Date) != thisMonth {
			continue
		}
		if t.Amount.IsNegative() {
			monthSpending = monthSpending.Add(t.Amount.Abs())
		}
	}

	return Summary{
		NetWorth:          cashBalance.Add(investmentBalance).Sub(creditDebt),
		CashBalance:       cashBalance,
		InvestmentBalance: investmentBalance,
		CreditCardDebt:    creditDebt,
		MonthSpending:     monthSpending,
	}
}
