package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// CashFlowPoint is one month of income vs spending.
type CashFlowPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlow is the windowed monthly income/spending series with totals.
type CashFlow struct {
	Points        []CashFlowPoint `json:"points"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalSpending decimal.Decimal `json:"total_spending"`
	AvgNet        decimal.Decimal `json:"avg_net"`
}

// CashFlowByMonth buckets transactions inside the period window by month and
// reports income, spending, and net per month plus window totals.
func CashFlowByMonth(txns []model.Transaction, now time.Time, token string) CashFlow {
	byMonth := make(map[string]*CashFlowPoint)

	for _, t := range txns {
		if t.Date.IsZero() || !period.InWindow(t.Date, now, token) {
			continue
		}
		key := period.MonthKey(t.Date)
		p, ok := byMonth[key]
		if !ok {
			p = &CashFlowPoint{Month: key}
			byMonth[key] = p
		}
		switch {
		case t.Amount.IsPositive():
			p.Income = p.Income.Add(t.Amount)
		case t.Amount.IsNegative():
			p.Spending = p.Spending.Add(t.Amount.Abs())
		}
		p.Net = p.Income.Sub(p.Spending)
	}

	out := CashFlow{TotalIncome: decimal.Zero, TotalSpending: decimal.Zero, AvgNet: decimal.Zero}
	for _, p := range byMonth {
		out.Points = append(out.Points, *p)
	}
	sort.Slice(out.Points, func(i, j int) bool { return out.Points[i].Month < out.Points[j].Month })

	netSum := decimal.Zero
	for _, p := range out.Points {
		out.TotalIncome = out.TotalIncome.Add(p.Income)
		out.TotalSpending = out.TotalSpending.Add(p.Spending)
		netSum = netSum.Add(p.Net)
	}
	if n := len(out.Points); n > 0 {
		out.AvgNet = netSum.Div(decimal.NewFromInt(int64(n)))
	}
	return out
}
