// Package analytics derives the dashboard views from a raw transaction list:
// monthly income/spending rollups, category breakdowns, cash flow, account
// activity, and merchant summaries. Every function is pure; callers pass the
// reference time explicitly.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// MonthBucket accumulates one calendar month of activity. Categories maps
// category name to spending magnitude for that month.
type MonthBucket struct {
	Month      string                     `json:"month"`
	Income     decimal.Decimal            `json:"income"`
	Spending   decimal.Decimal            `json:"spending"`
	Categories map[string]decimal.Decimal `json:"categories"`
}

// MonthlyIncomeSpending groups transactions by calendar month, accumulating
// positive amounts into income and negative amounts into spending and the
// per-category spending map. Transfer-category transactions create their
// month bucket but contribute to neither side. Output is sorted ascending by
// month; callers that want a bounded recent window apply LastN.
func MonthlyIncomeSpending(txns []model.Transaction) []MonthBucket {
	byMonth := make(map[string]*MonthBucket)

	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		key := period.MonthKey(t.Date)
		b, ok := byMonth[key]
		if !ok {
			b = &MonthBucket{
				Month:      key,
				Income:     decimal.Zero,
				Spending:   decimal.Zero,
				Categories: make(map[string]decimal.Decimal),
			}
			byMonth[key] = b
		}

		if t.IsTransfer() {
			continue
		}

		switch {
		case t.Amount.IsPositive():
			b.Income = b.Income.Add(t.Amount)
		case t.Amount.IsNegative():
			abs := t.Amount.Abs()
			b.Spending = b.Spending.Add(abs)
			cat := t.CategoryOrOther()
			b.Categories[cat] = b.Categories[cat].Add(abs)
		}
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// LastN returns the most recent n buckets, preserving ascending order.
func LastN(buckets []MonthBucket, n int) []MonthBucket {
	if n <= 0 || len(buckets) <= n {
		return buckets
	}
	return buckets[len(buckets)-n:]
}
