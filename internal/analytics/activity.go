package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Activity summarizes one account's transaction volume inside a window.
type Activity struct {
	Key         string          `json:"key"`
	Display     string          `json:"display"`
	AccountType string          `json:"account_type"`
	Provider    string          `json:"provider"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
}

// AccountActivity totals absolute transaction amounts per account over the
// period window, sorted by activity descending. Zero-amount transactions are
// skipped.
func AccountActivity(txns []model.Transaction, now time.Time, token string) []Activity {
	stats := make(map[string]*Activity)

	for _, t := range txns {
		if t.Date.IsZero() || !period.InWindow(t.Date, now, token) {
			continue
		}
		abs := t.Amount.Abs()
		if !abs.IsPositive() {
			continue
		}

		key := fmt.Sprintf("%s (%s)", orUnknown(t.AccountName), orUnknown(t.AccountProvider))
		a, ok := stats[key]
		if !ok {
			display := t.AccountDisplay
			if display == "" {
				display = key
			}
			a = &Activity{
				Key:         key,
				Display:     display,
				AccountType: orUnknown(t.AccountType),
				Provider:    orUnknown(t.AccountProvider),
			}
			stats[key] = a
		}
		a.Total = a.Total.Add(abs)
		a.Count++
	}

	out := make([]Activity, 0, len(stats))
	for _, a := range stats {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
