package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// MerchantStat summarizes activity at one merchant inside a window.
type MerchantStat struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Avg      decimal.Decimal `json:"avg"`
	Count    int             `json:"count"`
}

// TopMerchants returns up to limit merchants by absolute volume over the
// period window, descending. Transactions without a merchant name are
// ignored. A non-positive limit defaults to 8.
func TopMerchants(txns []model.Transaction, now time.Time, token string, limit int) []MerchantStat {
	if limit <= 0 {
		limit = 8
	}

	stats := make(map[string]*MerchantStat)
	for _, t := range txns {
		if t.Date.IsZero() || !period.InWindow(t.Date, now, token) {
			continue
		}
		name := strings.TrimSpace(t.Merchant)
		if name == "" {
			continue
		}
		abs := t.Amount.Abs()
		if !abs.IsPositive() {
			continue
		}

		m, ok := stats[name]
		if !ok {
			m = &MerchantStat{Name: name, Category: t.CategoryOrOther()}
			stats[name] = m
		}
		m.Total = m.Total.Add(abs)
		m.Count++
	}

	out := make([]MerchantStat, 0, len(stats))
	for _, m := range stats {
		m.Avg = m.Total.Div(decimal.NewFromInt(int64(m.Count)))
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
