// Package invest normalizes scraped investment history for charting.
package invest

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Result is a chart-ready slice of one period's investment history.
type Result struct {
	Points        []model.InvestmentPoint `json:"points"`
	Labels        []string                `json:"labels"`
	StartValue    decimal.Decimal         `json:"start_value"`
	EndValue      decimal.Decimal         `json:"end_value"`
	PercentChange float64                 `json:"percent_change"`
	IsPositive    bool                    `json:"is_positive"`
}

// Normalize selects the history points tagged with the requested period
// token, sorts them by date ascending, and derives start/end values and the
// percent change across the window. History is pre-sliced per period by the
// scraper, so selection matches the point's own tag rather than re-windowing
// by date. An empty selection yields the zero Result.
func Normalize(history []model.InvestmentPoint, token string) Result {
	var points []model.InvestmentPoint
	for _, p := range history {
		if p.Period == token {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return Result{}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	res := Result{
		Points:     points,
		Labels:     make([]string, len(points)),
		StartValue: points[0].RawValue,
		EndValue:   points[len(points)-1].RawValue,
	}
	layout := labelLayout(token)
	for i, p := range points {
		res.Labels[i] = p.Date.Format(layout)
	}

	if res.StartValue.IsPositive() {
		change, _ := res.EndValue.Sub(res.StartValue).Div(res.StartValue).Float64()
		res.PercentChange = change * 100
	}
	res.IsPositive = res.PercentChange >= 0
	return res
}

// labelLayout picks tick label granularity: day-level for short windows,
// month-level otherwise.
func labelLayout(token string) string {
	switch token {
	case period.Token1M, period.Token3M:
		return "Jan 2"
	default:
		return "Jan"
	}
}
