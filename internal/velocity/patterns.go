package velocity

import (
	"sort"
	"time"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Pattern granularities.
const (
	GranularityDaily    = "daily"
	GranularityWeekly   = "weekly"
	GranularityCategory = "category"
)

// Point is one labeled value in a pattern series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one named line in a pattern chart.
type Series struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// SpendingPatterns shapes spending over the last three months into chart
// series at the requested granularity. A non-empty category restricts the
// input to that category. Only outflows count.
//
// daily: per-day totals over the trailing 30 days, one series.
// weekly: average spend per day of the week, Sunday through Saturday.
// category: per-month totals for the top five categories by total spend.
func SpendingPatterns(txns []model.Transaction, now time.Time, granularity, category string) []Series {
	start, _ := period.Start(now, period.Token3M)

	var spending []model.Transaction
	for _, t := range txns {
		if t.Date.IsZero() || t.Date.Before(start) {
			continue
		}
		if !t.Amount.IsNegative() {
			continue
		}
		if category != "" && t.CategoryOrOther() != category {
			continue
		}
		spending = append(spending, t)
	}

	switch granularity {
	case GranularityWeekly:
		return weeklyAverageSeries(spending)
	case GranularityCategory:
		return categorySeries(spending)
	default:
		return dailySeries(spending, now)
	}
}

func dailySeries(txns []model.Transaction, now time.Time) []Series {
	cutoff := now.AddDate(0, 0, -30)
	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Date.Before(cutoff) {
			continue
		}
		v, _ := t.Amount.Abs().Float64()
		totals[t.Date.Format(dayKeyLayout)] += v
	}

	days := make([]string, 0, len(totals))
	for d := range totals {
		days = append(days, d)
	}
	sort.Strings(days)

	points := make([]Point, len(days))
	for i, d := range days {
		points[i] = Point{Label: d, Value: totals[d]}
	}
	return []Series{{Label: "Daily spending", Points: points}}
}

func weeklyAverageSeries(txns []model.Transaction) []Series {
	var sums [7]float64
	var counts [7]int
	for _, t := range txns {
		v, _ := t.Amount.Abs().Float64()
		wd := t.Date.Weekday()
		sums[wd] += v
		counts[wd]++
	}

	points := make([]Point, 7)
	for i := range points {
		avg := 0.0
		if counts[i] > 0 {
			avg = sums[i] / float64(counts[i])
		}
		points[i] = Point{Label: time.Weekday(i).String(), Value: avg}
	}
	return []Series{{Label: "Average by weekday", Points: points}}
}

func categorySeries(txns []model.Transaction) []Series {
	totals := make(map[string]float64)
	byCatMonth := make(map[string]map[string]float64)
	monthSet := make(map[string]bool)

	for _, t := range txns {
		v, _ := t.Amount.Abs().Float64()
		cat := t.CategoryOrOther()
		month := period.MonthKey(t.Date)
		totals[cat] += v
		if byCatMonth[cat] == nil {
			byCatMonth[cat] = make(map[string]float64)
		}
		byCatMonth[cat][month] += v
		monthSet[month] = true
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	cats := make([]string, 0, len(totals))
	for c := range totals {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if totals[cats[i]] != totals[cats[j]] {
			return totals[cats[i]] > totals[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > 5 {
		cats = cats[:5]
	}

	out := make([]Series, len(cats))
	for i, cat := range cats {
		points := make([]Point, len(months))
		for j, m := range months {
			points[j] = Point{Label: m, Value: byCatMonth[cat][m]}
		}
		out[i] = Series{Label: cat, Points: points}
	}
	return out
}
