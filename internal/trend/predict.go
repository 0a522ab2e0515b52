package trend

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Insight severities.
const (
	SeverityWarning  = "warning"
	SeverityPositive = "positive"
	SeverityInfo     = "info"
)

// Insight is one generated observation about recent activity.
type Insight struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Summary is the predictive view over the last 90 days of activity.
type Summary struct {
	Months           []string  `json:"months"`
	Spending         []float64 `json:"spending"`
	Income           []float64 `json:"income"`
	SpendingTrendPct float64   `json:"spending_trend_pct"`
	IncomeTrendPct   float64   `json:"income_trend_pct"`
	SpendingForecast []float64 `json:"spending_forecast"`
	IncomeForecast   []float64 `json:"income_forecast"`
	FastestCategory  string    `json:"fastest_category,omitempty"`
	CategoryGrowth   float64   `json:"category_growth_pct,omitempty"`
	TopMerchant      string    `json:"top_merchant,omitempty"`
	TopMerchantCount int       `json:"top_merchant_count,omitempty"`
	SavingsRatePct   float64   `json:"savings_rate_pct"`
	Insights         []Insight `json:"insights"`
}

// Insight rule thresholds, in percent.
const (
	spendingUpThreshold   = 10
	spendingDownThreshold = -5
	incomeUpThreshold     = 5
	categoryGrowThreshold = 20
	lowSavingsThreshold   = 10
	forecastHorizon       = 3
)

// Predict builds the predictive summary from the last 90 days of
// transactions. ok is false when fewer than two months of data fall in the
// window, which is not enough to fit a trend. Transfers are excluded.
func Predict(txns []model.Transaction, now time.Time, rng *rand.Rand) (Summary, bool) {
	cutoff := now.AddDate(0, 0, -90)

	spendByMonth := make(map[string]float64)
	incomeByMonth := make(map[string]float64)
	catByMonth := make(map[string]map[string]float64)
	merchantCount := make(map[string]int)

	for _, t := range txns {
		if t.Date.IsZero() || t.Date.Before(cutoff) || t.IsTransfer() {
			continue
		}
		key := period.MonthKey(t.Date)
		amount, _ := t.Amount.Float64()
		switch {
		case amount > 0:
			incomeByMonth[key] += amount
		case amount < 0:
			spendByMonth[key] += -amount
			if catByMonth[key] == nil {
				catByMonth[key] = make(map[string]float64)
			}
			catByMonth[key][t.CategoryOrOther()] += -amount
		}
		if t.Merchant != "" {
			merchantCount[t.Merchant]++
		}
	}

	months := make(map[string]bool, len(spendByMonth)+len(incomeByMonth))
	for m := range spendByMonth {
		months[m] = true
	}
	for m := range incomeByMonth {
		months[m] = true
	}
	keys := make([]string, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Strings(keys)
	if len(keys) < 2 {
		return Summary{}, false
	}

	s := Summary{Months: keys}
	var totalSpend, totalIncome float64
	for _, m := range keys {
		s.Spending = append(s.Spending, spendByMonth[m])
		s.Income = append(s.Income, incomeByMonth[m])
		totalSpend += spendByMonth[m]
		totalIncome += incomeByMonth[m]
	}

	s.SpendingTrendPct = LinearTrendPercent(s.Spending)
	s.IncomeTrendPct = LinearTrendPercent(s.Income)
	s.SpendingForecast = Forecast(s.Spending, s.SpendingTrendPct, forecastHorizon, rng)
	s.IncomeForecast = Forecast(s.Income, s.IncomeTrendPct, forecastHorizon, rng)

	s.FastestCategory, s.CategoryGrowth = fastestGrowingCategory(catByMonth, keys)
	s.TopMerchant, s.TopMerchantCount = topMerchantByFrequency(merchantCount)
	if totalIncome > 0 {
		s.SavingsRatePct = (totalIncome - totalSpend) / totalIncome * 100
	}

	s.Insights = generateInsights(s)
	return s, true
}

// fastestGrowingCategory compares the latest month against the one before it
// and returns the category with the largest relative growth. Categories with
// no prior-month spending are skipped.
func fastestGrowingCategory(catByMonth map[string]map[string]float64, keys []string) (string, float64) {
	cur := catByMonth[keys[len(keys)-1]]
	prev := catByMonth[keys[len(keys)-2]]

	best := ""
	bestGrowth := 0.0
	cats := make([]string, 0, len(cur))
	for c := range cur {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		p := prev[c]
		if p <= 0 {
			continue
		}
		growth := (cur[c] - p) / p * 100
		if best == "" || growth > bestGrowth {
			best = c
			bestGrowth = growth
		}
	}
	return best, bestGrowth
}

// topMerchantByFrequency returns the most frequent merchant, breaking count
// ties by name.
func topMerchantByFrequency(counts map[string]int) (string, int) {
	best := ""
	bestCount := 0
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if counts[n] > bestCount {
			best = n
			bestCount = counts[n]
		}
	}
	return best, bestCount
}

func generateInsights(s Summary) []Insight {
	var out []Insight
	if s.SpendingTrendPct > spendingUpThreshold {
		out = append(out, Insight{SeverityWarning,
			fmt.Sprintf("Spending is trending up %.1f%% month over month", s.SpendingTrendPct)})
	} else if s.SpendingTrendPct < spendingDownThreshold {
		out = append(out, Insight{SeverityPositive,
			fmt.Sprintf("Spending is trending down %.1f%% month over month", -s.SpendingTrendPct)})
	}
	if s.IncomeTrendPct > incomeUpThreshold {
		out = append(out, Insight{SeverityPositive,
			fmt.Sprintf("Income is growing %.1f%% month over month", s.IncomeTrendPct)})
	}
	if s.FastestCategory != "" && s.CategoryGrowth > categoryGrowThreshold {
		out = append(out, Insight{SeverityWarning,
			fmt.Sprintf("%s spending grew %.0f%% last month", s.FastestCategory, s.CategoryGrowth)})
	}
	if s.SavingsRatePct < lowSavingsThreshold {
		out = append(out, Insight{SeverityWarning,
			fmt.Sprintf("Savings rate is low at %.1f%%", s.SavingsRatePct)})
	} else {
		out = append(out, Insight{SeverityInfo,
			fmt.Sprintf("Savings rate is %.1f%%", s.SavingsRatePct)})
	}
	return out
}
