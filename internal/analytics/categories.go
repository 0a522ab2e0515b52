package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Metric selects which accumulated value a category view reports.
type Metric string

const (
	MetricSpending Metric = "spending"
	MetricIncome   Metric = "income"
	MetricNet      Metric = "net"
)

// Metrics holds the three accumulations for one category/month cell.
type Metrics struct {
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Net      decimal.Decimal `json:"net"`
}

func (m Metrics) value(metric Metric) decimal.Decimal {
	switch metric {
	case MetricIncome:
		return m.Income
	case MetricNet:
		return m.Net
	default:
		return m.Spending
	}
}

// CategorySeries is one category's values aligned to the result's month axis.
type CategorySeries struct {
	Category string            `json:"category"`
	Values   []decimal.Decimal `json:"values"`
}

// CategoryMonthResult is the per-category, per-month summary. Months holds
// only months actually present in the filtered data, so sparse periods
// produce gaps rather than explicit zero points.
type CategoryMonthResult struct {
	Months  []string                      `json:"months"`
	Series  []CategorySeries              `json:"series"`
	Summary map[string]map[string]Metrics `json:"summary"`
}

// CategoryMonthOptions bounds and shapes SummarizeCategoryMonths.
// StartMonth/EndMonth are inclusive "YYYY-MM" keys; empty means unbounded.
// An empty Categories list means every observed category.
type CategoryMonthOptions struct {
	StartMonth string
	EndMonth   string
	Categories []string
	Metric     Metric
}

// SummarizeCategoryMonths accumulates income/spending/net per category and
// month within the requested range, emitting one aligned series per requested
// (or observed) category.
func SummarizeCategoryMonths(txns []model.Transaction, opts CategoryMonthOptions) CategoryMonthResult {
	allowed := make(map[string]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		allowed[c] = true
	}

	summary := make(map[string]map[string]Metrics)
	monthSet := make(map[string]bool)

	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		key := period.MonthKey(t.Date)
		if opts.StartMonth != "" && key < opts.StartMonth {
			continue
		}
		if opts.EndMonth != "" && key > opts.EndMonth {
			continue
		}
		if len(allowed) > 0 && !allowed[t.Category] {
			continue
		}

		cat := t.CategoryOrOther()
		monthSet[key] = true
		if summary[cat] == nil {
			summary[cat] = make(map[string]Metrics)
		}
		m := summary[cat][key]
		if t.Amount.IsPositive() {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Spending = m.Spending.Add(t.Amount.Abs())
		}
		m.Net = m.Income.Sub(m.Spending)
		summary[cat][key] = m
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	categories := opts.Categories
	if len(categories) == 0 {
		for c := range summary {
			categories = append(categories, c)
		}
		sort.Strings(categories)
	}

	series := make([]CategorySeries, 0, len(categories))
	for _, cat := range categories {
		values := make([]decimal.Decimal, len(months))
		for i, m := range months {
			values[i] = summary[cat][m].value(opts.Metric)
		}
		series = append(series, CategorySeries{Category: cat, Values: values})
	}

	return CategoryMonthResult{Months: months, Series: series, Summary: summary}
}

// CategoryValue pairs a category with its accumulated value.
type CategoryValue struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// TopOptions bounds and shapes TopCategories.
type TopOptions struct {
	N          int
	Metric     Metric
	StartMonth string
	EndMonth   string
}

// TopCategories returns the top-N categories by the requested metric within
// the inclusive month window, descending. Transfers are excluded: they are
// not real spending or income.
func TopCategories(txns []model.Transaction, opts TopOptions) []CategoryValue {
	if opts.N <= 0 {
		opts.N = 5
	}

	totals := make(map[string]Metrics)
	for _, t := range txns {
		if t.Date.IsZero() || t.IsTransfer() {
			continue
		}
		key := period.MonthKey(t.Date)
		if opts.StartMonth != "" && key < opts.StartMonth {
			continue
		}
		if opts.EndMonth != "" && key > opts.EndMonth {
			continue
		}

		cat := t.CategoryOrOther()
		m := totals[cat]
		if t.Amount.IsPositive() {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Spending = m.Spending.Add(t.Amount.Abs())
		}
		m.Net = m.Income.Sub(m.Spending)
		totals[cat] = m
	}

	out := make([]CategoryValue, 0, len(totals))
	for cat, m := range totals {
		out = append(out, CategoryValue{Category: cat, Value: m.value(opts.Metric)})
	}
	sortCategoryValues(out)
	if len(out) > opts.N {
		out = out[:opts.N]
	}
	return out
}

// GroupByCategory totals absolute amounts per category for the overview pie
// chart and returns the top 7, descending. Zero-amount transactions are
// excluded.
func GroupByCategory(txns []model.Transaction) []CategoryValue {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		abs := t.Amount.Abs()
		if !abs.IsPositive() {
			continue
		}
		cat := t.CategoryOrOther()
		totals[cat] = totals[cat].Add(abs)
	}

	out := make([]CategoryValue, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryValue{Category: cat, Value: total})
	}
	sortCategoryValues(out)
	if len(out) > 7 {
		out = out[:7]
	}
	return out
}

// sortCategoryValues orders by value descending, category ascending on ties.
func sortCategoryValues(values []CategoryValue) {
	sort.Slice(values, func(i, j int) bool {
		if !values[i].Value.Equal(values[j].Value) {
			return values[i].Value.GreaterThan(values[j].Value)
		}
		return values[i].Category < values[j].Category
	})
}
